// Package record defines the normalized resort condition record produced by
// the page parsers and consumed by the live and batch sinks.
package record

import (
	"time"
)

// Status is the derived operating state of a resort.
type Status string

const (
	StatusOpen    Status = "Open"
	StatusClosed  Status = "Closed"
	StatusUnknown Status = "Unknown"
)

// Image is one forecast image reference.
type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// Resort is one resort's condition record. Every field is optional: a nil
// pointer (or empty map/zero Status) means the field could not be extracted
// from the source markup. Placeholder tokens ("-", "") are stripped before a
// value is ever stored here.
type Resort struct {
	AreaPath   string   `json:"area_path,omitempty"`
	ResortName *string  `json:"resort_name,omitempty"`
	RegionPath *string  `json:"region_path,omitempty"`
	Country    *string  `json:"country,omitempty"`
	Lat        *float64 `json:"lat,omitempty"`
	Lon        *float64 `json:"lon,omitempty"`

	SnowValley        *string `json:"snow_valley,omitempty"`
	SnowMountain      *string `json:"snow_mountain,omitempty"`
	NewSnow           *string `json:"new_snow,omitempty"`
	ElevationValley   *int    `json:"elevation_valley,omitempty"`
	ElevationMountain *int    `json:"elevation_mountain,omitempty"`

	Status           Status   `json:"status,omitempty"`
	LiftsOpenCount   *int     `json:"lifts_open_count,omitempty"`
	LiftsTotalCount  *int     `json:"lifts_total_count,omitempty"`
	SlopesOpenKm     *float64 `json:"slopes_open_km,omitempty"`
	SlopesTotalKm    *float64 `json:"slopes_total_km,omitempty"`
	SlopesOpenCount  *int     `json:"slopes_open_count,omitempty"`
	SlopesTotalCount *int     `json:"slopes_total_count,omitempty"`
	SnowCondition    *string  `json:"snow_condition,omitempty"`
	SlopeCondition   *string  `json:"slope_condition,omitempty"`
	AvalancheWarning *string  `json:"avalanche_warning,omitempty"`
	LastSnowfall     *string  `json:"last_snowfall,omitempty"`
	Price            *string  `json:"price,omitempty"`

	OperationStatus    *string  `json:"operation_status,omitempty"`
	ClassicalOpenKm    *float64 `json:"classical_open_km,omitempty"`
	ClassicalTotalKm   *float64 `json:"classical_total_km,omitempty"`
	ClassicalCondition *string  `json:"classical_condition,omitempty"`
	SkatingOpenKm      *float64 `json:"skating_open_km,omitempty"`
	SkatingTotalKm     *float64 `json:"skating_total_km,omitempty"`
	SkatingCondition   *string  `json:"skating_condition,omitempty"`

	// ForecastDays is keyed by forecast page number (0-5); SummaryImages is
	// keyed by the covered horizon in hours (48, 72, 96, 120, 144).
	ForecastDays  map[int]Image `json:"forecast_days,omitempty"`
	SummaryImages map[int]Image `json:"summary_images,omitempty"`

	LastUpdate *time.Time `json:"last_update,omitempty"`
}

// Str returns a pointer to s, or nil when s is a placeholder value.
func Str(s string) *string {
	if s == "" || s == "-" {
		return nil
	}
	return &s
}

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// DeriveAlpineStatus sets Status from the open lift count unless a status was
// already extracted from an explicit marker.
func (r *Resort) DeriveAlpineStatus() {
	if r.Status != "" {
		return
	}
	if r.LiftsOpenCount != nil && *r.LiftsOpenCount > 0 {
		r.Status = StatusOpen
	} else {
		r.Status = StatusClosed
	}
}

// DeriveCrossCountryStatus sets Status from open trail kilometers.
func (r *Resort) DeriveCrossCountryStatus() {
	if r.Status != "" {
		return
	}
	open := 0.0
	if r.ClassicalOpenKm != nil {
		open += *r.ClassicalOpenKm
	}
	if r.SkatingOpenKm != nil {
		open += *r.SkatingOpenKm
	}
	if open > 0 {
		r.Status = StatusOpen
	} else {
		r.Status = StatusClosed
	}
}

// SetForecastDay records the daily forecast image for page.
func (r *Resort) SetForecastDay(page int, img Image) {
	if r.ForecastDays == nil {
		r.ForecastDays = make(map[int]Image)
	}
	r.ForecastDays[page] = img
}

// SetSummaryImage records the summary forecast image covering hours.
func (r *Resort) SetSummaryImage(hours int, img Image) {
	if r.SummaryImages == nil {
		r.SummaryImages = make(map[int]Image)
	}
	r.SummaryImages[hours] = img
}
