package record

import (
	"strconv"
	"time"
)

// summaryHorizons lists the summary image horizons, in hours, in column order.
var summaryHorizons = []int{48, 72, 96, 120, 144}

// Header returns the fixed CSV column set. Every record flattens to this
// superset schema; absent fields become empty cells.
func Header() []string {
	cols := []string{
		"area_path", "resort_name", "region_path", "country", "lat", "lon",
		"snow_valley", "snow_mountain", "new_snow",
		"elevation_valley", "elevation_mountain",
		"status", "lifts_open_count", "lifts_total_count",
		"slopes_open_km", "slopes_total_km",
		"slopes_open_count", "slopes_total_count",
		"snow_condition", "slope_condition", "avalanche_warning",
		"last_snowfall", "price",
		"operation_status",
		"classical_open_km", "classical_total_km", "classical_condition",
		"skating_open_km", "skating_total_km", "skating_condition",
	}
	for i := 0; i < 6; i++ {
		n := strconv.Itoa(i)
		cols = append(cols, "forecast_image_day_"+n+"_url", "forecast_image_day_"+n+"_caption")
	}
	for _, h := range summaryHorizons {
		n := strconv.Itoa(h)
		cols = append(cols, "summary_image_"+n+"h_url", "summary_image_"+n+"h_caption")
	}
	return append(cols, "last_update", "scraped_at")
}

// Row flattens the record into Header() order.
func (r Resort) Row(scrapedAt time.Time) []string {
	row := []string{
		r.AreaPath,
		strVal(r.ResortName), strVal(r.RegionPath), strVal(r.Country),
		floatVal(r.Lat), floatVal(r.Lon),
		strVal(r.SnowValley), strVal(r.SnowMountain), strVal(r.NewSnow),
		intVal(r.ElevationValley), intVal(r.ElevationMountain),
		string(r.Status), intVal(r.LiftsOpenCount), intVal(r.LiftsTotalCount),
		floatVal(r.SlopesOpenKm), floatVal(r.SlopesTotalKm),
		intVal(r.SlopesOpenCount), intVal(r.SlopesTotalCount),
		strVal(r.SnowCondition), strVal(r.SlopeCondition), strVal(r.AvalancheWarning),
		strVal(r.LastSnowfall), strVal(r.Price),
		strVal(r.OperationStatus),
		floatVal(r.ClassicalOpenKm), floatVal(r.ClassicalTotalKm), strVal(r.ClassicalCondition),
		floatVal(r.SkatingOpenKm), floatVal(r.SkatingTotalKm), strVal(r.SkatingCondition),
	}
	for i := 0; i < 6; i++ {
		img := r.ForecastDays[i]
		row = append(row, img.URL, img.Caption)
	}
	for _, h := range summaryHorizons {
		img := r.SummaryImages[h]
		row = append(row, img.URL, img.Caption)
	}
	last := ""
	if r.LastUpdate != nil {
		last = r.LastUpdate.Format(time.RFC3339)
	}
	return append(row, last, scrapedAt.Format(time.RFC3339))
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intVal(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func floatVal(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
