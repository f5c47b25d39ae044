// Package storage persists scraped records to CSV files and the Postgres
// warehouse.
package storage

// DimResort is one row of the resort dimension table. Rows are keyed by the
// md5 of the resort's area URL and truncate-loaded on every run.
type DimResort struct {
	ResortID          string
	ResortName        *string
	Country           *string
	Region            *string
	AreaURL           string
	ElevationValley   *int
	ElevationMountain *int
	Lat               *float64
	Lon               *float64
}

// Measurement is one row of the snow measurement fact table, appended per
// resort per day.
type Measurement struct {
	MeasurementID    string
	ResortID         string
	Date             string
	Timestamp        string
	SnowValley       *string
	SnowMountain     *string
	NewSnow          *string
	LiftsOpen        *int
	LiftsTotal       *int
	SlopesOpenKm     *float64
	SlopesTotalKm    *float64
	Status           string
	AvalancheWarning *string
	SnowCondition    *string
	SlopeCondition   *string
	LastSnowfall     *string
	LastUpdate       *string
}
