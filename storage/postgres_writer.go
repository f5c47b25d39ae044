package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// PostgresWriter persists dimension and fact rows to the warehouse.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS dim_resorts (
			resort_id          VARCHAR(32) PRIMARY KEY,
			resort_name        TEXT,
			country            TEXT,
			region             TEXT,
			area_url           TEXT NOT NULL,
			elevation_valley   INTEGER,
			elevation_mountain INTEGER,
			lat                DOUBLE PRECISION,
			lon                DOUBLE PRECISION
		);

		CREATE TABLE IF NOT EXISTS fct_snow_measurements (
			measurement_id    TEXT PRIMARY KEY,
			resort_id         VARCHAR(32) NOT NULL,
			date              DATE        NOT NULL,
			timestamp         TIMESTAMPTZ,
			snow_valley       TEXT,
			snow_mountain     TEXT,
			new_snow          TEXT,
			lifts_open        INTEGER,
			lifts_total       INTEGER,
			slopes_open_km    NUMERIC(8,2),
			slopes_total_km   NUMERIC(8,2),
			status            TEXT,
			avalanche_warning TEXT,
			snow_condition    TEXT,
			slope_condition   TEXT,
			last_snowfall     TEXT,
			last_update       TIMESTAMPTZ
		);

		CREATE INDEX IF NOT EXISTS idx_fct_resort_date ON fct_snow_measurements(resort_id, date);
		CREATE INDEX IF NOT EXISTS idx_dim_country     ON dim_resorts(country);
	`)
	return err
}

// LoadDim truncate-loads the resort dimension table.
func (pw *PostgresWriter) LoadDim(resorts []DimResort) error {
	if len(resorts) == 0 {
		return nil
	}

	if _, err := pw.db.Exec("DELETE FROM dim_resorts"); err != nil {
		return fmt.Errorf("postgres: clear dim_resorts: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(resorts); i += batchSize {
		end := i + batchSize
		if end > len(resorts) {
			end = len(resorts)
		}
		if err := pw.insertDimBatch(resorts[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertDimBatch(batch []DimResort) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*9)

	for idx, r := range batch {
		base := idx * 9
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		valueArgs = append(valueArgs,
			r.ResortID, r.ResortName, r.Country, r.Region, r.AreaURL,
			r.ElevationValley, r.ElevationMountain, r.Lat, r.Lon)
	}

	query := fmt.Sprintf(`
		INSERT INTO dim_resorts (resort_id, resort_name, country, region, area_url, elevation_valley, elevation_mountain, lat, lon)
		VALUES %s
		ON CONFLICT (resort_id) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	if err != nil {
		return fmt.Errorf("postgres: insert dim batch: %w", err)
	}
	return nil
}

// AppendMeasurements appends fact rows; re-runs of the same day are no-ops
// per resort.
func (pw *PostgresWriter) AppendMeasurements(rows []Measurement) error {
	const batchSize = 50
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := pw.insertFctBatch(rows[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertFctBatch(batch []Measurement) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*17)

	for idx, m := range batch {
		base := idx * 17
		placeholders := make([]string, 17)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			m.MeasurementID, m.ResortID, m.Date, nullable(m.Timestamp),
			m.SnowValley, m.SnowMountain, m.NewSnow,
			m.LiftsOpen, m.LiftsTotal, m.SlopesOpenKm, m.SlopesTotalKm,
			nullable(m.Status), m.AvalancheWarning, m.SnowCondition,
			m.SlopeCondition, m.LastSnowfall, m.LastUpdate)
	}

	query := fmt.Sprintf(`
		INSERT INTO fct_snow_measurements (
			measurement_id, resort_id, date, timestamp,
			snow_valley, snow_mountain, new_snow,
			lifts_open, lifts_total, slopes_open_km, slopes_total_km,
			status, avalanche_warning, snow_condition,
			slope_condition, last_snowfall, last_update
		)
		VALUES %s
		ON CONFLICT (measurement_id) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	if err != nil {
		return fmt.Errorf("postgres: insert fct batch: %w", err)
	}
	return nil
}

// RefreshShredScore refreshes the shred score mart via its stored procedure.
func (pw *PostgresWriter) RefreshShredScore() error {
	_, err := pw.db.Exec("CALL sp_refresh_resort_shred_score_latest()")
	if err != nil {
		return fmt.Errorf("postgres: refresh shred score mart: %w", err)
	}
	return nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
