// Package etl implements the batch scrape job: country overviews, per-resort
// detail fan-out, CSV export and warehouse load.
package etl

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"snowscraper/config"
	"snowscraper/dateparse"
	"snowscraper/fetch"
	"snowscraper/geo"
	"snowscraper/keywords"
	"snowscraper/overview"
	"snowscraper/record"
	"snowscraper/resortpage"
	"snowscraper/storage"
	"snowscraper/utils"
)

// Entry is one resort's merged overview and detail data plus run metadata.
type Entry struct {
	Country   string
	ScrapedAt time.Time
	record.Resort
}

// Job runs the full scrape over all configured countries.
type Job struct {
	cfg     *config.Config
	fetcher fetch.Fetcher
	log     *utils.Logger
	pg      *storage.PostgresWriter
	retry   *utils.RetryConfig
}

// Options configures a single run.
type Options struct {
	// SmokeTest limits the run to a handful of resorts and verifies key
	// fields instead of producing output.
	SmokeTest bool
	// Force scrapes fresh even when today's CSV already exists.
	Force bool
}

// NewJob creates a Job. pg may be nil to skip the warehouse load.
func NewJob(cfg *config.Config, fetcher fetch.Fetcher, log *utils.Logger, pg *storage.PostgresWriter) *Job {
	attempts := cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}
	return &Job{
		cfg:     cfg,
		fetcher: fetcher,
		log:     log,
		pg:      pg,
		retry:   &utils.RetryConfig{MaxAttempts: attempts, BaseDelay: time.Second, Logger: log},
	}
}

// Run executes the ETL job.
func (j *Job) Run(ctx context.Context, opts Options) error {
	j.log.Info("Starting snow report ETL job")

	if opts.SmokeTest {
		return j.smokeTest(ctx)
	}

	csvPath := filepath.Join(j.cfg.CSVOutputDir, "snow_data.csv")
	if !opts.Force && freshToday(csvPath) {
		j.log.Info("Data for today already exists in %s, skipping scrape. Use force to overwrite.", csvPath)
		return nil
	}

	var allData []Entry
	countries := maps.Keys(keywords.Countries)
	slices.Sort(countries)
	for _, country := range countries {
		countryData := j.fetchCountryOverview(ctx, country, keywords.Countries[country], true, 0)
		allData = append(allData, countryData...)
		j.log.Info("Found %d areas for %s", len(countryData), country)
	}

	if len(allData) == 0 {
		return fmt.Errorf("etl: no data scraped")
	}

	dims, fcts := shapeWarehouseRows(allData)

	if err := j.writeCSVs(allData, dims, fcts); err != nil {
		return err
	}

	if j.pg != nil {
		if err := j.pg.LoadDim(dims); err != nil {
			return err
		}
		if err := j.pg.AppendMeasurements(fcts); err != nil {
			return err
		}
		j.log.Info("Refreshing shred score mart...")
		if err := j.pg.RefreshShredScore(); err != nil {
			// The mart is derived data; a failed refresh does not undo
			// the load.
			j.log.Error("Error refreshing shred score mart: %v", err)
		}
	} else {
		j.log.Info("No warehouse configured, skipping load.")
	}

	j.log.Info("ETL job finished")
	return nil
}

// fetchCountryOverview fetches one country's snow report listing and,
// optionally, every resort's detail page. A limit of 0 means no limit.
func (j *Job) fetchCountryOverview(ctx context.Context, countryName, path string, fetchDetails bool, limit int) []Entry {
	pageURL := joinURL(j.cfg.BaseURL, path)
	j.log.Info("Fetching data for %s from %s", countryName, pageURL)

	var html string
	err := j.retry.Do("fetch overview "+countryName, func() error {
		var ferr error
		html, ferr = j.fetcher.Fetch(ctx, pageURL)
		return ferr
	})
	if err != nil {
		j.log.Error("Error fetching data for %s: %v", countryName, err)
		return nil
	}

	kw := keywords.For(j.cfg.Language)
	now := time.Now().In(dateparse.Location)

	rows, err := overview.Parse(html, kw, now)
	if err != nil {
		j.log.Error("Error parsing data for %s: %v", countryName, err)
		return nil
	}

	areaPaths := maps.Keys(rows)
	slices.Sort(areaPaths)

	var entries []Entry
	for _, areaPath := range areaPaths {
		if limit > 0 && len(entries) >= limit {
			break
		}
		r := rows[areaPath]
		r.Country = record.Str(countryName)
		entries = append(entries, Entry{
			Country:   countryName,
			ScrapedAt: now,
			Resort:    r,
		})
	}

	if !fetchDetails {
		return entries
	}

	j.log.Info("Fetching details for %d resorts in %s...", len(entries), countryName)

	pool := utils.NewWorkerPool(j.cfg.MaxConcurrency, j.cfg.RateLimitMs)
	for i := range entries {
		entry := &entries[i]
		pool.Submit(func() {
			defer func() {
				// One bad resort page never aborts the run.
				if r := recover(); r != nil {
					j.log.Error("panic scraping %s: %v", entry.AreaPath, r)
				}
			}()

			detail, err := j.fetchResortDetail(ctx, entry.AreaPath, kw, now)
			if err != nil {
				j.log.Debug("Error fetching detail for %s: %v", entry.AreaPath, err)
				return
			}
			applyDetail(&entry.Resort, detail)
		})
	}
	pool.Wait()

	return entries
}

// fetchResortDetail fetches and parses one resort's snow report page,
// including coordinate extraction with a base-page fallback.
func (j *Job) fetchResortDetail(ctx context.Context, areaPath string, kw keywords.Table, now time.Time) (record.Resort, error) {
	path := areaPath
	if !strings.Contains(path, "schneebericht") {
		path = strings.TrimSuffix(path, "/") + "/schneebericht/"
	}
	pageURL := joinURL(j.cfg.BaseURL, path)

	html, err := j.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return record.Resort{}, err
	}

	data, err := resortpage.Parse(html, areaPath, kw, now)
	if err != nil {
		return record.Resort{}, err
	}

	lat, lon, ok := geo.ExtractCoordinates(pageURL, html)
	if !ok && strings.Contains(pageURL, "schneebericht") {
		baseURL := strings.Replace(pageURL, "schneebericht/", "", 1)
		j.log.Debug("Coords missing, trying base URL: %s", baseURL)
		if baseHTML, berr := j.fetcher.Fetch(ctx, baseURL); berr == nil {
			lat, lon, ok = geo.ExtractCoordinates(baseURL, baseHTML)
		}
	}
	if ok {
		data.Lat = record.Float(lat)
		data.Lon = record.Float(lon)
	}

	return data, nil
}

// applyDetail copies the detail page fields that are more complete than the
// overview listing onto the entry. Overview values win for everything else.
func applyDetail(entry *record.Resort, d record.Resort) {
	if d.AvalancheWarning != nil {
		entry.AvalancheWarning = d.AvalancheWarning
	}
	if d.SnowCondition != nil {
		entry.SnowCondition = d.SnowCondition
	}
	if d.LastSnowfall != nil {
		entry.LastSnowfall = d.LastSnowfall
	}
	if d.SlopesOpenKm != nil {
		entry.SlopesOpenKm = d.SlopesOpenKm
	}
	if d.SlopesTotalKm != nil {
		entry.SlopesTotalKm = d.SlopesTotalKm
	}
	if d.SlopesOpenCount != nil {
		entry.SlopesOpenCount = d.SlopesOpenCount
	}
	if d.SlopesTotalCount != nil {
		entry.SlopesTotalCount = d.SlopesTotalCount
	}
	if d.SlopeCondition != nil {
		entry.SlopeCondition = d.SlopeCondition
	}
	if d.LastUpdate != nil {
		entry.LastUpdate = d.LastUpdate
	}
	if d.ElevationValley != nil {
		entry.ElevationValley = d.ElevationValley
	}
	if d.ElevationMountain != nil {
		entry.ElevationMountain = d.ElevationMountain
	}
	if d.RegionPath != nil {
		entry.RegionPath = d.RegionPath
	}
	if d.Lat != nil {
		entry.Lat = d.Lat
	}
	if d.Lon != nil {
		entry.Lon = d.Lon
	}
	if d.ResortName != nil && entry.ResortName == nil {
		entry.ResortName = d.ResortName
	}
}

func (j *Job) smokeTest(ctx context.Context) error {
	j.log.Info("Running smoke test...")

	testData := j.fetchCountryOverview(ctx, "Österreich", keywords.Countries["Österreich"], true, 2)
	if len(testData) == 0 {
		return fmt.Errorf("smoke test failed: no data fetched")
	}
	j.log.Info("Smoke test fetched %d resorts", len(testData))

	sample := testData[0]
	var missing []string
	if sample.SlopesOpenKm == nil {
		missing = append(missing, "slopes_open_km")
	}
	if sample.SnowMountain == nil {
		missing = append(missing, "snow_mountain")
	}
	if sample.SnowCondition == nil {
		missing = append(missing, "snow_condition")
	}
	if sample.Lat == nil || sample.Lon == nil {
		missing = append(missing, "lat/lon")
	}
	if len(missing) > 0 {
		j.log.Warn("Smoke test sample missing fields: %s", strings.Join(missing, ", "))
	}
	if len(missing) >= 4 {
		return fmt.Errorf("smoke test failed: missing fields %s", strings.Join(missing, ", "))
	}

	j.log.Info("Smoke test passed")
	return nil
}

func (j *Job) writeCSVs(entries []Entry, dims []storage.DimResort, fcts []storage.Measurement) error {
	recordsPath := filepath.Join(j.cfg.CSVOutputDir, "snow_data.csv")
	w, err := storage.NewCSVWriter(recordsPath, append([]string{"country"}, record.Header()...))
	if err != nil {
		return err
	}
	for _, e := range entries {
		row := append([]string{e.Country}, e.Resort.Row(e.ScrapedAt)...)
		if werr := w.Write(row); werr != nil {
			_ = w.Close()
			return werr
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	j.log.Info("Successfully saved %d records to %s", len(entries), recordsPath)

	if err := writeDimCSV(filepath.Join(j.cfg.CSVOutputDir, "dim_resorts.csv"), dims); err != nil {
		return err
	}
	return writeFctCSV(filepath.Join(j.cfg.CSVOutputDir, "fct_snow_measurements.csv"), fcts)
}

func freshToday(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	y1, m1, d1 := info.ModTime().Date()
	y2, m2, d2 := time.Now().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func joinURL(base, path string) string {
	b, err := url.Parse(base)
	if err != nil {
		return base + path
	}
	ref, err := url.Parse(path)
	if err != nil {
		return base + path
	}
	return b.ResolveReference(ref).String()
}
