// Package live serves single-resort condition reports over HTTP. Each
// request runs the full pipeline: detail page, auxiliary pages, merge.
package live

import (
	"context"
	"fmt"
	"strings"
	"time"

	"snowscraper/dateparse"
	"snowscraper/fetch"
	"snowscraper/forecast"
	"snowscraper/geo"
	"snowscraper/keywords"
	"snowscraper/overview"
	"snowscraper/record"
	"snowscraper/resortpage"
	"snowscraper/utils"
)

// Service runs the live scrape pipelines. Failures on auxiliary pages
// (region report, forecast pages, cross-country overview) degrade to a
// record with those fields absent; only the primary page fetch is fatal.
type Service struct {
	fetcher fetch.Fetcher
	log     *utils.Logger
	now     func() time.Time
}

// NewService creates a Service. now is injectable for tests; nil means
// wall-clock time in the resort timezone.
func NewService(fetcher fetch.Fetcher, log *utils.Logger, now func() time.Time) *Service {
	if now == nil {
		now = func() time.Time { return time.Now().In(dateparse.Location) }
	}
	return &Service{fetcher: fetcher, log: log, now: now}
}

// ResortReport runs the alpine pipeline for one resort: detail page, region
// snow report (new snow override), coordinates, forecast pages 0-5.
func (s *Service) ResortReport(ctx context.Context, lang, areaPath string) (record.Resort, error) {
	domain := keywords.Domain(lang)
	kw := keywords.For(lang)
	now := s.now()

	pageURL := domain + ensureSlashes(areaPath)
	html, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return record.Resort{}, fmt.Errorf("fetch resort page %s: %w", pageURL, err)
	}

	rec, err := resortpage.Parse(html, areaPath, kw, now)
	if err != nil {
		return record.Resort{}, fmt.Errorf("parse resort page %s: %w", pageURL, err)
	}

	s.applyRegionSnowReport(ctx, domain, areaPath, kw, now, &rec)
	s.applyCoordinates(ctx, pageURL, html, &rec)
	s.applyForecastImages(ctx, domain, &rec)

	return rec, nil
}

// applyRegionSnowReport overrides new_snow from the region overview, which
// is observed to be more reliable than the detail page value.
func (s *Service) applyRegionSnowReport(ctx context.Context, domain, areaPath string, kw keywords.Table, now time.Time, rec *record.Resort) {
	if rec.RegionPath == nil {
		return
	}
	region := strings.Trim(*rec.RegionPath, "/")
	if region == "" {
		return
	}

	reportURL := domain + "/" + region + "/schneewerte/"
	s.log.Debug("Fetching region snow report from: %s", reportURL)

	html, err := s.fetcher.Fetch(ctx, reportURL)
	if err != nil {
		s.log.Warn("Could not fetch region snow report: %v", err)
		return
	}

	rows, err := overview.Parse(html, kw, now)
	if err != nil {
		s.log.Warn("Could not parse region snow report: %v", err)
		return
	}

	needle := strings.Trim(areaPath, "/")
	for key, aux := range rows {
		if strings.Contains(key, needle) {
			rec.ApplyRegionSnow(aux)
			break
		}
	}
}

func (s *Service) applyCoordinates(ctx context.Context, pageURL, html string, rec *record.Resort) {
	lat, lon, ok := geo.ExtractCoordinates(pageURL, html)
	if !ok && strings.Contains(pageURL, "schneebericht") {
		baseURL := strings.Replace(pageURL, "schneebericht/", "", 1)
		if baseHTML, err := s.fetcher.Fetch(ctx, baseURL); err == nil {
			lat, lon, ok = geo.ExtractCoordinates(baseURL, baseHTML)
		}
	}
	if ok {
		rec.Lat = record.Float(lat)
		rec.Lon = record.Float(lon)
	}
}

func (s *Service) applyForecastImages(ctx context.Context, domain string, rec *record.Resort) {
	if rec.RegionPath == nil {
		s.log.Warn("Region path not found, cannot fetch forecast images.")
		return
	}
	region := strings.Trim(*rec.RegionPath, "/")
	if region == "" {
		return
	}

	for page := 0; page < 6; page++ {
		forecastURL := fmt.Sprintf("%s/%s/wetter/schneevorhersage/%d/", domain, region, page)
		s.log.Debug("Fetching forecast images from: %s", forecastURL)

		html, err := s.fetcher.Fetch(ctx, forecastURL)
		if err != nil {
			s.log.Warn("Could not fetch forecast page %d: %v", page, err)
			continue
		}

		imgs, err := forecast.Parse(html, page)
		if err != nil {
			s.log.Warn("Could not parse forecast page %d: %v", page, err)
			continue
		}

		if imgs.Daily != nil {
			rec.SetForecastDay(page, *imgs.Daily)
		}
		if imgs.Summary != nil {
			rec.SetSummaryImage(forecast.SummaryHours(page), *imgs.Summary)
		}
	}
}

// CrossCountryReport runs the cross-country pipeline for one trail network:
// detail trail report plus network totals from the country overview.
func (s *Service) CrossCountryReport(ctx context.Context, lang, country, areaPath string) (record.Resort, error) {
	domain := keywords.Domain(lang)
	kw := keywords.For(lang)
	now := s.now()

	path := ensureSlashes(areaPath)
	if !strings.HasSuffix(strings.TrimSuffix(path, "/"), "/loipen") {
		path = strings.TrimSuffix(path, "/") + "/loipen/"
	}
	pageURL := domain + path

	html, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return record.Resort{}, fmt.Errorf("fetch trail report %s: %w", pageURL, err)
	}

	rec, err := resortpage.ParseCrossCountry(html, kw, now)
	if err != nil {
		return record.Resort{}, fmt.Errorf("parse trail report %s: %w", pageURL, err)
	}

	// Network totals are often only present on the country overview.
	if countryPath, ok := keywords.CountriesCrossCountry[country]; ok {
		s.applyCrossCountryTotals(ctx, domain+countryPath, kw, areaPath, &rec)
	}

	rec.DeriveCrossCountryStatus()
	return rec, nil
}

func (s *Service) applyCrossCountryTotals(ctx context.Context, overviewURL string, kw keywords.Table, areaPath string, rec *record.Resort) {
	s.log.Debug("Fetching cross-country overview from: %s", overviewURL)

	html, err := s.fetcher.Fetch(ctx, overviewURL)
	if err != nil {
		s.log.Warn("Could not fetch cross-country overview page: %v", err)
		return
	}

	rows, err := overview.ParseCrossCountry(html)
	if err != nil {
		s.log.Warn("Could not parse cross-country overview: %v", err)
		return
	}

	name := ""
	if rec.ResortName != nil {
		name = *rec.ResortName
	}
	if aux, ok := record.FindMatch(rows, name, kw.TrailReport, areaPath); ok {
		if err := rec.Fill(aux); err != nil {
			s.log.Debug("Merging cross-country overview data failed: %v", err)
		}
	}
}

// CountryOverview fetches and parses one country's snow report listing.
func (s *Service) CountryOverview(ctx context.Context, lang, country string) (map[string]record.Resort, error) {
	path, ok := keywords.Countries[country]
	if !ok {
		return nil, fmt.Errorf("unknown country %q", country)
	}

	domain := keywords.Domain(lang)
	html, err := s.fetcher.Fetch(ctx, domain+path)
	if err != nil {
		return nil, fmt.Errorf("fetch overview %s: %w", domain+path, err)
	}

	return overview.Parse(html, keywords.For(lang), s.now())
}

func ensureSlashes(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}
