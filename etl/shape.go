package etl

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
	"unicode"

	"snowscraper/storage"
	"snowscraper/utils"
)

// ResortID derives the stable dimension key for an area URL.
func ResortID(areaURL string) string {
	sum := md5.Sum([]byte(areaURL))
	return hex.EncodeToString(sum[:])
}

// cleanRegion reduces a region path like "/tirol/arlberg/" to "Tirol".
func cleanRegion(regionPath string) string {
	trimmed := strings.Trim(regionPath, "/")
	if trimmed == "" {
		return ""
	}
	first := strings.SplitN(trimmed, "/", 2)[0]
	runes := []rune(first)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// shapeWarehouseRows turns scraped entries into dimension and fact rows.
// Dimension rows are deduplicated on resort id; fact rows get one row per
// resort per scrape date.
func shapeWarehouseRows(entries []Entry) ([]storage.DimResort, []storage.Measurement) {
	var dims []storage.DimResort
	var fcts []storage.Measurement
	seen := utils.NewStringSet()

	for _, e := range entries {
		if e.AreaPath == "" {
			continue
		}
		resortID := ResortID(e.AreaPath)

		var region *string
		if e.RegionPath != nil {
			if cleaned := cleanRegion(*e.RegionPath); cleaned != "" {
				region = &cleaned
			}
		}

		if seen.Add(resortID) {
			dims = append(dims, storage.DimResort{
				ResortID:          resortID,
				ResortName:        e.ResortName,
				Country:           e.Resort.Country,
				Region:            region,
				AreaURL:           e.AreaPath,
				ElevationValley:   e.ElevationValley,
				ElevationMountain: e.ElevationMountain,
				Lat:               e.Lat,
				Lon:               e.Lon,
			})
		}

		dateStr := e.ScrapedAt.Format("2006-01-02")
		var lastUpdate *string
		if e.LastUpdate != nil {
			s := e.LastUpdate.Format(time.RFC3339)
			lastUpdate = &s
		}

		fcts = append(fcts, storage.Measurement{
			MeasurementID:    resortID + "_" + dateStr,
			ResortID:         resortID,
			Date:             dateStr,
			Timestamp:        e.ScrapedAt.Format(time.RFC3339),
			SnowValley:       e.SnowValley,
			SnowMountain:     e.SnowMountain,
			NewSnow:          e.NewSnow,
			LiftsOpen:        e.LiftsOpenCount,
			LiftsTotal:       e.LiftsTotalCount,
			SlopesOpenKm:     e.SlopesOpenKm,
			SlopesTotalKm:    e.SlopesTotalKm,
			Status:           string(e.Status),
			AvalancheWarning: e.AvalancheWarning,
			SnowCondition:    e.SnowCondition,
			SlopeCondition:   e.SlopeCondition,
			LastSnowfall:     e.LastSnowfall,
			LastUpdate:       lastUpdate,
		})
	}

	return dims, fcts
}

func writeDimCSV(path string, dims []storage.DimResort) error {
	w, err := storage.NewCSVWriter(path, []string{
		"resort_id", "resort_name", "country", "region", "area_url",
		"elevation_valley", "elevation_mountain", "lat", "lon",
	})
	if err != nil {
		return err
	}
	defer w.Close()

	for _, d := range dims {
		row := []string{
			d.ResortID,
			strDeref(d.ResortName),
			strDeref(d.Country),
			strDeref(d.Region),
			d.AreaURL,
			intDeref(d.ElevationValley),
			intDeref(d.ElevationMountain),
			floatDeref(d.Lat),
			floatDeref(d.Lon),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeFctCSV(path string, fcts []storage.Measurement) error {
	w, err := storage.NewCSVWriter(path, []string{
		"measurement_id", "resort_id", "date", "timestamp",
		"snow_valley", "snow_mountain", "new_snow",
		"lifts_open", "lifts_total", "slopes_open_km", "slopes_total_km",
		"status", "avalanche_warning", "snow_condition",
		"slope_condition", "last_snowfall", "last_update",
	})
	if err != nil {
		return err
	}
	defer w.Close()

	for _, m := range fcts {
		row := []string{
			m.MeasurementID,
			m.ResortID,
			m.Date,
			m.Timestamp,
			strDeref(m.SnowValley),
			strDeref(m.SnowMountain),
			strDeref(m.NewSnow),
			intDeref(m.LiftsOpen),
			intDeref(m.LiftsTotal),
			floatDeref(m.SlopesOpenKm),
			floatDeref(m.SlopesTotalKm),
			m.Status,
			strDeref(m.AvalancheWarning),
			strDeref(m.SnowCondition),
			strDeref(m.SlopeCondition),
			strDeref(m.LastSnowfall),
			strDeref(m.LastUpdate),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func strDeref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intDeref(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func floatDeref(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
