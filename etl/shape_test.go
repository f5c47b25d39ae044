package etl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"snowscraper/record"
)

func TestResortIDStable(t *testing.T) {
	id := ResortID("/soelden/schneebericht/")
	require.Len(t, id, 32)
	require.Equal(t, id, ResortID("/soelden/schneebericht/"))
	require.NotEqual(t, id, ResortID("/ischgl/schneebericht/"))
}

func TestCleanRegion(t *testing.T) {
	require.Equal(t, "Tirol", cleanRegion("/tirol/arlberg/"))
	require.Equal(t, "Tirol", cleanRegion("/tirol/"))
	require.Equal(t, "Salzburg", cleanRegion("salzburg"))
	require.Equal(t, "", cleanRegion("/"))
	require.Equal(t, "", cleanRegion(""))
}

func TestShapeWarehouseRows(t *testing.T) {
	scrapedAt := time.Date(2025, time.November, 6, 6, 0, 0, 0, time.UTC)
	entries := []Entry{
		{
			Country:   "Österreich",
			ScrapedAt: scrapedAt,
			Resort: record.Resort{
				AreaPath:     "/soelden/schneebericht/",
				ResortName:   record.Str("Sölden"),
				RegionPath:   record.Str("/tirol/"),
				SnowMountain: record.Str("120"),
			},
		},
		{
			// Same resort scraped twice; only one dimension row survives.
			Country:   "Österreich",
			ScrapedAt: scrapedAt,
			Resort: record.Resort{
				AreaPath:   "/soelden/schneebericht/",
				ResortName: record.Str("Sölden"),
			},
		},
		{
			// No area path, no identity: dropped entirely.
			Country: "Österreich",
			Resort:  record.Resort{ResortName: record.Str("Namenlos")},
		},
	}

	dims, fcts := shapeWarehouseRows(entries)

	require.Len(t, dims, 1)
	require.Equal(t, ResortID("/soelden/schneebericht/"), dims[0].ResortID)
	require.Equal(t, "Sölden", *dims[0].ResortName)
	require.Equal(t, "Tirol", *dims[0].Region)

	require.Len(t, fcts, 2)
	require.Equal(t, dims[0].ResortID+"_2025-11-06", fcts[0].MeasurementID)
	require.Equal(t, "2025-11-06", fcts[0].Date)
	require.Equal(t, "120", *fcts[0].SnowMountain)
	require.Equal(t, fcts[0].MeasurementID, fcts[1].MeasurementID)
}

func TestApplyDetailPrecedence(t *testing.T) {
	entry := record.Resort{
		AreaPath:     "/soelden/schneebericht/",
		ResortName:   record.Str("Sölden"),
		SnowMountain: record.Str("120"),
		NewSnow:      record.Str("12"),
	}
	detail := record.Resort{
		ResortName:     record.Str("Sölden - Ötztal"),
		SnowMountain:   record.Str("999"),
		NewSnow:        record.Str("1"),
		SnowCondition:  record.Str("Pulver"),
		SlopesOpenKm:   record.Float(10.8),
		RegionPath:     record.Str("/tirol/"),
		Lat:            record.Float(46.9),
		Lon:            record.Float(11.0),
		SlopeCondition: record.Str("gut"),
	}

	applyDetail(&entry, detail)

	// Overview values win for the fields both sources report.
	require.Equal(t, "Sölden", *entry.ResortName)
	require.Equal(t, "120", *entry.SnowMountain)
	require.Equal(t, "12", *entry.NewSnow)

	// Detail-only fields are taken over.
	require.Equal(t, "Pulver", *entry.SnowCondition)
	require.Equal(t, 10.8, *entry.SlopesOpenKm)
	require.Equal(t, "/tirol/", *entry.RegionPath)
	require.Equal(t, 46.9, *entry.Lat)
	require.Equal(t, "gut", *entry.SlopeCondition)
}

func TestApplyDetailNameFallback(t *testing.T) {
	entry := record.Resort{AreaPath: "/x/"}
	applyDetail(&entry, record.Resort{ResortName: record.Str("Detailname")})
	require.Equal(t, "Detailname", *entry.ResortName)
}

func TestJoinURL(t *testing.T) {
	require.Equal(t, "https://www.bergfex.at/oesterreich/schneewerte/",
		joinURL("https://www.bergfex.at", "/oesterreich/schneewerte/"))
	require.Equal(t, "https://www.bergfex.at/soelden/",
		joinURL("https://www.bergfex.at/", "/soelden/"))
}
