package etl

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"snowscraper/config"
	"snowscraper/fetch"
	"snowscraper/record"
	"snowscraper/utils"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		BaseURL:        "https://www.bergfex.at",
		Language:       "at",
		MaxConcurrency: 2,
		RateLimitMs:    0,
		MaxRetries:     1,
		CSVOutputDir:   t.TempDir(),
	}
}

func fixtureFetcher(pages map[string]string) fetch.Fetcher {
	return fetch.Func(func(_ context.Context, url string) (string, error) {
		if html, ok := pages[url]; ok {
			return html, nil
		}
		return "", fmt.Errorf("no fixture for %s", url)
	})
}

const countryOverviewHTML = `
<html><body>
<table class="snow">
  <tr><th>Skigebiet</th><th>Tal</th><th>Berg</th><th>Neuschnee</th><th>Lifte</th><th>Update</th></tr>
  <tr>
    <td><a href="/ischgl/schneebericht/">Ischgl</a></td>
    <td data-value="40">40 cm</td>
    <td data-value="90">90 cm</td>
    <td data-value="0">0 cm</td>
    <td>20/45</td>
    <td>Heute, 07:00</td>
  </tr>
  <tr>
    <td><a href="/soelden/schneebericht/">Sölden</a></td>
    <td data-value="30">30 cm</td>
    <td data-value="120">120 cm</td>
    <td data-value="12">12 cm</td>
    <td>12/31</td>
    <td>Heute, 08:00</td>
  </tr>
  <tr>
    <td><a href="/zillertal/schneebericht/">Zillertal</a></td>
    <td>25</td>
    <td>80</td>
    <td>5</td>
    <td>10/20</td>
    <td>Heute, 08:30</td>
  </tr>
</table>
</body></html>`

const resortDetailHTML = `
<html><body>
<ul aria-label="Breadcrumb">
  <li><a href="/">bergfex</a></li>
  <li><a href="/oesterreich/">Österreich</a></li>
  <li><a href="/tirol/">Tirol</a></li>
  <li><a href="/soelden/">Sölden</a></li>
</ul>
<h1 class="tw-text-4xl"><span>Skigebiet</span> <span>Sölden</span></h1>
<dl>
  <dt>Schneezustand</dt><dd>Pulver</dd>
  <dt>Offene Pisten</dt><dd class="big">10,8 km von 31,1 km</dd>
</dl>
<a href="https://maps.example.com/dir/?destination=46.894161%2C11.064692">Anfahrt</a>
</body></html>`

func TestFetchCountryOverviewWithDetails(t *testing.T) {
	pages := map[string]string{
		"https://www.bergfex.at/oesterreich/schneewerte/": countryOverviewHTML,
		"https://www.bergfex.at/ischgl/schneebericht/":    resortDetailHTML,
		"https://www.bergfex.at/soelden/schneebericht/":   resortDetailHTML,
		"https://www.bergfex.at/zillertal/schneebericht/": resortDetailHTML,
	}
	j := NewJob(testConfig(t), fixtureFetcher(pages), utils.NewLogger(), nil)

	entries := j.fetchCountryOverview(context.Background(), "Österreich", "/oesterreich/schneewerte/", true, 0)
	require.Len(t, entries, 3)

	for _, e := range entries {
		require.Equal(t, "Österreich", e.Country)
		require.Equal(t, "Österreich", *e.Resort.Country)
		// Detail page fields were merged in.
		require.Equal(t, "Pulver", *e.SnowCondition)
		require.Equal(t, 10.8, *e.SlopesOpenKm)
		require.Equal(t, "/tirol/", *e.RegionPath)
		require.Equal(t, 46.894161, *e.Lat)
	}

	// Entries are ordered by area path; overview values survive the merge.
	require.Equal(t, "/ischgl/schneebericht/", entries[0].AreaPath)
	require.Equal(t, "Ischgl", *entries[0].ResortName)
	require.Equal(t, "90", *entries[0].SnowMountain)
}

func TestFetchCountryOverviewLimit(t *testing.T) {
	pages := map[string]string{
		"https://www.bergfex.at/oesterreich/schneewerte/": countryOverviewHTML,
	}
	j := NewJob(testConfig(t), fixtureFetcher(pages), utils.NewLogger(), nil)

	entries := j.fetchCountryOverview(context.Background(), "Österreich", "/oesterreich/schneewerte/", false, 2)
	require.Len(t, entries, 2)
	require.Equal(t, "/ischgl/schneebericht/", entries[0].AreaPath)
	require.Equal(t, "/soelden/schneebericht/", entries[1].AreaPath)
}

func TestFetchCountryOverviewDetailFailureKeepsOverviewRow(t *testing.T) {
	pages := map[string]string{
		"https://www.bergfex.at/oesterreich/schneewerte/": countryOverviewHTML,
		"https://www.bergfex.at/soelden/schneebericht/":   resortDetailHTML,
	}
	j := NewJob(testConfig(t), fixtureFetcher(pages), utils.NewLogger(), nil)

	entries := j.fetchCountryOverview(context.Background(), "Österreich", "/oesterreich/schneewerte/", true, 0)
	require.Len(t, entries, 3)

	require.Nil(t, entries[0].SnowCondition)
	require.Equal(t, "90", *entries[0].SnowMountain)
	require.Equal(t, "Pulver", *entries[1].SnowCondition)
}

func TestWriteCSVs(t *testing.T) {
	cfg := testConfig(t)
	j := NewJob(cfg, fixtureFetcher(nil), utils.NewLogger(), nil)

	entries := []Entry{{
		Country:   "Österreich",
		ScrapedAt: time.Date(2025, time.November, 6, 6, 0, 0, 0, time.UTC),
		Resort: record.Resort{
			AreaPath:     "/soelden/schneebericht/",
			ResortName:   record.Str("Sölden"),
			SnowMountain: record.Str("120"),
		},
	}}
	dims, fcts := shapeWarehouseRows(entries)

	require.NoError(t, j.writeCSVs(entries, dims, fcts))

	for _, name := range []string{"snow_data.csv", "dim_resorts.csv", "fct_snow_measurements.csv"} {
		f, err := os.Open(filepath.Join(cfg.CSVOutputDir, name))
		require.NoError(t, err, name)
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, f.Close())
		require.NoError(t, err, name)
		require.Len(t, rows, 2, name)
		require.Len(t, rows[1], len(rows[0]), name)
	}
}

func TestFreshToday(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snow_data.csv")

	require.False(t, freshToday(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.True(t, freshToday(path))

	old := time.Now().AddDate(0, 0, -2)
	require.NoError(t, os.Chtimes(path, old, old))
	require.False(t, freshToday(path))
}
