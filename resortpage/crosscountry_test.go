package resortpage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"snowscraper/dateparse"
	"snowscraper/keywords"
	"snowscraper/record"
)

const xcReportBoxHTML = `
<html><body>
<h1 class="tw-text-4xl"><span>Loipenbericht</span> <span>Achensee</span></h1>
<div class="report-info">
  <div class="report-label">Klassisch</div>
  <div class="report-value">58,5 km</div>
</div>
<div class="report-info">
  <div class="report-label">Skating</div>
  <div class="report-value">82,5 km</div>
</div>
</body></html>`

func TestParseCrossCountryReportBoxes(t *testing.T) {
	r, err := ParseCrossCountry(xcReportBoxHTML, keywords.For("at"), testNow)
	require.NoError(t, err)

	require.Equal(t, "Loipenbericht Achensee", *r.ResortName)
	require.Equal(t, 58.5, *r.ClassicalOpenKm)
	require.Equal(t, 82.5, *r.SkatingOpenKm)
	require.Equal(t, record.StatusOpen, r.Status)
}

const xcTrailListHTML = `
<html><body>
<h1 class="tw-text-4xl"><span>Loipenbericht</span> <span>Bayrischzell</span></h1>
<dl>
  <dt>Loipenbericht</dt><dd>Heute, 07:30</dd>
  <dt>Betrieb</dt><dd>täglich</dd>
  <dt>Loipen klassisch</dt><dd>14,7 km <span>gespurt</span> <span>(sehr gut)</span></dd>
  <dt>Loipen Skating</dt><dd>14,7 km <span>gespurt</span></dd>
</dl>
</body></html>`

func TestParseCrossCountryTrailList(t *testing.T) {
	r, err := ParseCrossCountry(xcTrailListHTML, keywords.For("at"), testNow)
	require.NoError(t, err)

	require.Equal(t, "täglich", *r.OperationStatus)
	require.Equal(t, 14.7, *r.ClassicalOpenKm)
	require.Equal(t, "gespurt (sehr gut)", *r.ClassicalCondition)
	require.Equal(t, 14.7, *r.SkatingOpenKm)
	require.Equal(t, "gespurt", *r.SkatingCondition)
	require.Equal(t, record.StatusOpen, r.Status)

	want := time.Date(2025, time.November, 6, 7, 30, 0, 0, dateparse.Location)
	require.NotNil(t, r.LastUpdate)
	require.True(t, want.Equal(*r.LastUpdate))
}

func TestParseCrossCountryClosed(t *testing.T) {
	html := `
<html><body>
<h1 class="tw-text-4xl"><span>Loipenbericht</span> <span>Leutasch</span></h1>
<dl>
  <dt>Loipen klassisch</dt><dd>0 km</dd>
</dl>
</body></html>`

	r, err := ParseCrossCountry(html, keywords.For("at"), testNow)
	require.NoError(t, err)

	require.Equal(t, 0.0, *r.ClassicalOpenKm)
	require.Equal(t, record.StatusClosed, r.Status)
}
