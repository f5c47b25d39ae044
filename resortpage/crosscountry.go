package resortpage

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"snowscraper/dateparse"
	"snowscraper/keywords"
	"snowscraper/record"
	"snowscraper/textutil"
)

// ParseCrossCountry extracts a trail-network record from a cross-country
// detail page. Two layouts occur: report-info boxes with labeled values, and
// the dt/dd trail report list. Both may appear on the same page; the dt/dd
// list wins for fields present in both.
func ParseCrossCountry(html string, kw keywords.Table, now time.Time) (record.Resort, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return record.Resort{}, err
	}

	var r record.Resort
	// Cross-country headings keep the category prefix as part of the name.
	if h1 := doc.Find("h1.tw-text-4xl").First(); h1.Length() > 0 {
		r.ResortName = record.Str(textutil.CleanText(h1.Text()))
	}
	r.RegionPath = record.Str(regionPath(doc, ""))

	parseReportBoxes(doc, kw, &r)
	parseTrailList(doc, kw, now, &r)

	r.DeriveCrossCountryStatus()
	return r, nil
}

// parseReportBoxes reads the report-info value boxes found on the newer
// template ("58,5 km" next to a "Klassisch" label).
func parseReportBoxes(doc *goquery.Document, kw keywords.Table, r *record.Resort) {
	doc.Find("div.report-info").Each(func(_ int, box *goquery.Selection) {
		label := strings.ToLower(textutil.CleanText(box.Find("div.report-label").Text()))
		value := textutil.CleanMeasurement(box.Find("div.report-value").Text(), "km")
		km, err := textutil.ParseLocalizedDecimal(value)
		if err != nil {
			return
		}
		switch {
		case strings.Contains(label, strings.ToLower(kw.Classical)):
			r.ClassicalOpenKm = record.Float(km)
		case strings.Contains(label, strings.ToLower(kw.Skating)):
			r.SkatingOpenKm = record.Float(km)
		}
	})
}

// parseTrailList reads the dt/dd trail report list of the older template:
// report date, operation status, and per-discipline open kilometers with a
// free-text condition in trailing spans.
func parseTrailList(doc *goquery.Document, kw keywords.Table, now time.Time, r *record.Resort) {
	doc.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		label := strings.ToLower(textutil.CleanText(dt.Text()))
		dd := dt.NextAllFiltered("dd").First()
		if dd.Length() == 0 {
			return
		}
		switch {
		case strings.Contains(label, strings.ToLower(kw.TrailReport)):
			if ts, ok := dateparse.Resolve(textutil.CleanText(dd.Text()), kw, now); ok {
				r.LastUpdate = &ts
			}
		case strings.Contains(label, strings.ToLower(kw.Operation)):
			r.OperationStatus = record.Str(kw.Translate(textutil.CleanText(dd.Text())))
		case strings.Contains(label, strings.ToLower(kw.Classical)):
			km, cond := trailValue(dd)
			if km != nil {
				r.ClassicalOpenKm = km
			}
			if cond != "" {
				r.ClassicalCondition = record.Str(cond)
			}
		case strings.Contains(label, strings.ToLower(kw.Skating)):
			km, cond := trailValue(dd)
			if km != nil {
				r.SkatingOpenKm = km
			}
			if cond != "" {
				r.SkatingCondition = record.Str(cond)
			}
		}
	})
}

// trailValue splits a trail dd into its leading kilometer figure and the
// condition text carried in nested spans ("58,5 km <span>gespurt</span>
// <span>(sehr gut)</span>").
func trailValue(dd *goquery.Selection) (*float64, string) {
	var conditions []string
	dd.Find("span").Each(func(_ int, s *goquery.Selection) {
		if t := textutil.CleanText(s.Text()); t != "" {
			conditions = append(conditions, t)
		}
	})

	bare := dd.Clone()
	bare.Find("span").Remove()
	value := textutil.CleanMeasurement(bare.Text(), "km")

	var km *float64
	if f, err := textutil.ParseLocalizedDecimal(value); err == nil {
		km = record.Float(f)
	}
	return km, strings.Join(conditions, " ")
}
