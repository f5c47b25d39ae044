package overview

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"snowscraper/record"
	"snowscraper/textutil"
)

// ParseCrossCountry extracts total trail lengths per resort from a
// cross-country region overview page, keyed by resort URL path. The detail
// pages frequently omit totals, so these rows are the only source for them.
func ParseCrossCountry(html string) (map[string]record.Resort, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	results := make(map[string]record.Resort)
	doc.Find("table.status-table tr").Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() < 3 {
			return
		}
		a := cols.Eq(0).Find("a").First()
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}

		var r record.Resort
		r.AreaPath = href
		r.ResortName = record.Str(textutil.CleanText(a.Text()))

		// Column layout: name, status, classical, skating. Cells render
		// either "open / total km" or a single bare "N km" total.
		r.ClassicalTotalKm = trailTotal(cols.Eq(2).Text())
		if cols.Length() > 3 {
			r.SkatingTotalKm = trailTotal(cols.Eq(3).Text())
		}

		results[href] = r
	})
	return results, nil
}

// trailTotal parses the total kilometers out of a trail length cell. In the
// "open / total" form the total is the right-hand side; a single bare value
// is itself the total.
func trailTotal(text string) *float64 {
	cleaned := textutil.CleanMeasurement(textutil.CleanText(text), "km")
	if cleaned == "" {
		return nil
	}
	if _, right, found := strings.Cut(cleaned, "/"); found {
		cleaned = strings.TrimSpace(right)
	}
	f, err := textutil.ParseLocalizedDecimal(cleaned)
	if err != nil {
		return nil
	}
	return record.Float(f)
}
