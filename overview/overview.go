// Package overview parses the multi-resort snow report listing pages.
package overview

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"snowscraper/dateparse"
	"snowscraper/keywords"
	"snowscraper/record"
	"snowscraper/textutil"
)

// tableSelector matches the listing table in both the old and the new page
// template.
const tableSelector = "table.snow, table.snow-report"

// Parse extracts one record per resort row from a country or region snow
// report page, keyed by the resort's URL path. A page without a recognizable
// listing table yields an empty map; malformed rows are skipped.
func Parse(html string, kw keywords.Table, now time.Time) (map[string]record.Resort, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	results := make(map[string]record.Resort)
	table := doc.Find(tableSelector).First()
	if table.Length() == 0 {
		return results, nil
	}

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if row.Find("th").Length() > 0 {
			return
		}
		cols := row.Find("td")
		if cols.Length() < 6 {
			return
		}

		// Some template variants insert a leading status column, so the
		// resort link is located by scanning rather than assumed at a fixed
		// index. The data columns follow the link cell.
		linkIdx := -1
		var areaPath, name string
		cols.EachWithBreak(func(i int, cell *goquery.Selection) bool {
			a := cell.Find("a").First()
			if href, ok := a.Attr("href"); ok && href != "" {
				linkIdx = i
				areaPath = href
				name = textutil.CleanText(a.Text())
				return false
			}
			return true
		})
		if linkIdx < 0 || cols.Length() < linkIdx+6 {
			return
		}

		var r record.Resort
		r.AreaPath = areaPath
		r.ResortName = record.Str(name)
		r.SnowValley = record.Str(cellValue(cols.Eq(linkIdx+1), "cm"))
		r.SnowMountain = record.Str(cellValue(cols.Eq(linkIdx+2), "cm"))
		r.NewSnow = record.Str(cellValue(cols.Eq(linkIdx+3), "cm"))

		liftsCell := cols.Eq(linkIdx + 4)
		parseLiftsCell(liftsCell, &r)

		updateCell := cols.Eq(linkIdx + 5)
		updateText, ok := updateCell.Attr("data-value")
		if !ok {
			updateText = textutil.CleanText(updateCell.Text())
		}
		if ts, ok := dateparse.Resolve(updateText, kw, now); ok {
			r.LastUpdate = &ts
		}

		results[areaPath] = r
	})

	return results, nil
}

// cellValue prefers the machine-readable data-value attribute over the
// rendered cell text.
func cellValue(cell *goquery.Selection, unit string) string {
	if v, ok := cell.Attr("data-value"); ok {
		return textutil.CleanMeasurement(v, unit)
	}
	return textutil.CleanMeasurement(textutil.CleanText(cell.Text()), unit)
}

// parseLiftsCell reads the status marker and the open/total lift counts from
// the combined lifts column.
func parseLiftsCell(cell *goquery.Selection, r *record.Resort) {
	marker := cell.Find("div.icon-status").First()
	if marker.Length() > 0 {
		switch {
		case marker.HasClass("icon-status1"):
			r.Status = record.StatusOpen
		case marker.HasClass("icon-status0"):
			r.Status = record.StatusClosed
		default:
			r.Status = record.StatusUnknown
		}
	}

	raw := textutil.CleanText(cell.Text())
	if strings.Contains(raw, "/") {
		r.LiftsOpenCount, r.LiftsTotalCount = textutil.ParseOpenTotal(raw, "/")
		return
	}
	if open, err := strconv.Atoi(raw); err == nil {
		r.LiftsOpenCount = record.Int(open)
	}
}
