// Package resortpage parses single-resort report pages into condition
// records. The markup varies between template revisions and languages, so
// most fields are extracted through ordered fallback strategies; whatever
// cannot be located is simply left absent.
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

// Parse extracts an alpine resort record from a detail page. areaPath, when
// known, disambiguates the breadcrumb on resort sub-pages; it may be empty.
func Parse(html, areaPath string, kw keywords.Table, now time.Time) (record.Resort, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return record.Resort{}, err
	}

	var r record.Resort
	r.AreaPath = areaPath
	r.ResortName = record.Str(resortName(doc))
	r.RegionPath = record.Str(regionPath(doc, areaPath))

	parseSnowDepths(doc, kw, &r)

	if h2sub := doc.Find("div.h2-sub").First(); h2sub.Length() > 0 {
		if ts, ok := dateparse.Resolve(textutil.CleanText(h2sub.Text()), kw, now); ok {
			r.LastUpdate = &ts
		}
	}

	if v := labeledValue(doc, kw.SnowCondition); v != "" {
		r.SnowCondition = record.Str(kw.Translate(v))
	}
	if v := labeledValue(doc, kw.LastSnowfall); v != "" {
		r.LastSnowfall = record.Str(v)
	}
	if v := labeledValue(doc, kw.Avalanche); v != "" {
		// The value often carries the warning service's link text.
		v = textutil.CleanText(strings.ReplaceAll(v, "Lawinenwarndienst", ""))
		r.AvalancheWarning = record.Str(kw.Translate(v))
	}
	if v := labeledValue(doc, kw.SlopeCondition); v != "" {
		r.SlopeCondition = record.Str(kw.Translate(v))
	}

	parseLifts(doc, kw, &r)
	parseSlopes(doc, kw, &r)
	parseNewSnow(doc, &r)
	r.Price = record.Str(extractPrice(doc, kw))

	r.DeriveAlpineStatus()
	return r, nil
}

// resortName reads the page heading. The first span is a category label
// ("Skigebiet", "Langlaufen"); the second is the actual name.
func resortName(doc *goquery.Document) string {
	spans := doc.Find("h1.tw-text-4xl span")
	if spans.Length() > 1 {
		return textutil.CleanText(spans.Eq(1).Text())
	}
	return ""
}

// regionPath derives the top region segment from the breadcrumb navigation.
// The region is normally the second-to-last link, but on resort sub-pages the
// breadcrumb's last two entries are both the resort itself, in which case the
// link before that is taken instead.
func regionPath(doc *goquery.Document, areaPath string) string {
	links := doc.Find(`ul[aria-label="Breadcrumb"] a`)
	if links.Length() == 0 {
		links = doc.Find("div.breadcrumb-wrapper a")
	}
	if links.Length() < 3 {
		return ""
	}

	region := links.Eq(links.Length() - 2)
	if areaPath != "" {
		href := region.AttrOr("href", "")
		if href != "" && href != "/" && strings.Contains(areaPath, href) {
			if links.Length() < 4 {
				return ""
			}
			region = links.Eq(links.Length() - 3)
		}
	}

	href := region.AttrOr("href", "")
	if !strings.HasPrefix(href, "/") || href == "/" {
		return ""
	}
	parts := strings.Split(strings.Trim(href, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return ""
	}
	return "/" + parts[0] + "/"
}

// parseSnowDepths extracts elevation-qualified snow depths. Primary strategy:
// dt.big labels carrying the mountain/valley keyword with the elevation in a
// parenthesized suffix ("Berg (Piste, 3.250m)"). Fallbacks for pages without
// the split: a generic snow-depth label, then bare positional value blocks
// (first mountain, second valley).
func parseSnowDepths(doc *goquery.Document, kw keywords.Table, r *record.Resort) {
	doc.Find("dt.big").Each(func(_ int, dt *goquery.Selection) {
		label := textutil.CleanText(dt.Text())
		switch {
		case strings.Contains(label, kw.Mountain):
			if dd := dt.NextAllFiltered("dd.big").First(); dd.Length() > 0 {
				r.SnowMountain = record.Str(textutil.CleanMeasurement(dd.Text(), "cm"))
			}
			if elev, ok := parseElevation(label); ok {
				r.ElevationMountain = record.Int(elev)
			}
		case strings.Contains(label, kw.Valley):
			if dd := dt.NextAllFiltered("dd.big").First(); dd.Length() > 0 {
				r.SnowValley = record.Str(textutil.CleanMeasurement(dd.Text(), "cm"))
			}
			if elev, ok := parseElevation(label); ok {
				r.ElevationValley = record.Int(elev)
			}
		}
	})
	if r.SnowMountain != nil || r.SnowValley != nil {
		return
	}

	if v := labeledValue(doc, kw.SnowDepth); v != "" {
		r.SnowMountain = record.Str(textutil.CleanMeasurement(v, "cm"))
		return
	}

	// Last resort: unlabeled value blocks in document order.
	values := doc.Find("dd.big")
	if values.Length() >= 1 && values.Length() <= 2 {
		r.SnowMountain = record.Str(textutil.CleanMeasurement(values.Eq(0).Text(), "cm"))
		if values.Length() == 2 {
			r.SnowValley = record.Str(textutil.CleanMeasurement(values.Eq(1).Text(), "cm"))
		}
	}
}

// parseElevation pulls the station elevation out of a label suffix like
// "(Piste, 3.250m)". Thousands dots are stripped before parsing.
func parseElevation(label string) (int, bool) {
	open := strings.Index(label, "(")
	if open < 0 {
		return 0, false
	}
	rest := label[open+1:]
	end := strings.Index(rest, "m)")
	if end < 0 {
		return 0, false
	}
	inner := rest[:end]
	if i := strings.LastIndex(inner, ","); i >= 0 {
		inner = inner[i+1:]
	}
	inner = strings.ReplaceAll(strings.TrimSpace(inner), ".", "")
	n := 0
	for _, c := range inner {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if inner == "" {
		return 0, false
	}
	return n, true
}

// labeledValue finds a dt whose text contains label and returns the adjacent
// dd's text. Labels are matched by containment because dt elements often wrap
// the label in extra spans and whitespace.
func labeledValue(doc *goquery.Document, label string) string {
	var value string
	doc.Find("dt").EachWithBreak(func(_ int, dt *goquery.Selection) bool {
		if !strings.Contains(dt.Text(), label) {
			return true
		}
		if dd := dt.NextAllFiltered("dd").First(); dd.Length() > 0 {
			value = textutil.CleanText(dd.Text())
			return false
		}
		return true
	})
	return value
}

func parseLifts(doc *goquery.Document, kw keywords.Table, r *record.Resort) {
	if text := labeledValue(doc, kw.Lifts); text != "" {
		r.LiftsOpenCount, r.LiftsTotalCount = textutil.ParseOpenTotal(text, kw.From)
	}
	if r.LiftsOpenCount != nil || r.LiftsTotalCount != nil {
		return
	}
	// Some layouts have no labeled pairing at all and only render one status
	// marker per lift.
	if open, total, ok := countMarkers(doc, liftTitleWords); ok {
		r.LiftsOpenCount = record.Int(open)
		r.LiftsTotalCount = record.Int(total)
	}
}

func parseSlopes(doc *goquery.Document, kw keywords.Table, r *record.Resort) {
	doc.Find("dt").EachWithBreak(func(_ int, dt *goquery.Selection) bool {
		if !strings.Contains(dt.Text(), kw.Pistes) {
			return true
		}
		ddKm := dt.NextAllFiltered("dd.big").First()
		if ddKm.Length() == 0 {
			return false
		}
		kmText := textutil.CleanText(ddKm.Text())
		if strings.Contains(kmText, kw.From) {
			r.SlopesOpenKm, r.SlopesTotalKm = textutil.ParseOpenTotalKm(kmText, kw.From)
		}
		if ddCount := ddKm.NextAllFiltered("dd.big").First(); ddCount.Length() > 0 {
			countText := textutil.CleanText(ddCount.Text())
			if strings.Contains(countText, kw.From) {
				r.SlopesOpenCount, r.SlopesTotalCount = textutil.ParseOpenTotal(countText, kw.From)
			}
		}
		return false
	})

	if r.SlopesOpenCount == nil && r.SlopesTotalCount == nil {
		if open, total, ok := countMarkers(doc, slopeTitleWords); ok {
			r.SlopesOpenCount = record.Int(open)
			r.SlopesTotalCount = record.Int(total)
		}
	}
}

// parseNewSnow reads the dedicated new-snow heading block. The value here is
// known to be less reliable than the region overview's; callers override it
// when a region snow report is available.
func parseNewSnow(doc *goquery.Document, r *record.Resort) {
	span := doc.Find("div.heading-ne div.h1 span").First()
	if span.Length() > 0 {
		r.NewSnow = record.Str(textutil.CleanMeasurement(span.Text(), "cm"))
	}
}
