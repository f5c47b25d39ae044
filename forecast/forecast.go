// Package forecast parses the paginated snow forecast image pages.
package forecast

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"snowscraper/record"
)

// Images holds the image references found on one forecast page. The first
// image on any page is the 24h daily forecast; pages past the first also
// carry a cumulative summary image covering (page+1)*24 hours.
type Images struct {
	Daily   *record.Image
	Summary *record.Image
}

// SummaryHours returns the horizon in hours covered by the summary image of
// the given page number.
func SummaryHours(page int) int {
	return (page + 1) * 24
}

// Parse extracts the daily and, where present, the summary forecast image
// from a forecast page. A missing data-caption attribute yields an empty
// caption, not an error.
func Parse(html string, page int) (Images, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Images{}, err
	}

	imgs := doc.Find(".snowforecast-img")

	var out Images
	out.Daily = anchorImage(imgs.First())
	if page > 0 && imgs.Length() > 1 {
		out.Summary = anchorImage(imgs.Last())
	}
	return out, nil
}

func anchorImage(node *goquery.Selection) *record.Image {
	a := node.Find("a").First()
	href, ok := a.Attr("href")
	if !ok || href == "" {
		return nil
	}
	caption, _ := a.Attr("data-caption")
	return &record.Image{URL: href, Caption: caption}
}
