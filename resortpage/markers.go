package resortpage

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"snowscraper/keywords"
)

// liftTitleWords and slopeTitleWords classify status marker elements by their
// title attribute. The words are aggregated over every language table because
// a page's marker titles do not always match the requested language.
var (
	liftTitleWords  = collectMarkerWords(func(t keywords.Table) []string { return t.LiftWords })
	slopeTitleWords = collectMarkerWords(func(t keywords.Table) []string { return t.SlopeWords })
)

func collectMarkerWords(pick func(keywords.Table) []string) []string {
	seen := make(map[string]bool)
	var words []string
	for _, t := range keywords.Tables {
		for _, w := range pick(t) {
			lw := strings.ToLower(w)
			if !seen[lw] {
				seen[lw] = true
				words = append(words, lw)
			}
		}
	}
	return words
}

// countMarkers tallies status marker elements whose title matches one of the
// given words: every matching marker counts toward the total, markers carrying
// the open modifier class count as open. ok is false when no marker matched,
// so callers never fabricate a 0/0 pair from an absent section.
func countMarkers(doc *goquery.Document, words []string) (open, total int, ok bool) {
	doc.Find("div.icon-status[title]").Each(func(_ int, marker *goquery.Selection) {
		title := strings.ToLower(marker.AttrOr("title", ""))
		matched := false
		for _, w := range words {
			if strings.Contains(title, w) {
				matched = true
				break
			}
		}
		if !matched {
			return
		}
		total++
		if marker.HasClass("icon-status1") {
			open++
		}
	})
	return open, total, total > 0
}
