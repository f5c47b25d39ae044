package resortpage

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"snowscraper/keywords"
	"snowscraper/textutil"
)

// currencyRe matches an amount with its currency marker in either order
// ("€ 62,50", "62,50 €", "CHF 79").
var currencyRe = regexp.MustCompile(`(?:€|EUR|CHF)\s*\d+(?:[.,]\d{1,2})?|\d+(?:[.,]\d{1,2})?\s*(?:€|EUR|CHF)`)

// extractPrice tries two independent strategies in order: a structured prices
// block located via its heading, then a currency amount near a day-ticket
// label anywhere on the page. The first hit wins; no hit means no price.
func extractPrice(doc *goquery.Document, kw keywords.Table) string {
	if p := priceFromBlock(doc, kw.Prices); p != "" {
		return p
	}
	return priceNearLabel(doc, kw.DayTicket)
}

func priceFromBlock(doc *goquery.Document, heading string) string {
	var price string
	doc.Find("h2, h3, div.box-header").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !strings.Contains(h.Text(), heading) {
			return true
		}
		block := h.Parent()
		if m := currencyRe.FindString(block.Text()); m != "" {
			price = textutil.CleanText(m)
			return false
		}
		return true
	})
	return price
}

func priceNearLabel(doc *goquery.Document, label string) string {
	if label == "" {
		return ""
	}
	text := doc.Text()
	idx := strings.Index(text, label)
	if idx < 0 {
		return ""
	}
	// Scan a bounded window after the label so an unrelated amount further
	// down the page is not picked up.
	end := idx + len(label) + 120
	if end > len(text) {
		end = len(text)
	}
	return textutil.CleanText(currencyRe.FindString(text[idx:end]))
}
