// Package geo extracts resort coordinates from map links in URLs and HTML.
package geo

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var destinationRe = regexp.MustCompile(`destination=([0-9.\-]+)(?:%2C|,)([0-9.\-]+)`)

// ExtractCoordinates returns the latitude and longitude found in rawURL's
// mapstate fragment parameter, or failing that in a destination= map link
// anywhere in html. Both strategies are best-effort; ok is false when neither
// yields a parseable pair.
func ExtractCoordinates(rawURL, html string) (lat, lon float64, ok bool) {
	if lat, lon, ok = fromMapstate(rawURL); ok {
		return lat, lon, true
	}
	if html != "" {
		if lat, lon, ok = fromHTML(html); ok {
			return lat, lon, true
		}
	}
	return 0, 0, false
}

// fromMapstate reads the fragment parameter "mapstate", a comma-separated
// list whose first two fields are latitude and longitude. Both "#mapstate="
// and "#?mapstate=" forms occur in the wild.
func fromMapstate(rawURL string) (float64, float64, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0, 0, false
	}
	_, value, found := strings.Cut(parsed.Fragment, "mapstate=")
	if !found {
		return 0, 0, false
	}
	parts := strings.Split(value, ",")
	if len(parts) < 2 {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

func fromHTML(html string) (float64, float64, bool) {
	m := destinationRe.FindStringSubmatch(html)
	if m == nil {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
