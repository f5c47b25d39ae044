// Package dateparse resolves the relative and absolute date strings bergfex
// renders ("Heute, 11:14", "Fr, 28.11., 09:33") into absolute timestamps.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"snowscraper/keywords"
)

// Location is the publisher's local timezone. All resolved timestamps are
// anchored here regardless of the caller's locale.
var Location = mustLoadVienna()

func mustLoadVienna() *time.Location {
	loc, err := time.LoadLocation("Europe/Vienna")
	if err != nil {
		return time.FixedZone("CET", 3600)
	}
	return loc
}

var (
	timeRe = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	dateRe = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(?:\s*(\d{4})|\s*(\d{2}))?(?:,|\.)?\s*(\d{1,2}):(\d{2})`)
)

// Resolve converts a date string into an absolute timestamp, using now as the
// anchor for relative keywords and year inference. The second return value is
// false when no supported pattern matches or the date fails to construct.
//
// now must be supplied by the caller; Resolve never reads the ambient clock.
func Resolve(text string, kw keywords.Table, now time.Time) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	lower := strings.ToLower(text)
	now = now.In(Location)

	if strings.Contains(lower, strings.ToLower(kw.Today)) {
		return atTimeOfDay(text, now)
	}
	if strings.Contains(lower, strings.ToLower(kw.Yesterday)) {
		return atTimeOfDay(text, now.AddDate(0, 0, -1))
	}

	m := dateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	yearStr := m[3]
	if yearStr == "" {
		yearStr = m[4]
	}
	hour, _ := strconv.Atoi(m[5])
	minute, _ := strconv.Atoi(m[6])

	year := now.Year()
	explicitYear := yearStr != ""
	if explicitYear {
		year, _ = strconv.Atoi(yearStr)
		if len(yearStr) == 2 {
			year += 2000
		}
	}

	result, ok := construct(year, month, day, hour, minute)
	if !ok {
		return time.Time{}, false
	}
	// An inferred year can land the date deep in the future around the season
	// boundary (a December date parsed in January); roll back one year then.
	if !explicitYear && result.After(now.AddDate(0, 0, 180)) {
		result, ok = construct(year-1, month, day, hour, minute)
		if !ok {
			return time.Time{}, false
		}
	}
	return result, true
}

func atTimeOfDay(text string, day time.Time) (time.Time, bool) {
	m := timeRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, Location), true
}

// construct builds a timestamp and rejects dates that do not exist (day 32,
// month 13): time.Date normalizes those instead of failing, so the result is
// compared against the inputs.
func construct(year, month, day, hour, minute int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, Location)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
