package record

import (
	"strings"

	"dario.cat/mergo"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Fill copies fields from aux into r without overwriting anything r already
// has. Detail-page data therefore wins over overview rows and other
// auxiliary sources.
func (r *Resort) Fill(aux Resort) error {
	return mergo.Merge(r, aux)
}

// ApplyRegionSnow takes the new-snow value from a region snow report row,
// overriding whatever the detail page reported. The region overview is the
// more reliable source for this one field.
func (r *Resort) ApplyRegionSnow(aux Resort) {
	if aux.NewSnow != nil {
		r.NewSnow = aux.NewSnow
	}
}

// CleanName strips a trailing report-type suffix word from a resort heading
// and keeps only the text before a "/" separator, so detail-page headings
// like "Loipenbericht Achensee / Maurach" can be compared against overview
// row names.
func CleanName(name, reportSuffix string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, reportSuffix, ""))
	if before, _, found := strings.Cut(name, "/"); found {
		name = before
	}
	return strings.TrimSpace(name)
}

// FindMatch locates the auxiliary record belonging to the resort identified
// by name and areaPath. Strategies, in order: cleaned-name substring
// containment against each record's name, then URL-path suffix/substring
// containment between areaPath and the record key. First match wins; ok is
// false when nothing matches.
func FindMatch(records map[string]Resort, name, reportSuffix, areaPath string) (Resort, bool) {
	keys := maps.Keys(records)
	slices.Sort(keys)

	if clean := CleanName(name, reportSuffix); clean != "" {
		for _, key := range keys {
			aux := records[key]
			if aux.ResortName != nil && strings.Contains(*aux.ResortName, clean) {
				return aux, true
			}
		}
	}

	ap := strings.Trim(areaPath, "/")
	if ap == "" {
		return Resort{}, false
	}
	for _, key := range keys {
		k := strings.Trim(key, "/")
		if k == "" {
			continue
		}
		if strings.HasSuffix(ap, k) || strings.Contains(ap, k) {
			return records[key], true
		}
	}
	return Resort{}, false
}
