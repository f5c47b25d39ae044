package keywords

// SiteDomains maps language codes to the bergfex domain serving that language.
var SiteDomains = map[string]string{
	"at": "https://www.bergfex.at",
	"en": "https://www.bergfex.com",
	"fr": "https://www.bergfex.fr",
	"it": "https://it.bergfex.com",
	"es": "https://www.bergfex.es",
	"nl": "https://nl.bergfex.com",
	"se": "https://se.bergfex.com",
	"no": "https://no.bergfex.com",
	"dk": "https://dk.bergfex.com",
	"fi": "https://fi.bergfex.com",
	"hu": "https://hu.bergfex.com",
	"cz": "https://www.bergfex.cz",
	"sk": "https://www.bergfex.sk",
	"pl": "https://www.bergfex.pl",
	"hr": "https://hr.bergfex.com",
	"si": "https://www.bergfex.si",
	"ru": "https://ru.bergfex.com",
	"ro": "https://ro.bergfex.com",
}

// Countries maps country display names to their alpine snow report paths.
var Countries = map[string]string{
	"Österreich":  "/oesterreich/schneewerte/",
	"Deutschland": "/deutschland/schneewerte/",
	"Schweiz":     "/schweiz/schneewerte/",
	"Italien":     "/italien/schneewerte/",
	"Frankreich":  "/frankreich/schneewerte/",
	"Slowenien":   "/slovenia/schneewerte/",
	"Tschechien":  "/czechia/schneewerte/",
	"Polen":       "/polska/schneewerte/",
	"Slowakei":    "/slovakia/schneewerte/",
}

// CountriesCrossCountry maps country display names to their cross-country
// trail report overview paths.
var CountriesCrossCountry = map[string]string{
	"Österreich":  "/oesterreich/loipen/",
	"Deutschland": "/deutschland/loipen/",
	"Schweiz":     "/schweiz/loipen/",
	"Italien":     "/italien/loipen/",
}

// Domain returns the site domain for lang, defaulting to the German site.
func Domain(lang string) string {
	if d, ok := SiteDomains[lang]; ok {
		return d
	}
	return SiteDomains["at"]
}
