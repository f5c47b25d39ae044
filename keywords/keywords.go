// Package keywords holds the static per-language vocabulary used to locate
// fields in bergfex markup.
package keywords

// Table holds the label and token strings for one site language.
type Table struct {
	Lang string

	Mountain       string
	Valley         string
	SnowDepth      string
	SnowCondition  string
	LastSnowfall   string
	Avalanche      string
	Lifts          string
	Pistes         string
	SlopeCondition string
	Prices         string
	DayTicket      string

	TrailReport string
	Operation   string
	Classical   string
	Skating     string

	Today     string
	Yesterday string
	From      string // conjunction between open and total counts

	// LiftWords and SlopeWords classify status marker elements by their
	// title attribute when the labeled dt/dd pairing is missing.
	LiftWords  []string
	SlopeWords []string

	// Values maps localized content tokens back to their canonical form.
	Values map[string]string
}

// Tables maps language codes to their keyword tables. Languages without a
// table here fall back to the base "at" table at lookup time.
var Tables = map[string]Table{
	"at": {
		Lang:           "at",
		Mountain:       "Berg",
		Valley:         "Tal",
		SnowDepth:      "Schneehöhe",
		SnowCondition:  "Schneezustand",
		LastSnowfall:   "Letzter Schneefall",
		Avalanche:      "Lawinenwarnstufe",
		Lifts:          "Offene Lifte",
		Pistes:         "Offene Pisten",
		SlopeCondition: "Pistenzustand",
		Prices:         "Preise",
		DayTicket:      "Tageskarte",
		TrailReport:    "Loipenbericht",
		Operation:      "Betrieb",
		Classical:      "klassisch",
		Skating:        "Skating",
		Today:          "heute",
		Yesterday:      "gestern",
		From:           "von",
		LiftWords:      []string{"Lift", "Lifte"},
		SlopeWords:     []string{"Piste", "Pisten"},
		Values: map[string]string{
			"geöffnet":    "Open",
			"geschlossen": "Closed",
		},
	},
	"en": {
		Lang:           "en",
		Mountain:       "Mountain",
		Valley:         "Valley",
		SnowDepth:      "Snow depth",
		SnowCondition:  "Snow condition",
		LastSnowfall:   "Last snowfall",
		Avalanche:      "Avalanche",
		Lifts:          "Open lifts",
		Pistes:         "Open pistes",
		SlopeCondition: "Slope condition",
		Prices:         "Prices",
		DayTicket:      "Day ticket",
		TrailReport:    "Trail report",
		Operation:      "Operation",
		Classical:      "classic",
		Skating:        "skating",
		Today:          "today",
		Yesterday:      "yesterday",
		From:           "of",
		LiftWords:      []string{"Lift", "lifts"},
		SlopeWords:     []string{"Piste", "pistes", "slopes"},
		Values: map[string]string{
			"open":   "Open",
			"closed": "Closed",
		},
	},
	"fr": {
		Lang:           "fr",
		Mountain:       "Montagne",
		Valley:         "Vallée",
		SnowDepth:      "Hauteur de neige",
		SnowCondition:  "Conditions de neige",
		LastSnowfall:   "Dernière chute de neige",
		Avalanche:      "Risque d'avalanche",
		Lifts:          "Remontées ouvertes",
		Pistes:         "Pistes ouvertes",
		SlopeCondition: "Etat des pistes",
		Prices:         "Prix",
		DayTicket:      "Forfait journée",
		TrailReport:    "Bulletin des pistes",
		Operation:      "Exploitation",
		Classical:      "classique",
		Skating:        "skating",
		Today:          "aujourd'hui",
		Yesterday:      "hier",
		From:           "de",
		LiftWords:      []string{"Remontée", "remontées"},
		SlopeWords:     []string{"Piste", "pistes"},
		Values: map[string]string{
			"ouvert": "Open",
			"fermé":  "Closed",
		},
	},
	"it": {
		Lang:           "it",
		Mountain:       "Montagna",
		Valley:         "Valle",
		SnowDepth:      "Altezza neve",
		SnowCondition:  "Condizioni neve",
		LastSnowfall:   "Ultima nevicata",
		Avalanche:      "valanghe",
		Lifts:          "Impianti aperti",
		Pistes:         "Piste aperte",
		SlopeCondition: "Condizioni piste",
		Prices:         "Prezzi",
		DayTicket:      "Biglietto giornaliero",
		TrailReport:    "Bollettino piste",
		Operation:      "Esercizio",
		Classical:      "classico",
		Skating:        "skating",
		Today:          "oggi",
		Yesterday:      "ieri",
		From:           "di",
		LiftWords:      []string{"Impianti", "impianto"},
		SlopeWords:     []string{"Piste", "pista"},
		Values: map[string]string{
			"aperto": "Open",
			"chiuso": "Closed",
		},
	},
	"es": {
		Lang:           "es",
		Mountain:       "Montaña",
		Valley:         "Valle",
		SnowDepth:      "Altura de la nieve",
		SnowCondition:  "Estado de la nieve",
		LastSnowfall:   "Última nevada",
		Avalanche:      "aludes",
		Lifts:          "Remontes abiertos",
		Pistes:         "Pistas abiertas",
		SlopeCondition: "Estado de las pistas",
		Prices:         "Precios",
		DayTicket:      "Forfait de día",
		TrailReport:    "Informe de pistas",
		Operation:      "Explotación",
		Classical:      "clásico",
		Skating:        "skating",
		Today:          "hoy",
		Yesterday:      "ayer",
		From:           "de",
		LiftWords:      []string{"Remonte", "remontes"},
		SlopeWords:     []string{"Pista", "pistas"},
		Values: map[string]string{
			"abierto": "Open",
			"cerrado": "Closed",
		},
	},
	"nl": {
		Lang:           "nl",
		Mountain:       "Berg",
		Valley:         "Dal",
		SnowDepth:      "Sneeuwhoogte",
		SnowCondition:  "Sneeuwconditie",
		LastSnowfall:   "Laatste sneeuwval",
		Avalanche:      "Lawinegevaar",
		Lifts:          "Open liften",
		Pistes:         "Open pistes",
		SlopeCondition: "Pisteconditie",
		Prices:         "Prijzen",
		DayTicket:      "Dagkaart",
		TrailReport:    "Loipenbericht",
		Operation:      "Bedrijf",
		Classical:      "klassiek",
		Skating:        "skating",
		Today:          "vandaag",
		Yesterday:      "gisteren",
		From:           "van",
		LiftWords:      []string{"Lift", "liften"},
		SlopeWords:     []string{"Piste", "pistes"},
		Values: map[string]string{
			"open":     "Open",
			"gesloten": "Closed",
		},
	},
}

// For returns the keyword table for lang, falling back to the base German
// table when the language is unknown. Parsing never fails for lack of a
// translation; it degrades to matching base-language labels.
func For(lang string) Table {
	if t, ok := Tables[lang]; ok {
		return t
	}
	return Tables["at"]
}

// Translate maps a localized content token to its canonical representation,
// returning the token unchanged when no mapping exists.
func (t Table) Translate(token string) string {
	if v, ok := t.Values[token]; ok {
		return v
	}
	return token
}
