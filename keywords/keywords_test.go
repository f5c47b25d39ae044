package keywords

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForFallsBackToBaseTable(t *testing.T) {
	base := For("at")
	require.Equal(t, "at", base.Lang)

	unknown := For("xx")
	require.Equal(t, "at", unknown.Lang)
	require.Equal(t, base.Mountain, unknown.Mountain)
}

func TestTablesCarryRequiredKeywords(t *testing.T) {
	for lang, tbl := range Tables {
		require.NotEmpty(t, tbl.Mountain, lang)
		require.NotEmpty(t, tbl.Valley, lang)
		require.NotEmpty(t, tbl.From, lang)
		require.NotEmpty(t, tbl.Today, lang)
		require.NotEmpty(t, tbl.Yesterday, lang)
		require.NotEmpty(t, tbl.Classical, lang)
		require.NotEmpty(t, tbl.Skating, lang)
	}
}

func TestTranslate(t *testing.T) {
	kw := For("at")
	require.Equal(t, "Open", kw.Translate("geöffnet"))
	// Unmapped tokens pass through unchanged.
	require.Equal(t, "Pulver", kw.Translate("Pulver"))
}

func TestDomain(t *testing.T) {
	require.Equal(t, "https://www.bergfex.at", Domain("at"))
	require.Equal(t, "https://www.bergfex.fr", Domain("fr"))
	// Unknown languages fall back to the German site.
	require.Equal(t, "https://www.bergfex.at", Domain("xx"))
}
