package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractCoordinatesMapstate(t *testing.T) {
	url := "https://www.bergfex.at/obergurgl-hochgurgl/schneebericht/#?mapstate=46.894161,11.064692,13,o,430,46.894161,11.064692"

	lat, lon, ok := ExtractCoordinates(url, "")
	require.True(t, ok)
	require.Equal(t, 46.894161, lat)
	require.Equal(t, 11.064692, lon)
}

func TestExtractCoordinatesMapstateAlternate(t *testing.T) {
	url := "https://www.bergfex.at/sixt-fer-a-cheval/schneebericht/#?mapstate=46.043011,6.767044,13,o,430,46.043011,6.767044"

	lat, lon, ok := ExtractCoordinates(url, "")
	require.True(t, ok)
	require.Equal(t, 46.043011, lat)
	require.Equal(t, 6.767044, lon)
}

func TestExtractCoordinatesHTMLDestination(t *testing.T) {
	url := "https://www.bergfex.at/dummy/"
	html := `... <a href="https://maps.google.com/?destination=46.043011%2C6.767044">Route</a> ...`

	lat, lon, ok := ExtractCoordinates(url, html)
	require.True(t, ok)
	require.Equal(t, 46.043011, lat)
	require.Equal(t, 6.767044, lon)
}

func TestExtractCoordinatesHTMLDestinationComma(t *testing.T) {
	url := "https://www.bergfex.at/dummy/"
	html := `... destination=46.043011,6.767044 ...`

	lat, lon, ok := ExtractCoordinates(url, html)
	require.True(t, ok)
	require.Equal(t, 46.043011, lat)
	require.Equal(t, 6.767044, lon)
}

func TestExtractCoordinatesNone(t *testing.T) {
	url := "https://www.bergfex.at/dummy/schneebericht/"
	html := "<html><body>Just some text</body></html>"

	_, _, ok := ExtractCoordinates(url, html)
	require.False(t, ok)
}

func TestExtractCoordinatesURLBeatsHTML(t *testing.T) {
	url := "https://www.bergfex.at/x/#?mapstate=47.1,11.2,13"
	html := `destination=46.0,6.7`

	lat, lon, ok := ExtractCoordinates(url, html)
	require.True(t, ok)
	require.Equal(t, 47.1, lat)
	require.Equal(t, 11.2, lon)
}
