package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"snowscraper/record"
	"snowscraper/utils"
)

func newTestRouter(pages map[string]string) *mux.Router {
	h := NewHandler(newTestService(pages), nil, utils.NewLogger())
	r := mux.NewRouter()
	h.Register(r)
	return r
}

func TestResortHandler(t *testing.T) {
	router := newTestRouter(map[string]string{
		"https://www.bergfex.at/soelden/schneebericht/": detailPageHTML,
	})

	req := httptest.NewRequest(http.MethodGet, "/resort/at/soelden/schneebericht/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var rec record.Resort
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	require.Equal(t, "Sölden", *rec.ResortName)
	require.Equal(t, record.StatusOpen, rec.Status)
}

func TestResortHandlerInvalidLanguage(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/resort/xx/soelden/schneebericht/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestResortHandlerUpstreamFailure(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/resort/at/soelden/schneebericht/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestCrossCountryHandlerDefaultCountry(t *testing.T) {
	router := newTestRouter(map[string]string{
		"https://www.bergfex.at/oesterreich/achensee/loipen/": xcDetailHTML,
		"https://www.bergfex.at/oesterreich/loipen/":          xcOverviewHTML,
	})

	req := httptest.NewRequest(http.MethodGet, "/xc/at/oesterreich/achensee/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var rec record.Resort
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	require.Equal(t, 14.7, *rec.ClassicalOpenKm)
	require.Equal(t, 30.0, *rec.ClassicalTotalKm)
}

func TestOverviewHandlerInvalidCountry(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/overview/at/Atlantis", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestETLRunHandlerNotConfigured(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/etl/run", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestHealthHandler(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
