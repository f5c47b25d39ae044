package live

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"snowscraper/etl"
	"snowscraper/keywords"
	"snowscraper/utils"
)

// Handler exposes the live pipelines and the batch job over HTTP.
type Handler struct {
	service *Service
	job     *etl.Job
	log     *utils.Logger
}

// NewHandler creates a Handler.
func NewHandler(service *Service, job *etl.Job, log *utils.Logger) *Handler {
	return &Handler{service: service, job: job, log: log}
}

// Register attaches all routes to the router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/resort/{lang}/{path:.+}", h.ResortHandler).Methods(http.MethodGet)
	r.HandleFunc("/xc/{lang}/{path:.+}", h.CrossCountryHandler).Methods(http.MethodGet)
	r.HandleFunc("/overview/{lang}/{country}", h.OverviewHandler).Methods(http.MethodGet)
	r.HandleFunc("/etl/run", h.ETLRunHandler).Methods(http.MethodPost)
	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
}

// ResortHandler serves one alpine resort's merged condition record.
func (h *Handler) ResortHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lang := vars["lang"]
	areaPath := "/" + vars["path"]

	if _, ok := keywords.SiteDomains[lang]; !ok {
		http.Error(w, "Invalid language code", http.StatusBadRequest)
		return
	}

	rec, err := h.service.ResortReport(r.Context(), lang, areaPath)
	if err != nil {
		h.log.Error("resort pipeline failed for %s: %v", areaPath, err)
		http.Error(w, "Error fetching resort data", http.StatusBadGateway)
		return
	}

	writeJSON(w, rec)
}

// CrossCountryHandler serves one cross-country network's merged record. The
// optional country query parameter selects the overview used for network
// totals.
func (h *Handler) CrossCountryHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lang := vars["lang"]
	areaPath := "/" + vars["path"]

	if _, ok := keywords.SiteDomains[lang]; !ok {
		http.Error(w, "Invalid language code", http.StatusBadRequest)
		return
	}

	country := r.URL.Query().Get("country")
	if country == "" {
		country = "Österreich"
	}

	rec, err := h.service.CrossCountryReport(r.Context(), lang, country, areaPath)
	if err != nil {
		h.log.Error("cross-country pipeline failed for %s: %v", areaPath, err)
		http.Error(w, "Error fetching trail report data", http.StatusBadGateway)
		return
	}

	writeJSON(w, rec)
}

// OverviewHandler serves a full country overview keyed by area path.
func (h *Handler) OverviewHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lang := vars["lang"]
	country := vars["country"]

	if _, ok := keywords.Countries[country]; !ok {
		http.Error(w, "Invalid country name", http.StatusBadRequest)
		return
	}

	rows, err := h.service.CountryOverview(r.Context(), lang, country)
	if err != nil {
		h.log.Error("overview pipeline failed for %s: %v", country, err)
		http.Error(w, "Error fetching overview data", http.StatusBadGateway)
		return
	}

	writeJSON(w, rows)
}

// ETLRunHandler triggers a full batch run.
func (h *Handler) ETLRunHandler(w http.ResponseWriter, r *http.Request) {
	if h.job == nil {
		http.Error(w, "ETL not configured", http.StatusServiceUnavailable)
		return
	}

	if err := h.job.Run(r.Context(), etl.Options{Force: true}); err != nil {
		h.log.Error("ETL run failed: %v", err)
		http.Error(w, "Error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// HealthHandler reports liveness.
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, v any) {
	jsonData, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		http.Error(w, "Error marshaling to JSON", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonData)
}
