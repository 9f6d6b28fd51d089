package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"netzero-nexus/internal/analysis"
	"netzero-nexus/internal/charts"
	"netzero-nexus/internal/dataset"
	"netzero-nexus/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	MaxPreviewRows = 1000
	ExportFileName = "filtered_initiatives.xlsx"
)

// Handler serves the dashboard over one Dataset loaded at startup.
// The Dataset is read-only, so requests need no locking.
type Handler struct {
	Dataset     *models.Dataset
	Options     models.FilterOptions
	PreviewRows int
	Logger      zerolog.Logger
}

func NewHandler(ds *models.Dataset, previewRows int, logger zerolog.Logger) *Handler {
	return &Handler{
		Dataset:     ds,
		Options:     dataset.Options(ds),
		PreviewRows: previewRows,
		Logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Dashboard)
	r.Get("/health", h.HealthCheck)

	r.Get("/api/status", h.GetStatus)
	r.Get("/api/options", h.GetOptions)
	r.Get("/api/render", h.Render)
	r.Post("/api/render", h.Render)
	r.Get("/api/preview", h.GetPreview)
	r.Get("/api/export.xlsx", h.Export)
}

// ============================================================================
// Health
// ============================================================================

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// ============================================================================
// Status
// ============================================================================

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	resp := models.StatusResponse{
		Loaded: h.Dataset != nil,
	}
	if h.Dataset != nil {
		resp.Source = h.Dataset.Source
		resp.Rows = h.Dataset.Len()
		resp.Columns = h.Dataset.Columns
		resp.Quality = h.Dataset.Quality
	}

	writeJSON(w, resp)
}

// GetOptions returns the sidebar widget domains
func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Options)
}

// ============================================================================
// Render
// ============================================================================

// Render runs one render pass. GET takes the filters from the query string,
// POST from a JSON FilterSpec body.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	spec, err := h.specFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, err := analysis.Render(h.Dataset, spec, h.PreviewRows)
	if err != nil {
		h.Logger.Error().Err(err).Msg("render failed")
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		return
	}

	writeJSON(w, out)
}

// Dashboard serves the HTML page. Every sidebar change resubmits the form,
// which recomputes the whole page.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	spec, err := ParseFilterSpec(r.URL.Query(), h.Options)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, err := analysis.Render(h.Dataset, spec, h.PreviewRows)
	if err != nil {
		h.Logger.Error().Err(err).Msg("render failed")
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = charts.RenderPage(w, charts.PageData{
		Options:     h.Options,
		Spec:        spec,
		Output:      out,
		Interactive: true,
	})
	if err != nil {
		h.Logger.Error().Err(err).Msg("page render failed")
	}
}

// ============================================================================
// Preview
// ============================================================================

func (h *Handler) GetPreview(w http.ResponseWriter, r *http.Request) {
	rows := getIntParam(r, "rows", h.PreviewRows)
	if rows < 0 || rows > MaxPreviewRows {
		http.Error(w, fmt.Sprintf("rows must be between 0 and %d", MaxPreviewRows), http.StatusBadRequest)
		return
	}

	spec, err := ParseFilterSpec(r.URL.Query(), h.Options)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view := analysis.Filter(h.Dataset, spec)
	writeJSON(w, analysis.Preview(view, rows))
}

// ============================================================================
// Export
// ============================================================================

// Export downloads the filtered view as a workbook.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	spec, err := ParseFilterSpec(r.URL.Query(), h.Options)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view := analysis.Filter(h.Dataset, spec)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFileName))
	if err := dataset.WriteXLSX(w, view.Records); err != nil {
		h.Logger.Error().Err(err).Int("rows", view.Len()).Msg("export failed")
	}
}

// ============================================================================
// Helpers
// ============================================================================

func (h *Handler) specFromRequest(r *http.Request) (models.FilterSpec, error) {
	if r.Method != http.MethodPost {
		return ParseFilterSpec(r.URL.Query(), h.Options)
	}

	spec := models.FilterSpec{CostMax: h.Options.CostMax}
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		return spec, fmt.Errorf("invalid JSON: %w", err)
	}
	return spec, nil
}

// ParseFilterSpec reads a FilterSpec from sidebar form values. Repeated keys
// carry the multiselect values; the cost bounds default to 0 and the dataset
// maximum.
func ParseFilterSpec(q url.Values, opts models.FilterOptions) (models.FilterSpec, error) {
	spec := models.FilterSpec{
		Locations:      q["location"],
		Scenarios:      q["scenario"],
		Initiatives:    q["initiative"],
		Alignments:     q["alignment"],
		Customizations: q["customization"],
		Sellable:       q["sellable"],
		CostMin:        0,
		CostMax:        opts.CostMax,
	}

	var err error
	if spec.CostMin, err = floatParam(q, "cost_min", spec.CostMin); err != nil {
		return spec, err
	}
	if spec.CostMax, err = floatParam(q, "cost_max", spec.CostMax); err != nil {
		return spec, err
	}
	return spec, nil
}

func floatParam(q url.Values, name string, defaultVal float64) (float64, error) {
	valStr := q.Get(name)
	if valStr == "" {
		return defaultVal, nil
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, valStr)
	}
	return val, nil
}

func getIntParam(r *http.Request, name string, defaultVal int) int {
	valStr := r.URL.Query().Get(name)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
