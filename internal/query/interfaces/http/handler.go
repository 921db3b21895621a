package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"energy-dashboard/internal/audit"
	"energy-dashboard/internal/auth"
	datasetapp "energy-dashboard/internal/dataset/application"
	"energy-dashboard/internal/observability/metrics"
	query "energy-dashboard/internal/query/domain"
	"energy-dashboard/internal/query/interfaces"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// Evaluator computes the five views for a selection.
type Evaluator interface {
	Evaluate(sel query.Selection) query.FiveViews
}

// DatasetReporter exposes load diagnostics of the in-memory dataset.
type DatasetReporter interface {
	Reports() []datasetapp.LoadReport
	PerStateCount() int
	NationalCount() int
	ConsumptionCount() int
	GenerationYears() []int
}

// Handler serves the dashboard query endpoints.
type Handler struct {
	engine      Evaluator
	reporter    DatasetReporter
	auditLogger audit.Logger
	logger      *log.Logger
}

// NewHandler constructs a Handler. reporter may be nil, which disables the report endpoint.
func NewHandler(engine Evaluator, reporter DatasetReporter, auditLogger audit.Logger, logger *log.Logger) (*Handler, error) {
	if engine == nil {
		return nil, errors.New("query handler: nil engine")
	}
	return &Handler{engine: engine, reporter: reporter, auditLogger: auditLogger, logger: logger}, nil
}

type reportResponse struct {
	Reports         []datasetapp.LoadReport `json:"reports"`
	PerStateRecords int                     `json:"per_state_records"`
	NationalRecords int                     `json:"national_records"`
	ConsumptionRows int                     `json:"consumption_records"`
	GenerationYears []int                   `json:"generation_years"`
}

// ServeHTTP routes /api/v1 query requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch {
	case r.URL.Path == "/api/v1/views":
		h.handleViews(w, r)
	case r.URL.Path == "/api/v1/options":
		writeJSON(w, query.Catalog())
	case r.URL.Path == "/api/v1/dataset/report":
		h.handleReport(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/v1/exports/"):
		h.handleExport(w, r, strings.TrimPrefix(r.URL.Path, "/api/v1/exports/"))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleViews(w http.ResponseWriter, r *http.Request) {
	sel, err := selectionFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	start := time.Now()
	views := h.engine.Evaluate(sel)
	metrics.ObserveQuery(views.IsEmpty(), time.Since(start))
	writeJSON(w, views)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	if h.reporter == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, reportResponse{
		Reports:         h.reporter.Reports(),
		PerStateRecords: h.reporter.PerStateCount(),
		NationalRecords: h.reporter.NationalCount(),
		ConsumptionRows: h.reporter.ConsumptionCount(),
		GenerationYears: h.reporter.GenerationYears(),
	})
	h.logAudit(r, "dataset.report.read", "dataset", nil)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request, name string) {
	var (
		format      string
		contentType string
		build       func(query.FiveViews) ([]byte, error)
	)
	switch name {
	case "views.xlsx":
		format, contentType, build = "xlsx", contentTypeXLSX, interfaces.BuildViewsXLSX
	case "views.pdf":
		format, contentType, build = "pdf", contentTypePDF, interfaces.BuildViewsPDF
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}

	sel, err := selectionFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	start := time.Now()
	data, err := build(h.engine.Evaluate(sel))
	if err != nil {
		metrics.ObserveExport(format, metrics.ResultError, time.Since(start))
		if h.logger != nil {
			h.logger.Printf("export %s: %v", format, err)
		}
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	metrics.ObserveExport(format, metrics.ResultSuccess, time.Since(start))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	_, _ = w.Write(data)
	h.logAudit(r, "views.export", name, map[string]any{
		"format":        format,
		"year":          sel.Year,
		"energy_source": sel.EnergySource,
		"producer_type": sel.ProducerType,
		"bytes":         len(data),
	})
}

func (h *Handler) logAudit(r *http.Request, action, resource string, meta map[string]any) {
	if h.auditLogger == nil {
		return
	}
	var payload json.RawMessage
	if meta != nil {
		payload, _ = json.Marshal(meta)
	}
	err := h.auditLogger.Log(r.Context(), audit.Entry{
		Actor:     auth.SubjectFromContext(r.Context()),
		Role:      string(auth.RoleFromContext(r.Context())),
		Action:    action,
		Resource:  resource,
		Metadata:  payload,
		IP:        audit.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil && h.logger != nil {
		h.logger.Printf("audit %s: %v", action, err)
	}
}

func selectionFromQuery(r *http.Request) (query.Selection, error) {
	values := r.URL.Query()
	return query.ParseSelection(values.Get("year"), values.Get("energy_source"), values.Get("producer_type"))
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
