package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/synaxaire-program/internal/cache"
	"github.com/zapponejosh/synaxaire-program/internal/config"
	"github.com/zapponejosh/synaxaire-program/internal/database"
	"github.com/zapponejosh/synaxaire-program/internal/logger"
	"github.com/zapponejosh/synaxaire-program/internal/program"
	"github.com/zapponejosh/synaxaire-program/internal/render"
	"github.com/zapponejosh/synaxaire-program/internal/synaxaire"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	tables   *synaxaire.Tables
	resolver *program.Resolver
	docx     render.Sink
	ics      render.Sink
	docs     cache.Cache
	db       *database.DB
	cfg      *config.Config
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance. docs may be nil to render
// every request, and db is nil unless the tables come from SQLite.
func NewHandlers(tables *synaxaire.Tables, docs cache.Cache, db *database.DB, cfg *config.Config, log *slog.Logger) *Handlers {
	return &Handlers{
		tables:   tables,
		resolver: program.NewResolver(tables.Commemorations, tables.Schedule),
		docx:     render.DocxSink{},
		ics:      render.ICSSink{},
		docs:     docs,
		db:       db,
		cfg:      cfg,
		logger:   log,
	}
}

// HealthResponse reports table sizes and load problems.
type HealthResponse struct {
	Status         string   `json:"status"`
	Commemorations int      `json:"commemorations"`
	ScheduleDays   int      `json:"schedule_days"`
	Warnings       []string `json:"warnings"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.db != nil {
		if err := h.db.Health(ctx); err != nil {
			h.logger.Warn("health check failed", slog.Any("error", err))
			WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
			return
		}
	}

	resp := HealthResponse{
		Status:         "healthy",
		Commemorations: h.tables.Commemorations.Len(),
		ScheduleDays:   h.tables.Schedule.Len(),
		Warnings:       []string{},
	}
	if h.tables.Degraded() {
		resp.Status = "degraded"
		for _, err := range h.tables.Warnings {
			resp.Warnings = append(resp.Warnings, err.Error())
		}
	}

	WriteSuccess(w, resp)
}

// Ping handles GET /api/test
func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{
		"message": "API is working",
	})
}

// GenerateProgram handles POST /api/generate-program
func (h *Handlers) GenerateProgram(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body generateRequest
	if err := decodeJSON(w, r, &body); err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err), program.KindValidation)
		return
	}

	req := body.toRequest()
	if err := req.Validate(); err != nil {
		WriteProgramError(w, err)
		return
	}

	data, err := h.renderProgram(ctx, h.docx, req)
	if err != nil {
		logger.Error(ctx, "failed to generate program", err,
			slog.Int("year", req.Year),
			slog.Int("month", req.Month),
		)
		WriteProgramError(w, err)
		return
	}

	WriteAttachment(w, h.docx.ContentType(), render.Filename(h.docx, req.Year, req.Month), data)
}

// GetSynaxaire handles GET /api/synaxaire/{month}/{day}
func (h *Handlers) GetSynaxaire(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "month must be a number", program.KindValidation)
		return
	}
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "day must be a number", program.KindValidation)
		return
	}

	entries, err := h.resolver.Lookup(month, day)
	if err != nil {
		WriteProgramError(w, err)
		return
	}

	WriteSuccess(w, entries)
}

// GetSynaxaireMonth handles GET /api/synaxaire/{month}
func (h *Handlers) GetSynaxaireMonth(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "month must be a number", program.KindValidation)
		return
	}

	entries, err := h.resolver.LookupMonth(month)
	if err != nil {
		WriteProgramError(w, err)
		return
	}

	WriteSuccess(w, entries)
}

// MonthResponse is the JSON form of a resolved month.
type MonthResponse struct {
	Year  int                   `json:"year"`
	Month int                   `json:"month"`
	Title string                `json:"title"`
	Days  []program.ResolvedDay `json:"days"`
}

// GetMonth handles GET /api/v1/program/{year}/{month}
func (h *Handlers) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, month, ok := monthParams(w, r)
	if !ok {
		return
	}

	days, err := h.resolver.Resolve(year, month)
	if err != nil {
		logger.Warn(r.Context(), "failed to resolve month", slog.Any("error", err))
		WriteProgramError(w, err)
		return
	}

	WriteSuccess(w, MonthResponse{
		Year:  year,
		Month: month,
		Title: render.Program{Year: year, Month: month}.Title(),
		Days:  days,
	})
}

// GetMonthICS handles GET /api/v1/program/{year}/{month}.ics
func (h *Handlers) GetMonthICS(w http.ResponseWriter, r *http.Request) {
	year, month, ok := monthParams(w, r)
	if !ok {
		return
	}

	req := program.Request{Year: year, Month: month}
	if err := req.Validate(); err != nil {
		WriteProgramError(w, err)
		return
	}

	data, err := h.renderProgram(r.Context(), h.ics, req)
	if err != nil {
		logger.Error(r.Context(), "failed to export calendar", err,
			slog.Int("year", year),
			slog.Int("month", month),
		)
		WriteProgramError(w, err)
		return
	}

	WriteAttachment(w, h.ics.ContentType(), render.Filename(h.ics, year, month), data)
}

// renderProgram resolves and renders a request, reusing a cached document
// when the same request was rendered recently.
func (h *Handlers) renderProgram(ctx context.Context, sink render.Sink, req program.Request) ([]byte, error) {
	key := cache.DocumentKey(sink.Extension(), req.Year, req.Month, req.FrenchVerse, req.ArabicVerse)
	if h.docs != nil {
		if data, ok := h.docs.Get(key); ok {
			logger.Debug(ctx, "serving cached program", slog.String("format", sink.Extension()))
			return data, nil
		}
	}

	days, err := h.resolver.Resolve(req.Year, req.Month)
	if err != nil {
		return nil, err
	}

	data, err := sink.Render(render.Program{
		Year:        req.Year,
		Month:       req.Month,
		FrenchVerse: req.FrenchVerse,
		ArabicVerse: req.ArabicVerse,
		Days:        days,
	})
	if err != nil {
		return nil, err
	}

	if h.docs != nil {
		if err := h.docs.Set(key, data, h.cfg.CacheTTL); err != nil {
			logger.Warn(ctx, "failed to cache program", slog.Any("error", err))
		}
	}

	logger.Info(ctx, "program rendered",
		slog.String("format", sink.Extension()),
		slog.Int("year", req.Year),
		slog.Int("month", req.Month),
		slog.Int("days", len(days)),
		slog.Int("bytes", len(data)),
	)
	return data, nil
}

func monthParams(w http.ResponseWriter, r *http.Request) (year, month int, ok bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "year must be a number", program.KindValidation)
		return 0, 0, false
	}
	month, err = strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "month must be a number", program.KindValidation)
		return 0, 0, false
	}
	return year, month, true
}

// generateRequest is the POST body. Year and month may arrive as numbers
// or numeric strings, as form-driven clients send them.
type generateRequest struct {
	Year        flexInt `json:"year"`
	Month       flexInt `json:"month"`
	FrenchVerse string  `json:"french_verse"`
	ArabicVerse string  `json:"arabic_verse"`
}

func (g generateRequest) toRequest() program.Request {
	return program.Request{
		Year:        int(g.Year),
		Month:       int(g.Month),
		FrenchVerse: g.FrenchVerse,
		ArabicVerse: g.ArabicVerse,
	}
}

type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%q is not a whole number", s)
		}
		*f = flexInt(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("%s is not a whole number", b)
	}
	*f = flexInt(n)
	return nil
}

// maxBodyBytes bounds a generation request; two verses fit easily.
const maxBodyBytes = 64 << 10

// decodeJSON decodes a single JSON value from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("request body is empty")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		case errors.Is(err, io.EOF):
			return errors.New("request body is empty")
		}
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}
