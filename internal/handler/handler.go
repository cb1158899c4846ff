// Package handler serves the JSON API for templates and comment generation.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/commenter/internal/comment"
	"github.com/pavelanni/commenter/internal/completeness"
	appI18n "github.com/pavelanni/commenter/internal/i18n"
	"github.com/pavelanni/commenter/internal/model"
	"github.com/pavelanni/commenter/internal/templates"
)

// ExportStore keeps a history of generation runs.
type ExportStore interface {
	SaveExport(ctx context.Context, e model.CommentExport) (int64, error)
	ListExports(ctx context.Context, limit int) ([]model.ExportSummary, error)
	GetExport(ctx context.Context, id int64) (model.CommentExport, error)
}

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	templates *templates.Store
	engine    *comment.Engine
	exports   ExportStore
	config    model.ServerConfig
}

// New creates a new Handler. exports may be nil.
func New(ts *templates.Store, e *comment.Engine, exports ExportStore, cfg model.ServerConfig) *Handler {
	return &Handler{templates: ts, engine: e, exports: exports, config: cfg}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Use(appI18n.Middleware(h.config.Lang))
	r.Get("/healthz", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/templates", h.handleListTemplates)
		r.Get("/templates/variables", h.handleVariables)
		r.Get("/templates/{id}", h.handleGetTemplate)
		r.Post("/comments", h.handleGenerate)
		r.Get("/exports", h.handleListExports)
		r.Get("/exports/{id}", h.handleGetExport)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Post("/templates", h.handleAddTemplate)
			r.Patch("/templates/{id}", h.handleUpdateTemplate)
			r.Delete("/templates/{id}", h.handleDeleteTemplate)
			r.Post("/templates/reset", h.handleResetTemplates)
			r.Put("/templates/active", h.handleSetActive)
		})
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"templates": len(h.templates.Templates()),
		"active":    h.templates.ActiveID(),
	})
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msgID string, err error) {
	resp := errorResponse{Error: appI18n.T(r.Context(), msgID)}
	if err != nil {
		resp.Detail = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps package sentinels to status codes.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, templates.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "TemplateNotFound", err)
	case errors.Is(err, templates.ErrInvalidTemplate):
		writeError(w, r, http.StatusBadRequest, "InvalidTemplate", err)
	case errors.Is(err, comment.ErrUnknownTemplateKind):
		writeError(w, r, http.StatusUnprocessableEntity, "UnknownTemplateKind", err)
	case errors.Is(err, comment.ErrNoTemplate):
		writeError(w, r, http.StatusUnprocessableEntity, "NoTemplate", err)
	default:
		slog.Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError", nil)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 10<<20)).Decode(v)
}

// fieldLabeler localizes completeness field labels for the request.
func fieldLabeler(ctx context.Context) completeness.Labeler {
	return func(f completeness.Field) string {
		return appI18n.Label(ctx, f.MessageID(), f.DefaultLabel())
	}
}
