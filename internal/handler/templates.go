package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	appI18n "github.com/pavelanni/commenter/internal/i18n"
	"github.com/pavelanni/commenter/internal/model"
	"github.com/pavelanni/commenter/internal/templates"
)

type templateList struct {
	Templates []model.CommentTemplate `json:"templates"`
	ActiveID  string                  `json:"active_id"`
}

// handleListTemplates lists templates, narrowed to what ?teacher_type sees.
func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	teacherType := r.URL.Query().Get("teacher_type")
	list := h.templates.Templates()
	activeID := h.templates.ActiveID()
	if teacherType != "" {
		list = templates.VisibleFor(list, teacherType)
		if active, ok := h.templates.ActiveFor(teacherType); ok {
			activeID = active.ID
		} else {
			activeID = ""
		}
	}
	if list == nil {
		list = []model.CommentTemplate{}
	}
	writeJSON(w, http.StatusOK, templateList{Templates: list, ActiveID: activeID})
}

func (h *Handler) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := h.templates.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleVariables lists placeholders with localized descriptions.
func (h *Handler) handleVariables(w http.ResponseWriter, r *http.Request) {
	vars := templates.Variables(model.TemplateKind(r.URL.Query().Get("kind")))
	out := make([]templates.Variable, len(vars))
	for i, v := range vars {
		v.Description = appI18n.Label(r.Context(), v.MessageID(), v.Description)
		out[i] = v
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleAddTemplate(w http.ResponseWriter, r *http.Request) {
	var t model.CommentTemplate
	if err := decodeJSON(w, r, &t); err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest", err)
		return
	}
	added, err := h.templates.Add(r.Context(), t)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	slog.Info("template added", "template_id", added.ID, "kind", added.Kind)
	writeJSON(w, http.StatusCreated, added)
}

func (h *Handler) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var patch model.TemplatePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest", err)
		return
	}
	updated, err := h.templates.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	slog.Info("template updated", "template_id", updated.ID)
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.templates.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	slog.Info("template deleted", "template_id", id)
	writeJSON(w, http.StatusOK, templateList{Templates: h.templates.Templates(), ActiveID: h.templates.ActiveID()})
}

func (h *Handler) handleResetTemplates(w http.ResponseWriter, r *http.Request) {
	h.templates.ResetToDefault(r.Context())
	slog.Info("templates reset to defaults")
	writeJSON(w, http.StatusOK, templateList{Templates: h.templates.Templates(), ActiveID: h.templates.ActiveID()})
}

type setActiveRequest struct {
	ID string `json:"id"`
}

func (h *Handler) handleSetActive(w http.ResponseWriter, r *http.Request) {
	var req setActiveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest", err)
		return
	}
	if err := h.templates.SetActive(r.Context(), req.ID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.templates.Active())
}
