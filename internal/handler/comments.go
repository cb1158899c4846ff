package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/commenter/internal/comment"
	appI18n "github.com/pavelanni/commenter/internal/i18n"
	"github.com/pavelanni/commenter/internal/model"
)

type generateRequest struct {
	Students      []model.StudentData `json:"students"`
	TemplateID    string              `json:"template_id,omitempty"`
	Class         string              `json:"class,omitempty"`
	Search        string              `json:"search,omitempty"`
	TeacherType   string              `json:"teacher_type,omitempty"`
	RegenerateKey string              `json:"regenerate_key,omitempty"`
	Save          bool                `json:"save,omitempty"`
}

type generateResponse struct {
	TemplateID   string                   `json:"template_id"`
	TemplateName string                   `json:"template_name"`
	Comments     []model.GeneratedComment `json:"comments"`
	MissingData  []model.MissingStudent   `json:"missing_data"`
	Classes      []string                 `json:"classes"`
	Message      string                   `json:"message"`
	Cached       bool                     `json:"cached"`
	ExportID     int64                    `json:"export_id,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest", err)
		return
	}
	ctx := r.Context()

	pass, err := h.engine.Run(comment.Request{
		Students:      req.Students,
		TemplateID:    req.TemplateID,
		TeacherType:   req.TeacherType,
		Class:         req.Class,
		Search:        req.Search,
		RegenerateKey: req.RegenerateKey,
		Lang:          appI18n.Tag(ctx).String(),
		Labeler:       fieldLabeler(ctx),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	resp := generateResponse{
		TemplateID:   pass.Template.ID,
		TemplateName: pass.Template.Name,
		Comments:     nonNil(pass.Comments),
		MissingData:  nonNil(pass.Missing),
		Classes:      nonNil(pass.Classes),
		Cached:       pass.Cached,
	}
	switch {
	case len(pass.Comments) > 0:
		resp.Message = appI18n.Tp(ctx, "CommentsGenerated", len(pass.Comments))
	case len(pass.Missing) > 0:
		resp.Message = appI18n.T(ctx, "NoEligibleStudents")
	default:
		resp.Message = appI18n.T(ctx, "NoStudentsMatch")
	}

	if req.Save {
		if h.exports == nil {
			writeError(w, r, http.StatusNotImplemented, "ExportsUnavailable", nil)
			return
		}
		id, err := h.exports.SaveExport(ctx, pass.Export(time.Now().UTC()))
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		resp.ExportID = id
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListExports(w http.ResponseWriter, r *http.Request) {
	if h.exports == nil {
		writeError(w, r, http.StatusNotImplemented, "ExportsUnavailable", nil)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := h.exports.ListExports(r.Context(), limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (h *Handler) handleGetExport(w http.ResponseWriter, r *http.Request) {
	if h.exports == nil {
		writeError(w, r, http.StatusNotImplemented, "ExportsUnavailable", nil)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest", err)
		return
	}
	e, err := h.exports.GetExport(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, r, http.StatusNotFound, "ExportNotFound", nil)
		return
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
