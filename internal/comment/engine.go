package comment

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/pavelanni/commenter/internal/completeness"
	"github.com/pavelanni/commenter/internal/model"
)

// ErrNoTemplate is returned when no template is visible for a request.
var ErrNoTemplate = errors.New("no template available")

// TemplateSource resolves templates and reports collection changes.
type TemplateSource interface {
	Get(id string) (model.CommentTemplate, error)
	ActiveFor(teacherType string) (model.CommentTemplate, bool)
	Version() uint64
}

// Request describes one generation pass.
type Request struct {
	Students []model.StudentData
	// TemplateID overrides the active template when set.
	TemplateID  string
	TeacherType string
	Class       string
	Search      string
	// RegenerateKey forces a new pass when it differs from the last one.
	RegenerateKey string
	// Lang identifies the labels Labeler produces.
	Lang    string
	Labeler completeness.Labeler
}

// Pass is the result of a generation pass. Its slices are shared with the
// engine cache and must not be modified.
type Pass struct {
	Template model.CommentTemplate
	Comments []model.GeneratedComment
	Missing  []model.MissingStudent
	Classes  []string
	Cached   bool
}

// Export wraps the pass for writing out.
func (p Pass) Export(at time.Time) model.CommentExport {
	return model.CommentExport{
		TemplateID:   p.Template.ID,
		TemplateName: p.Template.Name,
		GeneratedAt:  at,
		Comments:     p.Comments,
		MissingData:  p.Missing,
	}
}

type memoKey struct {
	students   [sha256.Size]byte
	templateID string
	version    uint64
	regenerate string
	lang       string
}

// Engine runs generation passes and reuses the last one while its inputs
// are unchanged.
type Engine struct {
	templates TemplateSource
	collation language.Tag

	mu   sync.Mutex
	key  memoKey
	last *Pass
}

func NewEngine(templates TemplateSource, collation language.Tag) *Engine {
	return &Engine{templates: templates, collation: collation}
}

// Run filters the students, resolves the template, and generates comments
// for the eligible students.
func (e *Engine) Run(req Request) (Pass, error) {
	students := model.FilterStudents(req.Students, req.Class, req.Search)

	tmpl, err := e.resolve(req)
	if err != nil {
		return Pass{}, err
	}
	fp, err := fingerprint(students)
	if err != nil {
		return Pass{}, err
	}
	key := memoKey{
		students:   fp,
		templateID: tmpl.ID,
		version:    e.templates.Version(),
		regenerate: req.RegenerateKey,
		lang:       req.Lang,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last != nil && e.key == key {
		p := *e.last
		p.Classes = model.Classes(req.Students)
		p.Cached = true
		return p, nil
	}

	analysis := completeness.Analyze(students, tmpl.Kind, req.Labeler)
	comments, err := Generate(analysis.Eligible, tmpl, e.collation)
	if err != nil {
		return Pass{}, err
	}
	p := Pass{
		Template: tmpl,
		Comments: comments,
		Missing:  analysis.MissingStudents(),
		Classes:  model.Classes(req.Students),
	}
	slog.Debug("generated comments", "template_id", tmpl.ID, "comments", len(comments), "missing", len(p.Missing))
	e.key, e.last = key, &p
	return p, nil
}

func (e *Engine) resolve(req Request) (model.CommentTemplate, error) {
	if req.TemplateID != "" {
		return e.templates.Get(req.TemplateID)
	}
	tmpl, ok := e.templates.ActiveFor(req.TeacherType)
	if !ok {
		return model.CommentTemplate{}, fmt.Errorf("%w for teacher type %q", ErrNoTemplate, req.TeacherType)
	}
	return tmpl, nil
}

func fingerprint(students []model.StudentData) ([sha256.Size]byte, error) {
	data, err := json.Marshal(students)
	if err != nil {
		return [sha256.Size]byte{}, fmt.Errorf("fingerprint students: %w", err)
	}
	return sha256.Sum256(data), nil
}
