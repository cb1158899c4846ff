package comment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/pavelanni/commenter/internal/model"
	"github.com/pavelanni/commenter/internal/store"
	"github.com/pavelanni/commenter/internal/templates"
)

func details(myp, c float64) *model.EvaluationDetails {
	return &model.EvaluationDetails{PercentageScore: s(80), MYPScore: s(myp), CambridgeScore: s(c)}
}

func mathStudent(first, last, class string) model.StudentData {
	return model.StudentData{
		FirstName: first,
		LastName:  last,
		ClassName: class,
		Assessments: []model.Assessment{
			{AssessmentID: "sd1", Date: "2026-09-10", EvaluationDetails: &model.EvaluationDetails{
				PercentageScore: s(80), MYPScore: s(6), CambridgeScore1: s(1), CambridgeScore2: s(0.5),
			}},
			{AssessmentID: "sd2", Date: "2026-09-20", EvaluationDetails: details(7, 1)},
			{AssessmentID: "sd3", Date: "2026-10-01", EvaluationDetails: details(8, 1)},
			{AssessmentID: "p1", Date: "2026-10-05", Score: "8"},
		},
	}
}

func newEngine(t *testing.T) (*Engine, *templates.Store) {
	t.Helper()
	ts, err := templates.Open(context.Background(), store.NewMemory())
	require.NoError(t, err)
	return NewEngine(ts, language.Lithuanian), ts
}

func TestEngineRun(t *testing.T) {
	e, _ := newEngine(t)
	students := []model.StudentData{
		mathStudent("Petras", "Petraitis", "7A"),
		{FirstName: "Ona", LastName: "Onaitė", ClassName: "7B"},
		mathStudent("Agnė", "Adomaitė", "7B"),
	}

	p, err := e.Run(Request{Students: students})
	require.NoError(t, err)
	assert.False(t, p.Cached)
	assert.Equal(t, model.MathTemplateID, p.Template.ID)
	require.Len(t, p.Comments, 2)
	assert.Equal(t, "Adomaitė", p.Comments[0].Student.LastName)
	assert.Equal(t, 7, p.Comments[0].MYPLevel)
	assert.Equal(t, model.Some(-1), p.Comments[0].Deviation)
	assert.Equal(t, []model.WeakSection{{Section: "1.1", Score: 0.5}}, p.Comments[0].WeakSections)
	require.Len(t, p.Missing, 1)
	assert.Equal(t, "Ona", p.Missing[0].Student.FirstName)
	assert.Contains(t, p.Missing[0].MissingFields, "SD1 MYP")
	assert.Equal(t, []string{"7A", "7B"}, p.Classes)

	at := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	export := p.Export(at)
	assert.Equal(t, model.MathTemplateID, export.TemplateID)
	assert.Equal(t, at, export.GeneratedAt)
	assert.Len(t, export.Comments, 2)
}

func TestEngineFilters(t *testing.T) {
	e, _ := newEngine(t)
	students := []model.StudentData{
		mathStudent("Petras", "Petraitis", "7A"),
		mathStudent("Agnė", "Adomaitė", "7B"),
	}

	p, err := e.Run(Request{Students: students, Class: "7A"})
	require.NoError(t, err)
	require.Len(t, p.Comments, 1)
	assert.Equal(t, "Petras", p.Comments[0].Student.FirstName)
	assert.Equal(t, []string{"7A", "7B"}, p.Classes, "classes come from the unfiltered list")

	p, err = e.Run(Request{Students: students, Search: "adom"})
	require.NoError(t, err)
	require.Len(t, p.Comments, 1)
	assert.Equal(t, "Agnė", p.Comments[0].Student.FirstName)
}

func TestEngineMemo(t *testing.T) {
	ctx := context.Background()
	e, ts := newEngine(t)
	students := []model.StudentData{mathStudent("Petras", "Petraitis", "7A")}

	first, err := e.Run(Request{Students: students, RegenerateKey: "1"})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	again, err := e.Run(Request{Students: students, RegenerateKey: "1"})
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, first.Comments, again.Comments)

	forced, err := e.Run(Request{Students: students, RegenerateKey: "2"})
	require.NoError(t, err)
	assert.False(t, forced.Cached)

	// Editing the template body in place invalidates the cache.
	intro := "Naujas įvadas {Name}."
	sections := templates.DefaultTemplate.Sections
	sections.Intro = intro
	_, err = ts.Update(ctx, model.MathTemplateID, model.TemplatePatch{Sections: &sections})
	require.NoError(t, err)
	edited, err := e.Run(Request{Students: students, RegenerateKey: "2"})
	require.NoError(t, err)
	assert.False(t, edited.Cached)
	assert.Contains(t, edited.Comments[0].Comment, "Naujas įvadas Petras.")

	// A changed student list is a new pass.
	students[0].Assessments[3].Score = "9"
	changed, err := e.Run(Request{Students: students, RegenerateKey: "2"})
	require.NoError(t, err)
	assert.False(t, changed.Cached)
	assert.Equal(t, model.Some(0), changed.Comments[0].Deviation)
}

func TestEngineTemplateSelection(t *testing.T) {
	ctx := context.Background()
	e, ts := newEngine(t)
	students := []model.StudentData{{
		FirstName: "Ona", LastName: "Onaitė",
		Assessments: []model.Assessment{{
			AssessmentID: "d1", Date: "2026-09-01",
			Fields: map[string]any{
				"paper1_percent": 80.0, "paper2_percent": 60.0, "paper3_percent": 90.0, "total_percent": 77.0,
			},
		}},
	}}

	p, err := e.Run(Request{Students: students, TeacherType: "J"})
	require.NoError(t, err)
	assert.Equal(t, model.EnglishDiagnosticTemplateID, p.Template.ID)
	require.Len(t, p.Comments, 1)
	assert.Contains(t, p.Comments[0].Comment, "klausymo – 60%")

	p, err = e.Run(Request{Students: students, TemplateID: model.MathTemplateID})
	require.NoError(t, err)
	assert.Empty(t, p.Comments)
	assert.Len(t, p.Missing, 1)

	_, err = e.Run(Request{Students: students, TemplateID: "missing"})
	assert.ErrorIs(t, err, templates.ErrNotFound)

	require.NoError(t, ts.Delete(ctx, model.MathTemplateID))
	_, err = e.Run(Request{Students: students, TeacherType: "M"})
	assert.ErrorIs(t, err, ErrNoTemplate)
}

func TestEngineUnknownKind(t *testing.T) {
	_, ts := newEngine(t)
	src := &fixedSource{Store: ts, tmpl: model.CommentTemplate{ID: "legacy", Kind: "physics"}}
	e := NewEngine(src, language.Lithuanian)
	_, err := e.Run(Request{Students: []model.StudentData{mathStudent("A", "B", "7A")}})
	assert.ErrorIs(t, err, ErrUnknownTemplateKind)
}

// fixedSource always resolves to tmpl.
type fixedSource struct {
	*templates.Store
	tmpl model.CommentTemplate
}

func (f *fixedSource) ActiveFor(string) (model.CommentTemplate, bool) { return f.tmpl, true }
