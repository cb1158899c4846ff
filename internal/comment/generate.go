// Package comment renders assessment comments from templates.
package comment

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pavelanni/commenter/internal/completeness"
	"github.com/pavelanni/commenter/internal/model"
)

// ErrUnknownTemplateKind is returned for a template whose kind has no
// generator.
var ErrUnknownTemplateKind = errors.New("unknown template kind")

// DefaultCollation orders student names.
var DefaultCollation = language.Lithuanian

// One renders the comment for a single eligible student.
func One(d completeness.StudentCommentData, t model.CommentTemplate) (model.GeneratedComment, error) {
	switch t.Kind {
	case model.KindMath:
		return Math(d.Student, d.Math, t)
	case model.KindEnglishDiagnostic:
		return EnglishDiagnostic(d.Student, d.EnglishDiagnostic, t)
	case model.KindEnglishUnit:
		return EnglishUnit(d.Student, d.EnglishUnit1, t)
	}
	return model.GeneratedComment{}, fmt.Errorf("%w: %q (template %s)", ErrUnknownTemplateKind, t.Kind, t.ID)
}

// Generate renders comments for every eligible student, ordered by last
// name then first name under coll. A student whose generator fails is
// logged and left out.
func Generate(eligible []completeness.StudentCommentData, t model.CommentTemplate, coll language.Tag) ([]model.GeneratedComment, error) {
	if !t.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q (template %s)", ErrUnknownTemplateKind, t.Kind, t.ID)
	}
	out := make([]model.GeneratedComment, 0, len(eligible))
	for _, d := range eligible {
		c, err := One(d, t)
		if err != nil {
			slog.Error("comment generation failed", "template_id", t.ID,
				"student", d.Student.FirstName+" "+d.Student.LastName, "error", err)
			continue
		}
		out = append(out, c)
	}
	SortByName(out, coll)
	return out, nil
}

// SortByName stable-sorts comments by last name, then first name.
func SortByName(comments []model.GeneratedComment, coll language.Tag) {
	c := collate.New(coll)
	slices.SortStableFunc(comments, func(a, b model.GeneratedComment) int {
		if r := c.CompareString(a.Student.LastName, b.Student.LastName); r != 0 {
			return r
		}
		return c.CompareString(a.Student.FirstName, b.Student.FirstName)
	})
}
