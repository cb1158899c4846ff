package templates

import (
	"strings"

	"github.com/pavelanni/commenter/internal/model"
)

// IsEnglishTeacher reports whether teacherType marks an English teacher.
func IsEnglishTeacher(teacherType string) bool {
	switch strings.ToUpper(strings.TrimSpace(teacherType)) {
	case "J", "A":
		return true
	}
	return false
}

// VisibleFor filters templates to those a teacher type works with: English
// teachers see the English kinds, everyone else sees math.
func VisibleFor(all []model.CommentTemplate, teacherType string) []model.CommentTemplate {
	english := IsEnglishTeacher(teacherType)
	var out []model.CommentTemplate
	for _, t := range all {
		isEnglish := t.Kind == model.KindEnglishDiagnostic || t.Kind == model.KindEnglishUnit
		if isEnglish == english {
			out = append(out, t)
		}
	}
	return out
}

// ActiveFor returns the active template when it is visible to teacherType,
// otherwise the first visible one. It reports false when nothing is visible.
// An empty teacherType sees everything.
func (s *Store) ActiveFor(teacherType string) (model.CommentTemplate, bool) {
	active := s.Active()
	if teacherType == "" {
		return active, true
	}
	visible := VisibleFor(s.Templates(), teacherType)
	for _, t := range visible {
		if t.ID == active.ID {
			return t, true
		}
	}
	if len(visible) == 0 {
		return model.CommentTemplate{}, false
	}
	return visible[0], true
}
