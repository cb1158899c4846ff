package comment

import (
	"math"
	"strconv"
	"strings"

	"github.com/pavelanni/commenter/internal/model"
)

// Missing is rendered in place of a value a student does not have.
const Missing = "—"

// replacement is one placeholder token and its value. Replacements apply in
// order, so a value may itself contain later tokens.
type replacement struct {
	token string
	value string
}

func substitute(text string, reps []replacement) string {
	for _, r := range reps {
		text = strings.ReplaceAll(text, r.token, r.value)
	}
	return text
}

func nameReplacements(s model.StudentData) []replacement {
	return []replacement{
		{"{Name}", s.Name(model.CaseNominative)},
		{"{Name_Ko}", s.Name(model.CaseGenitive)},
		{"{Name_Ka}", s.Name(model.CaseAccusative)},
		{"{Name_Kuo}", s.Name(model.CaseInstrumental)},
		{"{Name_Kam}", s.Name(model.CaseDative)},
		{"{Name_Kur}", s.Name(model.CaseLocative)},
	}
}

// body joins the four fixed sections.
func body(t model.CommentTemplate) string {
	return strings.Join([]string{t.Sections.Intro, t.Sections.Context, t.Sections.Assessment, t.Sections.Achievement}, " ")
}

// roundHalfUp rounds x to the nearest integer with halves rounded up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func percent(v float64) string {
	return strconv.Itoa(roundHalfUp(v))
}

func listJoin(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " ir " + items[len(items)-1]
}
