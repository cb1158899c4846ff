package comment

import (
	"fmt"

	"github.com/pavelanni/commenter/internal/model"
)

// WeakThreshold is the percentage below which a skill area gets the weak
// clause.
const WeakThreshold = 70.0

// Skill area names used in weak sections and {Weak_Area}.
const (
	AreaReading    = "Reading"
	AreaListening  = "Listening"
	AreaWriting    = "Writing"
	AreaVocabulary = "Vocabulary"
	AreaGrammar    = "Grammar"
)

type area struct {
	name    string
	percent float64
	desc    string
}

// weakest returns the first area holding the minimum percentage.
func weakest(areas []area) area {
	w := areas[0]
	for _, a := range areas[1:] {
		if a.percent < w.percent {
			w = a
		}
	}
	return w
}

// renderEnglish assembles an English comment around the weakest area. The
// weak clause and weak section appear only below WeakThreshold.
func renderEnglish(s model.StudentData, t model.CommentTemplate, w area, values []replacement) (string, []model.WeakSection) {
	text := body(t)
	var weak []model.WeakSection
	if w.percent < WeakThreshold {
		text += " " + t.Sections.WeakIntro + " " + w.desc + ", " + t.Sections.WeakEnding
		weak = []model.WeakSection{{Section: w.name, Score: w.percent}}
	}

	forms := t.GrammarRules.Forms(1)
	reps := []replacement{
		{"{Subtopic_Word}", forms.Subtopic},
		{"{Topic_Word}", forms.Topic},
		{"{Topic_Description}", w.desc},
		{"{Weak_Area}", w.name},
		{"{Weak_Area_Percent}", percent(w.percent)},
	}
	reps = append(reps, values...)
	reps = append(reps, nameReplacements(s)...)
	return substitute(text, reps), weak
}

func englishComment(s model.StudentData, text string, weak []model.WeakSection) model.GeneratedComment {
	return model.GeneratedComment{
		Student:       s.Ref(),
		Comment:       text,
		WeakSections:  weak,
		SD1MYP:        model.None,
		SD2MYP:        model.None,
		SD3MYP:        model.None,
		P1:            model.None,
		MYPBasedGrade: model.None,
		Deviation:     model.None,
	}
}

// EnglishDiagnostic renders the English diagnostic test comment. Ties for
// the weakest paper go to Reading, then Listening, then Writing.
func EnglishDiagnostic(s model.StudentData, d model.EnglishDiagnosticData, t model.CommentTemplate) (model.GeneratedComment, error) {
	v, err := need(
		input{"d1Paper1Percent", d.D1Paper1Percent},
		input{"d1Paper2Percent", d.D1Paper2Percent},
		input{"d1Paper3Percent", d.D1Paper3Percent},
		input{"d1TotalPercent", d.D1TotalPercent},
	)
	if err != nil {
		return model.GeneratedComment{}, err
	}

	w := weakest([]area{
		{AreaReading, v[0], t.TopicDescriptions.Section11},
		{AreaListening, v[1], t.TopicDescriptions.Section12},
		{AreaWriting, v[2], t.TopicDescriptions.Section13},
	})
	text, weak := renderEnglish(s, t, w, []replacement{
		{"{Paper1_Percent}", model.FormatNumber(v[0])},
		{"{Paper2_Percent}", model.FormatNumber(v[1])},
		{"{Paper3_Percent}", model.FormatNumber(v[2])},
		{"{Total_Percent}", model.FormatNumber(v[3])},
	})
	return englishComment(s, text, weak), nil
}

// EnglishUnit renders the English unit 1 comment. Only areas with data take
// part in the weakest-area comparison; ties go to Listening, Reading,
// Vocabulary, then Grammar.
func EnglishUnit(s model.StudentData, d model.EnglishUnit1Data, t model.CommentTemplate) (model.GeneratedComment, error) {
	groups := []struct {
		name  string
		score model.Score
		max   float64
		desc  string
	}{
		{AreaListening, d.T1Lis, d.T1LisMax, t.TopicDescriptions.Section11},
		{AreaReading, d.T1Read, d.T1ReadMax, t.TopicDescriptions.Section12},
		{AreaVocabulary, d.T1Voc, d.T1VocMax, t.TopicDescriptions.Section13},
		{AreaGrammar, d.T1Gr, d.T1GrMax, t.TopicDescriptions.Section13},
	}
	var areas []area
	for _, g := range groups {
		v, ok := g.score.Get()
		if !ok || g.max <= 0 {
			continue
		}
		areas = append(areas, area{g.name, v * 100 / g.max, g.desc})
	}
	if len(areas) == 0 {
		return model.GeneratedComment{}, fmt.Errorf("%w: no English unit scores", ErrIncompleteData)
	}

	text, weak := renderEnglish(s, t, weakest(areas), []replacement{
		{"{Lis_Score}", d.T1Lis.Format(Missing)},
		{"{Lis_Max}", maxText(d.T1LisMax)},
		{"{Read_Score}", d.T1Read.Format(Missing)},
		{"{Read_Max}", maxText(d.T1ReadMax)},
		{"{Voc_Score}", d.T1Voc.Format(Missing)},
		{"{Voc_Max}", maxText(d.T1VocMax)},
		{"{Gr_Score}", d.T1Gr.Format(Missing)},
		{"{Gr_Max}", maxText(d.T1GrMax)},
		{"{Total_Score}", d.T1TotalScore.Format(Missing)},
		{"{Total_Percent}", d.T1TotalPercent.Format(Missing)},
	})
	return englishComment(s, text, weak), nil
}

func maxText(v float64) string {
	if v <= 0 {
		return Missing
	}
	return model.FormatNumber(v)
}
