package comment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pavelanni/commenter/internal/model"
)

// ErrIncompleteData is returned when a generator is handed a student without
// a value it needs. Callers are expected to filter with the completeness
// analysis first.
var ErrIncompleteData = errors.New("incomplete student data")

type input struct {
	name  string
	score model.Score
}

// need returns the values of in, or ErrIncompleteData naming every
// missing one.
func need(in ...input) ([]float64, error) {
	vals := make([]float64, len(in))
	var missing []string
	for i, x := range in {
		v, ok := x.score.Get()
		if !ok {
			missing = append(missing, x.name)
			continue
		}
		vals[i] = v
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncompleteData, strings.Join(missing, ", "))
	}
	return vals, nil
}

const topicPrefix = "apie "

// Math renders the math unit comment.
func Math(s model.StudentData, d model.MathTestData, t model.CommentTemplate) (model.GeneratedComment, error) {
	v, err := need(
		input{"sd1myp", d.SD1MYP}, input{"sd2myp", d.SD2MYP}, input{"sd3myp", d.SD3MYP},
		input{"sd1c1", d.SD1C1}, input{"sd1c2", d.SD1C2}, input{"sd2c", d.SD2C}, input{"sd3c", d.SD3C},
	)
	if err != nil {
		return model.GeneratedComment{}, err
	}
	sd1myp, sd2myp, sd3myp := v[0], v[1], v[2]
	mypLevel := roundHalfUp((sd1myp + sd2myp + sd3myp) / 3)

	candidates := []struct {
		section string
		score   float64
		desc    string
	}{
		{"1.1", min(v[3], v[4]), t.TopicDescriptions.Section11},
		{"1.2", v[5], t.TopicDescriptions.Section12},
		{"1.3", v[6], t.TopicDescriptions.Section13},
	}
	var (
		weak     []model.WeakSection
		sections []string
		descs    []string
	)
	for _, c := range candidates {
		if c.score == 1 {
			continue
		}
		weak = append(weak, model.WeakSection{Section: c.section, Score: c.score})
		sections = append(sections, c.section)
		descs = append(descs, c.desc)
	}

	forms := t.GrammarRules.Forms(len(weak))
	sectionText := listJoin(sections)
	topicDesc := mathTopicDescription(descs)

	text := body(t)
	if len(weak) > 0 {
		text += " " + t.Sections.WeakIntro + " " + sectionText + " " + forms.Topic + " " + topicDesc + ", " + t.Sections.WeakEnding
	}

	reps := []replacement{
		{"{Subtopic_Word}", forms.Subtopic},
		{"{Topic_Word}", forms.Topic},
		{"{Sections}", sectionText},
		{"{Topic_Description}", topicDesc},
	}
	reps = append(reps, nameReplacements(s)...)
	reps = append(reps, replacement{"{MYP_Level}", strconv.Itoa(mypLevel)})

	grade := float64(mypLevel + 2)
	deviation := model.None
	if p1, ok := d.P1.Get(); ok {
		deviation = model.Some(p1 - grade)
	}

	return model.GeneratedComment{
		Student:       s.Ref(),
		Comment:       substitute(text, reps),
		MYPLevel:      mypLevel,
		WeakSections:  weak,
		SD1MYP:        d.SD1MYP,
		SD2MYP:        d.SD2MYP,
		SD3MYP:        d.SD3MYP,
		P1:            d.P1,
		MYPBasedGrade: model.Some(grade),
		Deviation:     deviation,
	}, nil
}

// mathTopicDescription keeps a single description as written and merges
// several under one leading "apie".
func mathTopicDescription(descs []string) string {
	if len(descs) <= 1 {
		return listJoin(descs)
	}
	parts := make([]string, len(descs))
	for i, d := range descs {
		parts[i] = strings.TrimPrefix(d, topicPrefix)
	}
	return topicPrefix + listJoin(parts)
}
