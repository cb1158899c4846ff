// Package completeness decides which students have enough data for a
// comment of a given template kind.
package completeness

import (
	"github.com/pavelanni/commenter/internal/extract"
	"github.com/pavelanni/commenter/internal/model"
)

// Field identifies one extracted value a template kind may require.
type Field string

const (
	SD1P            Field = "sd1p"
	SD1MYP          Field = "sd1myp"
	SD1C1           Field = "sd1c1"
	SD1C2           Field = "sd1c2"
	SD2P            Field = "sd2p"
	SD2MYP          Field = "sd2myp"
	SD2C            Field = "sd2c"
	SD3P            Field = "sd3p"
	SD3MYP          Field = "sd3myp"
	SD3C            Field = "sd3c"
	D1Paper1Percent Field = "d1Paper1Percent"
	D1Paper2Percent Field = "d1Paper2Percent"
	D1Paper3Percent Field = "d1Paper3Percent"
	D1TotalPercent  Field = "d1TotalPercent"
	T1Lis           Field = "t1Lis"
	T1Read          Field = "t1Read"
	T1Voc           Field = "t1Voc"
	T1Gr            Field = "t1Gr"
	T1TotalScore    Field = "t1TotalScore"
	T1TotalPercent  Field = "t1TotalPercent"
)

var defaultLabels = map[Field]string{
	SD1P:            "SD1 %",
	SD1MYP:          "SD1 MYP",
	SD1C1:           "SD1 Cambridge 1",
	SD1C2:           "SD1 Cambridge 2",
	SD2P:            "SD2 %",
	SD2MYP:          "SD2 MYP",
	SD2C:            "SD2 Cambridge",
	SD3P:            "SD3 %",
	SD3MYP:          "SD3 MYP",
	SD3C:            "SD3 Cambridge",
	D1Paper1Percent: "D1 Paper 1 %",
	D1Paper2Percent: "D1 Paper 2 %",
	D1Paper3Percent: "D1 Paper 3 %",
	D1TotalPercent:  "D1 Total %",
	T1Lis:           "T1 Listening",
	T1Read:          "T1 Reading",
	T1Voc:           "T1 Vocabulary",
	T1Gr:            "T1 Grammar",
	T1TotalScore:    "T1 Total score",
	T1TotalPercent:  "T1 Total %",
}

// DefaultLabel is the English label of f.
func (f Field) DefaultLabel() string {
	if l, ok := defaultLabels[f]; ok {
		return l
	}
	return string(f)
}

// MessageID is the i18n message id of the label of f.
func (f Field) MessageID() string { return "Field." + string(f) }

// Labeler turns a field into a human-readable label.
type Labeler func(Field) string

// StudentCommentData is one student's extracted bundles and completeness
// for the analyzed kind.
type StudentCommentData struct {
	Student           model.StudentData
	Math              model.MathTestData
	EnglishDiagnostic model.EnglishDiagnosticData
	EnglishUnit1      model.EnglishUnit1Data
	HasAllData        bool
	MissingFields     []string
}

// Result partitions the analyzed students. All keeps the input order;
// Eligible and Missing are disjoint and together cover All.
type Result struct {
	All      []StudentCommentData
	Eligible []StudentCommentData
	Missing  []StudentCommentData
}

// MissingStudents converts Missing for output.
func (r Result) MissingStudents() []model.MissingStudent {
	out := make([]model.MissingStudent, 0, len(r.Missing))
	for _, d := range r.Missing {
		out = append(out, model.MissingStudent{Student: d.Student.Ref(), MissingFields: d.MissingFields})
	}
	return out
}

type requirement struct {
	field Field
	value func(StudentCommentData) model.Score
}

var requirements = map[model.TemplateKind][]requirement{
	model.KindMath: {
		{SD1P, func(d StudentCommentData) model.Score { return d.Math.SD1P }},
		{SD1MYP, func(d StudentCommentData) model.Score { return d.Math.SD1MYP }},
		{SD1C1, func(d StudentCommentData) model.Score { return d.Math.SD1C1 }},
		{SD1C2, func(d StudentCommentData) model.Score { return d.Math.SD1C2 }},
		{SD2P, func(d StudentCommentData) model.Score { return d.Math.SD2P }},
		{SD2MYP, func(d StudentCommentData) model.Score { return d.Math.SD2MYP }},
		{SD2C, func(d StudentCommentData) model.Score { return d.Math.SD2C }},
		{SD3P, func(d StudentCommentData) model.Score { return d.Math.SD3P }},
		{SD3MYP, func(d StudentCommentData) model.Score { return d.Math.SD3MYP }},
		{SD3C, func(d StudentCommentData) model.Score { return d.Math.SD3C }},
	},
	model.KindEnglishDiagnostic: {
		{D1Paper1Percent, func(d StudentCommentData) model.Score { return d.EnglishDiagnostic.D1Paper1Percent }},
		{D1Paper2Percent, func(d StudentCommentData) model.Score { return d.EnglishDiagnostic.D1Paper2Percent }},
		{D1Paper3Percent, func(d StudentCommentData) model.Score { return d.EnglishDiagnostic.D1Paper3Percent }},
		{D1TotalPercent, func(d StudentCommentData) model.Score { return d.EnglishDiagnostic.D1TotalPercent }},
	},
	model.KindEnglishUnit: {
		{T1Lis, func(d StudentCommentData) model.Score { return d.EnglishUnit1.T1Lis }},
		{T1Read, func(d StudentCommentData) model.Score { return d.EnglishUnit1.T1Read }},
		{T1Voc, func(d StudentCommentData) model.Score { return d.EnglishUnit1.T1Voc }},
		{T1Gr, func(d StudentCommentData) model.Score { return d.EnglishUnit1.T1Gr }},
		{T1TotalScore, func(d StudentCommentData) model.Score { return d.EnglishUnit1.T1TotalScore }},
		{T1TotalPercent, func(d StudentCommentData) model.Score { return d.EnglishUnit1.T1TotalPercent }},
	},
}

// RequiredFields lists the fields kind needs, in report order.
func RequiredFields(kind model.TemplateKind) []Field {
	reqs := requirements[kind]
	out := make([]Field, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.field)
	}
	return out
}

// Extract builds every bundle for one student.
func Extract(s model.StudentData) StudentCommentData {
	return StudentCommentData{
		Student:           s,
		Math:              extract.Math(s.Assessments),
		EnglishDiagnostic: extract.EnglishDiagnostic(s.Assessments),
		EnglishUnit1:      extract.EnglishUnit1(s.Assessments),
	}
}

// Check fills HasAllData and MissingFields of d for kind. A nil label uses
// the English default labels. An unknown kind requires nothing.
func Check(d StudentCommentData, kind model.TemplateKind, label Labeler) StudentCommentData {
	if label == nil {
		label = Field.DefaultLabel
	}
	d.MissingFields = nil
	for _, r := range requirements[kind] {
		if !r.value(d).Valid() {
			d.MissingFields = append(d.MissingFields, label(r.field))
		}
	}
	d.HasAllData = len(d.MissingFields) == 0
	return d
}

// Analyze extracts and checks every student for kind.
func Analyze(students []model.StudentData, kind model.TemplateKind, label Labeler) Result {
	res := Result{All: make([]StudentCommentData, 0, len(students))}
	for _, s := range students {
		d := Check(Extract(s), kind, label)
		res.All = append(res.All, d)
		if d.HasAllData {
			res.Eligible = append(res.Eligible, d)
		} else {
			res.Missing = append(res.Missing, d)
		}
	}
	return res
}
