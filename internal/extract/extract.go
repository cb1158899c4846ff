// Package extract pulls typed score bundles out of a student's raw
// assessment history.
package extract

import "github.com/pavelanni/commenter/internal/model"

// Assessment slots read by the generators.
const (
	SlotSD1 = "sd1"
	SlotSD2 = "sd2"
	SlotSD3 = "sd3"
	SlotP1  = "p1"
	SlotD1  = "d1"
	SlotT1  = "t1"
)

// DetailField names a key of evaluation_details.
type DetailField string

const (
	PercentageScore DetailField = "percentage_score"
	MYPScore        DetailField = "myp_score"
	CambridgeScore  DetailField = "cambridge_score"
	CambridgeScore1 DetailField = "cambridge_score_1"
	CambridgeScore2 DetailField = "cambridge_score_2"
)

// EnglishField names a dynamic numeric field of an English test.
type EnglishField string

const (
	Lis1          EnglishField = "lis1"
	Lis2          EnglishField = "lis2"
	Read          EnglishField = "read"
	Voc1          EnglishField = "voc1"
	Voc2          EnglishField = "voc2"
	Gr1           EnglishField = "gr1"
	Gr2           EnglishField = "gr2"
	Gr3           EnglishField = "gr3"
	Paper1Percent EnglishField = "paper1_percent"
	Paper2Percent EnglishField = "paper2_percent"
	Paper3Percent EnglishField = "paper3_percent"
	TotalPercent  EnglishField = "total_percent"
	TotalScore    EnglishField = "total_score"
)

const (
	// componentMax is the max of each listening, vocabulary and grammar item.
	componentMax = 5
	// readingMax is the max of the single reading item.
	readingMax = 10
)

// Latest returns the most recent assessment for slot, or nil. Dates compare
// as strings; on equal dates the earlier entry wins.
func Latest(assessments []model.Assessment, slot string) *model.Assessment {
	var best *model.Assessment
	for i := range assessments {
		a := &assessments[i]
		if a.AssessmentID != slot {
			continue
		}
		if best == nil || a.Date > best.Date {
			best = a
		}
	}
	return best
}

// AssessmentValue returns evaluation_details[field] of the latest assessment
// for slot.
func AssessmentValue(assessments []model.Assessment, slot string, field DetailField) model.Score {
	a := Latest(assessments, slot)
	if a == nil || a.EvaluationDetails == nil {
		return model.None
	}
	d := a.EvaluationDetails
	switch field {
	case PercentageScore:
		return d.PercentageScore
	case MYPScore:
		return d.MYPScore
	case CambridgeScore:
		return d.CambridgeScore
	case CambridgeScore1:
		return d.CambridgeScore1
	case CambridgeScore2:
		return d.CambridgeScore2
	}
	return model.None
}

// EnglishTestValue returns a numeric field stored directly on the latest
// assessment for slot. Strings, booleans and NaN count as missing.
func EnglishTestValue(assessments []model.Assessment, slot string, field EnglishField) model.Score {
	a := Latest(assessments, slot)
	if a == nil {
		return model.None
	}
	switch v := a.Fields[string(field)].(type) {
	case float64:
		return model.Some(v)
	case float32:
		return model.Some(float64(v))
	case int:
		return model.Some(float64(v))
	case int64:
		return model.Some(float64(v))
	case uint64:
		return model.Some(float64(v))
	}
	return model.None
}

// RawScore parses the raw score string of the latest assessment for slot.
func RawScore(assessments []model.Assessment, slot string) model.Score {
	a := Latest(assessments, slot)
	if a == nil {
		return model.None
	}
	return model.ParseScore(a.Score)
}

// Math builds the math bundle from slots sd1, sd2, sd3 and p1.
func Math(assessments []model.Assessment) model.MathTestData {
	return model.MathTestData{
		SD1P:   AssessmentValue(assessments, SlotSD1, PercentageScore),
		SD1MYP: AssessmentValue(assessments, SlotSD1, MYPScore),
		SD1C1:  AssessmentValue(assessments, SlotSD1, CambridgeScore1),
		SD1C2:  AssessmentValue(assessments, SlotSD1, CambridgeScore2),
		SD2P:   AssessmentValue(assessments, SlotSD2, PercentageScore),
		SD2MYP: AssessmentValue(assessments, SlotSD2, MYPScore),
		SD2C:   AssessmentValue(assessments, SlotSD2, CambridgeScore),
		SD3P:   AssessmentValue(assessments, SlotSD3, PercentageScore),
		SD3MYP: AssessmentValue(assessments, SlotSD3, MYPScore),
		SD3C:   AssessmentValue(assessments, SlotSD3, CambridgeScore),
		P1:     RawScore(assessments, SlotP1),
	}
}

// EnglishDiagnostic builds the diagnostic bundle from slot d1.
func EnglishDiagnostic(assessments []model.Assessment) model.EnglishDiagnosticData {
	return model.EnglishDiagnosticData{
		D1Paper1Percent: EnglishTestValue(assessments, SlotD1, Paper1Percent),
		D1Paper2Percent: EnglishTestValue(assessments, SlotD1, Paper2Percent),
		D1Paper3Percent: EnglishTestValue(assessments, SlotD1, Paper3Percent),
		D1TotalPercent:  EnglishTestValue(assessments, SlotD1, TotalPercent),
	}
}

// EnglishUnit1 builds the unit 1 bundle from slot t1.
func EnglishUnit1(assessments []model.Assessment) model.EnglishUnit1Data {
	get := func(f EnglishField) model.Score {
		return EnglishTestValue(assessments, SlotT1, f)
	}
	var d model.EnglishUnit1Data
	d.T1Lis, d.T1LisMax = Combine(componentMax, get(Lis1), get(Lis2))
	d.T1Read, d.T1ReadMax = Combine(readingMax, get(Read))
	d.T1Voc, d.T1VocMax = Combine(componentMax, get(Voc1), get(Voc2))
	d.T1Gr, d.T1GrMax = Combine(componentMax, get(Gr1), get(Gr2), get(Gr3))
	d.T1TotalScore = get(TotalScore)
	d.T1TotalPercent = get(TotalPercent)
	return d
}

// Combine sums the present parts, each adding perPart to the max. With no
// part present the sum is missing and the max is 0; one present part is
// enough for a sum.
func Combine(perPart float64, parts ...model.Score) (model.Score, float64) {
	var sum, total float64
	seen := false
	for _, p := range parts {
		v, ok := p.Get()
		if !ok {
			continue
		}
		seen = true
		sum += v
		total += perPart
	}
	if !seen {
		return model.None, 0
	}
	return model.Some(sum), total
}
