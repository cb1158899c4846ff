package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// EvaluationDetails holds the structured scores recorded for a test.
type EvaluationDetails struct {
	PercentageScore Score `json:"percentage_score" yaml:"percentage_score"`
	MYPScore        Score `json:"myp_score" yaml:"myp_score"`
	CambridgeScore  Score `json:"cambridge_score" yaml:"cambridge_score"`
	CambridgeScore1 Score `json:"cambridge_score_1" yaml:"cambridge_score_1"`
	CambridgeScore2 Score `json:"cambridge_score_2" yaml:"cambridge_score_2"`
}

// Assessment is one recorded assessment for a student. Keys other than the
// fixed ones (lis1, paper1_percent, ...) are kept as decoded in Fields.
type Assessment struct {
	AssessmentID      string
	Date              string
	Score             string
	EvaluationDetails *EvaluationDetails
	Fields            map[string]any
}

// MarshalJSON flattens Fields back next to the fixed keys.
func (a Assessment) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(a.Fields)+4)
	for k, v := range a.Fields {
		out[k] = v
	}
	out["assessment_id"] = a.AssessmentID
	out["date"] = a.Date
	out["score"] = a.Score
	if a.EvaluationDetails != nil {
		out["evaluation_details"] = a.EvaluationDetails
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits the fixed keys from the dynamic ones.
func (a *Assessment) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Assessment{Fields: make(map[string]any)}
	for k, v := range raw {
		switch k {
		case "assessment_id":
			a.AssessmentID = rawText(v)
		case "date":
			a.Date = rawText(v)
		case "score":
			a.Score = rawText(v)
		case "evaluation_details":
			if string(v) == "null" {
				continue
			}
			var d EvaluationDetails
			if err := json.Unmarshal(v, &d); err != nil {
				return fmt.Errorf("evaluation_details: %w", err)
			}
			a.EvaluationDetails = &d
		default:
			var x any
			if err := json.Unmarshal(v, &x); err != nil {
				return fmt.Errorf("field %s: %w", k, err)
			}
			a.Fields[k] = x
		}
	}
	return nil
}

// UnmarshalYAML does the same split for YAML student files.
func (a *Assessment) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]yaml.Node
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*a = Assessment{Fields: make(map[string]any)}
	for k, v := range raw {
		switch k {
		case "assessment_id":
			a.AssessmentID = yamlText(v)
		case "date":
			a.Date = yamlText(v)
		case "score":
			a.Score = yamlText(v)
		case "evaluation_details":
			if v.Tag == "!!null" {
				continue
			}
			var d EvaluationDetails
			if err := v.Decode(&d); err != nil {
				return fmt.Errorf("evaluation_details: %w", err)
			}
			a.EvaluationDetails = &d
		default:
			var x any
			if err := v.Decode(&x); err != nil {
				return fmt.Errorf("field %s: %w", k, err)
			}
			a.Fields[k] = x
		}
	}
	return nil
}

func rawText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	if string(v) == "null" {
		return ""
	}
	return string(v)
}

func yamlText(n yaml.Node) string {
	if n.Tag == "!!null" {
		return ""
	}
	return n.Value
}

// NameCase identifies a Lithuanian grammatical case of a student's name.
type NameCase string

const (
	CaseNominative   NameCase = "kas"
	CaseGenitive     NameCase = "ko"
	CaseAccusative   NameCase = "ka"
	CaseInstrumental NameCase = "kuo"
	CaseDative       NameCase = "kam"
	CaseLocative     NameCase = "kur"
)

// NameCases holds the declined forms of a first name.
type NameCases struct {
	Kas string `json:"kas,omitempty" yaml:"kas,omitempty"`
	Ko  string `json:"ko,omitempty" yaml:"ko,omitempty"`
	Ka  string `json:"ka,omitempty" yaml:"ka,omitempty"`
	Kuo string `json:"kuo,omitempty" yaml:"kuo,omitempty"`
	Kam string `json:"kam,omitempty" yaml:"kam,omitempty"`
	Kur string `json:"kur,omitempty" yaml:"kur,omitempty"`
}

// StudentProfile carries the profile data the generators read.
type StudentProfile struct {
	NameCases *NameCases `json:"name_cases,omitempty" yaml:"name_cases,omitempty"`
}

// StudentData is one student with their assessment history.
type StudentData struct {
	ID          string          `json:"id,omitempty" yaml:"id,omitempty"`
	FirstName   string          `json:"first_name" yaml:"first_name"`
	LastName    string          `json:"last_name" yaml:"last_name"`
	ClassName   string          `json:"class_name" yaml:"class_name"`
	Profile     *StudentProfile `json:"profile,omitempty" yaml:"profile,omitempty"`
	Assessments []Assessment    `json:"assessments" yaml:"assessments"`
}

// Name returns the declined form for c, or the first name when it is unknown.
func (s StudentData) Name(c NameCase) string {
	if s.Profile == nil || s.Profile.NameCases == nil {
		return s.FirstName
	}
	nc := s.Profile.NameCases
	var form string
	switch c {
	case CaseNominative:
		form = nc.Kas
	case CaseGenitive:
		form = nc.Ko
	case CaseAccusative:
		form = nc.Ka
	case CaseInstrumental:
		form = nc.Kuo
	case CaseDative:
		form = nc.Kam
	case CaseLocative:
		form = nc.Kur
	}
	if form == "" {
		return s.FirstName
	}
	return form
}

// Ref returns the identifying part of the student.
func (s StudentData) Ref() StudentRef {
	return StudentRef{ID: s.ID, FirstName: s.FirstName, LastName: s.LastName, ClassName: s.ClassName}
}

// StudentRef identifies a student in generated output.
type StudentRef struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ClassName string `json:"class_name"`
}

// FilterStudents keeps students of the given class ("" or "all" keeps every
// class) whose first or last name contains query, case-insensitively.
func FilterStudents(students []StudentData, class, query string) []StudentData {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []StudentData
	for _, s := range students {
		if class != "" && class != "all" && s.ClassName != class {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(s.FirstName), query) &&
			!strings.Contains(strings.ToLower(s.LastName), query) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Classes returns the sorted unique non-empty class names.
func Classes(students []StudentData) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range students {
		if s.ClassName != "" && !seen[s.ClassName] {
			seen[s.ClassName] = true
			out = append(out, s.ClassName)
		}
	}
	sort.Strings(out)
	return out
}
