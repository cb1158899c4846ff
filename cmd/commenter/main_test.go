package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pavelanni/commenter/internal/model"
	"github.com/pavelanni/commenter/internal/store"
	"github.com/pavelanni/commenter/internal/templates"
)

const studentsYAML = `
- first_name: Jonas
  last_name: Jonaitis
  class_name: 7A
  profile:
    name_cases:
      kam: Jonui
  assessments:
    - assessment_id: sd1
      date: "2026-09-10"
      evaluation_details:
        myp_score: 6
        cambridge_score_1: 1
        cambridge_score_2: 0.5
    - assessment_id: t1
      date: "2026-10-01"
      lis1: 4
      read: 7
`

func TestLoadStudentsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.yaml")
	if err := os.WriteFile(path, []byte(studentsYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	students, err := loadStudents(path, nil)
	if err != nil {
		t.Fatalf("loadStudents: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("expected 1 student, got %d", len(students))
	}
	s := students[0]
	if s.Name(model.CaseDative) != "Jonui" {
		t.Errorf("expected dative Jonui, got %q", s.Name(model.CaseDative))
	}
	if got := s.Assessments[0].EvaluationDetails.CambridgeScore2; got != model.Some(0.5) {
		t.Errorf("expected cambridge_score_2 0.5, got %v", got)
	}
	if _, ok := s.Assessments[1].Fields["lis1"]; !ok {
		t.Errorf("expected dynamic field lis1, got %v", s.Assessments[1].Fields)
	}
}

func TestLoadStudentsJSONStdin(t *testing.T) {
	in := strings.NewReader(`[{"first_name":"Ona","last_name":"Onaitė","class_name":"7B","assessments":[]}]`)
	students, err := loadStudents("-", in)
	if err != nil {
		t.Fatalf("loadStudents: %v", err)
	}
	if len(students) != 1 || students[0].FirstName != "Ona" {
		t.Errorf("unexpected students: %+v", students)
	}

	if _, err := loadStudents("-", strings.NewReader("{")); err == nil {
		t.Error("expected parse error")
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	err := writeText(&buf, model.CommentExport{
		Comments: []model.GeneratedComment{{
			Student: model.StudentRef{FirstName: "Jonas", LastName: "Jonaitis"},
			Comment: "Gerai dirbo.",
		}},
		MissingData: []model.MissingStudent{{
			Student:       model.StudentRef{FirstName: "Ona", LastName: "Onaitė"},
			MissingFields: []string{"SD1 MYP", "SD2 MYP"},
		}},
	})
	if err != nil {
		t.Fatalf("writeText: %v", err)
	}
	want := "Jonas Jonaitis\nGerai dirbo.\n\n# Ona Onaitė: SD1 MYP, SD2 MYP\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestListTemplates(t *testing.T) {
	ts, err := templates.Open(context.Background(), store.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := listTemplates(&buf, ts); err != nil {
		t.Fatalf("listTemplates: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 rows, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[1], "*") || !strings.Contains(lines[1], "default-unit1") {
		t.Errorf("expected active math template first, got %q", lines[1])
	}
}
