package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pavelanni/commenter/internal/comment"
	"github.com/pavelanni/commenter/internal/completeness"
	appI18n "github.com/pavelanni/commenter/internal/i18n"
	"github.com/pavelanni/commenter/internal/model"
	"github.com/pavelanni/commenter/internal/templates"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate comments for a students file",
		RunE:  runGenerate,
	}
	f := cmd.Flags()
	f.StringP("students", "s", "", "Students file, JSON or YAML (- for JSON on stdin)")
	f.StringP("template", "t", "", "Template id (default: the active template)")
	f.String("teacher-type", "", "Teacher type; J or A selects English templates")
	f.String("class", "", "Only students of this class")
	f.String("search", "", "Only students whose name contains this text")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.String("format", "json", "Output format (json, text)")
	f.Bool("save", false, "Record the run in the SQLite export history")
	addStoreFlags(f)
	addLocaleFlags(f)
	addLogFlags(f)

	_ = cmd.MarkFlagRequired("students")
	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)
	ctx := context.Background()

	if err := appI18n.Init(v.GetString("lang")); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	students, err := loadStudents(v.GetString("students"), os.Stdin)
	if err != nil {
		return err
	}

	b, err := openBackend(ctx, v)
	if err != nil {
		return err
	}
	defer b.Close()

	ts, err := templates.Open(ctx, b.kv)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	pass, err := comment.NewEngine(ts, collationTag(v)).Run(comment.Request{
		Students:    students,
		TemplateID:  v.GetString("template"),
		TeacherType: v.GetString("teacher-type"),
		Class:       v.GetString("class"),
		Search:      v.GetString("search"),
		Labeler: func(f completeness.Field) string {
			return appI18n.Label(ctx, f.MessageID(), f.DefaultLabel())
		},
	})
	if err != nil {
		return fmt.Errorf("generate comments: %w", err)
	}
	export := pass.Export(time.Now().UTC())
	slog.Info(appI18n.Tp(ctx, "CommentsGenerated", len(pass.Comments)),
		"template_id", pass.Template.ID, "missing", len(pass.Missing))

	if v.GetBool("save") {
		if b.exports == nil {
			return fmt.Errorf("--save needs --store sqlite")
		}
		id, err := b.exports.SaveExport(ctx, export)
		if err != nil {
			return fmt.Errorf("save export: %w", err)
		}
		slog.Info("saved export", "id", id)
	}

	return writeOutput(v.GetString("output"), func(w io.Writer) error {
		if strings.ToLower(v.GetString("format")) == "text" {
			return writeText(w, export)
		}
		data, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		// Ensure trailing newline.
		_, err = fmt.Fprintln(w)
		return err
	})
}

// loadStudents reads a JSON or YAML students file. YAML is picked by the
// .yaml or .yml extension.
func loadStudents(path string, stdin io.Reader) ([]model.StudentData, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var students []model.StudentData
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &students)
	default:
		err = json.Unmarshal(data, &students)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	slog.Debug("loaded students", "path", path, "count", len(students))
	return students, nil
}

func writeOutput(outPath string, write func(io.Writer) error) error {
	var w io.Writer
	if outPath == "" || outPath == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := write(w); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// writeText prints one block per comment, then the students left out.
func writeText(w io.Writer, e model.CommentExport) error {
	for _, c := range e.Comments {
		if _, err := fmt.Fprintf(w, "%s %s\n%s\n\n", c.Student.FirstName, c.Student.LastName, c.Comment); err != nil {
			return err
		}
	}
	for _, m := range e.MissingData {
		if _, err := fmt.Fprintf(w, "# %s %s: %s\n", m.Student.FirstName, m.Student.LastName, strings.Join(m.MissingFields, ", ")); err != nil {
			return err
		}
	}
	return nil
}
