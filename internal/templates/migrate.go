package templates

import (
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/pavelanni/commenter/internal/model"
)

// SchemaVersion is the version written next to the stored collection.
// Version 0 is any collection saved before templates carried a kind.
const SchemaVersion = 1

// Decode parses a stored collection. It reports false when raw is not a
// non-empty JSON array of templates with ids.
func Decode(raw string) ([]model.CommentTemplate, bool) {
	var stored []model.CommentTemplate
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		slog.Warn("stored templates are not a JSON array, using defaults", "error", err)
		return nil, false
	}
	out := stored[:0]
	for _, t := range stored {
		if t.ID == "" {
			slog.Warn("dropping stored template without id", "name", t.Name)
			continue
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// ParseSchema reads a stored schema version; anything unreadable is 0.
func ParseSchema(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Migrate brings a decoded collection to SchemaVersion and appends any
// built-in default the collection lacks. Existing records are never
// rewritten beyond filling a missing kind. It reports whether anything
// changed.
func Migrate(stored []model.CommentTemplate, from int) ([]model.CommentTemplate, bool) {
	out := make([]model.CommentTemplate, len(stored))
	copy(out, stored)
	changed := from < SchemaVersion

	if from < 1 {
		for i := range out {
			if out[i].Kind.Valid() {
				continue
			}
			kind, ok := KindForID(out[i].ID)
			if !ok {
				slog.Warn("stored template has no kind, treating it as math", "template_id", out[i].ID)
				kind = model.KindMath
			}
			out[i].Kind = kind
		}
	}

	have := make(map[string]bool, len(out))
	for _, t := range out {
		have[t.ID] = true
	}
	for _, d := range Defaults() {
		if !have[d.ID] {
			slog.Info("adding new default template", "template_id", d.ID)
			out = append(out, d)
			changed = true
		}
	}
	return out, changed
}
