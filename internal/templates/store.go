// Package templates keeps the collection of comment templates and the
// active selection, persisted through a key-value store.
package templates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pavelanni/commenter/internal/model"
)

// Storage keys.
const (
	TemplatesKey = "commentTemplates"
	ActiveKey    = "activeCommentTemplateId"
	SchemaKey    = "commentTemplatesSchema"
)

var (
	// ErrNotFound is returned for an unknown template id.
	ErrNotFound = errors.New("template not found")
	// ErrInvalidTemplate is returned when a new template fails validation.
	ErrInvalidTemplate = errors.New("invalid template")
)

var validate = validator.New()

// KV is the durable key-value store behind the collection.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Store holds the template collection in memory and writes every change
// through to a KV. Write failures are logged and never undo the change.
type Store struct {
	kv KV

	mu        sync.RWMutex
	templates []model.CommentTemplate
	activeID  string
	version   uint64
}

// Open loads the collection from kv, falling back to the defaults when the
// stored data is absent or invalid, and migrating it otherwise.
func Open(ctx context.Context, kv KV) (*Store, error) {
	s := &Store{kv: kv}

	raw, found, err := kv.Get(ctx, TemplatesKey)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	var loaded []model.CommentTemplate
	dirty := true
	if found {
		if stored, ok := Decode(raw); ok {
			schema, _, err := kv.Get(ctx, SchemaKey)
			if err != nil {
				return nil, fmt.Errorf("read template schema: %w", err)
			}
			loaded, dirty = Migrate(stored, ParseSchema(schema))
		}
	}
	if loaded == nil {
		loaded = Defaults()
	}
	s.templates = loaded

	activeID, _, err := kv.Get(ctx, ActiveKey)
	if err != nil {
		return nil, fmt.Errorf("read active template: %w", err)
	}
	s.activeID = activeID
	if s.indexOf(activeID) < 0 {
		s.activeID = s.templates[0].ID
		s.persistActive(ctx)
	}

	if dirty {
		s.persistTemplates(ctx)
	}
	slog.Info("loaded comment templates", "count", len(s.templates), "active", s.activeID)
	return s, nil
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.templates {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistTemplates(ctx context.Context) {
	data, err := json.Marshal(s.templates)
	if err != nil {
		slog.Warn("failed to encode templates", "error", err)
		return
	}
	if err := s.kv.Set(ctx, TemplatesKey, string(data)); err != nil {
		slog.Warn("failed to save templates", "error", err)
		return
	}
	if err := s.kv.Set(ctx, SchemaKey, strconv.Itoa(SchemaVersion)); err != nil {
		slog.Warn("failed to save template schema", "error", err)
	}
}

func (s *Store) persistActive(ctx context.Context) {
	if err := s.kv.Set(ctx, ActiveKey, s.activeID); err != nil {
		slog.Warn("failed to save active template", "template_id", s.activeID, "error", err)
	}
}

// Version increases on every change to the collection or the selection.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Templates returns a copy of the collection in order.
func (s *Store) Templates() []model.CommentTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.CommentTemplate, len(s.templates))
	copy(out, s.templates)
	return out
}

// Get returns the template with id.
func (s *Store) Get(id string) (model.CommentTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.CommentTemplate{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.templates[i], nil
}

// ActiveID returns the id of the active template.
func (s *Store) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Active returns the active template.
func (s *Store) Active() model.CommentTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.templates[s.indexOf(s.activeID)]
}

// SetActive selects the template with id.
func (s *Store) SetActive(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if s.activeID == id {
		return nil
	}
	s.activeID = id
	s.version++
	s.persistActive(ctx)
	return nil
}

// Update merges patch into the template with id and returns the result.
func (s *Store) Update(ctx context.Context, id string, patch model.TemplatePatch) (model.CommentTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.CommentTemplate{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.templates[i] = patch.Apply(s.templates[i])
	s.version++
	s.persistTemplates(ctx)
	return s.templates[i], nil
}

// Add appends t. An empty id gets a generated one.
func (s *Store) Add(ctx context.Context, t model.CommentTemplate) (model.CommentTemplate, error) {
	t.ID = strings.TrimSpace(t.ID)
	if t.ID == "" {
		t.ID = "custom-" + uuid.NewString()
	}
	t.Name = strings.TrimSpace(t.Name)
	if err := validate.Struct(t); err != nil {
		return model.CommentTemplate{}, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(t.ID) >= 0 {
		return model.CommentTemplate{}, fmt.Errorf("%w: id %s already exists", ErrInvalidTemplate, t.ID)
	}
	s.templates = append(s.templates, t)
	s.version++
	s.persistTemplates(ctx)
	return t, nil
}

// Delete removes the template with id. Removing the last template restores
// the defaults; removing the active one selects the first remaining.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	remaining := make([]model.CommentTemplate, 0, len(s.templates)-1)
	remaining = append(remaining, s.templates[:i]...)
	remaining = append(remaining, s.templates[i+1:]...)
	if len(remaining) == 0 {
		slog.Info("last template deleted, restoring defaults")
		remaining = Defaults()
	}
	s.templates = remaining
	s.version++
	s.persistTemplates(ctx)

	if id == s.activeID || s.indexOf(s.activeID) < 0 {
		s.activeID = s.templates[0].ID
		s.persistActive(ctx)
	}
	return nil
}

// ResetToDefault replaces the collection with the defaults and selects the
// math template.
func (s *Store) ResetToDefault(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = Defaults()
	s.activeID = DefaultTemplate.ID
	s.version++
	s.persistTemplates(ctx)
	s.persistActive(ctx)
}
