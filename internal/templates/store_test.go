package templates

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelanni/commenter/internal/model"
)

type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// brokenKV reads fine and fails every write.
type brokenKV struct{ *memKV }

func (brokenKV) Set(context.Context, string, string) error { return errors.New("disk full") }

type unreadableKV struct{}

func (unreadableKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}
func (unreadableKV) Set(context.Context, string, string) error { return nil }

func openStore(t *testing.T, kv KV) *Store {
	t.Helper()
	s, err := Open(context.Background(), kv)
	require.NoError(t, err)
	return s
}

func ids(ts []model.CommentTemplate) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func TestOpenEmptyUsesDefaults(t *testing.T) {
	kv := newMemKV()
	s := openStore(t, kv)

	assert.Equal(t, []string{"default-unit1", "english-diagnostic-1", "english-unit-1"}, ids(s.Templates()))
	assert.Equal(t, "default-unit1", s.ActiveID())
	assert.Equal(t, "default-unit1", kv.data[ActiveKey])
	assert.Equal(t, "1", kv.data[SchemaKey])

	var persisted []model.CommentTemplate
	require.NoError(t, json.Unmarshal([]byte(kv.data[TemplatesKey]), &persisted))
	assert.Len(t, persisted, 3)
}

func TestOpenMigratesLegacyMathOnly(t *testing.T) {
	legacy := DefaultTemplate
	legacy.Kind = ""
	legacy.Name = "My math"
	raw, err := json.Marshal([]model.CommentTemplate{legacy})
	require.NoError(t, err)

	kv := newMemKV()
	kv.data[TemplatesKey] = string(raw)
	kv.data[ActiveKey] = "default-unit1"

	s := openStore(t, kv)
	got := s.Templates()
	require.Len(t, got, 3)
	assert.Equal(t, "My math", got[0].Name, "existing record is kept")
	assert.Equal(t, model.KindMath, got[0].Kind)
	if diff := cmp.Diff(EnglishDiagnostic1Template, got[1]); diff != "" {
		t.Errorf("diagnostic template mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(EnglishUnit1Template, got[2]); diff != "" {
		t.Errorf("unit template mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "1", kv.data[SchemaKey])

	// Reopening the migrated data changes nothing.
	again := openStore(t, kv)
	if diff := cmp.Diff(got, again.Templates()); diff != "" {
		t.Errorf("second open differs (-first +second):\n%s", diff)
	}
}

func TestMigrateUnknownLegacyIDBecomesMath(t *testing.T) {
	out, changed := Migrate([]model.CommentTemplate{{ID: "custom-x", Name: "X"}}, 0)
	assert.True(t, changed)
	require.Len(t, out, 4)
	assert.Equal(t, model.KindMath, out[0].Kind)
}

func TestMigrateCurrentSchemaUnchanged(t *testing.T) {
	_, changed := Migrate(Defaults(), SchemaVersion)
	assert.False(t, changed)
}

func TestOpenInvalidStoredDataFallsBack(t *testing.T) {
	for name, raw := range map[string]string{
		"garbage":  "{not json",
		"object":   `{"id":"x"}`,
		"empty":    "[]",
		"no ids":   `[{"name":"nameless"}]`,
		"null":     "null",
		"nonarray": `"text"`,
	} {
		t.Run(name, func(t *testing.T) {
			kv := newMemKV()
			kv.data[TemplatesKey] = raw
			s := openStore(t, kv)
			assert.Equal(t, ids(Defaults()), ids(s.Templates()))
		})
	}
}

func TestOpenStaleActiveFallsBackToFirst(t *testing.T) {
	kv := newMemKV()
	kv.data[ActiveKey] = "gone"
	s := openStore(t, kv)
	assert.Equal(t, "default-unit1", s.ActiveID())
	assert.Equal(t, "default-unit1", kv.data[ActiveKey])
}

func TestOpenReadError(t *testing.T) {
	_, err := Open(context.Background(), unreadableKV{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUpdateRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	s := openStore(t, kv)
	v0 := s.Version()

	name := "Renamed"
	sections := DefaultTemplate.Sections
	sections.Intro = "Sveiki, {Name}."
	updated, err := s.Update(ctx, "default-unit1", model.TemplatePatch{Name: &name, Sections: &sections})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, DefaultTemplate.TopicDescriptions, updated.TopicDescriptions, "unpatched fields kept")
	assert.Greater(t, s.Version(), v0)

	reopened := openStore(t, kv)
	got, err := reopened.Get("default-unit1")
	require.NoError(t, err)
	if diff := cmp.Diff(updated, got); diff != "" {
		t.Errorf("persisted template mismatch (-want +got):\n%s", diff)
	}

	_, err = s.Update(ctx, "nope", model.TemplatePatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, newMemKV())

	added, err := s.Add(ctx, model.CommentTemplate{Name: "Extra", Kind: model.KindEnglishUnit})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(added.ID, "custom-"))
	assert.Equal(t, added.ID, s.Templates()[3].ID)

	_, err = s.Add(ctx, model.CommentTemplate{Name: "", Kind: model.KindMath})
	assert.ErrorIs(t, err, ErrInvalidTemplate)
	_, err = s.Add(ctx, model.CommentTemplate{Name: "Bad", Kind: "physics"})
	assert.ErrorIs(t, err, ErrInvalidTemplate)
	_, err = s.Add(ctx, model.CommentTemplate{ID: "default-unit1", Name: "Dup", Kind: model.KindMath})
	assert.ErrorIs(t, err, ErrInvalidTemplate)
}

func TestSetActive(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	s := openStore(t, kv)

	v0 := s.Version()
	require.NoError(t, s.SetActive(ctx, "english-unit-1"))
	assert.Equal(t, "english-unit-1", s.Active().ID)
	assert.Equal(t, "english-unit-1", kv.data[ActiveKey])
	assert.Greater(t, s.Version(), v0)

	assert.ErrorIs(t, s.SetActive(ctx, "missing"), ErrNotFound)
	assert.Equal(t, "english-unit-1", s.ActiveID())
}

func TestDeleteActiveReassigns(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, newMemKV())

	require.NoError(t, s.Delete(ctx, "default-unit1"))
	assert.Equal(t, "english-diagnostic-1", s.ActiveID())
	assert.ErrorIs(t, s.Delete(ctx, "default-unit1"), ErrNotFound)
}

func TestDeleteAllRestoresDefaults(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	s := openStore(t, kv)

	for _, id := range ids(s.Templates()) {
		require.NoError(t, s.Delete(ctx, id))
	}
	assert.Equal(t, ids(Defaults()), ids(s.Templates()))
	assert.Equal(t, "default-unit1", s.ActiveID())

	reopened := openStore(t, kv)
	assert.Equal(t, ids(Defaults()), ids(reopened.Templates()))
}

func TestResetToDefault(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, newMemKV())
	_, err := s.Add(ctx, model.CommentTemplate{Name: "Extra", Kind: model.KindMath})
	require.NoError(t, err)
	require.NoError(t, s.SetActive(ctx, "english-unit-1"))

	s.ResetToDefault(ctx)
	assert.Equal(t, ids(Defaults()), ids(s.Templates()))
	assert.Equal(t, "default-unit1", s.ActiveID())
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	kv := brokenKV{newMemKV()}
	s := openStore(t, kv)

	added, err := s.Add(ctx, model.CommentTemplate{Name: "Unsaved", Kind: model.KindMath})
	require.NoError(t, err)
	require.NoError(t, s.SetActive(ctx, added.ID))

	assert.Equal(t, added.ID, s.Active().ID)
	assert.Len(t, s.Templates(), 4)
	assert.Empty(t, kv.data)
}

func TestVisibleFor(t *testing.T) {
	all := Defaults()
	assert.Equal(t, []string{"default-unit1"}, ids(VisibleFor(all, "M")))
	assert.Equal(t, []string{"english-diagnostic-1", "english-unit-1"}, ids(VisibleFor(all, "J")))
	assert.Equal(t, []string{"english-diagnostic-1", "english-unit-1"}, ids(VisibleFor(all, " a ")))
}

func TestActiveFor(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, newMemKV())

	tpl, ok := s.ActiveFor("J")
	require.True(t, ok)
	assert.Equal(t, "english-diagnostic-1", tpl.ID, "math active is hidden from English teachers")

	require.NoError(t, s.SetActive(ctx, "english-unit-1"))
	tpl, ok = s.ActiveFor("A")
	require.True(t, ok)
	assert.Equal(t, "english-unit-1", tpl.ID)

	tpl, ok = s.ActiveFor("")
	require.True(t, ok)
	assert.Equal(t, "english-unit-1", tpl.ID)

	require.NoError(t, s.Delete(ctx, "default-unit1"))
	_, ok = s.ActiveFor("M")
	assert.False(t, ok)
}

func TestVariables(t *testing.T) {
	math := Variables(model.KindMath)
	var tokens []string
	for _, v := range math {
		tokens = append(tokens, v.Token)
	}
	assert.Contains(t, tokens, "{MYP_Level}")
	assert.NotContains(t, tokens, "{Lis_Score}")
	assert.Len(t, Variables(""), len(variables))
	assert.Equal(t, "Var.Name_Kam", Variable{Token: "{Name_Kam}"}.MessageID())
}
