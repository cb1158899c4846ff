package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

type ctxKey struct{}

var (
	mu         sync.RWMutex
	bundle     *i18n.Bundle
	defaultTag = language.English
)

// Init loads the translation bundle with lang as the fallback language.
func Init(lang string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("parse language %q: %w", lang, err)
	}

	b := i18n.NewBundle(tag)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return fmt.Errorf("read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return fmt.Errorf("read locale file %s: %w", e.Name(), err)
		}
		if _, err := b.ParseMessageFileBytes(data, e.Name()); err != nil {
			return fmt.Errorf("parse locale file %s: %w", e.Name(), err)
		}
		slog.Debug("loaded locale file", "file", e.Name())
	}

	mu.Lock()
	bundle = b
	defaultTag = tag
	mu.Unlock()
	return nil
}

// Languages returns the languages with a loaded locale file.
func Languages() []language.Tag {
	mu.RLock()
	defer mu.RUnlock()
	if bundle == nil {
		return nil
	}
	return bundle.LanguageTags()
}

// NewLocalizer creates a localizer preferring langs in order. Entries may be
// plain tags or Accept-Language header values.
func NewLocalizer(langs ...string) *i18n.Localizer {
	mu.RLock()
	defer mu.RUnlock()
	if bundle == nil {
		return nil
	}
	return i18n.NewLocalizer(bundle, langs...)
}

// WithLocalizer stores a localizer in the context.
func WithLocalizer(ctx context.Context, loc *i18n.Localizer) context.Context {
	return context.WithValue(ctx, ctxKey{}, loc)
}

func localizerFromCtx(ctx context.Context) *i18n.Localizer {
	if loc, ok := ctx.Value(ctxKey{}).(*i18n.Localizer); ok && loc != nil {
		return loc
	}
	return NewLocalizer(defaultLang())
}

func defaultLang() string {
	mu.RLock()
	defer mu.RUnlock()
	return defaultTag.String()
}

// T translates a message by ID, returning the ID when it is missing.
func T(ctx context.Context, msgID string) string {
	return Label(ctx, msgID, msgID)
}

// Label translates msgID, returning fallback when no translation exists or
// the bundle was never initialized.
func Label(ctx context.Context, msgID, fallback string) string {
	loc := localizerFromCtx(ctx)
	if loc == nil {
		return fallback
	}
	s, err := loc.Localize(&i18n.LocalizeConfig{MessageID: msgID})
	if err != nil {
		slog.Debug("missing translation", "id", msgID, "error", err)
		return fallback
	}
	return s
}

// Tp translates a pluralized message by ID.
func Tp(ctx context.Context, msgID string, count int) string {
	loc := localizerFromCtx(ctx)
	if loc == nil {
		return msgID
	}
	s, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
	if err != nil {
		slog.Warn("missing translation", "id", msgID, "error", err)
		return msgID
	}
	return s
}

// Tag returns the language messages resolve to in ctx.
func Tag(ctx context.Context) language.Tag {
	loc := localizerFromCtx(ctx)
	if loc == nil {
		return language.Und
	}
	_, tag, err := loc.LocalizeWithTag(&i18n.LocalizeConfig{MessageID: "TemplateNotFound"})
	if err != nil {
		return language.Make(defaultLang())
	}
	return tag
}
