package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init("en"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return WithLocalizer(context.Background(), NewLocalizer(lang))
}

func TestTranslateFieldLabels(t *testing.T) {
	tests := []struct {
		lang string
		id   string
		want string
	}{
		{"en", "Field.t1Voc", "T1 Vocabulary"},
		{"lt", "Field.t1Voc", "T1 žodynas"},
		{"en", "Field.sd1c2", "SD1 Cambridge 2"},
		{"lt", "Field.d1TotalPercent", "D1 viso %"},
	}
	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.id, func(t *testing.T) {
			ctx := initLang(t, tt.lang)
			if got := T(ctx, tt.id); got != tt.want {
				t.Errorf("T(%s) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestLabelFallback(t *testing.T) {
	ctx := initLang(t, "en")

	if got := Label(ctx, "Field.nope", "fallback"); got != "fallback" {
		t.Errorf("Label = %q, want fallback", got)
	}
	if got := T(ctx, "NonExistentKey"); got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}

func TestPluralTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	if got := Tp(ctx, "CommentsGenerated", 1); got != "Generated 1 comment" {
		t.Errorf("Tp(1) = %q", got)
	}
	if got := Tp(ctx, "CommentsGenerated", 5); got != "Generated 5 comments" {
		t.Errorf("Tp(5) = %q", got)
	}

	ctx = initLang(t, "lt")
	if got := Tp(ctx, "CommentsGenerated", 3); got != "Sugeneruoti 3 komentarai" {
		t.Errorf("Tp(lt, 3) = %q", got)
	}
}

func TestMiddlewarePicksLanguage(t *testing.T) {
	if err := Init("en"); err != nil {
		t.Fatalf("Init: %v", err)
	}

	var got string
	h := Middleware("en")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = T(r.Context(), "Field.t1Gr")
	}))

	tests := []struct {
		name   string
		target string
		accept string
		want   string
	}{
		{"default", "/", "", "T1 Grammar"},
		{"accept header", "/", "lt-LT,lt;q=0.9", "T1 gramatika"},
		{"query wins", "/?lang=en", "lt", "T1 Grammar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
