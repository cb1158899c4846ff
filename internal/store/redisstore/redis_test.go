package redisstore

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"
)

func TestKeyPrefix(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	defer rdb.Close()

	if got := NewWithClient(rdb, "commenter").key("commentTemplates"); got != "commenter:commentTemplates" {
		t.Errorf("expected prefixed key, got %q", got)
	}
	if got := NewWithClient(rdb, "").key("commentTemplates"); got != "commentTemplates" {
		t.Errorf("expected bare key, got %q", got)
	}
}

func TestNewUnreachable(t *testing.T) {
	if _, err := New(context.Background(), "127.0.0.1:1", "x"); err == nil {
		t.Fatal("expected ping error for unreachable server")
	}
	if _, err := New(context.Background(), "", "x"); err == nil {
		t.Fatal("expected error for empty address")
	}
}
