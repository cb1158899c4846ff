package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/pavelanni/commenter/internal/handler"
	"github.com/pavelanni/commenter/internal/store"
	"github.com/pavelanni/commenter/internal/store/redisstore"
	"github.com/pavelanni/commenter/internal/templates"
)

// backend is the storage selected by --store. exports is nil for backends
// without export history.
type backend struct {
	kv      templates.KV
	exports handler.ExportStore
	close   func() error
}

func (b backend) Close() {
	if b.close == nil {
		return
	}
	if err := b.close(); err != nil {
		slog.Warn("failed to close store", "error", err)
	}
}

func openBackend(ctx context.Context, v *viper.Viper) (backend, error) {
	switch kind := strings.ToLower(v.GetString("store")); kind {
	case "", "sqlite":
		db, err := store.New(v.GetString("db"))
		if err != nil {
			return backend{}, fmt.Errorf("open database: %w", err)
		}
		return backend{kv: db, exports: db, close: db.Close}, nil
	case "redis":
		rs, err := redisstore.New(ctx, v.GetString("redis-addr"), v.GetString("redis-prefix"))
		if err != nil {
			return backend{}, fmt.Errorf("open redis: %w", err)
		}
		return backend{kv: rs, close: rs.Close}, nil
	case "memory":
		slog.Warn("using in-memory template store, changes are lost on exit")
		return backend{kv: store.NewMemory()}, nil
	default:
		return backend{}, fmt.Errorf("unknown store %q (want sqlite, redis or memory)", kind)
	}
}
