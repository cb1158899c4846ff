package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/language"

	"github.com/pavelanni/commenter/internal/comment"
	"github.com/pavelanni/commenter/internal/handler"
	appI18n "github.com/pavelanni/commenter/internal/i18n"
	"github.com/pavelanni/commenter/internal/model"
	"github.com/pavelanni/commenter/internal/templates"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "commenter",
		Short: "Template-driven assessment comments for teachers",
	}

	serve := serveCmd()
	root.AddCommand(serve, generateCmd(), templatesCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `commenter --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.String("base-path", "", "URL prefix for sub-path deployments (e.g. /comments)")
	f.String("admin-password", "", "Password for template changes (or set COMMENTER_ADMIN_PASSWORD)")
	addStoreFlags(f)
	addLocaleFlags(f)
	addLogFlags(f)
	return cmd
}

func addStoreFlags(f *pflag.FlagSet) {
	f.String("store", "sqlite", "Template store backend (sqlite, redis, memory)")
	f.String("db", "commenter.db", "SQLite database path")
	f.String("redis-addr", "localhost:6379", "Redis address for --store redis")
	f.String("redis-prefix", "commenter", "Key prefix for --store redis")
}

func addLocaleFlags(f *pflag.FlagSet) {
	f.StringP("lang", "l", "lt", "Default label language (en, lt)")
	f.String("collation", "lt", "Language used to order student names")
}

func addLogFlags(f *pflag.FlagSet) {
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("COMMENTER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("commenter")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/commenter")
	v.AddConfigPath("/etc/commenter")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// collationTag parses the collation flag, falling back to Lithuanian.
func collationTag(v *viper.Viper) language.Tag {
	raw := v.GetString("collation")
	tag, err := language.Parse(raw)
	if err != nil {
		slog.Warn("invalid collation, using lt", "collation", raw, "error", err)
		return comment.DefaultCollation
	}
	return tag
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)
	ctx := context.Background()

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
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

	cfg := model.ServerConfig{Lang: lang, Collation: v.GetString("collation")}
	if pw := v.GetString("admin-password"); pw != "" {
		cfg.AdminPasswordHash, err = bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
	} else {
		slog.Warn("no admin password set, template changes are unauthenticated")
	}

	h := handler.New(ts, comment.NewEngine(ts, collationTag(v)), b.exports, cfg)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	basePath := strings.TrimRight(v.GetString("base-path"), "/")
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if basePath != "" {
		r.Route(basePath, h.Routes)
	} else {
		h.Routes(r)
	}

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"store", v.GetString("store"),
		"lang", lang,
		"collation", cfg.Collation,
		"active_template", ts.ActiveID(),
		"base_path", basePath,
	)
	return http.ListenAndServe(addr, r)
}
