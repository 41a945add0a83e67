// Package server wires and runs the dashboard process: MongoDB registry
// store, query cache, telemetry, and the HTTP server.
package server

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/graziososalvare/rescuehub/internal/platform/config"
	"github.com/graziososalvare/rescuehub/internal/platform/otel"
	"github.com/graziososalvare/rescuehub/internal/services/dashboard"
	"github.com/graziososalvare/rescuehub/internal/services/registry"
	"github.com/graziososalvare/rescuehub/internal/services/registry/cache"
	mongostore "github.com/graziososalvare/rescuehub/internal/services/registry/storage/mongo"
	"github.com/graziososalvare/rescuehub/internal/telemetry"
	telemetrysqlite "github.com/graziososalvare/rescuehub/internal/telemetry/sqlite"
)

const (
	defaultHTTPAddr        = "localhost:8085"
	defaultTelemetryDBPath = "rescuehub-telemetry.db"
)

// mongoEnv carries the MongoDB connection settings. Credentials come from
// the environment only, never from flags.
type mongoEnv struct {
	Host       string `env:"RESCUEHUB_MONGO_HOST" envDefault:"localhost"`
	Port       int    `env:"RESCUEHUB_MONGO_PORT" envDefault:"27017"`
	Username   string `env:"RESCUEHUB_MONGO_USERNAME"`
	Password   string `env:"RESCUEHUB_MONGO_PASSWORD"`
	Database   string `env:"RESCUEHUB_MONGO_DATABASE" envDefault:"AAC"`
	AuthSource string `env:"RESCUEHUB_MONGO_AUTH_SOURCE"`
	Collection string `env:"RESCUEHUB_MONGO_COLLECTION"`
}

// Config holds the server command configuration.
type Config struct {
	HTTPAddr        string
	Mongo           mongostore.Config
	TelemetryDBPath string
	AdminSecret     string
	PushdownFilters bool
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	var mongoCfg mongoEnv
	if err := config.ParseEnv(&mongoCfg); err != nil {
		return Config{}, err
	}

	cfg := Config{
		HTTPAddr: envOrDefault(lookup, []string{"RESCUEHUB_HTTP_ADDR"}, defaultHTTPAddr),
		Mongo: mongostore.Config{
			Host:       mongoCfg.Host,
			Port:       mongoCfg.Port,
			Username:   mongoCfg.Username,
			Password:   mongoCfg.Password,
			Database:   mongoCfg.Database,
			AuthSource: mongoCfg.AuthSource,
			Collection: mongoCfg.Collection,
		},
		TelemetryDBPath: envOrDefault(lookup, []string{"RESCUEHUB_TELEMETRY_DB_PATH"}, defaultTelemetryDBPath),
		AdminSecret:     envOrDefault(lookup, []string{"RESCUEHUB_ADMIN_TOKEN_SECRET"}, ""),
	}

	// Rescue filters apply in memory over the cached base frame unless
	// pushdown is requested.
	pushdown := false
	if raw := envOrDefault(lookup, []string{"RESCUEHUB_DB_FILTERS"}, ""); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse RESCUEHUB_DB_FILTERS: %w", err)
		}
		pushdown = parsed
	}
	cfg.PushdownFilters = pushdown

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.TelemetryDBPath, "telemetry-db", cfg.TelemetryDBPath, "telemetry SQLite path (empty disables telemetry)")
	fs.BoolVar(&cfg.PushdownFilters, "db-filters", cfg.PushdownFilters, "apply rescue filters as database queries")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run starts the dashboard server and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, "rescuehub-dashboard")
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	store, err := mongostore.Open(ctx, cfg.Mongo)
	if err != nil {
		return fmt.Errorf("open animal store: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Printf("close animal store: %v", err)
		}
	}()

	var emitter *telemetry.Emitter
	if strings.TrimSpace(cfg.TelemetryDBPath) != "" {
		events, err := telemetrysqlite.Open(cfg.TelemetryDBPath)
		if err != nil {
			return fmt.Errorf("open telemetry store: %w", err)
		}
		defer events.Close()
		emitter = telemetry.NewEmitter(events)
	}

	service, err := registry.New(registry.Config{
		Store:           store,
		Cache:           cache.New(),
		Telemetry:       emitter,
		PushdownFilters: cfg.PushdownFilters,
	})
	if err != nil {
		return fmt.Errorf("init registry: %w", err)
	}

	var adminSecret []byte
	if strings.TrimSpace(cfg.AdminSecret) != "" {
		adminSecret = []byte(cfg.AdminSecret)
	}
	server, err := dashboard.NewServer(dashboard.Config{
		HTTPAddr:    cfg.HTTPAddr,
		AdminSecret: adminSecret,
	}, service)
	if err != nil {
		return fmt.Errorf("init dashboard server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve dashboard: %w", err)
	}
	return nil
}

func envOrDefault(lookup EnvLookup, keys []string, fallback string) string {
	for _, key := range keys {
		if lookup == nil {
			break
		}
		value, ok := lookup(key)
		if ok {
			trimmed := strings.TrimSpace(value)
			if trimmed != "" {
				return trimmed
			}
		}
	}
	return fallback
}
