// Package seed imports an AAC outcomes CSV export into the animals
// collection.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/graziososalvare/rescuehub/internal/animal"
	"github.com/graziososalvare/rescuehub/internal/platform/config"
	mongostore "github.com/graziososalvare/rescuehub/internal/services/registry/storage/mongo"
	"github.com/graziososalvare/rescuehub/internal/telemetry"
	telemetrysqlite "github.com/graziososalvare/rescuehub/internal/telemetry/sqlite"
)

const defaultBatchSize = 500

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

// Config holds the seed command configuration.
type Config struct {
	CSVPath         string
	BatchSize       int
	Mongo           mongostore.Config
	TelemetryDBPath string
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
		BatchSize: defaultBatchSize,
		Mongo: mongostore.Config{
			Host:       mongoCfg.Host,
			Port:       mongoCfg.Port,
			Username:   mongoCfg.Username,
			Password:   mongoCfg.Password,
			Database:   mongoCfg.Database,
			AuthSource: mongoCfg.AuthSource,
			Collection: mongoCfg.Collection,
		},
		TelemetryDBPath: envOrDefault(lookup, []string{"RESCUEHUB_TELEMETRY_DB_PATH"}, ""),
	}

	fs.StringVar(&cfg.CSVPath, "csv", "", "path to the AAC outcomes CSV export")
	fs.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "records per insert batch")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.CSVPath) == "" {
		return Config{}, errors.New("-csv is required")
	}
	if cfg.BatchSize < 1 {
		return Config{}, errors.New("-batch-size must be positive")
	}
	return cfg, nil
}

// Run imports the CSV into the animals collection.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	file, err := os.Open(cfg.CSVPath)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	records, err := animal.ReadCSV(file)
	if err != nil {
		return fmt.Errorf("decode csv: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "no records to import")
		return nil
	}

	store, err := mongostore.Open(ctx, cfg.Mongo)
	if err != nil {
		return fmt.Errorf("open animal store: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Printf("close animal store: %v", err)
		}
	}()

	var inserted int64
	for start := 0; start < len(records); start += cfg.BatchSize {
		end := start + cfg.BatchSize
		if end > len(records) {
			end = len(records)
		}
		count, err := store.InsertMany(ctx, records[start:end])
		if err != nil {
			return fmt.Errorf("insert batch at %d: %w", start, err)
		}
		inserted += count
	}

	if strings.TrimSpace(cfg.TelemetryDBPath) != "" {
		events, err := telemetrysqlite.Open(cfg.TelemetryDBPath)
		if err != nil {
			return fmt.Errorf("open telemetry store: %w", err)
		}
		defer events.Close()
		emitter := telemetry.NewEmitter(events)
		if err := emitter.Emit(ctx, telemetry.Event{
			Source:  "seed",
			Kind:    "seed.completed",
			Message: fmt.Sprintf("imported %d animal records", inserted),
		}); err != nil {
			log.Printf("emit telemetry: %v", err)
		}
	}

	fmt.Fprintf(out, "imported %d of %d records\n", inserted, len(records))
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
