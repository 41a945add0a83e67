package seed

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfigRequiresCSV(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil, nil); err == nil {
		t.Fatal("expected error without -csv")
	}
}

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-csv", "aac_shelter_outcomes.csv"}, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.CSVPath != "aac_shelter_outcomes.csv" {
		t.Fatalf("CSVPath = %q", cfg.CSVPath)
	}
	if cfg.BatchSize != defaultBatchSize {
		t.Fatalf("BatchSize = %d, want %d", cfg.BatchSize, defaultBatchSize)
	}
	if cfg.Mongo.Host != "localhost" || cfg.Mongo.Database != "AAC" {
		t.Fatalf("Mongo = %+v", cfg.Mongo)
	}
	if cfg.TelemetryDBPath != "" {
		t.Fatalf("TelemetryDBPath = %q, want empty", cfg.TelemetryDBPath)
	}
}

func TestParseConfigRejectsBadBatchSize(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-csv", "data.csv", "-batch-size", "0"}, nil); err == nil {
		t.Fatal("expected error for batch size 0")
	}
}

func TestParseConfigEnvCredentials(t *testing.T) {
	t.Setenv("RESCUEHUB_MONGO_USERNAME", "aacuser")
	t.Setenv("RESCUEHUB_MONGO_PASSWORD", "s3cret")

	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-csv", "data.csv"}, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Mongo.Username != "aacuser" || cfg.Mongo.Password != "s3cret" {
		t.Fatalf("Mongo credentials = %+v", cfg.Mongo)
	}
}

func TestRunMissingCSV(t *testing.T) {
	cfg := Config{CSVPath: filepath.Join(t.TempDir(), "gone.csv"), BatchSize: 10}
	if err := Run(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for missing csv")
	}
}

func TestRunEmptyCSVSkipsImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("name,breed\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	var out bytes.Buffer
	// No store is opened for an empty export, so no Mongo config is needed.
	if err := Run(context.Background(), Config{CSVPath: path, BatchSize: 10}, &out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.String() != "no records to import\n" {
		t.Fatalf("out = %q", out.String())
	}
}
