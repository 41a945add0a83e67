package doccheck

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("doccheck", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Dir != "." {
		t.Fatalf("Dir = %q, want .", cfg.Dir)
	}
	if cfg.Probe {
		t.Fatal("Probe = true, want false")
	}
	if cfg.ProbeTimeout != defaultProbeTimeout {
		t.Fatalf("ProbeTimeout = %v", cfg.ProbeTimeout)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	lookup := func(key string) (string, bool) {
		if key == "RESCUEHUB_DOCS_DIR" {
			return "portfolio", true
		}
		return "", false
	}

	fs := flag.NewFlagSet("doccheck", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-probe", "-probe-timeout", "2s"}, lookup)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Dir != "portfolio" {
		t.Fatalf("Dir = %q, want portfolio", cfg.Dir)
	}
	if !cfg.Probe {
		t.Fatal("Probe = false, want true")
	}
	if cfg.ProbeTimeout != 2*time.Second {
		t.Fatalf("ProbeTimeout = %v", cfg.ProbeTimeout)
	}
}

func TestRunCleanTree(t *testing.T) {
	dir := t.TempDir()
	page := "# Title\n\nSee [details](#details).\n\n## Details\n"
	if err := os.WriteFile(filepath.Join(dir, "page.md"), []byte(page), 0o644); err != nil {
		t.Fatalf("write page: %v", err)
	}

	var out bytes.Buffer
	if err := Run(context.Background(), Config{Dir: dir}, &out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "all documents are clean") {
		t.Fatalf("out = %q", out.String())
	}
}

func TestRunReportsIssues(t *testing.T) {
	dir := t.TempDir()
	page := "# Title\n\nSee [missing](#nowhere).\n"
	if err := os.WriteFile(filepath.Join(dir, "page.md"), []byte(page), 0o644); err != nil {
		t.Fatalf("write page: %v", err)
	}

	var out bytes.Buffer
	err := Run(context.Background(), Config{Dir: dir}, &out)
	if err == nil {
		t.Fatal("expected error for broken anchor")
	}
	if !strings.Contains(out.String(), "broken-anchor") {
		t.Fatalf("out = %q", out.String())
	}
}
