// Package doccheck runs document integrity checks over a markdown tree.
package doccheck

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/graziososalvare/rescuehub/internal/doccheck"
)

const defaultProbeTimeout = 10 * time.Second

// Config holds the doccheck command configuration.
type Config struct {
	Dir          string
	Probe        bool
	ProbeTimeout time.Duration
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	cfg := Config{
		Dir:          envOrDefault(lookup, []string{"RESCUEHUB_DOCS_DIR"}, "."),
		ProbeTimeout: defaultProbeTimeout,
	}

	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory of markdown pages to check")
	fs.BoolVar(&cfg.Probe, "probe", false, "probe external links over HTTP")
	fs.DurationVar(&cfg.ProbeTimeout, "probe-timeout", cfg.ProbeTimeout, "per-request timeout for link probing")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run checks the markdown tree and reports the issues found. A non-nil
// error is returned when any issue exists so the process exits non-zero.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	checker := doccheck.Checker{Root: cfg.Dir}
	if cfg.Probe {
		checker.Client = &http.Client{Timeout: cfg.ProbeTimeout}
	}

	issues, err := checker.Check(ctx)
	if err != nil {
		return fmt.Errorf("check documents: %w", err)
	}
	if len(issues) == 0 {
		fmt.Fprintln(out, "all documents are clean")
		return nil
	}

	for _, issue := range issues {
		fmt.Fprintln(out, issue.String())
	}
	return fmt.Errorf("found %d document issue(s)", len(issues))
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
