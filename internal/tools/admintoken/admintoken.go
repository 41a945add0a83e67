// Package admintoken mints bearer tokens for the dashboard admin API.
package admintoken

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/graziososalvare/rescuehub/internal/platform/authtoken"
)

const defaultTTL = time.Hour

// Config holds configuration for admin token minting.
type Config struct {
	Secret  string
	Subject string
	TTL     time.Duration
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses environment and flags into a Config. The signing
// secret comes from the environment only, matching the server.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	cfg := Config{
		Subject: "admin",
		TTL:     defaultTTL,
	}
	if lookup != nil {
		if value, ok := lookup("RESCUEHUB_ADMIN_TOKEN_SECRET"); ok {
			cfg.Secret = strings.TrimSpace(value)
		}
	}

	fs.StringVar(&cfg.Subject, "subject", cfg.Subject, "token subject")
	fs.DurationVar(&cfg.TTL, "ttl", cfg.TTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run mints the token and writes it to out.
func Run(cfg Config, out io.Writer) error {
	if cfg.Secret == "" {
		return errors.New("RESCUEHUB_ADMIN_TOKEN_SECRET is required")
	}
	if strings.TrimSpace(cfg.Subject) == "" {
		return errors.New("subject must not be empty")
	}
	if cfg.TTL <= 0 {
		return errors.New("ttl must be greater than zero")
	}
	if out == nil {
		return errors.New("output is required")
	}

	token, err := authtoken.Issue([]byte(cfg.Secret), cfg.Subject, cfg.TTL)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
