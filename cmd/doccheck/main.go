// Package main checks a markdown document tree for broken anchors,
// missing images, and malformed external links.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	doccheckcmd "github.com/graziososalvare/rescuehub/internal/cmd/doccheck"
	"github.com/graziososalvare/rescuehub/internal/platform/config"
)

func main() {
	cfg, err := doccheckcmd.ParseConfig(flag.CommandLine, os.Args[1:], os.LookupEnv)
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := doccheckcmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("%v", err)
	}
}
