package main

import (
	"flag"
	"os"

	"github.com/graziososalvare/rescuehub/internal/platform/config"
	"github.com/graziososalvare/rescuehub/internal/tools/admintoken"
)

func main() {
	cfg, err := admintoken.ParseConfig(flag.CommandLine, os.Args[1:], os.LookupEnv)
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := admintoken.Run(cfg, os.Stdout); err != nil {
		config.Exitf("mint token: %v", err)
	}
}
