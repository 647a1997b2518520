package main

import (
	"log"

	"github.com/iburimskiy/particle-field/internal/projects"
	"github.com/spf13/pflag"
)

func main() {
	cfg := projects.NewConfig()
	cfg.AddFlags(pflag.CommandLine)
	pflag.Parse()

	if err := cfg.LoadConfig(pflag.CommandLine); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	srv, err := projects.NewServer(cfg, nil, nil)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	if err := srv.Start(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
