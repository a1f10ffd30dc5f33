package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/di"
	"github.com/elysenoe925-creator/NTS-PROJECT/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	stdin := flag.Bool("stdin", false, "forecast one batch read from stdin and exit")
	flag.Parse()

	if *stdin {
		os.Exit(runStdin(*configPath))
	}

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s redis=%t kafka=%t clickhouse=%t",
		cfg.Environment, cfg.Redis.Enabled, cfg.Kafka.Enabled, cfg.ClickHouse.Enabled)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(context.Background()); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}

// runStdin keeps stdout for the result; logs go to stderr.
func runStdin(configPath string) int {
	log.SetOutput(os.Stderr)

	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		log.Printf("config load failed: %v", err)
		return 1
	}
	cfg.Logger.Output = "stderr"

	runner, err := di.InitializeStdinRunner(cfg)
	if err != nil {
		log.Printf("init failed: %v", err)
		return 1
	}
	return runner.Run(context.Background(), os.Stdin, os.Stdout)
}
