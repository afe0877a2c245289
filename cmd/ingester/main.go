package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/policydesk/server/internal/config"
	"codeberg.org/policydesk/server/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ingester <command> [options]")
		fmt.Println("Commands:")
		fmt.Println("  policies  - ingest policy documents from PDF files")
		fmt.Println("  all       - ingest everything")
		fmt.Println("\nOptions:")
		fmt.Println("  --path <path>  - Custom path to ingest from")
		fmt.Println("  --clear        - Clear existing data before ingesting")
		os.Exit(1)
	}

	command := os.Args[1]

	// load environment variables
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	// connect to database
	ctx := context.Background()
	db, err := pgxpool.New(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}

	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	logger.Info("connected to database")

	// route to appropriate command
	switch command {
	case "policies":
		flags := config.ParsePolicyFlags()
		if err := IngestPolicies(cfg, db, flags); err != nil {
			logger.Fatal("failed to ingest policies", "error", err)
		}

	case "all":
		flags := config.DefaultPolicyFlags()

		// check for --clear flag
		for _, arg := range os.Args[2:] {
			if arg == "--clear" {
				flags.Clear = true
			}
		}

		logger.Info("ingesting all data (policies)")

		if err := IngestPolicies(cfg, db, flags); err != nil {
			logger.Fatal("failed to ingest policies", "error", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}

	logger.Info("ingestion complete")
}
