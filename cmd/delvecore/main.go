// Package main is the terminal explorer for the delvecore engine.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/samdwyer/delvecore/internal/rng"
	"github.com/samdwyer/delvecore/internal/telemetry"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Explorer will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	seed, err := resolveSeed()
	if err != nil {
		log.Fatalf("Invalid seed: %v", err)
	}

	ex, err := newExplorer(ctx, seed)
	if err != nil {
		log.Fatalf("Failed to initialize explorer: %v", err)
	}

	if err := ex.Run(ctx); err != nil {
		log.Fatalf("Explorer error: %v", err)
	}
}

// resolveSeed reads DELVECORE_SEED, falling back to a random seed.
func resolveSeed() (int64, error) {
	if raw := os.Getenv("DELVECORE_SEED"); raw != "" {
		return strconv.ParseInt(raw, 10, 64)
	}
	return rng.NewSeed()
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	apiKey := os.Getenv("HONEYCOMB_DELVECORE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_DELVECORE_DATASET")
	if dataset == "" {
		dataset = "delvecore"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
