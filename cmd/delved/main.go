// Package main is the delvecore HTTP daemon.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/samdwyer/delvecore/internal/id"
	"github.com/samdwyer/delvecore/internal/server"
	"github.com/samdwyer/delvecore/internal/store"
	"github.com/samdwyer/delvecore/internal/telemetry"
)

type config struct {
	Host         string        `env:"DELVED_HOST" envDefault:"0.0.0.0"`
	Port         int           `env:"DELVED_PORT" envDefault:"8080"`
	DBPath       string        `env:"DELVED_DB_PATH" envDefault:"delvecore.db"`
	ReadTimeout  time.Duration `env:"DELVED_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"DELVED_WRITE_TIMEOUT" envDefault:"30s"`
}

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	setupOTelEnv()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Server will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open store at %s: %v", cfg.DBPath, err)
	}
	defer st.Close()

	s := server.New(st, id.NewUUID())

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	log.Printf("delved listening on %s (db %s)", addr, cfg.DBPath)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
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
