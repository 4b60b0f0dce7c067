// Command server runs the REST and gRPC transports side by side in
// one process: .env convenience load, configuration tree from
// internal/config, then both listeners under a shared signal context
// with graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/stegowave/wav16/internal/api"
	"github.com/stegowave/wav16/internal/config"
	"github.com/stegowave/wav16/internal/grpcapi"
	"github.com/stegowave/wav16/service"
)

func main() {
	configFile := flag.String("config", envOr("SW_CONFIG", config.DefaultConfigFile), "path to the TOML configuration file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	resolvedConfig := *configFile
	if _, err := os.Stat(resolvedConfig); err != nil {
		// No config file on disk is fine; Load still applies defaults
		// and any SW__-prefixed environment overlay.
		resolvedConfig = ""
	}
	settings, err := config.Load(resolvedConfig)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	steganographyService := service.NewSteganographyService(settings.StegoWaveLib)
	audioService := service.NewAudioService()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := api.Run(ctx, settings, steganographyService, audioService); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := grpcapi.Run(ctx, settings, steganographyService); err != nil {
			errCh <- err
		}
	}()

	wg.Wait()
	close(errCh)
	for err := range errCh {
		log.Printf("transport error: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
