package main

import (
	"fmt"
	"log"

	"github.com/LYYYYL/AddressValidator/internal/config"
	"github.com/LYYYYL/AddressValidator/internal/countries"
	"github.com/LYYYYL/AddressValidator/internal/logging"
	"github.com/LYYYYL/AddressValidator/internal/telemetry"
	"github.com/LYYYYL/AddressValidator/internal/web"
)

func main() {
	fmt.Println("=== Address Validation API ===")

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(settings.LogLevel, settings.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	webConfig := web.DefaultConfig()
	if path := config.GetEnv("WEB_CONFIG", ""); path != "" {
		if webConfig, err = web.LoadConfig(path); err != nil {
			log.Fatalf("Failed to load web config: %v", err)
		}
	}

	metrics := telemetry.NewMetrics()
	validator := countries.NewValidator(settings, logger, metrics)

	server, err := web.NewServer(webConfig, validator, logger, metrics)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	fmt.Printf("Server: http://%s\n", server.Addr())
	fmt.Printf("Address parser: %s\n", settings.AddressParser)
	fmt.Printf("Countries: %v\n", validator.Registry().Countries())
	fmt.Printf("Metrics enabled: %v\n", webConfig.Features.MetricsEnabled)

	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
