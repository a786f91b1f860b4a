package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/dentabook/booking-client/config"
	"github.com/dentabook/booking-client/internal/mockapi"
	"github.com/dentabook/booking-client/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(&logger.Config{
		Level:  parseLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
	})

	server := mockapi.NewServer(mockapi.Config{
		JWTSecret:   cfg.MockAPI.JWTSecret,
		TokenExpiry: cfg.MockAPI.TokenExpiry,
		RateLimit: mockapi.RateLimitConfig{
			Enabled: cfg.MockAPI.RateLimit.Enabled,
			RPS:     cfg.MockAPI.RateLimit.RPS,
			Burst:   cfg.MockAPI.RateLimit.Burst,
		},
	}, log)

	addr := fmt.Sprintf(":%d", cfg.MockAPI.Port)
	log.Info("mock backend listening", "addr", addr)
	if err := server.Engine().Run(addr); err != nil {
		log.Fatal(err, "server stopped")
	}
}

func parseLevel(level string) logger.Level {
	switch level {
	case "debug":
		return logger.DebugLevel
	case "warn":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}
