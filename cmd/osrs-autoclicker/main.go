package main

import (
	"log"
	"os"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/app"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/config"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/logger"
)

func main() {
	settings, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("Configuration load failed: %v", err)
	}

	appLogger := buildLogger(settings)
	appLogger.Info("Main", "starting", map[string]interface{}{
		"version":      app.AppVersion,
		"log_level":    settings.LogLevel,
		"profiles_dir": settings.ProfilesDir,
	})

	application, err := app.New(settings, appLogger)
	if err != nil {
		appLogger.Error("Main", err, nil)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		appLogger.Error("Main", err, nil)
		os.Exit(1)
	}

	appLogger.Info("Main", "application terminated", nil)
}

func buildLogger(settings config.Settings) logger.Logger {
	level := logger.ParseLevel(settings.LogLevel)
	if settings.JSONLogs {
		return logger.NewJSONLogger(level)
	}
	return logger.NewConsoleLogger(level)
}
