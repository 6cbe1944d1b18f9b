// Package main is the entry point for the viewport-sync command.
package main

import (
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/stacklok/viewport-sync/cmd/viewport-sync/app"
	"github.com/stacklok/viewport-sync/internal/config"
	"github.com/stacklok/viewport-sync/internal/logger"
)

// getLogLevel parses the VIEWPORT_SYNC_LOG_LEVEL environment variable.
// Falls back to LOG_LEVEL, then to info.
func getLogLevel() zapcore.Level {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	levelStr := v.GetString("LOG_LEVEL")
	if levelStr == "" {
		levelStr = os.Getenv("LOG_LEVEL")
	}

	level, err := logger.ParseLevel(levelStr)
	if err != nil {
		logger.Warnf("Invalid LOG_LEVEL '%s', using INFO", levelStr)
	}
	return level
}

func main() {
	// Logs go to stderr so report and version output stay parseable on stdout
	logger.Initialize(getLogLevel(), false)

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
