// Package cli provides CLI commands for the casebook application.
package cli

import (
	gocontext "context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/casebook/internal/config"
	"github.com/example/casebook/internal/ctxutil"
	"github.com/example/casebook/internal/db"
	"github.com/example/casebook/internal/logging"
	"github.com/example/casebook/internal/wire"
)

// globalActorID stores the actor for the current CLI invocation.
// Set once at startup by Bootstrap().
var globalActorID string

// globalConfig and globalConfigPath hold the configuration loaded by Bootstrap().
var (
	globalConfig     *config.Config
	globalConfigPath string
)

// Bootstrap loads configuration, points the database at the configured file,
// and builds the logger handed to services. Should be called once at CLI
// startup in PersistentPreRunE.
func Bootstrap(configPath string, verbose bool) (*zap.Logger, error) {
	if configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		configPath = path
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel, verbose)
	if err != nil {
		return nil, err
	}

	db.SetPath(cfg.DBPath)
	wire.SetLogger(logger)
	globalActorID = cfg.Actor
	globalConfig = cfg
	globalConfigPath = configPath

	logger.Debug("configuration loaded",
		zap.String("config", configPath),
		zap.String("db", cfg.DBPath),
		zap.String("actor", cfg.Actor))
	return logger, nil
}

// GetActorID returns the stored actor ID from CLI startup.
func GetActorID() string {
	return globalActorID
}

// NewContext creates a context.Background() with the current actor ID embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() gocontext.Context {
	ctx := gocontext.Background()
	if globalActorID != "" {
		return ctxutil.WithActorID(ctx, globalActorID)
	}
	return ctx
}
