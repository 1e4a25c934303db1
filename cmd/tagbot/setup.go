package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/xaenox/tagbot/internal/rules"
	"github.com/xaenox/tagbot/internal/storage"
	"github.com/xaenox/tagbot/internal/tagger"
	"github.com/xaenox/tagbot/pkg/config"
)

const defaultConfigPath = "config.yaml"

// cliLogger keeps interactive commands quiet unless --debug is set.
func cliLogger() *zap.Logger {
	if debugMode {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	return zap.NewNop()
}

// serveLogger is the structured logger for bot mode.
func serveLogger() *zap.Logger {
	if debugMode {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

// loadAppConfig reads the application config. The default config file is
// optional; an explicit --config path is not.
func loadAppConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// loadRuleSet resolves the keyword rules: the --rules flag wins, then the
// configured source (rule file or database).
func loadRuleSet(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*rules.RuleSet, error) {
	if rulesFile != "" {
		return rules.FromFile(rulesFile)
	}

	if cfg.Rules.Source == "database" {
		store, err := openStore(cfg, logger)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadRules(ctx)
	}

	return rules.FromFile(cfg.Rules.Path)
}

// openStore picks the rule store backend from the database config.
func openStore(cfg *config.Config, logger *zap.Logger) (storage.Store, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return storage.NewPostgresStore(storage.DatabaseConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		}, logger)
	case "sqlite":
		return storage.NewSQLiteStore(cfg.Database.SQLitePath, logger)
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// buildService wires config, rules and strategy into a tagger service.
func buildService(ctx context.Context, logger *zap.Logger) (*tagger.Service, *config.Config, error) {
	cfg, err := loadAppConfig()
	if err != nil {
		return nil, nil, err
	}

	rs, err := loadRuleSet(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	strategy, err := tagger.StrategyByName(cfg.Tagger.Strategy)
	if err != nil {
		return nil, nil, err
	}

	svc, err := tagger.NewService(rs, strategy, logger)
	if err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}
