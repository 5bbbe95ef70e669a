package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	UserConfigDir  = ".config/studyflow"
	UserConfigFile = "config.yaml"
)

// Loader layers defaults, the user file, an explicit file and the
// environment, in that order.
type Loader struct {
	logger *slog.Logger
	// home overrides os.UserHomeDir in tests.
	home string
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load returns the validated configuration. A missing user file is skipped
// silently; a missing explicit file is an error.
func (l *Loader) Load(explicitPath string) (*Config, error) {
	cfg := DefaultConfig()

	if userPath := l.userConfigPath(); userPath != "" {
		if userCfg, err := loadOverlay(userPath); err == nil {
			l.logger.Debug("loaded user config", slog.String("path", userPath))
			cfg.Merge(userCfg)
		} else if !errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("skipping user config", slog.String("path", userPath), slog.String("error", err.Error()))
		}
	}

	if explicitPath != "" {
		fileCfg, err := loadOverlay(explicitPath)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("loaded config", slog.String("path", explicitPath))
		cfg.Merge(fileCfg)
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) userConfigPath() string {
	home := l.home
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		home = h
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}
