package main

import (
	"fmt"
	"os"

	"github.com/celer/vkdebug"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const vkdebugLogEnv = vkdebug.LogLevelEnv

// loadConfig reads --config and applies --log-level on top of it
func loadConfig(cmd *cobra.Command) (*vkdebug.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := vkdebug.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if env := os.Getenv(vkdebugLogEnv); env != "" {
		cfg.Log.Level = env
	}
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, err
	}
	if level != "" {
		cfg.Log.Level = level
	}
	if _, err := vkdebug.ParseLogLevel(cfg.Log.Level); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *vkdebug.Config) zerolog.Logger {
	level, err := vkdebug.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return vkdebug.NewLogger(os.Stderr, level, cfg.Log.Console)
}

func setupColor(cmd *cobra.Command) error {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
	default:
		return fmt.Errorf("invalid --color value %q", mode)
	}
	return nil
}
