package vkdebug

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything needed to create an instance
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Validation ValidationConfig `mapstructure:"validation"`
	Log        LogConfig        `mapstructure:"log"`
}

// AppConfig describes the application to Vulkan
type AppConfig struct {
	Name        string   `mapstructure:"name"`
	EngineName  string   `mapstructure:"engine_name"`
	Version     string   `mapstructure:"version"`
	APIVersion  string   `mapstructure:"api_version"`
	Extensions  []string `mapstructure:"extensions"`
	Portability bool     `mapstructure:"portability"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level   string `mapstructure:"level"` // error, warn, info, debug, trace
	Console bool   `mapstructure:"console"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:       "vkdebug",
			EngineName: "No Engine",
			Version:    "1.0.0",
			APIVersion: "1.0.0",
		},
		Validation: ValidationConfig{
			Enabled:   true,
			Layers:    []string{ValidationLayer.String()},
			Mandatory: true,
		},
		Log: LogConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// LoadConfig reads path, when set, and VKDEBUG_* environment overrides on top
// of DefaultConfig. VKDEBUG_VALIDATION_ENABLED=false turns validation off.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("VKDEBUG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper knows about
	v.SetDefault("app.name", cfg.App.Name)
	v.SetDefault("app.engine_name", cfg.App.EngineName)
	v.SetDefault("app.version", cfg.App.Version)
	v.SetDefault("app.api_version", cfg.App.APIVersion)
	v.SetDefault("app.extensions", cfg.App.Extensions)
	v.SetDefault("app.portability", cfg.App.Portability)
	v.SetDefault("validation.enabled", cfg.Validation.Enabled)
	v.SetDefault("validation.layers", cfg.Validation.Layers)
	v.SetDefault("validation.mandatory", cfg.Validation.Mandatory)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.console", cfg.Log.Console)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return cfg, err
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return cfg, err
	}
	if _, err := ParseLogLevel(cfg.Log.Level); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// NewApp builds the App described by the configuration
func (c *Config) NewApp() (*App, error) {
	version, err := ParseVersion(c.App.Version)
	if err != nil {
		return nil, err
	}
	apiVersion, err := ParseVersion(c.App.APIVersion)
	if err != nil {
		return nil, err
	}
	app := &App{
		Name:        c.App.Name,
		EngineName:  c.App.EngineName,
		Version:     version,
		APIVersion:  apiVersion,
		Validation:  c.Validation,
		Portability: c.App.Portability,
	}
	for _, ext := range c.App.Extensions {
		app.EnableExtension(ext)
	}
	return app, nil
}
