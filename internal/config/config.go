package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppName names the application directory and single-instance lock.
const AppName = "Restie"

// Config holds application configuration. User-facing break settings live in
// the settings store instead.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Log       LogConfig       `mapstructure:"log"`
	Storage   StorageConfig   `mapstructure:"storage"`
	History   HistoryConfig   `mapstructure:"history"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	ID   string `mapstructure:"id"`
}

type SchedulerConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type StorageConfig struct {
	SettingsPath string `mapstructure:"settings_path"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from an optional file and RESTIE_* environment
// variables on top of defaults. configDir is the OS configuration directory
// used to derive default file locations.
func Load(configFile, configDir string) (Config, error) {
	v := viper.New()
	setDefaults(v, configDir)

	v.SetEnvPrefix("RESTIE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	appDir := filepath.Join(configDir, AppName)

	v.SetDefault("app.name", AppName)
	v.SetDefault("app.id", "com.restie.app")
	v.SetDefault("scheduler.tick_interval", 500*time.Millisecond)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("storage.settings_path", filepath.Join(appDir, "settings.yaml"))
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", filepath.Join(appDir, "history.db"))
}

// Validate checks if the configuration is valid.
func (cfg Config) Validate() error {
	if cfg.Scheduler.TickInterval <= 0 || cfg.Scheduler.TickInterval > 500*time.Millisecond {
		return fmt.Errorf("scheduler tick interval must be in (0, 500ms], got %v", cfg.Scheduler.TickInterval)
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", cfg.Log.Format)
	}
	if cfg.History.Enabled && cfg.History.Path == "" {
		return fmt.Errorf("history path cannot be empty when history is enabled")
	}
	return nil
}
