package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"synthevix/internal/storage"
)

const fileName = "config.yaml"

type GeneralConfig struct {
	Username string `yaml:"username"`
}

type ThemeConfig struct {
	Active string `yaml:"active"`
}

type QuestConfig struct {
	XPMultiplier          float64 `yaml:"xp_multiplier"`
	StreakResetHour       int     `yaml:"streak_reset_hour"`
	DailyChallengeEnabled bool    `yaml:"daily_challenge_enabled"`
}

type StorageConfig struct {
	DBPath    string `yaml:"db_path"`
	BackupDir string `yaml:"backup_dir"`
	// BackupSchedule is a cron expression (or @daily style descriptor). Empty disables
	// automatic backups.
	BackupSchedule string `yaml:"backup_schedule"`
	BackupKeep     int    `yaml:"backup_keep"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	HomeDir string `yaml:"-"`

	General GeneralConfig `yaml:"general"`
	Theme   ThemeConfig   `yaml:"theme"`
	Quest   QuestConfig   `yaml:"quest"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// envOverrides is read with caarlos0/env; pointer fields stay nil when unset.
type envOverrides struct {
	Home         string   `env:"SYNTHEVIX_HOME"`
	DBPath       string   `env:"SYNTHEVIX_DB"`
	LogLevel     string   `env:"SYNTHEVIX_LOG_LEVEL"`
	Theme        string   `env:"SYNTHEVIX_THEME"`
	XPMultiplier *float64 `env:"SYNTHEVIX_XP_MULTIPLIER"`
}

func Default(home string) Config {
	return Config{
		HomeDir: home,
		General: GeneralConfig{Username: "Commander"},
		Theme:   ThemeConfig{Active: "cyberpunk"},
		Quest: QuestConfig{
			XPMultiplier:          1.0,
			StreakResetHour:       4,
			DailyChallengeEnabled: true,
		},
		Storage: StorageConfig{
			DBPath:         filepath.Join(home, "data.db"),
			BackupDir:      filepath.Join(home, "backups"),
			BackupSchedule: "@daily",
			BackupKeep:     10,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Path returns the config file location under home.
func Path(home string) string {
	return filepath.Join(home, fileName)
}

// Load builds the effective configuration: defaults, then <home>/config.yaml if it
// exists, then SYNTHEVIX_* environment overrides.
func Load() (Config, error) {
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	home := ov.Home
	if home == "" {
		h, err := storage.DefaultHomeDir()
		if err != nil {
			return Config{}, err
		}
		home = h
	}
	cfg := Default(home)

	data, err := os.ReadFile(Path(home))
	switch {
	case err == nil:
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", fileName, err)
			}
		}
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read %s: %w", fileName, err)
	}

	if ov.DBPath != "" {
		cfg.Storage.DBPath = ov.DBPath
	}
	if ov.LogLevel != "" {
		cfg.Log.Level = ov.LogLevel
	}
	if ov.Theme != "" {
		cfg.Theme.Active = ov.Theme
	}
	if ov.XPMultiplier != nil {
		cfg.Quest.XPMultiplier = *ov.XPMultiplier
	}

	normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func normalize(cfg *Config) {
	cfg.Storage.DBPath = expandHome(cfg.Storage.DBPath)
	cfg.Storage.BackupDir = expandHome(cfg.Storage.BackupDir)
	cfg.Theme.Active = strings.ToLower(strings.TrimSpace(cfg.Theme.Active))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Storage.BackupSchedule = strings.TrimSpace(cfg.Storage.BackupSchedule)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if h, err := os.UserHomeDir(); err == nil {
			return filepath.Join(h, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

func (c Config) Validate() error {
	var problems []string
	if m := c.Quest.XPMultiplier; m < 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		problems = append(problems, "quest.xp_multiplier must be a finite number >= 0")
	}
	if c.Quest.StreakResetHour < 0 || c.Quest.StreakResetHour > 23 {
		problems = append(problems, "quest.streak_reset_hour must be between 0 and 23")
	}
	if strings.TrimSpace(c.Storage.DBPath) == "" {
		problems = append(problems, "storage.db_path is required")
	}
	if c.Storage.BackupKeep < 0 {
		problems = append(problems, "storage.backup_keep must be >= 0")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// YAML renders the effective configuration.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
