package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

const (
	defaultHost           = "0.0.0.0"
	defaultPort           = 8080
	defaultRequestTimeout = 30 * time.Second
	defaultScheduleTab    = "Schedule"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port" validate:"min=1,max=65535"`
	RequestTimeout time.Duration `yaml:"requestTimeout" validate:"min=0"`
	AllowedOrigins []string      `yaml:"allowedOrigins,omitempty"`
}

// StorageConfig selects where employee records are kept
type StorageConfig struct {
	Backend         string        `yaml:"backend" validate:"required,oneof=memory postgres"`
	PostgresDSN     string        `yaml:"postgresDSN,omitempty" validate:"required_if=Backend postgres"`
	MaxConns        int32         `yaml:"maxConns,omitempty" validate:"min=0"`
	MaxConnLifetime time.Duration `yaml:"maxConnLifetime,omitempty" validate:"min=0"`
}

// PreferencesConfig selects where employee preferences are kept
type PreferencesConfig struct {
	Backend        string `yaml:"backend" validate:"required,oneof=memory redis"`
	RedisAddress   string `yaml:"redisAddress,omitempty" validate:"required_if=Backend redis"`
	RedisPassword  string `yaml:"redisPassword,omitempty"`
	RedisDB        int    `yaml:"redisDB,omitempty" validate:"min=0"`
	RedisKeyPrefix string `yaml:"redisKeyPrefix,omitempty"`
}

// StaffSheetConfig points at the Google Sheet employees are imported from.
// Generated schedules are published to ScheduleTab of the same spreadsheet.
type StaffSheetConfig struct {
	SheetID     string `yaml:"sheetID" validate:"required"`
	Tab         string `yaml:"tab" validate:"required"`
	ScheduleTab string `yaml:"scheduleTab,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Storage     StorageConfig     `yaml:"storage"`
	Preferences PreferencesConfig `yaml:"preferences"`
	StaffSheet  *StaffSheetConfig `yaml:"staffSheet,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for an environment.
// For example, env="test" will look for "staffhours_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Address returns the host:port the HTTP server listens on
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// applyDefaults fills in optional settings left empty in the file
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = defaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendMemory
	}
	if cfg.Preferences.Backend == "" {
		cfg.Preferences.Backend = BackendMemory
	}
	if cfg.StaffSheet != nil && cfg.StaffSheet.ScheduleTab == "" {
		cfg.StaffSheet.ScheduleTab = defaultScheduleTab
	}
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(env string) (string, error) {
	configFileName := "staffhours_config.yaml"
	if env != "" {
		configFileName = "staffhours_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
