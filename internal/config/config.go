package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

const (
	DefaultShiftStart  = "10:00"
	DefaultShiftEnd    = "18:00"
	DefaultTimeout     = 30 * time.Second
	DefaultMaxAttempts = 2
	DefaultCacheTTL    = 24 * time.Hour
)

// DemandOverride changes the demand on dates matching an RRule
type DemandOverride struct {
	RRule string `yaml:"rrule" validate:"required"`

	// Closed removes all demand on matching dates
	Closed bool `yaml:"closed,omitempty"`

	// RequiredCount replaces the headcount of every slot or rule on matching dates
	RequiredCount *int `yaml:"requiredCount,omitempty" validate:"omitempty,min=0"`
}

// DatabaseConfig selects the store
type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"required,oneof=postgres sqlite"`
	// URL is a connection string for postgres or a file path for sqlite
	URL string `yaml:"url" validate:"required"`
}

// SchedulingConfig contains the solver settings
type SchedulingConfig struct {
	AvailabilityPolicy      string           `yaml:"availabilityPolicy,omitempty" validate:"omitempty,oneof=fail-open fail-closed"`
	PairNewWithLead         *bool            `yaml:"pairNewWithLead,omitempty"`
	FallbackToDeterministic *bool            `yaml:"fallbackToDeterministic,omitempty"`
	Strategy                string           `yaml:"strategy,omitempty" validate:"omitempty,oneof=deterministic generative"`
	DefaultShiftStart       string           `yaml:"defaultShiftStart,omitempty"`
	DefaultShiftEnd         string           `yaml:"defaultShiftEnd,omitempty"`
	MaxDaysPerWeek          int              `yaml:"maxDaysPerWeek,omitempty" validate:"min=0,max=7"`
	DemandOverrides         []DemandOverride `yaml:"demandOverrides,omitempty" validate:"dive"`
}

// PairsNewWithLead reports whether new employees are ranked directly after a lead (default true)
func (s SchedulingConfig) PairsNewWithLead() bool {
	return s.PairNewWithLead == nil || *s.PairNewWithLead
}

// FallsBack reports whether a failed generative run falls back to the deterministic solver
// (default true)
func (s SchedulingConfig) FallsBack() bool {
	return s.FallbackToDeterministic == nil || *s.FallbackToDeterministic
}

// WatsonxConfig contains the IBM watsonx.ai settings
type WatsonxConfig struct {
	URL       string `yaml:"url"`
	ProjectID string `yaml:"projectID"`
	ModelID   string `yaml:"modelID"`
	APIKey    string `yaml:"apiKey"`
	IAMURL    string `yaml:"iamURL,omitempty"`
}

// GeminiConfig contains the Google Gemini settings
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// GeneratorConfig contains the external generator settings
type GeneratorConfig struct {
	Provider    string        `yaml:"provider,omitempty" validate:"omitempty,oneof=watsonx gemini"`
	Timeout     time.Duration `yaml:"timeout,omitempty" validate:"min=0"`
	MaxAttempts int           `yaml:"maxAttempts,omitempty" validate:"min=0"`
	Watsonx     WatsonxConfig `yaml:"watsonx,omitempty"`
	Gemini      GeminiConfig  `yaml:"gemini,omitempty"`
}

// CacheConfig enables the Redis cache of generator replies when RedisAddr is set
type CacheConfig struct {
	RedisAddr string        `yaml:"redisAddr,omitempty"`
	Password  string        `yaml:"password,omitempty"`
	DB        int           `yaml:"db,omitempty" validate:"min=0"`
	TTL       time.Duration `yaml:"ttl,omitempty" validate:"min=0"`
}

// Config represents the application configuration
type Config struct {
	BusinessID string           `yaml:"businessID" validate:"required"`
	Database   DatabaseConfig   `yaml:"database"`
	Scheduling SchedulingConfig `yaml:"scheduling,omitempty"`
	Generator  GeneratorConfig  `yaml:"generator,omitempty"`
	Cache      CacheConfig      `yaml:"cache,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates scheduler_config.<env>.yaml.
// It looks for the file in the current directory first, then in the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(fmt.Sprintf("scheduler_config.%s.yaml", env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// ${VAR} references are expanded from the environment before parsing.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyDefaults()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills unset optional settings
func (c *Config) ApplyDefaults() {
	if c.Scheduling.AvailabilityPolicy == "" {
		c.Scheduling.AvailabilityPolicy = "fail-open"
	}
	if c.Scheduling.Strategy == "" {
		c.Scheduling.Strategy = "deterministic"
	}
	if c.Scheduling.DefaultShiftStart == "" {
		c.Scheduling.DefaultShiftStart = DefaultShiftStart
	}
	if c.Scheduling.DefaultShiftEnd == "" {
		c.Scheduling.DefaultShiftEnd = DefaultShiftEnd
	}
	if c.Generator.Timeout == 0 {
		c.Generator.Timeout = DefaultTimeout
	}
	if c.Generator.MaxAttempts == 0 {
		c.Generator.MaxAttempts = DefaultMaxAttempts
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
}

// Validate validates the configuration struct, override rrules, shift times and the
// settings required by the selected generator
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, override := range cfg.Scheduling.DemandOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in demandOverrides[%d]: %w", i, err)
		}
	}

	if err := validateShiftTimes(cfg.Scheduling); err != nil {
		return err
	}

	if cfg.Scheduling.Strategy == "generative" && cfg.Generator.Provider == "" {
		return fmt.Errorf("config validation failed: generator.provider is required for the generative strategy")
	}

	switch cfg.Generator.Provider {
	case "watsonx":
		w := cfg.Generator.Watsonx
		if w.URL == "" || w.ProjectID == "" || w.ModelID == "" || w.APIKey == "" {
			return fmt.Errorf("config validation failed: generator.watsonx requires url, projectID, modelID and apiKey")
		}
	case "gemini":
		if cfg.Generator.Gemini.APIKey == "" || cfg.Generator.Gemini.Model == "" {
			return fmt.Errorf("config validation failed: generator.gemini requires apiKey and model")
		}
	}

	return nil
}

func validateShiftTimes(s SchedulingConfig) error {
	start, end := s.DefaultShiftStart, s.DefaultShiftEnd
	if start == "" && end == "" {
		return nil
	}
	start, err := model.ParseClock(start)
	if err != nil {
		return fmt.Errorf("invalid defaultShiftStart: %w", err)
	}
	end, err = model.ParseClock(end)
	if err != nil {
		return fmt.Errorf("invalid defaultShiftEnd: %w", err)
	}
	if start >= end {
		return fmt.Errorf("default shift start %s must be before end %s", start, end)
	}
	return nil
}

// findConfigFile searches for configFileName in the current directory and home directory
func findConfigFile(configFileName string) (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", configFileName)
}
