// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/benefits-advisor/internal/generator"
	"github.com/jonathan/benefits-advisor/internal/llm"
	"github.com/jonathan/benefits-advisor/internal/recommend"
)

// Config represents the advisor configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment or defaults.
type Config struct {
	// Model
	APIKey      string  `json:"api_key,omitempty"`     // Gemini API key
	ModelTier   string  `json:"model_tier,omitempty"`  // lite, standard or advanced
	Temperature float32 `json:"temperature,omitempty"` // Sampling temperature
	Strategy    string  `json:"strategy,omitempty"`    // Extraction strategy: bold or markdown

	// Generator
	OutputDir string `json:"output_dir,omitempty"` // Directory for generated sample files
	Tier      string `json:"tier,omitempty"`       // Generator tier: demo or large

	// Presentation and server
	PreviewRows    int   `json:"preview_rows,omitempty"`     // Rows shown per section
	Port           int   `json:"port,omitempty"`             // HTTP port
	MaxUploadBytes int64 `json:"max_upload_bytes,omitempty"` // Upload size limit
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		ModelTier:      string(llm.TierStandard),
		Temperature:    llm.DefaultTemperature,
		Strategy:       recommend.StrategyBold,
		OutputDir:      generator.DefaultOutputDir,
		Tier:           string(generator.TierDemo),
		PreviewRows:    5,
		Port:           8080,
		MaxUploadBytes: 5 << 20,
	}
}

// FromEnv reads the configuration values present in the environment
func FromEnv() Config {
	return Config{
		APIKey:         os.Getenv("GEMINI_API_KEY"),
		ModelTier:      os.Getenv("ADVISOR_MODEL_TIER"),
		Strategy:       os.Getenv("ADVISOR_STRATEGY"),
		OutputDir:      os.Getenv("ADVISOR_OUTPUT_DIR"),
		Tier:           os.Getenv("ADVISOR_TIER"),
		PreviewRows:    envInt("ADVISOR_PREVIEW_ROWS"),
		Port:           envInt("PORT"),
		MaxUploadBytes: int64(envInt("ADVISOR_MAX_UPLOAD_BYTES")),
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load resolves the effective configuration: file values win over the
// environment, which wins over defaults. An empty path skips the file.
func Load(path string) (Config, error) {
	env := FromEnv()
	merged := env.MergeWithDefaults(Defaults())
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		merged = fileCfg.MergeWithDefaults(merged)
	}
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if c.PreviewRows < 0 {
		return fmt.Errorf("config error: 'preview_rows' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	if c.Tier != "" {
		if _, err := generator.ParseTier(c.Tier); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if _, err := llm.ParseModelTier(c.ModelTier); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if _, err := recommend.ByName(c.Strategy); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ModelTier == "" {
		result.ModelTier = defaults.ModelTier
	}
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	if result.Strategy == "" {
		result.Strategy = defaults.Strategy
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Tier == "" {
		result.Tier = defaults.Tier
	}
	if result.PreviewRows == 0 {
		result.PreviewRows = defaults.PreviewRows
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}

	return result
}

// LLMConfig builds the model configuration for the llm package
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Temperature > 0 {
		cfg.Temperature = c.Temperature
	}
	return cfg
}

func envInt(key string) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return 0
}
