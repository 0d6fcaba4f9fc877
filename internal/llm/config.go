// Package llm provides the text-completion client used to ask the model for recommendations.
// Callers receive a Client through their constructors; nothing here is process-global.
package llm

import (
	"fmt"
	"strings"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is the cheapest model, good enough for short profiles
	TierLite ModelTier = "lite"
	// TierStandard is the default for recommendations
	TierStandard ModelTier = "standard"
	// TierAdvanced is for large profiles that need more reasoning
	TierAdvanced ModelTier = "advanced"
)

// ParseModelTier converts a flag or config value into a ModelTier
func ParseModelTier(s string) (ModelTier, error) {
	switch tier := ModelTier(strings.ToLower(strings.TrimSpace(s))); tier {
	case "":
		return TierStandard, nil
	case TierLite, TierStandard, TierAdvanced:
		return tier, nil
	default:
		return "", fmt.Errorf("unknown model tier %q", s)
	}
}

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultTemperature keeps suggestions varied without drifting off format
const DefaultTemperature float32 = 0.7

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
