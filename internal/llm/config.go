// Package llm wraps the text-generation service behind a small Client interface.
package llm

// ModelTier selects how capable (and expensive) a model should be for a task
type ModelTier string

// Model tiers
const (
	// TierLite is for extraction and classification
	TierLite ModelTier = "lite"
	// TierStandard is for structured rewriting; the resume rewrite runs here
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long, nuance-heavy generations
	TierAdvanced ModelTier = "advanced"
)

// Provider names an LLM backend
type Provider string

// ProviderGemini is the Google Gemini backend
const ProviderGemini Provider = "gemini"

// DefaultTemperature keeps rewrites close to the source text
const DefaultTemperature float32 = 0.2

// Config selects the provider, the model per tier, and sampling settings
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the Gemini configuration used when nothing is overridden
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

// GetModel returns the model for a tier, falling back to standard then lite.
// It returns "" when nothing is configured.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model := c.Models[t]; model != "" {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of the config with the model for one tier replaced
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		models[k] = v
	}
	models[tier] = model
	return &Config{Provider: c.Provider, Models: models, Temperature: c.Temperature}
}
