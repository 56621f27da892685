package speech

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderMock   = "mock"
	ProviderNone   = "none"
)

// Config holds speech provider configuration.
type Config struct {
	// Provider selects the recognizer. Values: "openai", "gemini", "mock",
	// "none". Empty means discover from standard API key variables.
	Provider string `mapstructure:"provider"`

	OpenAI OpenAIConfig `mapstructure:"openai"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	Mock   MockConfig   `mapstructure:"mock"`
	Retry  RetryConfig  `mapstructure:"retry"`

	// Timeout bounds a single provider call including retries.
	Timeout time.Duration `mapstructure:"timeout"`
}

// OpenAIConfig configures transcription and text-to-speech through OpenAI.
type OpenAIConfig struct {
	APIKey          string `mapstructure:"api_key"`
	BaseURL         string `mapstructure:"base_url"`
	TranscribeModel string `mapstructure:"transcribe_model"`
	SpeechModel     string `mapstructure:"speech_model"`
	Voice           string `mapstructure:"voice"`
}

// GeminiConfig configures transcription through Gemini.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// MockConfig configures the offline provider.
type MockConfig struct {
	// Transcript is what the mock recognizer "hears". Empty echoes nothing,
	// which scores as no speech detected.
	Transcript string `mapstructure:"transcript"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		OpenAI: OpenAIConfig{
			TranscribeModel: "whisper-1",
			SpeechModel:     "tts-1",
			Voice:           "alloy",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// Discover fills in the provider and API keys from the standard
// OPENAI_API_KEY and GEMINI_API_KEY variables when they are not set. OpenAI
// wins when both are present because it also provides speech synthesis.
func (c Config) Discover() Config {
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.Provider != "" {
		return c
	}
	switch {
	case c.OpenAI.APIKey != "":
		c.Provider = ProviderOpenAI
	case c.Gemini.APIKey != "":
		c.Provider = ProviderGemini
	default:
		c.Provider = ProviderNone
	}
	return c
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("speech.openai.api_key (or OPENAI_API_KEY) is required for the openai provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("speech.gemini.api_key (or GEMINI_API_KEY) is required for the gemini provider")
		}
	case ProviderMock, ProviderNone:
		// No API key needed.
	default:
		return fmt.Errorf("unknown speech provider: %q", c.Provider)
	}
	return nil
}
