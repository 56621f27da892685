// Package config loads speakup settings from defaults, an optional YAML
// file, SPEAKUP_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/speakup-edu/speakup/internal/speech"
)

// Config holds all configuration for the application.
type Config struct {
	Content  ContentConfig  `mapstructure:"content"`
	Log      LogConfig      `mapstructure:"log"`
	Speech   speech.Config  `mapstructure:"speech"`
	Practice PracticeConfig `mapstructure:"practice"`
	Audio    AudioConfig    `mapstructure:"audio"`

	// Seed fixes quiz shuffling when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// ContentConfig selects the quiz catalog.
type ContentConfig struct {
	// Path to a catalog JSON file. Empty uses the built-in catalog.
	Path string `mapstructure:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`

	// File receives log output. Empty means the user cache directory; "-"
	// means stderr.
	File string `mapstructure:"file"`
}

// PracticeConfig tunes pronunciation practice.
type PracticeConfig struct {
	Threshold       float64       `mapstructure:"threshold"`
	SilenceTimeout  time.Duration `mapstructure:"silence_timeout"`
	NoSpeechTimeout time.Duration `mapstructure:"no_speech_timeout"`
	MaxListen       time.Duration `mapstructure:"max_listen"`

	// ClipDir holds temporary recordings. Empty uses the system temp dir.
	ClipDir string `mapstructure:"clip_dir"`
}

// AudioConfig controls device access.
type AudioConfig struct {
	// Enabled turns microphone and speaker access on.
	Enabled bool `mapstructure:"enabled"`
}

// Flag names bound to configuration keys.
var flagKeys = map[string]string{
	"content":   "content.path",
	"log-file":  "log.file",
	"log-level": "log.level",
	"seed":      "seed",
	"speech":    "speech.provider",
}

// Load reads configuration. path names a config file; when empty,
// config.yaml is looked up in the user config directory and is optional.
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "speakup"))
		}
	}

	// Enable reading from environment variables
	v.SetEnvPrefix("SPEAKUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
		if off, err := flags.GetBool("no-audio"); err == nil && off {
			v.Set("audio.enabled", false)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Speech = cfg.Speech.Discover()
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("content.path", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	// Speech defaults
	sd := speech.DefaultConfig()
	v.SetDefault("speech.provider", "")
	v.SetDefault("speech.openai.api_key", "")
	v.SetDefault("speech.openai.base_url", "")
	v.SetDefault("speech.openai.transcribe_model", sd.OpenAI.TranscribeModel)
	v.SetDefault("speech.openai.speech_model", sd.OpenAI.SpeechModel)
	v.SetDefault("speech.openai.voice", sd.OpenAI.Voice)
	v.SetDefault("speech.gemini.api_key", "")
	v.SetDefault("speech.gemini.model", sd.Gemini.Model)
	v.SetDefault("speech.mock.transcript", "")
	v.SetDefault("speech.retry.max_attempts", sd.Retry.MaxAttempts)
	v.SetDefault("speech.retry.initial_wait", sd.Retry.InitialWait)
	v.SetDefault("speech.retry.max_wait", sd.Retry.MaxWait)
	v.SetDefault("speech.retry.multiplier", sd.Retry.Multiplier)
	v.SetDefault("speech.timeout", sd.Timeout)

	// Practice defaults
	ld := speech.DefaultListenConfig()
	v.SetDefault("practice.threshold", ld.Threshold)
	v.SetDefault("practice.silence_timeout", ld.SilenceTimeout)
	v.SetDefault("practice.no_speech_timeout", ld.NoSpeechTimeout)
	v.SetDefault("practice.max_listen", ld.MaxListen)
	v.SetDefault("practice.clip_dir", "")

	v.SetDefault("audio.enabled", true)
	v.SetDefault("seed", 0)
}

// ListenConfig returns the end-of-utterance settings for practice attempts.
func (c *Config) ListenConfig() speech.ListenConfig {
	return speech.ListenConfig{
		Language:        speech.DefaultLanguage,
		Threshold:       c.Practice.Threshold,
		SilenceTimeout:  c.Practice.SilenceTimeout,
		NoSpeechTimeout: c.Practice.NoSpeechTimeout,
		MaxListen:       c.Practice.MaxListen,
		Timeout:         c.Speech.Timeout,
	}
}
