package config

import (
	"fmt"
	"time"
)

type Config struct {
	Paths    PathsConfig    `yaml:"paths" toml:"paths"`
	Cache    CacheConfig    `yaml:"cache" toml:"cache"`
	Retry    RetryConfig    `yaml:"retry" toml:"retry"`
	Whisper  WhisperConfig  `yaml:"whisper" toml:"whisper"`
	FFmpeg   FFmpegConfig   `yaml:"ffmpeg" toml:"ffmpeg"`
	LLM      LLMConfig      `yaml:"llm" toml:"llm"`
	Bilibili BilibiliConfig `yaml:"bilibili" toml:"bilibili"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
	Output   OutputConfig   `yaml:"output" toml:"output"`
}

type PathsConfig struct {
	Output  string `yaml:"output" toml:"output"`
	Cache   string `yaml:"cache" toml:"cache"`
	Prompts string `yaml:"prompts" toml:"prompts"`
	Temp    string `yaml:"temp" toml:"temp"`
}

type CacheConfig struct {
	MaxAgeDays int `yaml:"max_age_days" toml:"max_age_days"`
}

// MaxAge returns the eviction threshold for transcript cache entries.
func (c CacheConfig) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeDays) * 24 * time.Hour
}

type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" toml:"max_attempts"`
	BackoffBase time.Duration `yaml:"backoff_base" toml:"backoff_base"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path" toml:"binary_path"`
	ModelDir   string `yaml:"model_dir" toml:"model_dir"`
	ModelSize  string `yaml:"model_size" toml:"model_size"`
	Device     string `yaml:"device" toml:"device"`
	Language   string `yaml:"language" toml:"language"`
	Threads    int    `yaml:"threads" toml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path" toml:"binary_path"`
}

type LLMConfig struct {
	Provider    string   `yaml:"provider" toml:"provider"`
	Model       string   `yaml:"model" toml:"model"`
	Temperature float32  `yaml:"temperature" toml:"temperature"`
	MaxTokens   int      `yaml:"max_tokens" toml:"max_tokens"`
	APIKeyEnv   []string `yaml:"api_key_env" toml:"api_key_env"`
}

type BilibiliConfig struct {
	RequestsPerSecond float64       `yaml:"requests_per_second" toml:"requests_per_second"`
	Timeout           time.Duration `yaml:"timeout" toml:"timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

type OutputConfig struct {
	Docx bool `yaml:"docx" toml:"docx"`
}

var (
	validDevices    = []string{"cuda", "cpu"}
	validModelSizes = []string{"tiny", "base", "small", "medium", "large-v3"}
	validProviders  = []string{"gemini", "openai", "anthropic"}
)

// Default returns a configuration with every default filled in.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

func (c *Config) Validate() error {
	if c.Paths.Output == "" {
		c.Paths.Output = "result"
	}
	if c.Paths.Cache == "" {
		c.Paths.Cache = ".cache/subtitles"
	}
	if c.Paths.Prompts == "" {
		c.Paths.Prompts = "prompt"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = ".cache/audio"
	}
	if c.Cache.MaxAgeDays == 0 {
		c.Cache.MaxAgeDays = 30
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.BackoffBase == 0 {
		c.Retry.BackoffBase = 5 * time.Second
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.ModelDir == "" {
		c.Whisper.ModelDir = "models"
	}
	if c.Whisper.ModelSize == "" {
		c.Whisper.ModelSize = "small"
	}
	if c.Whisper.Device == "" {
		c.Whisper.Device = "cuda"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "gemini"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModel(c.LLM.Provider)
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.6
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 8192
	}
	if len(c.LLM.APIKeyEnv) == 0 {
		c.LLM.APIKeyEnv = defaultKeyEnv(c.LLM.Provider)
	}
	if c.Bilibili.RequestsPerSecond == 0 {
		c.Bilibili.RequestsPerSecond = 2
	}
	if c.Bilibili.Timeout == 0 {
		c.Bilibili.Timeout = 30 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	if c.Cache.MaxAgeDays < 0 {
		return fmt.Errorf("cache.max_age_days must not be negative")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1")
	}
	if !oneOf(c.Whisper.Device, validDevices) {
		return fmt.Errorf("whisper.device must be one of %v, got %q", validDevices, c.Whisper.Device)
	}
	if !oneOf(c.Whisper.ModelSize, validModelSizes) {
		return fmt.Errorf("whisper.model_size must be one of %v, got %q", validModelSizes, c.Whisper.ModelSize)
	}
	if !oneOf(c.LLM.Provider, validProviders) {
		return fmt.Errorf("llm.provider must be one of %v, got %q", validProviders, c.LLM.Provider)
	}

	return nil
}

func defaultModel(provider string) string {
	switch provider {
	case "openai":
		return "gpt-4o-mini"
	case "anthropic":
		return "claude-3-5-haiku-latest"
	default:
		return "gemini-2.5-flash"
	}
}

func defaultKeyEnv(provider string) []string {
	switch provider {
	case "openai":
		return []string{"OPENAI_API_KEY"}
	case "anthropic":
		return []string{"ANTHROPIC_API_KEY"}
	default:
		return []string{"GEMINI_API_KEY"}
	}
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
