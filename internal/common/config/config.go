// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Providers ProvidersConfig `mapstructure:"providers"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Session   SessionConfig   `mapstructure:"session"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	CorsOrigins []string `mapstructure:"cors_origins"`
}

// ProvidersConfig holds settings for the news provider APIs. A provider with
// an empty API key is treated as not configured, which is a valid degraded
// state rather than an error.
type ProvidersConfig struct {
	NewsAPI  NewsAPIConfig  `mapstructure:"newsapi"`
	NYT      NYTConfig      `mapstructure:"nyt"`
	Guardian GuardianConfig `mapstructure:"guardian"`
	Timeout  int            `mapstructure:"timeout"` // milliseconds
}

type NewsAPIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type NYTConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type GuardianConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// FetchTimeout returns the provider request timeout as a duration.
func (p ProvidersConfig) FetchTimeout() time.Duration {
	return time.Duration(p.Timeout) * time.Millisecond
}

// OpenAIConfig holds settings for the language-generation collaborator.
type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	ChatModel   string  `mapstructure:"chat_model"`
	TextModel   string  `mapstructure:"text_model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	Timeout     int     `mapstructure:"timeout"` // milliseconds
}

// RequestTimeout returns the generation request timeout as a duration.
func (o OpenAIConfig) RequestTimeout() time.Duration {
	return time.Duration(o.Timeout) * time.Millisecond
}

// CacheConfig holds settings for the article cache.
type CacheConfig struct {
	TTL int `mapstructure:"ttl"` // seconds
}

// EntryTTL returns the cache entry time-to-live as a duration.
func (c CacheConfig) EntryTTL() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// SessionConfig holds settings for the session store.
type SessionConfig struct {
	MaxIdle       int `mapstructure:"max_idle"`       // seconds, 0 disables eviction
	SweepInterval int `mapstructure:"sweep_interval"` // seconds
}

// MaxIdleDuration returns the idle time after which sessions are evicted.
func (s SessionConfig) MaxIdleDuration() time.Duration {
	return time.Duration(s.MaxIdle) * time.Second
}

// SweepIntervalDuration returns how often the sweeper runs.
func (s SessionConfig) SweepIntervalDuration() time.Duration {
	return time.Duration(s.SweepInterval) * time.Second
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
