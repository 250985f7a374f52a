package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DataDir   string          `mapstructure:"data_dir"`
	Collector CollectorConfig `mapstructure:"collector"`
	Blogs     BlogsConfig     `mapstructure:"blogs"`
	Crawler   CrawlerConfig   `mapstructure:"crawler"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Delivery  DeliveryConfig  `mapstructure:"delivery"`
}

type CollectorConfig struct {
	Accounts     []string `mapstructure:"accounts"`
	FetchLimit   int      `mapstructure:"fetch_limit"`
	TopTweets    int      `mapstructure:"top_tweets"`
	BearerToken  string   `mapstructure:"bearer_token"`
	RecencyHours int      `mapstructure:"recency_hours"`
}

type BlogsConfig struct {
	Sources []string `mapstructure:"sources"`
}

type CrawlerConfig struct {
	MaxCharsBlog   int    `mapstructure:"max_chars_blog"`
	MaxCharsPaper  int    `mapstructure:"max_chars_paper"`
	MaxCharsReadme int    `mapstructure:"max_chars_readme"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	GitHubToken    string `mapstructure:"github_token"`
}

type LLMConfig struct {
	Provider  string `mapstructure:"provider"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	MaxTokens int    `mapstructure:"max_tokens"`
	BatchSize int    `mapstructure:"batch_size"`
}

type DeliveryConfig struct {
	WebhookURL    string `mapstructure:"webhook_url"`
	MaxEmbedChars int    `mapstructure:"max_embed_chars"`
}

func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	defaultDataDir := filepath.Join(homeDir, ".aibrief")

	viper.SetDefault("data_dir", defaultDataDir)
	viper.SetDefault("collector.fetch_limit", 100)
	viper.SetDefault("collector.top_tweets", 20)
	viper.SetDefault("collector.recency_hours", 24)
	viper.SetDefault("crawler.max_chars_blog", 3000)
	viper.SetDefault("crawler.max_chars_paper", 2000)
	viper.SetDefault("crawler.max_chars_readme", 2000)
	viper.SetDefault("crawler.timeout_seconds", 10)
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.model", "gpt-4o-mini")
	viper.SetDefault("llm.max_tokens", 2048)
	viper.SetDefault("llm.batch_size", 10)
	viper.SetDefault("delivery.max_embed_chars", 4096)

	// Environment variable overrides; secrets normally arrive this way.
	viper.SetEnvPrefix("AIBRIEF")
	viper.AutomaticEnv()
	viper.BindEnv("data_dir", "AIBRIEF_DATA_DIR")
	viper.BindEnv("collector.bearer_token", "TWITTER_BEARER_TOKEN")
	viper.BindEnv("crawler.github_token", "GITHUB_TOKEN")
	viper.BindEnv("delivery.webhook_url", "DISCORD_WEBHOOK_URL")
	viper.BindEnv("llm.provider", "AIBRIEF_LLM_PROVIDER")
	viper.BindEnv("llm.model", "AIBRIEF_LLM_MODEL")
	viper.BindEnv("llm.base_url", "AIBRIEF_LLM_BASE_URL")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultDataDir)
	viper.AddConfigPath(".")

	// Config file is optional.
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ResolveAPIKey returns the configured LLM key, falling back to the
// provider's conventional environment variable.
func (l LLMConfig) ResolveAPIKey() string {
	if l.APIKey != "" {
		return l.APIKey
	}
	switch l.Provider {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "openrouter":
		return os.Getenv("OPENROUTER_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

// Cutoff is the oldest timestamp still considered new enough for this
// run.
func (c *Config) Cutoff(now time.Time) time.Time {
	hours := c.Collector.RecencyHours
	if hours <= 0 {
		hours = 24
	}
	return now.Add(-time.Duration(hours) * time.Hour).UTC()
}

// FetchTimeout bounds every network call in the acquisition layer.
func (c *Config) FetchTimeout() time.Duration {
	secs := c.Crawler.TimeoutSeconds
	if secs <= 0 {
		secs = 10
	}
	return time.Duration(secs) * time.Second
}

func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "aibrief.db")
}
