package config

import "time"

type LLM struct {
	Enabled   bool          `env:"LLM_ENABLED" envDefault:"true"`
	APIKey    string        `env:"ANTHROPIC_API_KEY" json:"-"`
	Model     string        `env:"LLM_MODEL" envDefault:"claude-haiku-4-5"`
	MaxTokens int64         `env:"LLM_MAX_TOKENS" envDefault:"1024"`
	Timeout   time.Duration `env:"LLM_TIMEOUT" envDefault:"5s"`

	MaxDailyRequests int `env:"MAX_DAILY_LLM_REQUESTS" envDefault:"50"`
}
