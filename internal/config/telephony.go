package config

import "time"

type Telephony struct {
	Enabled    bool          `env:"TELEPHONY_ENABLED" envDefault:"true"`
	AccountSID string        `env:"TWILIO_ACCOUNT_SID" json:"-"`
	AuthToken  string        `env:"TWILIO_AUTH_TOKEN" json:"-"`
	FromNumber string        `env:"TWILIO_PHONE_NUMBER"`
	Timeout    time.Duration `env:"TELEPHONY_TIMEOUT" envDefault:"10s"`

	MaxDailyCalls   int `env:"MAX_DAILY_CALLS" envDefault:"5"`
	MaxDailyMinutes int `env:"MAX_DAILY_CALL_MINUTES" envDefault:"10"`
}
