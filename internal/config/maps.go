package config

import "time"

type Maps struct {
	Enabled            bool          `env:"MAPS_ENABLED" envDefault:"true"`
	APIKey             string        `env:"GOOGLE_MAPS_API_KEY" json:"-"`
	SearchRadiusMeters int           `env:"MAPS_SEARCH_RADIUS_METERS" envDefault:"5000"`
	Timeout            time.Duration `env:"MAPS_TIMEOUT" envDefault:"5s"`
	CacheTTL           time.Duration `env:"MAPS_CACHE_TTL" envDefault:"5m"`

	MaxDailyRequests int `env:"MAX_DAILY_MAPS_REQUESTS" envDefault:"100"`
}
