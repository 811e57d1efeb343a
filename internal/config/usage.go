package config

type Usage struct {
	// DemoMode starts the service with all external providers refused, so
	// it is safe to demo without credentials or spend.
	DemoMode bool   `env:"DEMO_MODE" envDefault:"true"`
	File     string `env:"USAGE_FILE" envDefault:"api_usage.json"`
}
