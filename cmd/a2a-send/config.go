package main

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// config holds environment defaults for flag values. Flags override env.
type config struct {
	Token       string `env:"A2A_TOKEN"`
	SessionFile string `env:"A2A_SESSION_FILE"`
	Timeout     int    `env:"A2A_TIMEOUT" envDefault:"60"`
}

// loadConfig reads configuration from the environment, loading a .env file
// first if one is present (silent fail if not found).
func loadConfig() (config, error) {
	godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}
