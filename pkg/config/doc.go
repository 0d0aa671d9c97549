// Package config loads application settings from the environment into typed
// structs.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing):
//
//	type AppConfig struct {
//	    Env     string `env:"APP_ENV" envDefault:"development"`
//	    MinAge  int    `env:"FORM_MIN_AGE" envDefault:"18"`
//	}
//
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Load parses each struct type once per process and serves later calls from
// a cache. Parse skips the cache, which suits tests and commands that set
// environment variables from flags.
package config
