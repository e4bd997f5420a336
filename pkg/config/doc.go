// Package config loads typed configuration structs from environment
// variables, optionally seeded from .env files.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11. Each
// configuration type is parsed once per process and cached, so packages can
// call Load for their own config without coordinating startup order:
//
//	type SessionConfig struct {
//	    TTL       time.Duration `env:"SESSION_TTL" envDefault:"30m"`
//	    KeyPrefix string        `env:"SESSION_KEY_PREFIX" envDefault:"guardkit:session"`
//	}
//
//	var cfg SessionConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Tests that mutate the environment should call ResetCache between cases.
package config
