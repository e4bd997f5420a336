package ratelimit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML shape of the throttling setup: limiter sizing plus
// the ordered rule table.
//
//	limiters:
//	  high:
//	    window_seconds: 1
//	    max_requests: 10
//	rules:
//	  - match: /seckill/**
//	    limiter: high
//	  - match: /api/users:post
//	    limiter: sensitive
type Config struct {
	Limiters map[string]LimiterConfig `yaml:"limiters"`
	Rules    Rules                    `yaml:"rules"`
}

// Validate rejects configs referencing limiters outside the allow-list or
// sized nonsensically.
func (c Config) Validate() error {
	for name, cfg := range c.Limiters {
		if !KnownLimiter(name) {
			return fmt.Errorf("ratelimit: unknown limiter %q in config", name)
		}
		if cfg.MaxRequests <= 0 {
			return fmt.Errorf("ratelimit: limiter %q: %w", name, ErrInvalidLimit)
		}
		if cfg.WindowSeconds <= 0 {
			return fmt.Errorf("ratelimit: limiter %q: %w", name, ErrInvalidWindow)
		}
	}
	// Rules referencing unknown limiter names are kept: Resolve falls back
	// to the default limiter for them at runtime.
	for _, rule := range c.Rules {
		if rule.Match == "" {
			return fmt.Errorf("ratelimit: rule with empty match")
		}
	}
	return nil
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("ratelimit: read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("ratelimit: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
