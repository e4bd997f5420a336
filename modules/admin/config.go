package admin

// Config carries module-level settings, populated from the environment.
type Config struct {
	// SuperTenantID identifies the operator tenant whose super admin
	// bypasses tenant isolation.
	SuperTenantID string `env:"ADMIN_SUPER_TENANT_ID" envDefault:"000000"`

	// RateLimitConfigPath points to the optional YAML file with limiter
	// sizing and the rule table. Empty means built-in defaults.
	RateLimitConfigPath string `env:"ADMIN_RATELIMIT_CONFIG"`
}
