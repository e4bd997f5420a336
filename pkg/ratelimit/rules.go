package ratelimit

import "strings"

// Limiter names accepted by the registry. The set is closed: rules cannot
// introduce new limiters, only select among these.
const (
	LimiterDefault   = "default"
	LimiterHigh      = "high"
	LimiterSensitive = "sensitive"
)

// KnownLimiter reports whether name is in the closed allow-list.
func KnownLimiter(name string) bool {
	switch name {
	case LimiterDefault, LimiterHigh, LimiterSensitive:
		return true
	}
	return false
}

// Rule binds a request match expression to a limiter name.
//
// Match takes one of three forms:
//
//	"/seckill/**"        prefix match on the path, any method
//	"/api/users:post"    prefix match on the path, case-insensitive method
//	"/api/login"         exact path match, any method
type Rule struct {
	Match   string `yaml:"match"`
	Limiter string `yaml:"limiter"`
}

// Rules is an ordered rule table. Order matters: the first matching rule
// decides the limiter.
type Rules []Rule

// Resolve returns the limiter name for a request. Requests matching no
// rule get the default limiter, so every route is throttled by at least
// the baseline budget.
func (rs Rules) Resolve(path, method string) string {
	for _, rule := range rs {
		if rule.matches(path, method) {
			if KnownLimiter(rule.Limiter) {
				return rule.Limiter
			}
			// Misspelled limiter names must not open a throttling gap.
			return LimiterDefault
		}
	}
	return LimiterDefault
}

func (r Rule) matches(path, method string) bool {
	if prefix, ok := strings.CutSuffix(r.Match, "/**"); ok {
		return strings.HasPrefix(path, prefix)
	}
	if i := strings.LastIndexByte(r.Match, ':'); i >= 0 {
		return strings.HasPrefix(path, r.Match[:i]) && strings.EqualFold(method, r.Match[i+1:])
	}
	return path == r.Match
}
