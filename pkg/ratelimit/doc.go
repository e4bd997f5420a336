// Package ratelimit throttles admin API traffic through a small set of
// named limiters.
//
// Incoming requests never pick arbitrary limits. A rule table maps request
// path and method to a limiter name, the registry resolves the name against
// a closed allow-list (default, high, sensitive), and the matched limiter
// admits or rejects the request. Unknown names silently fall back to the
// default limiter, so a typo in a rule can never disable throttling.
//
// Counters live in a pluggable Store. MemoryStore serves single-node
// deployments and tests; RedisStore shares counters across nodes.
package ratelimit
