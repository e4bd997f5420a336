// Package clientip extracts the originating client's IP address from an
// *http.Request behind one or more reverse proxies.
//
// The rate limiter keys per-client budgets on this address, so resolution
// prefers trusted proxy headers (CF-Connecting-IP, X-Forwarded-For,
// X-Real-IP) and falls back to the TCP peer address. Invalid header values
// are skipped rather than trusted.
package clientip
