// Package session maps opaque bearer tokens to server-side session records.
//
// Tokens are 32 random bytes with no embedded structure; everything a
// request needs (user, tenant, roles, aggregated authorities) lives in the
// record behind the token, so validation is a single store read. Expiry is
// the backing store's job: Redis keys carry a native TTL and the manager
// never compares timestamps itself.
//
// The per-user token index supports multi-device sessions: issuing never
// revokes, RevokeAll removes every indexed token including ones issued by
// other processes sharing the store, and Revoke is idempotent. A revoked
// token can never validate again regardless of interleaving, because both
// operations hit the same authoritative key.
//
// Store failures fail closed for reads (reported as not found) and hard for
// writes (issuance must not hand out a token the store never accepted).
package session
