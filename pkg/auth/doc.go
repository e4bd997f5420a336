// Package auth glues credential verification to authority aggregation and
// session issuance.
//
// Authenticate looks the account up within its tenant, compares the
// password through the pluggable hasher, resolves the user's effective
// authority and asks the session manager for a token. Unknown usernames and
// wrong passwords are externally indistinguishable by design.
package auth
