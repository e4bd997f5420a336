// Package admin assembles the access-control packages into the HTTP
// surface of the administrative backend.
//
// Router wires the middleware chain in the order that keeps the
// guarantees of the underlying packages intact: the rate limiter admits
// or rejects before any session or tenant work happens, the session
// middleware resolves the bearer token, and the tenant middleware derives
// the request's tenant scope from the validated session. Data access
// below the handlers goes through rowfilter, so a request that lost its
// tenant identity reads nothing rather than everything.
package admin
