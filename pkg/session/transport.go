package session

import (
	"net/http"
	"strings"
)

// Transport defines how session tokens are extracted from requests. Tokens
// travel to the client in the login response body, so only extraction is
// part of the transport contract.
type Transport interface {
	// Token extracts the session token from the request.
	Token(r *http.Request) (string, error)
}

// BearerTransport reads the token from an HTTP header, stripping an
// optional "Bearer " prefix.
type BearerTransport struct {
	headerName string
	prefix     string
}

// BearerOption is a functional option for BearerTransport.
type BearerOption func(*BearerTransport)

// WithHeaderPrefix sets a custom prefix for the header value.
func WithHeaderPrefix(prefix string) BearerOption {
	return func(t *BearerTransport) {
		t.prefix = prefix
	}
}

// NewBearerTransport creates a header-based transport. An empty headerName
// defaults to "Authorization".
func NewBearerTransport(headerName string, opts ...BearerOption) *BearerTransport {
	if headerName == "" {
		headerName = "Authorization"
	}

	t := &BearerTransport{
		headerName: headerName,
		prefix:     "Bearer ",
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Token extracts the session token from the header.
func (t *BearerTransport) Token(r *http.Request) (string, error) {
	value := r.Header.Get(t.headerName)
	if value == "" {
		return "", ErrSessionNotFound
	}

	if t.prefix != "" {
		value = strings.TrimPrefix(value, t.prefix)
	}

	return value, nil
}
