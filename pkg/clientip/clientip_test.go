package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/guardkit/pkg/clientip"
)

func newRequest(remoteAddr string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

func TestGetIP(t *testing.T) {
	t.Parallel()

	t.Run("falls back to remote addr", func(t *testing.T) {
		t.Parallel()
		req := newRequest("203.0.113.7:4711", nil)
		assert.Equal(t, "203.0.113.7", clientip.GetIP(req))
	})

	t.Run("remote addr without port", func(t *testing.T) {
		t.Parallel()
		req := newRequest("203.0.113.7", nil)
		assert.Equal(t, "203.0.113.7", clientip.GetIP(req))
	})

	t.Run("cf connecting ip wins", func(t *testing.T) {
		t.Parallel()
		req := newRequest("10.0.0.1:80", map[string]string{
			"CF-Connecting-IP": "198.51.100.2",
			"X-Forwarded-For":  "192.0.2.3",
		})
		assert.Equal(t, "198.51.100.2", clientip.GetIP(req))
	})

	t.Run("first valid forwarded-for entry", func(t *testing.T) {
		t.Parallel()
		req := newRequest("10.0.0.1:80", map[string]string{
			"X-Forwarded-For": "garbage, 192.0.2.3, 10.0.0.2",
		})
		assert.Equal(t, "192.0.2.3", clientip.GetIP(req))
	})

	t.Run("x-real-ip after forwarded-for", func(t *testing.T) {
		t.Parallel()
		req := newRequest("10.0.0.1:80", map[string]string{
			"X-Real-IP": "192.0.2.9",
		})
		assert.Equal(t, "192.0.2.9", clientip.GetIP(req))
	})

	t.Run("invalid header values are skipped", func(t *testing.T) {
		t.Parallel()
		req := newRequest("203.0.113.7:80", map[string]string{
			"CF-Connecting-IP": "not-an-ip",
			"X-Forwarded-For":  "also-bad",
		})
		assert.Equal(t, "203.0.113.7", clientip.GetIP(req))
	})

	t.Run("ipv6 is normalized", func(t *testing.T) {
		t.Parallel()
		req := newRequest("[2001:db8::1]:443", nil)
		assert.Equal(t, "2001:db8::1", clientip.GetIP(req))
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	handler := clientip.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.GetIPFromContext(r.Context())
	}))

	req := newRequest("203.0.113.7:4711", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.7", got)
}

func TestGetIPFromContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, clientip.GetIPFromContext(context.Background()))
}
