package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forinda/contentapi/pkg/clientip"
)

func TestFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "falls back to the socket address",
			remoteAddr: "192.0.2.10:51234",
			want:       "192.0.2.10",
		},
		{
			name:       "prefers the first valid forwarded address",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			remoteAddr: "192.0.2.10:51234",
			want:       "203.0.113.7",
		},
		{
			name:       "skips garbage in the forwarded header",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip, 203.0.113.7"},
			remoteAddr: "192.0.2.10:51234",
			want:       "203.0.113.7",
		},
		{
			name:       "uses the real-ip header when forwarding is absent",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			remoteAddr: "192.0.2.10:51234",
			want:       "203.0.113.9",
		},
		{
			name:       "ignores a spoofed real-ip header",
			headers:    map[string]string{"X-Real-IP": "spoofed"},
			remoteAddr: "192.0.2.10:51234",
			want:       "192.0.2.10",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.FromRequest(req))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = clientip.FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:51234"
	clientip.Middleware(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "192.0.2.10", seen)
}
