package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name         string
		token        string
		authHeader   string
		expectedCode int
	}{
		{
			name:         "Valid token",
			token:        "secret",
			authHeader:   "Bearer secret",
			expectedCode: http.StatusOK,
		},
		{
			name:         "Missing header",
			token:        "secret",
			authHeader:   "",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Wrong token",
			token:        "secret",
			authHeader:   "Bearer nope",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Malformed header",
			token:        "secret",
			authHeader:   "Basic secret",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Empty configured token disables the check",
			token:        "",
			authHeader:   "",
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Middleware(tt.token)(next)

			r := httptest.NewRequest(http.MethodGet, "/api/sync/status", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
