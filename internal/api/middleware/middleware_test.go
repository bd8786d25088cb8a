package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CapacityService/pkg/logger"
)

type observed struct {
	method, path, status string
}

type fakeObserver struct {
	mu    sync.Mutex
	calls []observed
}

func (o *fakeObserver) ObserveHTTPRequest(method, path, status string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, observed{method: method, path: path, status: status})
}

func Test_MetricsMiddleware_usesRouteTemplate(t *testing.T) {
	observer := &fakeObserver{}
	router := mux.NewRouter()
	router.Use(MetricsMiddleware(observer))
	router.HandleFunc("/booking-sessions/{sessionId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/booking-sessions/0b8f3c1e-9a4d-4f7e-8c21-5d6a7b8c9d0e", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, observer.calls, 1)
	assert.Equal(t, observed{method: "GET", path: "/booking-sessions/{sessionId}", status: "404"}, observer.calls[0])
}

func Test_MetricsMiddleware_defaultStatus(t *testing.T) {
	observer := &fakeObserver{}
	router := mux.NewRouter()
	router.Use(MetricsMiddleware(observer))
	router.HandleFunc("/catalog", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/catalog", nil))

	require.Len(t, observer.calls, 1)
	assert.Equal(t, "200", observer.calls[0].status)
}

func Test_RateLimiter_limitsPerClient(t *testing.T) {
	limiter, err := NewRateLimiter(1, 2, logger.NewNop())
	require.NoError(t, err)
	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5002"))

	// Другой клиент не затронут
	assert.Equal(t, http.StatusOK, call("10.0.0.2:5000"))
}

func Test_clientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:4321"
	assert.Equal(t, "192.168.1.5", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", clientIP(req))
}
