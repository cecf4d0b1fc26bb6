package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/config"
)

func TestPayloadRoundtrip(t *testing.T) {
	t.Parallel()

	body := []byte(`{"message":"Users found"}`)
	status, got, ok := decodePayload(encodePayload(http.StatusOK, body))
	if !ok {
		t.Fatal("decodePayload rejected its own encoding")
	}
	if status != http.StatusOK || !bytes.Equal(got, body) {
		t.Fatalf("roundtrip produced status=%d body=%q", status, got)
	}

	if _, _, ok := decodePayload([]byte{1, 2}); ok {
		t.Fatal("truncated payload accepted")
	}
}

func TestNewRedisCache_DisabledIsPassthrough(t *testing.T) {
	t.Parallel()

	mw := NewRedisCache(config.CacheConfig{Enabled: false, TTL: time.Minute}, nil)

	e := echo.New()
	calls := 0
	e.GET("/x", func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, "fresh")
	}, mw)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK || rec.Body.String() != "fresh" {
			t.Fatalf("request %d: status=%d body=%q", i, rec.Code, rec.Body.String())
		}
	}
	if calls != 2 {
		t.Fatalf("handler called %d times, want 2 (no caching without redis)", calls)
	}
}

func TestCacheKey_DistinguishesPaths(t *testing.T) {
	t.Parallel()

	e := echo.New()
	key := func(path string) string {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		return cacheKey("users", c)
	}
	if key("/v1/users/a") == key("/v1/users/b") {
		t.Fatal("different ids share one cache key")
	}
	if key("/v1/users?x=1") == key("/v1/users?x=2") {
		t.Fatal("different queries share one cache key")
	}
}
