package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLMProxy_Forwarding(t *testing.T) {
	var gotPath, gotAuth, gotBody string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer upstream.Close()

	proxy, err := NewLMProxy(upstream.URL+"/v1", "upstream-key")
	assert.NoError(t, err)

	router := gin.New()
	router.POST("/api/v1/lm/*path", proxy.Handle)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lm/chat/completions", strings.NewReader(`{"model":"gpt"}`))
	// httputil.ReverseProxy falls back to http.CloseNotifier when the request
	// context has no Done channel, which httptest.ResponseRecorder lacks.
	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()
	req = req.WithContext(ctx)
	// the client's own token must not leak upstream
	req.Header.Set("Authorization", "Bearer client-token")

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer upstream-key", gotAuth)
	assert.Equal(t, `{"model":"gpt"}`, gotBody)
	assert.JSONEq(t, `{"choices":[]}`, res.Body.String())
}

func TestLMProxy_NotConfigured(t *testing.T) {
	proxy, err := NewLMProxy("", "")
	assert.NoError(t, err)

	router := gin.New()
	router.POST("/api/v1/lm/*path", proxy.Handle)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lm/chat/completions", nil)
	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()
	req = req.WithContext(ctx)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusServiceUnavailable, res.Code)
}

func TestLMProxy_UpstreamDown(t *testing.T) {
	proxy, err := NewLMProxy("http://127.0.0.1:1", "key")
	assert.NoError(t, err)

	router := gin.New()
	router.POST("/api/v1/lm/*path", proxy.Handle)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lm/chat/completions", nil)
	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()
	req = req.WithContext(ctx)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusServiceUnavailable, res.Code)
}
