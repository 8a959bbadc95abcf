package server

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewLMProxy builds the authenticated pass-through to an OpenAI-compatible
// chat API. The upstream key never reaches the browser; clients authenticate
// against this server and the proxy swaps in the real credential.
func NewLMProxy(baseURL, key string) (*LMProxy, error) {
	if baseURL == "" {
		return &LMProxy{}, nil
	}

	target, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	return &LMProxy{target: target, key: key}, nil
}

type LMProxy struct {
	target *url.URL
	key    string
}

func (p *LMProxy) Handle(c *gin.Context) {
	if p.target == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "the chat service is not available"})
		return
	}

	proxy := httputil.NewSingleHostReverseProxy(p.target)

	director := proxy.Director
	proxy.Director = func(req *http.Request) {
		director(req)
		req.URL.Path = joinPath(p.target.Path, c.Param("path"))
		req.Host = p.target.Host
		req.Header.Set("Authorization", "Bearer "+p.key)
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logrus.Errorf("lm proxy error: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"the chat service is not available"}`))
	}

	proxy.ServeHTTP(c.Writer, c.Request)
}

func joinPath(base, rest string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(rest, "/")
}
