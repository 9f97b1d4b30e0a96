// Package gateway is the browser-facing proxy in front of the REST API. It
// serves the user app under /api and the admin app under /admin/api.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	v1 "github.com/rpsg-tech/clm-sub005/internal/api/rest/v1"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// forwardedHeaders are the only request headers passed to the backend
var forwardedHeaders = []string{
	"Accept",
	"Authorization",
	"Content-Type",
	"Cookie",
	v1.CSRFHeader,
	v1.RequestIDHeader,
}

// Proxy forwards requests to the backend API and relays its responses as-is
type Proxy struct {
	backend *url.URL
	rp      *httputil.ReverseProxy
	logger  logger.Logger
}

// NewProxy creates a Proxy for backendURL. timeout bounds the wait for
// response headers.
func NewProxy(backendURL string, timeout time.Duration, log logger.Logger) (*Proxy, error) {
	backend, err := url.Parse(backendURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", backendURL, err)
	}
	if backend.Scheme == "" || backend.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", backendURL)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = timeout

	p := &Proxy{backend: backend, logger: log}
	p.rp = &httputil.ReverseProxy{
		Director:     p.direct,
		Transport:    transport,
		ErrorHandler: p.fail,
	}
	return p, nil
}

// direct points req at the backend and keeps only the forwarded headers.
// ReverseProxy appends the client address to X-Forwarded-For afterwards.
func (p *Proxy) direct(req *http.Request) {
	req.URL.Scheme = p.backend.Scheme
	req.URL.Host = p.backend.Host
	req.URL.Path = strings.TrimSuffix(p.backend.Path, "/") + req.URL.Path
	req.URL.RawPath = ""
	req.Host = p.backend.Host

	kept := make(http.Header, len(forwardedHeaders))
	for _, name := range forwardedHeaders {
		if values := req.Header.Values(name); len(values) > 0 {
			kept[http.CanonicalHeaderKey(name)] = values
		}
	}
	req.Header = kept
}

func (p *Proxy) fail(w http.ResponseWriter, req *http.Request, err error) {
	p.logger.Error("backend request failed", "method", req.Method, "path", req.URL.Path,
		"request_id", req.Header.Get(v1.RequestIDHeader), "error", err)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	_, _ = w.Write([]byte(`{"message":"backend unavailable"}`))
}

// Handler forwards the wildcard "path" parameter to the backend under the
// version 1 base path, keeping the query string. The outgoing request always
// carries a cancellable context so ReverseProxy never falls back to
// http.CloseNotifier, which gin's writer cannot always provide.
func (p *Proxy) Handler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		reqCtx, cancel := context.WithCancel(ctx.Request.Context())
		defer cancel()

		out := ctx.Request.Clone(reqCtx)
		out.URL.Path = v1.BasePath + ctx.Param("path")
		p.rp.ServeHTTP(ctx.Writer, out)
	}
}
