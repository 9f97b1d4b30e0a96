//go:build unit
// +build unit

package gateway

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	v1 "github.com/rpsg-tech/clm-sub005/internal/api/rest/v1"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/authn"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type seenRequest struct {
	method string
	path   string
	query  string
	header http.Header
	body   string
}

func init() {
	gin.SetMode(gin.TestMode)
}

// setupGateway starts a fake backend and returns a router proxying to it
func setupGateway(t *testing.T, backend http.HandlerFunc) (*gin.Engine, *seenRequest) {
	t.Helper()

	seen := &seenRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*seen = seenRequest{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, header: r.Header.Clone(), body: string(body)}
		backend(w, r)
	}))
	t.Cleanup(server.Close)

	log := testutil.SetupTestLogger(t)
	proxy, err := NewProxy(server.URL, 5*time.Second, log)
	require.NoError(t, err)
	issuer, err := authn.NewJWTIssuer(testSecret, time.Hour)
	require.NoError(t, err)

	return NewRouter(proxy, issuer, log), seen
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	issuer, err := authn.NewJWTIssuer(testSecret, time.Hour)
	require.NoError(t, err)
	token, _, err := issuer.Issue(&users.User{
		ID:             "0f8e7d6c-5b4a-4392-8170-6f5e4d3c2b1a",
		OrganizationID: "5d3a5e0a-7c1b-4b8e-9a51-3f1b2c4d5e6f",
		Role:           role,
	})
	require.NoError(t, err)
	return token
}

func TestProxy_ForwardsCookiesAndCSRF(t *testing.T) {
	r, seen := setupGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"c1"}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/contracts?draft=true", strings.NewReader(`{"title":"MSA"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(v1.CSRFHeader, "tok")
	req.Header.Set("X-Internal-Secret", "must-not-leak")
	req.AddCookie(&http.Cookie{Name: v1.SessionCookie, Value: "session"})
	req.AddCookie(&http.Cookie{Name: v1.CSRFCookie, Value: "tok"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, `{"id":"c1"}`, w.Body.String())

	assert.Equal(t, http.MethodPost, seen.method)
	assert.Equal(t, "/api/v1/contracts", seen.path)
	assert.Equal(t, "draft=true", seen.query)
	assert.Equal(t, `{"title":"MSA"}`, seen.body)
	assert.Equal(t, "tok", seen.header.Get(v1.CSRFHeader))
	assert.Contains(t, seen.header.Get("Cookie"), v1.SessionCookie+"=session")
	assert.Contains(t, seen.header.Get("Cookie"), v1.CSRFCookie+"=tok")
	assert.Equal(t, "application/json", seen.header.Get("Content-Type"))
	assert.Empty(t, seen.header.Get("X-Internal-Secret"))
	assert.Equal(t, "192.0.2.1", seen.header.Get("X-Forwarded-For"))
	assert.NotEmpty(t, seen.header.Get(v1.RequestIDHeader))
	assert.Equal(t, seen.header.Get(v1.RequestIDHeader), w.Header().Get(v1.RequestIDHeader))
}

func TestProxy_KeepsIncomingRequestID(t *testing.T) {
	r, seen := setupGateway(t, func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(v1.RequestIDHeader, "req-7")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "req-7", seen.header.Get(v1.RequestIDHeader))
}

func TestProxy_RelaysStatusAndSetCookie(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message":"unauthorized"}`},
		{name: "csrf failure", status: http.StatusForbidden, body: `{"message":"csrf token missing or invalid"}`},
		{name: "conflict", status: http.StatusConflict, body: `{"message":"invalid status transition"}`},
		{name: "ok", status: http.StatusOK, body: `{"token":"t"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupGateway(t, func(w http.ResponseWriter, _ *http.Request) {
				http.SetCookie(w, &http.Cookie{Name: v1.SessionCookie, Value: "fresh", HttpOnly: true, Path: "/"})
				http.SetCookie(w, &http.Cookie{Name: v1.CSRFCookie, Value: "csrf", Path: "/"})
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{}`))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
			cookies := w.Result().Header.Values("Set-Cookie")
			require.Len(t, cookies, 2)
			assert.Contains(t, cookies[0], v1.SessionCookie+"=fresh")
			assert.Contains(t, cookies[0], "HttpOnly")
			assert.Contains(t, cookies[1], v1.CSRFCookie+"=csrf")
		})
	}
}

func TestProxy_BackendUnreachable(t *testing.T) {
	log, buf := testutil.CaptureLogger(t)
	proxy, err := NewProxy("http://127.0.0.1:1", time.Second, log)
	require.NoError(t, err)
	issuer, err := authn.NewJWTIssuer(testSecret, time.Hour)
	require.NoError(t, err)
	r := NewRouter(proxy, issuer, log)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/contracts", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"message":"backend unavailable"}`, w.Body.String())
	assert.Contains(t, buf.String(), "backend request failed")
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	r, seen := setupGateway(t, func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name       string
		cookie     string
		bearer     string
		wantStatus int
	}{
		{name: "admin cookie", cookie: tokenFor(t, users.RoleAdmin), wantStatus: http.StatusOK},
		{name: "admin bearer", bearer: tokenFor(t, users.RoleAdmin), wantStatus: http.StatusOK},
		{name: "legal cookie", cookie: tokenFor(t, users.RoleLegal), wantStatus: http.StatusForbidden},
		{name: "garbage token", cookie: "not-a-jwt", wantStatus: http.StatusUnauthorized},
		{name: "no session", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			*seen = seenRequest{}
			req := httptest.NewRequest(http.MethodGet, "/admin/api/users", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: v1.SessionCookie, Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "/api/v1/users", seen.path)
			} else {
				assert.Empty(t, seen.path, "rejected requests never reach the backend")
			}
		})
	}
}

func TestNewProxy_RejectsRelativeURL(t *testing.T) {
	_, err := NewProxy("localhost:8080", time.Second, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}

func TestProxy_RecorderWithoutCloseNotifier(t *testing.T) {
	r, _ := setupGateway(t, func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })

	// httptest requests carry context.Background, which has no Done channel
	req := httptest.NewRequest(http.MethodGet, "/api/contracts", nil)
	require.Nil(t, req.Context().Done())

	w := httptest.NewRecorder()
	require.NotPanics(t, func() { r.ServeHTTP(w, req) })
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestProxy_ThroughRunningGateway(t *testing.T) {
	r, seen := setupGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: v1.SessionCookie, Value: "fresh", HttpOnly: true, Path: "/"})
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"invalid status transition"}`))
	})
	gatewayServer := httptest.NewServer(r)
	t.Cleanup(gatewayServer.Close)

	req, err := http.NewRequest(http.MethodPost, gatewayServer.URL+"/api/contracts/c1/status", strings.NewReader(`{"status":"executed"}`))
	require.NoError(t, err)
	req.Header.Set(v1.CSRFHeader, "tok")
	req.AddCookie(&http.Cookie{Name: v1.CSRFCookie, Value: "tok"})

	resp, err := gatewayServer.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.JSONEq(t, `{"message":"invalid status transition"}`, string(body))
	assert.Contains(t, resp.Header.Get("Set-Cookie"), v1.SessionCookie+"=fresh")
	assert.Equal(t, "/api/v1/contracts/c1/status", seen.path)
	assert.Equal(t, "tok", seen.header.Get(v1.CSRFHeader))
	assert.NotEmpty(t, seen.header.Get("X-Forwarded-For"))
}
