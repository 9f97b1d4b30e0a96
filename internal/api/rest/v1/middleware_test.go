//go:build unit
// +build unit

package v1

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/clmerr"
	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// echoActor responds with the role of the authenticated actor
func echoActor(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		ctx.String(http.StatusOK, "anonymous")
		return
	}
	ctx.String(http.StatusOK, actor.Role+"@"+actor.IPAddress)
}

func TestAuthenticate(t *testing.T) {
	issuer := new(MockTokenIssuer)
	issuer.On("Parse", "cookie-token").Return(&identity.Actor{UserID: testUserID, OrganizationID: testOrgID, Role: users.RoleLegal}, nil)
	issuer.On("Parse", "bearer-token").Return(&identity.Actor{UserID: testUserID, OrganizationID: testOrgID, Role: users.RoleViewer}, nil)
	issuer.On("Parse", "expired").Return(nil, fmt.Errorf("%w: session expired", clmerr.ErrUnauthorized))

	r := gin.New()
	r.GET("/me", Authenticate(issuer, PassThroughSessions()), echoActor)

	tests := []struct {
		name       string
		cookie     string
		bearer     string
		wantStatus int
		wantBody   string
	}{
		{name: "session cookie", cookie: "cookie-token", wantStatus: http.StatusOK, wantBody: "legal@"},
		{name: "bearer header", bearer: "bearer-token", wantStatus: http.StatusOK, wantBody: "viewer@"},
		{name: "cookie wins over header", cookie: "cookie-token", bearer: "bearer-token", wantStatus: http.StatusOK, wantBody: "legal@"},
		{name: "expired token", cookie: "expired", wantStatus: http.StatusUnauthorized, wantBody: "session expired"},
		{name: "no credentials", wantStatus: http.StatusUnauthorized, wantBody: "not provided"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/me", nil)
			req.RemoteAddr = "198.51.100.7:4000"
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestAuthenticate_RecordsClientIP(t *testing.T) {
	issuer := new(MockTokenIssuer)
	issuer.On("Parse", "token").Return(&identity.Actor{UserID: testUserID, OrganizationID: testOrgID, Role: users.RoleAdmin}, nil)

	r := gin.New()
	r.GET("/me", Authenticate(issuer, PassThroughSessions()), echoActor)

	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	req.RemoteAddr = "198.51.100.7:4000"
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "admin@198.51.100.7", w.Body.String())
}

func TestAuthenticate_ChecksStoredUser(t *testing.T) {
	const deactivatedID = "7a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
	issuer := new(MockTokenIssuer)
	issuer.On("Parse", "demoted").Return(&identity.Actor{UserID: testUserID, OrganizationID: testOrgID, Role: users.RoleAdmin}, nil)
	issuer.On("Parse", "deactivated").Return(&identity.Actor{UserID: deactivatedID, OrganizationID: testOrgID, Role: users.RoleLegal}, nil)

	sessions := new(MockAuthService)
	sessions.On("Resolve", mock.Anything, mock.MatchedBy(func(a identity.Actor) bool { return a.UserID == testUserID })).
		Return(identity.Actor{UserID: testUserID, OrganizationID: testOrgID, Role: users.RoleViewer}, nil)
	sessions.On("Resolve", mock.Anything, mock.MatchedBy(func(a identity.Actor) bool { return a.UserID == deactivatedID })).
		Return(identity.Actor{}, fmt.Errorf("%w: user is deactivated", clmerr.ErrUnauthorized))

	r := gin.New()
	r.GET("/me", Authenticate(issuer, sessions), echoActor)
	r.GET("/admin", Authenticate(issuer, sessions), RequireRole(users.RoleAdmin), echoActor)

	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
		wantBody   string
	}{
		{name: "stored role replaces token role", path: "/me", token: "demoted", wantStatus: http.StatusOK, wantBody: "viewer@"},
		{name: "demoted admin loses admin routes", path: "/admin", token: "demoted", wantStatus: http.StatusForbidden},
		{name: "deactivated user", path: "/me", token: "deactivated", wantStatus: http.StatusUnauthorized, wantBody: "deactivated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestCSRFProtect(t *testing.T) {
	r := gin.New()
	r.Use(CSRFProtect())
	r.GET("/read", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	r.POST("/write", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	tests := []struct {
		name       string
		method     string
		path       string
		session    bool
		bearer     bool
		cookie     string
		header     string
		wantStatus int
	}{
		{name: "safe method", method: http.MethodGet, path: "/read", session: true, wantStatus: http.StatusOK},
		{name: "matching token", method: http.MethodPost, path: "/write", session: true, cookie: "abc123", header: "abc123", wantStatus: http.StatusOK},
		{name: "mismatched token", method: http.MethodPost, path: "/write", session: true, cookie: "abc123", header: "abc124", wantStatus: http.StatusForbidden},
		{name: "missing header", method: http.MethodPost, path: "/write", session: true, cookie: "abc123", wantStatus: http.StatusForbidden},
		{name: "missing cookie", method: http.MethodPost, path: "/write", session: true, header: "abc123", wantStatus: http.StatusForbidden},
		{name: "anonymous without token", method: http.MethodPost, path: "/write", wantStatus: http.StatusForbidden},
		{name: "bearer client", method: http.MethodPost, path: "/write", bearer: true, wantStatus: http.StatusOK},
		{name: "bearer with session cookie", method: http.MethodPost, path: "/write", bearer: true, session: true, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.path, nil)
			if tt.session {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "session"})
			}
			if tt.bearer {
				req.Header.Set("Authorization", "Bearer token")
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CSRFCookie, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set(CSRFHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{name: "allowed role", role: users.RoleLegal, wantStatus: http.StatusOK},
		{name: "other role", role: users.RoleViewer, wantStatus: http.StatusForbidden},
		{name: "unauthenticated", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/contracts", func(ctx *gin.Context) {
				if tt.role != "" {
					ctx.Set(actorKey, testActor(tt.role))
				}
			}, RequireRole(users.EditorRoles...), func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

			req, _ := http.NewRequest(http.MethodPost, "/contracts", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestLoginRateLimiter_PerIP(t *testing.T) {
	limiter := NewLoginRateLimiter(1, 2)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("192.0.2.1"))
	assert.True(t, limiter.Allow("192.0.2.1"))
	assert.False(t, limiter.Allow("192.0.2.1"))
	assert.True(t, limiter.Allow("192.0.2.2"), "other clients keep their own budget")

	now = now.Add(time.Second)
	assert.True(t, limiter.Allow("192.0.2.1"), "tokens refill over time")
}

func TestLoginRateLimiter_ForgetsIdleVisitors(t *testing.T) {
	limiter := NewLoginRateLimiter(1, 1)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("192.0.2.1")
	require.Len(t, limiter.visitors, 1)

	now = now.Add(limiter.ttl + time.Minute)
	limiter.Allow("192.0.2.2")
	assert.Len(t, limiter.visitors, 1)
	assert.Contains(t, limiter.visitors, "192.0.2.2")
}

func TestLoginRateLimiter_Middleware(t *testing.T) {
	limiter := NewLoginRateLimiter(0.001, 1)
	r := gin.New()
	r.POST("/auth/login", limiter.Middleware(), func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "203.0.113.9:5000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRequestLogger(t *testing.T) {
	log, buf := testutil.CaptureLogger(t)

	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/ok", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	r.GET("/boom", func(ctx *gin.Context) { respondError(ctx, fmt.Errorf("disk full")) })

	req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	r.ServeHTTP(httptest.NewRecorder(), req)

	req, _ = http.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "request handled")
	assert.Contains(t, out, "req-42")
	assert.Contains(t, out, "request failed")
	assert.Contains(t, out, "disk full")
}
