package v1

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/auth"
	"github.com/rpsg-tech/clm-sub005/internal/domain/clmerr"
	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// SessionCookie carries the session token for browser clients
	SessionCookie = "clm_session"
	// CSRFCookie carries the double-submit token. It is readable by scripts.
	CSRFCookie = "clm_csrf"
	// CSRFHeader must echo the CSRFCookie value on state-changing requests
	CSRFHeader = "X-CSRF-Token"
	// RequestIDHeader is logged when present
	RequestIDHeader = "X-Request-ID"

	actorKey = "clm.actor"
)

// Authenticate resolves the caller from the session cookie or, when no cookie
// is sent, from an Authorization bearer token. The token only names the user;
// sessions re-reads it so deactivation and role changes apply immediately.
func Authenticate(issuer auth.TokenIssuer, sessions auth.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(SessionCookie)
		if err != nil || token == "" {
			token = bearerToken(ctx.GetHeader("Authorization"))
		}
		if token == "" {
			respondError(ctx, fmt.Errorf("%w: session token not provided", clmerr.ErrUnauthorized))
			return
		}

		claimed, err := issuer.Parse(token)
		if err != nil {
			respondError(ctx, err)
			return
		}
		actor, err := sessions.Resolve(ctx.Request.Context(), *claimed)
		if err != nil {
			respondError(ctx, err)
			return
		}
		actor.IPAddress = ctx.ClientIP()
		ctx.Set(actorKey, actor)
		ctx.Next()
	}
}

// CSRFProtect enforces the double-submit cookie on unsafe methods. Clients
// that authenticate with a bearer header and send no session cookie are exempt.
func CSRFProtect() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !unsafeMethod(ctx.Request.Method) {
			ctx.Next()
			return
		}
		if _, err := ctx.Cookie(SessionCookie); err != nil && bearerToken(ctx.GetHeader("Authorization")) != "" {
			ctx.Next()
			return
		}

		cookie, err := ctx.Cookie(CSRFCookie)
		header := ctx.GetHeader(CSRFHeader)
		if err != nil || cookie == "" || header == "" ||
			subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			ctx.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Message: "csrf token missing or invalid"})
			return
		}
		ctx.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated actor holds one of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := actorFrom(ctx)
		if !ok {
			respondError(ctx, fmt.Errorf("%w: not authenticated", clmerr.ErrUnauthorized))
			return
		}
		if !actor.HasRole(roles...) {
			respondError(ctx, fmt.Errorf("%w: role %s may not access this resource", clmerr.ErrForbidden, actor.Role))
			return
		}
		ctx.Next()
	}
}

// LoginRateLimiter throttles login attempts per client IP
type LoginRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	lastScan time.Time
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginRateLimiter allows rps attempts per second per IP with the given burst
func NewLoginRateLimiter(rps float64, burst int) *LoginRateLimiter {
	return &LoginRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(rps),
		burst:    burst,
		ttl:      10 * time.Minute,
		now:      time.Now,
	}
}

// Allow reports whether ip may attempt another login now
func (rl *LoginRateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastScan) > rl.ttl {
		for key, v := range rl.visitors {
			if now.Sub(v.lastSeen) > rl.ttl {
				delete(rl.visitors, key)
			}
		}
		rl.lastScan = now
	}

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Middleware rejects requests over the limit with 429
func (rl *LoginRateLimiter) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !rl.Allow(ctx.ClientIP()) {
			ctx.Header("Retry-After", "1")
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Message: "too many login attempts"})
			return
		}
		ctx.Next()
	}
}

// RequestLogger logs one line per request
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		keyvals := []interface{}{
			"status", ctx.Writer.Status(),
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"latency", time.Since(start).String(),
			"ip", ctx.ClientIP(),
		}
		if id := ctx.GetHeader(RequestIDHeader); id != "" {
			keyvals = append(keyvals, "request_id", id)
		}
		if len(ctx.Errors) > 0 {
			keyvals = append(keyvals, "errors", ctx.Errors.String())
			log.Error("request failed", keyvals...)
			return
		}
		log.Info("request handled", keyvals...)
	}
}

// actorFrom returns the actor set by Authenticate
func actorFrom(ctx *gin.Context) (identity.Actor, bool) {
	value, ok := ctx.Get(actorKey)
	if !ok {
		return identity.Actor{}, false
	}
	actor, ok := value.(identity.Actor)
	return actor, ok
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unsafeMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// requestActor returns the authenticated actor or aborts with 401
func requestActor(ctx *gin.Context) (identity.Actor, bool) {
	actor, ok := actorFrom(ctx)
	if !ok {
		respondError(ctx, fmt.Errorf("%w: not authenticated", clmerr.ErrUnauthorized))
	}
	return actor, ok
}
