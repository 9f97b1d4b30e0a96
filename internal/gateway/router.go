package gateway

import (
	"fmt"
	"net/http"
	"strings"

	v1 "github.com/rpsg-tech/clm-sub005/internal/api/rest/v1"
	"github.com/rpsg-tech/clm-sub005/internal/domain/auth"
	"github.com/rpsg-tech/clm-sub005/internal/domain/clmerr"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NewRouter wires the user app and admin app routes onto a gin engine
func NewRouter(proxy *Proxy, issuer auth.TokenIssuer, log logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), v1.RequestLogger(log))

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.Any("/api/*path", proxy.Handler())
	admin := r.Group("/admin/api", RequireAdmin(issuer))
	admin.Any("/*path", proxy.Handler())
	return r
}

// RequestID makes sure every request carries an X-Request-ID and echoes it
// on the response
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(v1.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			ctx.Request.Header.Set(v1.RequestIDHeader, id)
		}
		ctx.Header(v1.RequestIDHeader, id)
		ctx.Next()
	}
}

// RequireAdmin lets a request through only when its session token carries
// the admin role. The backend still authenticates the forwarded request.
func RequireAdmin(issuer auth.TokenIssuer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(v1.SessionCookie)
		if err != nil || token == "" {
			token = bearer(ctx.GetHeader("Authorization"))
		}
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, v1.ErrorResponse{Message: clmerr.ErrUnauthorized.Error()})
			return
		}

		actor, err := issuer.Parse(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, v1.ErrorResponse{Message: err.Error()})
			return
		}
		if actor.Role != users.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, v1.ErrorResponse{
				Message: fmt.Sprintf("%v: admin app requires the admin role", clmerr.ErrForbidden),
			})
			return
		}
		ctx.Next()
	}
}

func bearer(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
