package v1

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/auth"

	"github.com/gin-gonic/gin"
)

// csrfTokenBytes is the entropy of a CSRF token before hex encoding
const csrfTokenBytes = 32

// CookieSettings controls the attributes of the session and CSRF cookies
type CookieSettings struct {
	Secure bool
	Domain string
}

// AuthHandler defines the interface for session endpoints
type AuthHandler interface {
	CSRF(ctx *gin.Context)
	Login(ctx *gin.Context)
	Logout(ctx *gin.Context)
	Me(ctx *gin.Context)
}

type authHandler struct {
	authService auth.AuthService
	cookies     CookieSettings
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService auth.AuthService, cookies CookieSettings) AuthHandler {
	return &authHandler{
		authService: authService,
		cookies:     cookies,
	}
}

// CSRF handles the GET request that bootstraps the double-submit token
// @Summary Issue a CSRF token
// @Tags Auth
// @Produce json
// @Success 200 {object} CSRFResponse
// @Router /auth/csrf [get]
func (handler *authHandler) CSRF(ctx *gin.Context) {
	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		respondError(ctx, fmt.Errorf("failed to generate csrf token: %w", err))
		return
	}
	token := hex.EncodeToString(buf)

	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(CSRFCookie, token, 0, "/", handler.cookies.Domain, handler.cookies.Secure, false)
	ctx.JSON(http.StatusOK, CSRFResponse{Token: token})
}

// Login handles the POST request that opens a session
// @Summary Log in with organization, email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body LoginRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (handler *authHandler) Login(ctx *gin.Context) {
	var request LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, fmt.Sprintf("invalid login data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		badRequest(ctx, fmt.Sprintf("validation failed: %v", err))
		return
	}

	session, err := handler.authService.Login(ctx, &auth.Credentials{
		Organization: request.Organization,
		Email:        request.Email,
		Password:     request.Password,
	}, ctx.ClientIP())
	if err != nil {
		respondError(ctx, err)
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookie, session.Token, maxAge, "/", handler.cookies.Domain, handler.cookies.Secure, true)
	ctx.JSON(http.StatusOK, SessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      newUserResponse(session.User),
	})
}

// Logout handles the POST request that clears the session cookie
// @Summary Log out
// @Tags Auth
// @Success 204
// @Router /auth/logout [post]
func (handler *authHandler) Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookie, "", -1, "/", handler.cookies.Domain, handler.cookies.Secure, true)
	ctx.Status(http.StatusNoContent)
}

// Me handles the GET request for the current user
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (handler *authHandler) Me(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	user, err := handler.authService.Me(ctx, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newUserResponse(user))
}
