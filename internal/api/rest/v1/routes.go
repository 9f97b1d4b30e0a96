package v1

import (
	"github.com/rpsg-tech/clm-sub005/internal/domain/approvals"
	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/domain/auth"
	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
	"github.com/rpsg-tech/clm-sub005/internal/domain/templates"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/domain/versions"

	"github.com/gin-gonic/gin"
)

// Services groups the application services the routes dispatch to
type Services struct {
	Auth      auth.AuthService
	Users     users.UserService
	Templates templates.TemplateService
	Contracts contracts.ContractService
	Versions  versions.VersionService
	Approvals approvals.ApprovalService
	Audit     audit.AuditService
}

// RouteOptions carries the request-level collaborators of SetupRoutes
type RouteOptions struct {
	Issuer  auth.TokenIssuer
	Cookies CookieSettings
	// LoginLimiter throttles POST /auth/login when set
	LoginLimiter *LoginRateLimiter
	Health       HealthChecker
}

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine, services Services, opts RouteOptions) {
	v1 := r.Group(BasePath) // lookup in version file
	v1.Use(CSRFProtect())

	v1.GET("/health", NewHealthHandler(opts.Health).Health)

	// Session Routes
	authHandler := NewAuthHandler(services.Auth, opts.Cookies)
	v1.GET("/auth/csrf", authHandler.CSRF)
	if opts.LoginLimiter != nil {
		v1.POST("/auth/login", opts.LoginLimiter.Middleware(), authHandler.Login)
	} else {
		v1.POST("/auth/login", authHandler.Login)
	}

	secured := v1.Group("", Authenticate(opts.Issuer, services.Auth))
	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/auth/me", authHandler.Me)

	editors := RequireRole(users.EditorRoles...)

	// Template Routes
	templateHandler := NewTemplateHandler(services.Templates)
	secured.GET("/templates", templateHandler.List)
	secured.GET("/templates/:id", templateHandler.GetByID)
	secured.POST("/templates", editors, templateHandler.Create)
	secured.PUT("/templates/:id", editors, templateHandler.Update)
	secured.DELETE("/templates/:id", editors, templateHandler.DeleteByID)

	// Contract Routes
	contractHandler := NewContractHandler(services.Contracts)
	secured.GET("/contracts", contractHandler.List)
	secured.GET("/contracts/:id", contractHandler.GetByID)
	secured.POST("/contracts", editors, contractHandler.Create)
	secured.PUT("/contracts/:id", editors, contractHandler.Update)
	secured.DELETE("/contracts/:id", editors, contractHandler.DeleteByID)
	secured.POST("/contracts/:id/status", editors, contractHandler.Transition)

	// Version Routes
	versionHandler := NewVersionHandler(services.Versions)
	secured.GET("/contracts/:id/versions", versionHandler.List)
	secured.GET("/contracts/:id/versions/diff", versionHandler.Diff)
	secured.GET("/contracts/:id/versions/:number", versionHandler.Get)
	secured.POST("/contracts/:id/versions/:number/restore", editors, versionHandler.Restore)

	// Approval Routes
	approvalHandler := NewApprovalHandler(services.Approvals)
	secured.POST("/contracts/:id/approvals", editors, approvalHandler.Submit)
	secured.GET("/contracts/:id/approvals", approvalHandler.ListForContract)
	secured.GET("/approvals/pending", approvalHandler.ListPending)
	secured.POST("/approvals/:id/decision", RequireRole(users.ApproverRoles...), approvalHandler.Decide)

	admin := secured.Group("", RequireRole(users.RoleAdmin))

	// Audit Routes
	auditHandler := NewAuditHandler(services.Audit)
	admin.GET("/audit", auditHandler.List)
	admin.GET("/audit/export", auditHandler.Export)

	// User Routes
	userHandler := NewUserHandler(services.Users)
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.GET("/users/:id", userHandler.GetByID)
	admin.PUT("/users/:id/role", userHandler.UpdateRole)
	admin.DELETE("/users/:id", userHandler.Deactivate)
}
