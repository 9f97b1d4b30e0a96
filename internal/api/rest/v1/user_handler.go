package v1

import (
	"fmt"
	"net/http"

	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// UserHandler defines the interface for user administration
type UserHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	UpdateRole(ctx *gin.Context)
	Deactivate(ctx *gin.Context)
}

type userHandler struct {
	userService users.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService users.UserService) UserHandler {
	return &userHandler{userService: userService}
}

// Create handles the POST request to add a user to the caller's organization
// @Summary Create a user
// @Tags User
// @Accept json
// @Produce json
// @Param requestBody body CreateUserRequest true "User"
// @Success 201 {object} UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users [post]
func (handler *userHandler) Create(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	var request CreateUserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, fmt.Sprintf("invalid user data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		badRequest(ctx, fmt.Sprintf("validation failed: %v", err))
		return
	}

	user, err := handler.userService.Create(ctx, actor, &users.UserInput{
		Email:       request.Email,
		DisplayName: request.DisplayName,
		Role:        request.Role,
		Password:    request.Password,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newUserResponse(user))
}

// List handles the GET request to list users
// @Summary List users
// @Tags User
// @Produce json
// @Param role query string false "Role"
// @Param active query bool false "Active"
// @Param email query string false "Email contains"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} UserResponse
// @Router /users [get]
func (handler *userHandler) List(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	query := users.NewUserQuery()
	query.Role = ctx.Query("role")
	query.Email = ctx.Query("email")
	if active, ok := strutil.ConvertToBool(ctx.Query("active")); ok {
		query.Active = &active
	}
	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}
	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = strutil.ConvertToInt(offset)
	}
	query.SortBy = ctx.Query("sortBy")
	query.SortOrder = ctx.Query("sortOrder")

	if err := query.Validate(); err != nil {
		badRequest(ctx, fmt.Sprintf("validation failed: %v", err))
		return
	}

	list, err := handler.userService.List(ctx, actor, query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	response := make([]UserResponse, 0, len(list))
	for _, u := range list {
		response = append(response, newUserResponse(u))
	}
	ctx.JSON(http.StatusOK, response)
}

// GetByID handles the GET request for one user
// @Summary Get a user
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [get]
func (handler *userHandler) GetByID(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	user, err := handler.userService.GetByID(ctx, actor, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateRole handles the PUT request that changes a user's role
// @Summary Change a user's role
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param requestBody body UpdateRoleRequest true "Role"
// @Success 200 {object} UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users/{id}/role [put]
func (handler *userHandler) UpdateRole(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	var request UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, fmt.Sprintf("invalid role data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		badRequest(ctx, fmt.Sprintf("validation failed: %v", err))
		return
	}

	user, err := handler.userService.UpdateRole(ctx, actor, ctx.Param("id"), request.Role)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newUserResponse(user))
}

// Deactivate handles the DELETE request for a user. The row is kept.
// @Summary Deactivate a user
// @Tags User
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users/{id} [delete]
func (handler *userHandler) Deactivate(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	if err := handler.userService.Deactivate(ctx, actor, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
