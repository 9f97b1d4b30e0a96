package v1

import (
	"fmt"
	"net/http"

	"github.com/rpsg-tech/clm-sub005/internal/domain/templates"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// TemplateHandler defines the interface for handling template operations
type TemplateHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

type templateHandler struct {
	templateService templates.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templateService templates.TemplateService) TemplateHandler {
	return &templateHandler{templateService: templateService}
}

// Create handles the POST request to create a template
// @Summary Create a template
// @Tags Template
// @Accept json
// @Produce json
// @Param requestBody body TemplateRequest true "Template"
// @Success 201 {object} TemplateResponse
// @Failure 400 {object} ErrorResponse
// @Router /templates [post]
func (handler *templateHandler) Create(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	var request TemplateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, fmt.Sprintf("invalid template data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		badRequest(ctx, fmt.Sprintf("validation failed: %v", err))
		return
	}

	template, err := handler.templateService.Create(ctx, actor, request.toInput())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newTemplateResponse(template))
}

// List handles the GET request to list templates
// @Summary List templates
// @Tags Template
// @Produce json
// @Param name query string false "Name contains"
// @Param category query string false "Category"
// @Param active query bool false "Active only"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} TemplateResponse
// @Router /templates [get]
func (handler *templateHandler) List(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	query := templates.NewTemplateQuery()
	query.Name = ctx.Query("name")
	query.Category = ctx.Query("category")
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

	list, err := handler.templateService.List(ctx, actor, query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	response := make([]TemplateResponse, 0, len(list))
	for _, t := range list {
		response = append(response, newTemplateResponse(t))
	}
	ctx.JSON(http.StatusOK, response)
}

// GetByID handles the GET request for one template
// @Summary Get a template
// @Tags Template
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} TemplateResponse
// @Failure 404 {object} ErrorResponse
// @Router /templates/{id} [get]
func (handler *templateHandler) GetByID(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	template, err := handler.templateService.GetByID(ctx, actor, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newTemplateResponse(template))
}

// Update handles the PUT request to replace a template
// @Summary Update a template
// @Tags Template
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param requestBody body TemplateRequest true "Template"
// @Success 200 {object} TemplateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /templates/{id} [put]
func (handler *templateHandler) Update(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	var request TemplateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, fmt.Sprintf("invalid template data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		badRequest(ctx, fmt.Sprintf("validation failed: %v", err))
		return
	}

	template, err := handler.templateService.Update(ctx, actor, ctx.Param("id"), request.toInput())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newTemplateResponse(template))
}

// DeleteByID handles the DELETE request for a template
// @Summary Delete a template
// @Tags Template
// @Param id path string true "Template ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /templates/{id} [delete]
func (handler *templateHandler) DeleteByID(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	if err := handler.templateService.DeleteByID(ctx, actor, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
