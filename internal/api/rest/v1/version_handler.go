package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/rpsg-tech/clm-sub005/internal/domain/versions"

	"github.com/gin-gonic/gin"
)

// VersionHandler defines the interface for contract version history
type VersionHandler interface {
	List(ctx *gin.Context)
	Get(ctx *gin.Context)
	Restore(ctx *gin.Context)
	Diff(ctx *gin.Context)
}

type versionHandler struct {
	versionService versions.VersionService
}

// NewVersionHandler creates a new VersionHandler
func NewVersionHandler(versionService versions.VersionService) VersionHandler {
	return &versionHandler{versionService: versionService}
}

// List handles the GET request for the version history of a contract
// @Summary List contract versions
// @Tags Version
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {array} VersionResponse
// @Failure 404 {object} ErrorResponse
// @Router /contracts/{id}/versions [get]
func (handler *versionHandler) List(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	list, err := handler.versionService.List(ctx, actor, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	response := make([]VersionResponse, 0, len(list))
	for _, v := range list {
		response = append(response, newVersionResponse(v))
	}
	ctx.JSON(http.StatusOK, response)
}

// Get handles the GET request for one version
// @Summary Get a contract version
// @Tags Version
// @Produce json
// @Param id path string true "Contract ID"
// @Param number path int true "Version number"
// @Success 200 {object} VersionResponse
// @Failure 404 {object} ErrorResponse
// @Router /contracts/{id}/versions/{number} [get]
func (handler *versionHandler) Get(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	number, ok := versionNumber(ctx, ctx.Param("number"))
	if !ok {
		return
	}
	version, err := handler.versionService.Get(ctx, actor, ctx.Param("id"), number)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newVersionResponse(version))
}

// Restore handles the POST request that appends a copy of an older version
// @Summary Restore a contract version
// @Tags Version
// @Produce json
// @Param id path string true "Contract ID"
// @Param number path int true "Version number"
// @Success 201 {object} VersionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /contracts/{id}/versions/{number}/restore [post]
func (handler *versionHandler) Restore(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	number, ok := versionNumber(ctx, ctx.Param("number"))
	if !ok {
		return
	}
	version, err := handler.versionService.Restore(ctx, actor, ctx.Param("id"), number)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newVersionResponse(version))
}

// Diff handles the GET request comparing two versions
// @Summary Diff two contract versions
// @Tags Version
// @Produce json
// @Param id path string true "Contract ID"
// @Param from query int true "Base version"
// @Param to query int true "Target version"
// @Success 200 {object} DiffResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /contracts/{id}/versions/diff [get]
func (handler *versionHandler) Diff(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	from, ok := versionNumber(ctx, ctx.Query("from"))
	if !ok {
		return
	}
	to, ok := versionNumber(ctx, ctx.Query("to"))
	if !ok {
		return
	}
	changes, err := handler.versionService.Diff(ctx, actor, ctx.Param("id"), from, to)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, DiffResponse{From: from, To: to, Changes: changes})
}

// versionNumber parses a positive version number or aborts with 400
func versionNumber(ctx *gin.Context, raw string) (int, bool) {
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		badRequest(ctx, fmt.Sprintf("invalid version number %q", raw))
		return 0, false
	}
	return number, true
}
