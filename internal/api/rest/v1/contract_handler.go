package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// ContractHandler defines the interface for handling contract operations
type ContractHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Transition(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

type contractHandler struct {
	contractService contracts.ContractService
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(contractService contracts.ContractService) ContractHandler {
	return &contractHandler{contractService: contractService}
}

// Create handles the POST request to create a draft contract
// @Summary Create a contract
// @Description Creates a draft from an inline body or an active template. Version 1 is recorded.
// @Tags Contract
// @Accept json
// @Produce json
// @Param requestBody body CreateContractRequest true "Contract"
// @Success 201 {object} ContractResponse
// @Failure 400 {object} ErrorResponse
// @Router /contracts [post]
func (handler *contractHandler) Create(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	var request CreateContractRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, fmt.Sprintf("invalid contract data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		badRequest(ctx, fmt.Sprintf("validation failed: %v", err))
		return
	}
	input, err := request.toInput()
	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	contract, err := handler.contractService.Create(ctx, actor, input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newContractResponse(contract))
}

// List handles the GET request to list contracts
// @Summary List contracts
// @Tags Contract
// @Produce json
// @Param status query string false "Status"
// @Param counterparty query string false "Counterparty contains"
// @Param title query string false "Title contains"
// @Param ownerId query string false "Owner"
// @Param createdAfter query string false "Creation lower bound (RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} ContractResponse
// @Failure 400 {object} ErrorResponse
// @Router /contracts [get]
func (handler *contractHandler) List(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	query := contracts.NewContractQuery()
	query.Status = ctx.Query("status")
	query.Counterparty = ctx.Query("counterparty")
	query.Title = ctx.Query("title")
	query.OwnerID = ctx.Query("ownerId")
	if createdAfter := ctx.Query("createdAfter"); len(createdAfter) > 0 {
		parsed, err := time.Parse(time.RFC3339, createdAfter)
		if err != nil {
			badRequest(ctx, fmt.Sprintf("invalid createdAfter: %v", err))
			return
		}
		query.CreatedAfter = parsed
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

	list, err := handler.contractService.List(ctx, actor, query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	response := make([]ContractResponse, 0, len(list))
	for _, c := range list {
		response = append(response, newContractResponse(c))
	}
	ctx.JSON(http.StatusOK, response)
}

// GetByID handles the GET request for one contract
// @Summary Get a contract
// @Tags Contract
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} ContractResponse
// @Failure 404 {object} ErrorResponse
// @Router /contracts/{id} [get]
func (handler *contractHandler) GetByID(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	contract, err := handler.contractService.GetByID(ctx, actor, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newContractResponse(contract))
}

// Update handles the PUT request to change a draft or rejected contract
// @Summary Update a contract
// @Description Fields left out are unchanged. A new version is appended when the content changes.
// @Tags Contract
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param requestBody body UpdateContractRequest true "Changes"
// @Success 200 {object} ContractResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /contracts/{id} [put]
func (handler *contractHandler) Update(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	var request UpdateContractRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, fmt.Sprintf("invalid contract data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		badRequest(ctx, fmt.Sprintf("validation failed: %v", err))
		return
	}
	update, err := request.toUpdate()
	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	contract, err := handler.contractService.Update(ctx, actor, ctx.Param("id"), update)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newContractResponse(contract))
}

// Transition handles the POST request to move a contract to another status
// @Summary Change contract status
// @Tags Contract
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param requestBody body TransitionRequest true "Target status"
// @Success 200 {object} ContractResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /contracts/{id}/status [post]
func (handler *contractHandler) Transition(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	var request TransitionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, fmt.Sprintf("invalid status data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		badRequest(ctx, fmt.Sprintf("validation failed: %v", err))
		return
	}

	contract, err := handler.contractService.Transition(ctx, actor, ctx.Param("id"), request.Status)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newContractResponse(contract))
}

// DeleteByID handles the DELETE request for a contract
// @Summary Delete a contract
// @Tags Contract
// @Param id path string true "Contract ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /contracts/{id} [delete]
func (handler *contractHandler) DeleteByID(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	if err := handler.contractService.DeleteByID(ctx, actor, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
