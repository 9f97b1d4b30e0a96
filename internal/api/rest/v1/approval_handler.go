package v1

import (
	"fmt"
	"net/http"

	"github.com/rpsg-tech/clm-sub005/internal/domain/approvals"

	"github.com/gin-gonic/gin"
)

// ApprovalHandler defines the interface for the approval workflow
type ApprovalHandler interface {
	Submit(ctx *gin.Context)
	ListForContract(ctx *gin.Context)
	ListPending(ctx *gin.Context)
	Decide(ctx *gin.Context)
}

type approvalHandler struct {
	approvalService approvals.ApprovalService
}

// NewApprovalHandler creates a new ApprovalHandler
func NewApprovalHandler(approvalService approvals.ApprovalService) ApprovalHandler {
	return &approvalHandler{approvalService: approvalService}
}

// Submit handles the POST request that sends a draft for approval
// @Summary Submit a contract for approval
// @Description Creates one pending step per approver in the given order and moves the contract to in_review.
// @Tags Approval
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param requestBody body SubmitApprovalRequest true "Approvers"
// @Success 201 {array} ApprovalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /contracts/{id}/approvals [post]
func (handler *approvalHandler) Submit(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	var request SubmitApprovalRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, fmt.Sprintf("invalid approval data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		badRequest(ctx, fmt.Sprintf("validation failed: %v", err))
		return
	}

	steps, err := handler.approvalService.Submit(ctx, actor, ctx.Param("id"), &approvals.SubmitInput{ApproverIDs: request.ApproverIDs})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newApprovalResponses(steps))
}

// ListForContract handles the GET request for every approval step of a contract
// @Summary List approvals of a contract
// @Tags Approval
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {array} ApprovalResponse
// @Failure 404 {object} ErrorResponse
// @Router /contracts/{id}/approvals [get]
func (handler *approvalHandler) ListForContract(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	steps, err := handler.approvalService.ListForContract(ctx, actor, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newApprovalResponses(steps))
}

// ListPending handles the GET request for the caller's open approval steps
// @Summary List my pending approvals
// @Tags Approval
// @Produce json
// @Success 200 {array} ApprovalResponse
// @Router /approvals/pending [get]
func (handler *approvalHandler) ListPending(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	steps, err := handler.approvalService.ListPending(ctx, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newApprovalResponses(steps))
}

// Decide handles the POST request recording an approve or reject decision
// @Summary Decide an approval step
// @Tags Approval
// @Accept json
// @Produce json
// @Param id path string true "Approval ID"
// @Param requestBody body DecisionRequest true "Decision"
// @Success 200 {object} ApprovalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /approvals/{id}/decision [post]
func (handler *approvalHandler) Decide(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	var request DecisionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, fmt.Sprintf("invalid decision data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		badRequest(ctx, fmt.Sprintf("validation failed: %v", err))
		return
	}

	step, err := handler.approvalService.Decide(ctx, actor, ctx.Param("id"), &approvals.DecisionInput{
		Decision: request.Decision,
		Comment:  request.Comment,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newApprovalResponse(step))
}
