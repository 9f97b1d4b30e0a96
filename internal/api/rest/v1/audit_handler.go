package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AuditHandler defines the interface for reading the audit trail
type AuditHandler interface {
	List(ctx *gin.Context)
	Export(ctx *gin.Context)
}

type auditHandler struct {
	auditService audit.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &auditHandler{auditService: auditService}
}

// List handles the GET request to list audit rows
// @Summary List audit logs
// @Tags Audit
// @Produce json
// @Param action query string false "Action"
// @Param resourceType query string false "Resource type"
// @Param resourceId query string false "Resource ID"
// @Param actorId query string false "Actor ID"
// @Param from query string false "Lower bound (RFC3339)"
// @Param to query string false "Upper bound (RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} AuditLogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /audit [get]
func (handler *auditHandler) List(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	query, ok := auditQuery(ctx)
	if !ok {
		return
	}

	logs, err := handler.auditService.List(ctx, actor, query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	response := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		response = append(response, newAuditLogResponse(l))
	}
	ctx.JSON(http.StatusOK, response)
}

// Export handles the GET request that downloads audit rows as an xlsx workbook
// @Summary Export audit logs
// @Tags Audit
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /audit/export [get]
func (handler *auditHandler) Export(ctx *gin.Context) {
	actor, ok := requestActor(ctx)
	if !ok {
		return
	}
	query, ok := auditQuery(ctx)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := handler.auditService.Export(ctx, actor, query, &buf); err != nil {
		respondError(ctx, err)
		return
	}

	filename := fmt.Sprintf("audit-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// auditQuery reads the shared filter parameters or aborts with 400
func auditQuery(ctx *gin.Context) (*audit.AuditLogQuery, bool) {
	query := audit.NewAuditLogQuery()
	query.Action = ctx.Query("action")
	query.ResourceType = ctx.Query("resourceType")
	query.ResourceID = ctx.Query("resourceId")
	query.ActorID = ctx.Query("actorId")

	for param, target := range map[string]*time.Time{"from": &query.From, "to": &query.To} {
		raw := ctx.Query(param)
		if raw == "" {
			continue
		}
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			badRequest(ctx, fmt.Sprintf("invalid %s: %v", param, err))
			return nil, false
		}
		*target = parsed
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}
	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = strutil.ConvertToInt(offset)
	}
	query.SortOrder = ctx.Query("sortOrder")

	if err := query.Validate(); err != nil {
		badRequest(ctx, fmt.Sprintf("validation failed: %v", err))
		return nil, false
	}
	return query, true
}
