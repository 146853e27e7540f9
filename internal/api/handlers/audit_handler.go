package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/projectsign/internal/application"
	"github.com/linskybing/projectsign/internal/domain/audit"
	"github.com/linskybing/projectsign/internal/repository"
	"github.com/linskybing/projectsign/pkg/utils"
)

const maxAuditPage = 500

type AuditHandler struct {
	svc *application.AuditService
}

func NewAuditHandler(svc *application.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// GetAuditLogs godoc
// @Summary Query the caller's audit trail
// @Tags audit
// @Security BearerAuth
// @Produce json
// @Param resource_type query string false "project, form or signing_token"
// @Param resource_id query string false "Resource ID"
// @Param action query string false "Action"
// @Param start_time query string false "RFC3339 lower bound"
// @Param end_time query string false "RFC3339 upper bound"
// @Param limit query int false "Page size (default 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} audit.AuditLog
// @Failure 400 {object} response.ErrorResponse
// @Router /audit/logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	params := repository.AuditQueryParams{UserID: &uid, Limit: 100}
	if v := c.Query("resource_type"); v != "" {
		params.ResourceType = &v
	}
	if v := c.Query("resource_id"); v != "" {
		params.ResourceID = &v
	}
	if v := c.Query("action"); v != "" {
		params.Action = &v
	}
	if v := c.Query("start_time"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			badRequest(c, "start_time must be RFC3339")
			return
		}
		params.StartTime = &t
	}
	if v := c.Query("end_time"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			badRequest(c, "end_time must be RFC3339")
			return
		}
		params.EndTime = &t
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		params.Limit = min(n, maxAuditPage)
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(c, "offset must be a non-negative integer")
			return
		}
		params.Offset = n
	}

	logs, err := h.svc.QueryAuditLogs(params)
	if err != nil {
		respondError(c, err)
		return
	}
	if logs == nil {
		logs = []audit.AuditLog{}
	}
	c.JSON(http.StatusOK, logs)
}
