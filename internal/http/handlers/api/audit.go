package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gestor-next/internal/http/handlers/shared"
	"github.com/gestor-next/internal/http/response"
	"github.com/gestor-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAudit returns the audit trail, newest first.
func (h *Handler) ListAudit(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)
	userID, _ := strconv.ParseUint(c.Query("id_usuario"), 10, 32)

	filter := repository.AuditListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uint(userID),
		Table:    strings.TrimSpace(c.Query("tabla")),
		Action:   strings.TrimSpace(c.Query("accion")),
	}
	if from, err := time.Parse("2006-01-02", c.Query("fecha_desde")); err == nil {
		filter.DateFrom = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("fecha_hasta")); err == nil {
		filter.DateTo = &to
	}

	records, total, err := h.AuditService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, records, buildPagination(page, pageSize, total))
}
