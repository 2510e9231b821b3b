package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gestor-next/internal/authz"
	"github.com/gestor-next/internal/constants"
	"github.com/gestor-next/internal/http/handlers/shared"
	"github.com/gestor-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadFile stores a file and attaches it to the record named by the
// tabla/id form fields. Only registered entity columns accept files, and
// the actor needs update permission on the target table.
func (h *Handler) UploadFile(c *gin.Context) {
	actorID, ok := shared.GetUserID(c)
	if !ok {
		return
	}

	table := strings.TrimSpace(c.PostForm("tabla"))
	field := strings.TrimSpace(c.PostForm("campo"))
	recordID, err := strconv.ParseUint(strings.TrimSpace(c.PostForm("id")), 10, 32)
	if err != nil || recordID == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid id", nil)
		return
	}
	if !h.requirePermission(c, table, constants.ActionUpdate) {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		shared.RespondError(c, response.CodeBadRequest, "file is required", nil)
		return
	}

	filename, err := h.UploadService.Upload(actorID, uint(recordID), table, field, file)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"archivo": filename,
		"tabla":   table,
		"id":      recordID,
	})
}

// ServeFile streams the stored file of an entity column. Reading requires
// read permission on the owning table.
func (h *Handler) ServeFile(c *gin.Context) {
	table := strings.TrimSpace(c.Param("tabla"))
	field := strings.TrimSpace(c.Param("campo"))
	recordID, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 32)
	if err != nil || recordID == 0 {
		shared.RespondError(c, response.CodeBadRequest, "invalid id", nil)
		return
	}
	if !h.requirePermission(c, table, constants.ActionRead) {
		return
	}

	path, err := h.UploadService.FilePath(table, uint(recordID), field)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.File(path)
}

// requirePermission re-runs the gate with a requirement built from the
// request target. The route-level middleware only checked the session;
// the table is not known until the request is parsed.
func (h *Handler) requirePermission(c *gin.Context, table, action string) bool {
	_, err := h.AuthzService.Authorize(c.GetHeader("Authorization"), &authz.Requirement{
		Table:  table,
		Action: action,
	})
	if err == nil {
		return true
	}
	switch {
	case errors.Is(err, authz.ErrMissingToken), errors.Is(err, authz.ErrInvalidSession):
		shared.RespondError(c, response.CodeUnauthorized, "authentication required", nil)
	case errors.Is(err, authz.ErrPermissionDenied):
		shared.RespondError(c, response.CodeForbidden, "permission denied", nil)
	default:
		shared.RespondError(c, response.CodeInternal, "internal error", err)
	}
	return false
}
