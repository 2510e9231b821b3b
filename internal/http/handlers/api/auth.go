package api

import (
	"github.com/gestor-next/internal/authz"
	"github.com/gestor-next/internal/http/handlers/shared"
	"github.com/gestor-next/internal/http/response"
	"github.com/gestor-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"nombreUsuario" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and opens a session.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(service.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expiraEn":   expiresAt,
		"usuario":    user,
		"superadmin": user.IsSuperadmin,
	})
}

// Logout closes the session bound to the request token. Unknown tokens
// still succeed.
func (h *Handler) Logout(c *gin.Context) {
	token := authz.NormalizeToken(c.GetHeader("Authorization"))
	if token == "" {
		shared.RespondError(c, response.CodeUnauthorized, "authentication required", nil)
		return
	}
	if err := h.AuthService.Logout(token); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "session closed", nil)
}

// Verify reports whether the request token maps to an active session.
func (h *Handler) Verify(c *gin.Context) {
	token := authz.NormalizeToken(c.GetHeader("Authorization"))
	if token == "" {
		shared.RespondError(c, response.CodeUnauthorized, "authentication required", nil)
		return
	}
	user, err := h.AuthService.Verify(token)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"usuario": user})
}
