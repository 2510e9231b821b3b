package router

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gestor-next/internal/authz"
	"github.com/gestor-next/internal/config"
	"github.com/gestor-next/internal/http/response"
	"github.com/gestor-next/internal/logger"
	"github.com/gestor-next/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"
const userIDKey = "user_id"

// CORSMiddleware handles cross-origin requests.
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware assigns a request id, honoring one sent by the
// client.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware writes one structured log line per request.
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// SessionAuth gates a route on an active session plus one permission.
// The reply never reveals whether the token or the permission failed
// the session check.
func SessionAuth(gate *authz.Service, table, action string) gin.HandlerFunc {
	required := authz.Requirement{Table: table, Action: action}
	return authorize(gate, &required)
}

// SessionOnly gates a route on an active session without a permission
// requirement.
func SessionOnly(gate *authz.Service) gin.HandlerFunc {
	return authorize(gate, nil)
}

func authorize(gate *authz.Service, required *authz.Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gate == nil {
			logger.Errorw("authz_gate_unavailable")
			metrics.AuthDecisions.WithLabelValues(metrics.OutcomeError).Inc()
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		userID, err := gate.Authorize(c.GetHeader("Authorization"), required)
		if err != nil {
			switch {
			case errors.Is(err, authz.ErrMissingToken):
				metrics.AuthDecisions.WithLabelValues(metrics.OutcomeMissingToken).Inc()
				response.Unauthorized(c, "authentication required")
			case errors.Is(err, authz.ErrInvalidSession):
				metrics.AuthDecisions.WithLabelValues(metrics.OutcomeInvalid).Inc()
				response.Unauthorized(c, "authentication required")
			case errors.Is(err, authz.ErrPermissionDenied):
				metrics.AuthDecisions.WithLabelValues(metrics.OutcomeDenied).Inc()
				logger.Warnw("authz_permission_denied",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)
				response.Forbidden(c, "permission denied")
			default:
				metrics.AuthDecisions.WithLabelValues(metrics.OutcomeError).Inc()
				logger.Errorw("authz_gate_failed",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"error", err,
				)
				response.Error(c, response.CodeInternal, "internal error")
			}
			c.Abort()
			return
		}

		metrics.AuthDecisions.WithLabelValues(metrics.OutcomeAllowed).Inc()
		c.Set(userIDKey, userID)
		c.Next()
	}
}
