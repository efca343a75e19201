package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"bloglist/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// corsMiddleware lets browser frontends on any origin call the API.
// Preflight requests are answered before routing.
func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
		MaxAge:          12 * time.Hour,
	})
}

// identityMiddleware resolves the bearer token, if any, into a service.Identity.
// A missing header is anonymous; a present but unusable one aborts with 401.
func (h *Handler) identityMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.Set(identityKey, service.Anonymous())
		c.Next()
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidToken.Error()})
		return
	}

	who, err := h.services.Identify(c.Request.Context(), strings.TrimSpace(parts[1]))
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidToken.Error()})
			return
		}
		h.log.Errorw("identify_failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errInternal})
		return
	}

	// store in Gin context
	c.Set(identityKey, who)
	c.Next()
}

// identity returns the caller attached by identityMiddleware.
func identity(c *gin.Context) service.Identity {
	if v, ok := c.Get(identityKey); ok {
		if who, ok := v.(service.Identity); ok {
			return who
		}
	}
	return service.Anonymous()
}

// requestLogger logs one line per request.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"client_ip", c.ClientIP(),
	)
}

const errInternal = "internal server error"

// errorMiddleware turns the last error attached with c.Error into a JSON response.
func (h *Handler) errorMiddleware(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.log.Errorw("request_failed", "method", c.Request.Method, "path", c.Request.URL.Path, "err", err)
	} else {
		h.log.Debugw("request_rejected", "path", c.Request.URL.Path, "status", code, "err", err)
	}
	c.JSON(code, gin.H{"error": msg})
}

func statusFor(err error) (int, string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Msg
	case errors.Is(err, service.ErrMalformedID):
		return http.StatusBadRequest, service.ErrMalformedID.Error()
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, service.ErrInvalidToken.Error()
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, err.Error()
	default:
		return http.StatusInternalServerError, errInternal
	}
}

// bindJSON decodes the body into dst, attaching a 400 on failure.
// Returns false if the request was already handled.
func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(&service.ValidationError{Msg: "invalid body: " + err.Error()})
		return false
	}
	return true
}
