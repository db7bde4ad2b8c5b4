package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalink-health/vitalink-backend/internal/ai"
	"github.com/vitalink-health/vitalink-backend/internal/logger"
)

// respondGatewayError maps upstream AI gateway failures onto the client
// response. Rate-limit (429) and payment (402) statuses pass through one to
// one; every other upstream failure is a generic 500 with the detail logged
// but never echoed to the caller.
func respondGatewayError(c *gin.Context, log *logger.Logger, err error) {
	if errors.Is(err, ai.ErrMissingCredentials) {
		log.Error("AI gateway credentials are not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI service is not configured"})
		return
	}
	var statusErr *ai.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusTooManyRequests:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "AI service rate limit exceeded, please try again shortly"})
			return
		case http.StatusPaymentRequired:
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "AI service quota exhausted"})
			return
		default:
			log.Error("Upstream AI gateway error", "status", statusErr.StatusCode, "body", statusErr.Body)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "AI service request failed"})
			return
		}
	}
	log.Error("AI gateway request failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "AI service request failed"})
}
