package middleware

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/tuition-api/internal/admission"
	"github.com/sjperalta/tuition-api/internal/services"
	"github.com/sjperalta/tuition-api/pkg/logger"
)

// Admitter decides whether a request for key may proceed.
type Admitter interface {
	Check(ctx context.Context, key, route string) (admission.Decision, error)
	DeniedMessage() string
}

// Admission gates a route on the daily quota of the path parameter named
// param. Denied requests are answered with 429 before the handler runs.
func Admission(admitter Admitter, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param(param)
		dec, err := admitter.Check(c.Request.Context(), key, c.FullPath())

		if err == nil || errors.Is(err, services.ErrRateLimited) {
			setRateLimitHeaders(c, dec)
		}

		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, services.ErrRateLimited):
			c.Header("Retry-After", strconv.FormatInt(int64(math.Ceil(dec.RetryAfter.Seconds())), 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": admitter.DeniedMessage()})
		case errors.Is(err, services.ErrValidation):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("admission check failed", "key", key, "error", err)
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
		}
	}
}

func setRateLimitHeaders(c *gin.Context, dec admission.Decision) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(dec.Quota))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(dec.Remaining))
}
