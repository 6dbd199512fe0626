package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"guate-servicios/libs"
	"guate-servicios/models"

	"github.com/gin-gonic/gin"
)

// RateLimit admits at most max requests per client IP per window. When the
// store fails the request is let through and the error logged.
func RateLimit(store libs.RateStore, max int, window time.Duration, logger *slog.Logger) gin.HandlerFunc {
	limit := strconv.Itoa(max)

	return func(c *gin.Context) {
		count, resetAt, err := store.Hit(c.Request.Context(), c.ClientIP(), window)
		if err != nil {
			logger.WarnContext(c.Request.Context(), "rate limit store unavailable", "error", err)
			c.Next()
			return
		}

		remaining := int64(max) - count
		if remaining < 0 {
			remaining = 0
		}
		resetIn := int(math.Ceil(time.Until(resetAt).Seconds()))
		if resetIn < 0 {
			resetIn = 0
		}

		c.Header("RateLimit-Limit", limit)
		c.Header("RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("RateLimit-Reset", strconv.Itoa(resetIn))

		if count > int64(max) {
			c.Header("Retry-After", strconv.Itoa(resetIn))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Message: "Demasiadas peticiones, intenta de nuevo más tarde.",
			})
			return
		}
		c.Next()
	}
}
