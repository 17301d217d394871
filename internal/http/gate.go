package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/store"
)

// AvailabilityGate rejects every request with 503 unless the store is ready.
// The state is read on each request; nothing is cached or retried.
func AvailabilityGate(monitor StateReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if monitor != nil && monitor.State() == store.StateReady {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Service unavailable"})
	}
}
