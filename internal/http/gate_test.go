package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookshelf/internal/store"
)

func gatedRouter(monitor StateReader) *gin.Engine {
	router := gin.New()
	router.Use(AvailabilityGate(monitor))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestAvailabilityGate(t *testing.T) {
	t.Run("passes requests through when ready", func(t *testing.T) {
		w := performRequest(gatedRouter(readyState), http.MethodGet, "/ping")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
	})

	for _, state := range []store.ConnState{store.StateDisconnected, store.StateConnecting, store.StateDisconnecting} {
		t.Run("rejects when "+state.String(), func(t *testing.T) {
			w := performRequest(gatedRouter(fixedState(state)), http.MethodGet, "/ping")

			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
			assert.JSONEq(t, `{"error":"Service unavailable"}`, w.Body.String())
		})
	}

	t.Run("rejects when no monitor is configured", func(t *testing.T) {
		w := performRequest(gatedRouter(nil), http.MethodGet, "/ping")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("re-evaluates the state on every request", func(t *testing.T) {
		state := fixedState(store.StateConnecting)
		monitor := &state
		router := gin.New()
		router.Use(AvailabilityGate(stateFunc(func() store.ConnState { return store.ConnState(*monitor) })))
		router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		assert.Equal(t, http.StatusServiceUnavailable, performRequest(router, http.MethodGet, "/ping").Code)

		*monitor = fixedState(store.StateReady)
		assert.Equal(t, http.StatusNoContent, performRequest(router, http.MethodGet, "/ping").Code)
	})
}

type stateFunc func() store.ConnState

func (f stateFunc) State() store.ConnState {
	return f()
}
