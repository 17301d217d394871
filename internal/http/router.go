package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Greeting is the plain-text body served at the root path.
const Greeting = "Hello Technigo!"

// NewRouter creates and configures the HTTP router with all endpoints.
//
// Operational endpoints (/health, /metrics) are registered before the
// availability gate so they answer while the store is down. Everything
// registered after the gate, including the 404 fallback, gets 503 then.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger())
	router.Use(Metrics())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Monitor, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.Use(AvailabilityGate(cfg.Monitor))

	authorsController := NewAuthorsController(cfg.Library)
	booksController := NewBooksController(cfg.Library)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, Greeting)
	})

	router.GET("/authors", authorsController.ListAuthors)
	router.GET("/authors/:id", authorsController.GetAuthor)
	router.GET("/authors/:id/books", authorsController.ListAuthorBooks)

	router.GET("/books", booksController.ListBooks)

	return router
}
