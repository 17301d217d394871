package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/logging"
)

// ErrorResponse is the error body for every API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response, e.g. "Author not found".
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	logging.Ctx(c.Request.Context()).Error().Err(err).Str("context", context).Msg("Internal error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// parseAuthorID extracts and validates the :id parameter.
// Responds with 400 and returns false when it is not a well-formed identifier.
func parseAuthorID(c *gin.Context) (entities.ID, bool) {
	id, err := entities.ParseID(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "Invalid author id")
		return entities.NilID, false
	}
	return id, true
}
