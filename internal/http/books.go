package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

// ListBooks returns every book with its author expanded.
// GET /books
func (bc *BooksController) ListBooks(c *gin.Context) {
	books, err := bc.store.ListBooksWithAuthors(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, books)
}
