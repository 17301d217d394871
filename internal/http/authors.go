package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/store"
)

type AuthorsController struct {
	store AuthorStore
}

func NewAuthorsController(store AuthorStore) *AuthorsController {
	return &AuthorsController{store: store}
}

// ListAuthors returns every author.
// GET /authors
func (ac *AuthorsController) ListAuthors(c *gin.Context) {
	authors, err := ac.store.ListAuthors(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, authors)
}

// GetAuthor returns a single author.
// GET /authors/:id
func (ac *AuthorsController) GetAuthor(c *gin.Context) {
	id, ok := parseAuthorID(c)
	if !ok {
		return
	}

	author, err := ac.store.GetAuthor(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondNotFound(c, "Author")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get author")
		return
	}
	c.JSON(http.StatusOK, author)
}

// ListAuthorBooks returns the books referencing an author.
// GET /authors/:id/books
func (ac *AuthorsController) ListAuthorBooks(c *gin.Context) {
	id, ok := parseAuthorID(c)
	if !ok {
		return
	}

	books, err := ac.store.ListBooksByAuthor(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondNotFound(c, "Author")
		return
	}
	if err != nil {
		respondInternalError(c, err, "list author books")
		return
	}
	c.JSON(http.StatusOK, books)
}
