package http

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/store"
)

// This file consolidates the store interfaces used by HTTP controllers.
// Each controller depends only on the methods it calls; both
// mongostore.Store and database.Database satisfy all of them.

// AuthorStore provides read access to authors and their books.
type AuthorStore interface {
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	GetAuthor(ctx context.Context, id entities.ID) (*entities.Author, error)
	ListBooksByAuthor(ctx context.Context, authorID entities.ID) ([]entities.Book, error)
}

// BookStore provides read access to books with their authors resolved.
type BookStore interface {
	ListBooksWithAuthors(ctx context.Context) ([]entities.BookWithAuthor, error)
}

// Library combines all read operations.
type Library interface {
	AuthorStore
	BookStore
}

// StateReader reports the current store connection state.
type StateReader interface {
	State() store.ConnState
}
