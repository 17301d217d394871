// Package seed resets the store to a fixed set of authors and books.
package seed

import (
	"context"
	"fmt"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/metrics"
)

// Target is the part of a store the seeder writes to.
type Target interface {
	DeleteAllAuthors(ctx context.Context) error
	DeleteAllBooks(ctx context.Context) error
	InsertAuthors(ctx context.Context, authors []entities.Author) ([]entities.Author, error)
	InsertBooks(ctx context.Context, books []entities.Book) ([]entities.Book, error)
}

const (
	Tolkien = "J.R.R Tolkien"
	Rowling = "J.K Rowling"
	King    = "Steven King"
)

// Authors is the author fixture, in insertion order.
var Authors = []string{Tolkien, Rowling, King}

// Books maps each fixture title to its author's name, in insertion order.
var Books = []struct {
	Title  string
	Author string
}{
	{"Harry Potter and the Philosopher's Stone", Rowling},
	{"Harry Potter and the Chamber of Secrets", Rowling},
	{"Harry Potter and the Prisoner of Azkaban", Rowling},
	{"Harry Potter and the Goblet of Fire", Rowling},
	{"Harry Potter and the Order of the Phenix", Rowling},
	{"Harry Potter and the Half-Blood Prince", Rowling},
	{"Harry Potter and the Deathly Hallows", Rowling},
	{"The Lord of the Rings", Tolkien},
	{"The Hobbit", Tolkien},
	{"The Shining", King},
}

// Run clears both collections and inserts the fixture. Steps run strictly in
// order and the first failure stops the run; there is no rollback, so a failed
// run may leave the store partially seeded.
func Run(ctx context.Context, target Target) (err error) {
	defer func() { metrics.RecordSeedRun(err) }()

	logging.Info().Msg("Resetting database")

	if err := target.DeleteAllAuthors(ctx); err != nil {
		return fmt.Errorf("seed: delete authors: %w", err)
	}
	if err := target.DeleteAllBooks(ctx); err != nil {
		return fmt.Errorf("seed: delete books: %w", err)
	}

	authors := make([]entities.Author, 0, len(Authors))
	for _, name := range Authors {
		authors = append(authors, entities.Author{Name: name})
	}
	created, err := target.InsertAuthors(ctx, authors)
	if err != nil {
		return fmt.Errorf("seed: insert authors: %w", err)
	}

	idByName := make(map[string]entities.ID, len(created))
	for _, a := range created {
		idByName[a.Name] = a.ID
	}

	books := make([]entities.Book, 0, len(Books))
	for _, b := range Books {
		authorID, ok := idByName[b.Author]
		if !ok {
			return fmt.Errorf("seed: author %q was not created", b.Author)
		}
		books = append(books, entities.Book{Title: b.Title, AuthorID: authorID})
	}
	if _, err := target.InsertBooks(ctx, books); err != nil {
		return fmt.Errorf("seed: insert books: %w", err)
	}

	logging.Info().Int("authors", len(created)).Int("books", len(books)).Msg("Database seeded")
	return nil
}
