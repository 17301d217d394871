// Package database is the embedded sqlite backend for authors and books.
//
// It mirrors the document store layout with two tables, authors and books,
// keyed by 24-character hex identifiers:
//
//	db, err := database.NewDatabase("./bookshelf.db")
//	authors, err := db.ListAuthors(ctx)
//	books, err := db.ListBooksWithAuthors(ctx)
//
// The books.author column is a plain reference without a foreign key
// constraint. ListBooksWithAuthors resolves it with one batched IN query
// and reports unresolved references as a nil Author.
package database
