// Package mongostore implements the authors/books store on MongoDB.
//
// Collections:
//
//	authors  { _id: ObjectId, name: string }
//	books    { _id: ObjectId, title: string, author: ObjectId }
//
// books.author is a plain reference. It is resolved at read time with a
// $lookup stage and never enforced.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/store"
)

const (
	AuthorsCollection = "authors"
	BooksCollection   = "books"

	// DefaultDatabase is used when the connection string names no database.
	DefaultDatabase = "books"
)

type Store struct {
	client  *mongo.Client
	authors *mongo.Collection
	books   *mongo.Collection
}

// Open creates a client for uri. The driver connects lazily, so Open succeeds
// even when the server is down; readiness is observed through Ping.
func Open(uri string) (*Store, error) {
	dbName, err := DatabaseName(uri)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	db := client.Database(dbName)
	logging.Info().Str("database", dbName).Msg("MongoDB client created")

	return &Store{
		client:  client,
		authors: db.Collection(AuthorsCollection),
		books:   db.Collection(BooksCollection),
	}, nil
}

// DatabaseName extracts the database from the path of a connection string.
func DatabaseName(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid mongo url: %w", err)
	}
	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return "", fmt.Errorf("invalid mongo url: unsupported scheme %q", u.Scheme)
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name, nil
	}
	return DefaultDatabase, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	cursor, err := s.authors.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}

	var docs []authorDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}

	authors := make([]entities.Author, 0, len(docs))
	for _, d := range docs {
		authors = append(authors, d.entity())
	}
	return authors, nil
}

func (s *Store) GetAuthor(ctx context.Context, id entities.ID) (*entities.Author, error) {
	var doc authorDocument
	err := s.authors.FindOne(ctx, bson.D{{Key: "_id", Value: id.ObjectID()}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get author %s: %w", id, err)
	}

	author := doc.entity()
	return &author, nil
}

func (s *Store) ListBooksByAuthor(ctx context.Context, authorID entities.ID) ([]entities.Book, error) {
	author, err := s.GetAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	cursor, err := s.books.Find(ctx, bson.D{{Key: "author", Value: author.ID.ObjectID()}})
	if err != nil {
		return nil, fmt.Errorf("list books of author %s: %w", author.ID, err)
	}

	var docs []bookDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list books of author %s: %w", author.ID, err)
	}

	books := make([]entities.Book, 0, len(docs))
	for _, d := range docs {
		books = append(books, d.entity())
	}
	return books, nil
}

// ListBooksWithAuthors joins each book to its author on the server.
func (s *Store) ListBooksWithAuthors(ctx context.Context) ([]entities.BookWithAuthor, error) {
	cursor, err := s.books.Aggregate(ctx, booksWithAuthorsPipeline())
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	var docs []joinedBookDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	books := make([]entities.BookWithAuthor, 0, len(docs))
	for _, d := range docs {
		if d.Author == nil && !d.AuthorRef.IsZero() {
			logging.Ctx(ctx).Warn().
				Str("book", d.ID.Hex()).
				Str("author", d.AuthorRef.Hex()).
				Msg("Book references a missing author")
		}
		books = append(books, d.entity())
	}
	return books, nil
}

func booksWithAuthorsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: AuthorsCollection},
			{Key: "localField", Value: "author"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "authorDoc"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$authorDoc"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

func (s *Store) DeleteAllAuthors(ctx context.Context) error {
	_, err := s.authors.DeleteMany(ctx, bson.D{})
	return err
}

func (s *Store) DeleteAllBooks(ctx context.Context) error {
	_, err := s.books.DeleteMany(ctx, bson.D{})
	return err
}

func (s *Store) InsertAuthors(ctx context.Context, authors []entities.Author) ([]entities.Author, error) {
	created := make([]entities.Author, 0, len(authors))
	docs := make([]any, 0, len(authors))
	for _, a := range authors {
		if a.ID.IsZero() {
			a.ID = entities.NewID()
		}
		created = append(created, a)
		docs = append(docs, newAuthorDocument(a))
	}
	if len(docs) == 0 {
		return created, nil
	}
	if _, err := s.authors.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Store) InsertBooks(ctx context.Context, books []entities.Book) ([]entities.Book, error) {
	created := make([]entities.Book, 0, len(books))
	docs := make([]any, 0, len(books))
	for _, b := range books {
		if b.ID.IsZero() {
			b.ID = entities.NewID()
		}
		created = append(created, b)
		docs = append(docs, newBookDocument(b))
	}
	if len(docs) == 0 {
		return created, nil
	}
	if _, err := s.books.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return created, nil
}
