package database

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/store"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Book.author is a loose reference, not a constraint.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&entities.Author{}, &entities.Book{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logging.Info().Str("path", dbPath).Msg("Database initialized")

	return &Database{DB: db}, nil
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	authors := []entities.Author{}
	if err := d.DB.WithContext(ctx).Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

func (d *Database) GetAuthor(ctx context.Context, id entities.ID) (*entities.Author, error) {
	var author entities.Author
	err := d.DB.WithContext(ctx).Where("id = ?", id.Hex()).First(&author).Error
	if err == gorm.ErrRecordNotFound {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get author %s: %w", id, err)
	}
	return &author, nil
}

// ListBooksByAuthor returns store.ErrNotFound when the author itself does not exist,
// so callers can tell "no such author" from "author without books".
func (d *Database) ListBooksByAuthor(ctx context.Context, authorID entities.ID) ([]entities.Book, error) {
	author, err := d.GetAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	books := []entities.Book{}
	if err := d.DB.WithContext(ctx).Where("author = ?", author.ID.Hex()).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books of author %s: %w", author.ID, err)
	}
	return books, nil
}

// ListBooksWithAuthors loads every book and resolves its author with a single
// batched lookup.
func (d *Database) ListBooksWithAuthors(ctx context.Context) ([]entities.BookWithAuthor, error) {
	var books []entities.Book
	if err := d.DB.WithContext(ctx).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	authorIDs := lo.Uniq(lo.FilterMap(books, func(b entities.Book, _ int) (string, bool) {
		return b.AuthorID.Hex(), !b.AuthorID.IsZero()
	}))

	var authors []entities.Author
	if len(authorIDs) > 0 {
		if err := d.DB.WithContext(ctx).Where("id IN ?", authorIDs).Find(&authors).Error; err != nil {
			return nil, fmt.Errorf("resolve book authors: %w", err)
		}
	}
	byID := lo.KeyBy(authors, func(a entities.Author) entities.ID { return a.ID })

	result := make([]entities.BookWithAuthor, 0, len(books))
	for _, b := range books {
		joined := entities.BookWithAuthor{ID: b.ID, Title: b.Title}
		if author, ok := byID[b.AuthorID]; ok {
			joined.Author = &author
		} else if !b.AuthorID.IsZero() {
			logging.Ctx(ctx).Warn().
				Str("book", b.ID.Hex()).
				Str("author", b.AuthorID.Hex()).
				Msg("Book references a missing author")
		}
		result = append(result, joined)
	}
	return result, nil
}

func (d *Database) DeleteAllAuthors(ctx context.Context) error {
	return d.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entities.Author{}).Error
}

func (d *Database) DeleteAllBooks(ctx context.Context) error {
	return d.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entities.Book{}).Error
}

// InsertAuthors stores the given authors and returns them with their identifiers.
func (d *Database) InsertAuthors(ctx context.Context, authors []entities.Author) ([]entities.Author, error) {
	if len(authors) == 0 {
		return []entities.Author{}, nil
	}
	created := append([]entities.Author(nil), authors...)
	if err := d.DB.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, err
	}
	return created, nil
}

// InsertBooks stores the given books and returns them with their identifiers.
func (d *Database) InsertBooks(ctx context.Context, books []entities.Book) ([]entities.Book, error) {
	if len(books) == 0 {
		return []entities.Book{}, nil
	}
	created := append([]entities.Book(nil), books...)
	if err := d.DB.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, err
	}
	return created, nil
}
