package mongostore

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type authorDocument struct {
	ID   bson.ObjectID `bson:"_id"`
	Name string        `bson:"name"`
}

func newAuthorDocument(a entities.Author) authorDocument {
	return authorDocument{ID: a.ID.ObjectID(), Name: a.Name}
}

func (d authorDocument) entity() entities.Author {
	return entities.Author{ID: entities.ID(d.ID), Name: d.Name}
}

type bookDocument struct {
	ID     bson.ObjectID `bson:"_id"`
	Title  string        `bson:"title"`
	Author bson.ObjectID `bson:"author,omitempty"`
}

func newBookDocument(b entities.Book) bookDocument {
	return bookDocument{ID: b.ID.ObjectID(), Title: b.Title, Author: b.AuthorID.ObjectID()}
}

func (d bookDocument) entity() entities.Book {
	return entities.Book{ID: entities.ID(d.ID), Title: d.Title, AuthorID: entities.ID(d.Author)}
}

// joinedBookDocument is a book after the $lookup/$unwind stages.
type joinedBookDocument struct {
	ID        bson.ObjectID   `bson:"_id"`
	Title     string          `bson:"title"`
	AuthorRef bson.ObjectID   `bson:"author,omitempty"`
	Author    *authorDocument `bson:"authorDoc,omitempty"`
}

func (d joinedBookDocument) entity() entities.BookWithAuthor {
	book := entities.BookWithAuthor{ID: entities.ID(d.ID), Title: d.Title}
	if d.Author != nil {
		author := d.Author.entity()
		book.Author = &author
	}
	return book
}
