package entities

import "gorm.io/gorm"

type Author struct {
	ID   ID     `gorm:"type:varchar(24);primaryKey" json:"id"`
	Name string `gorm:"size:256" json:"name"`
}

// BeforeCreate assigns an identifier when the caller did not supply one.
func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID.IsZero() {
		a.ID = NewID()
	}
	return nil
}

// Book references its author by identifier only. The reference is advisory:
// removing an author leaves its books untouched.
type Book struct {
	ID       ID     `gorm:"type:varchar(24);primaryKey" json:"id"`
	Title    string `gorm:"size:512" json:"title"`
	AuthorID ID     `gorm:"column:author;type:varchar(24);index" json:"author"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID.IsZero() {
		b.ID = NewID()
	}
	return nil
}

// BookWithAuthor is a book whose author reference has been resolved at read time.
// Author is nil when the reference is missing or points nowhere.
type BookWithAuthor struct {
	ID     ID      `json:"id"`
	Title  string  `json:"title"`
	Author *Author `json:"author"`
}
