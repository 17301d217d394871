package config

const (
	// DefaultPort is the HTTP listen port when PORT is unset
	DefaultPort = 8080

	// DefaultMongoURL points at a local MongoDB with the "books" database
	DefaultMongoURL = "mongodb://localhost/books"

	// DefaultDatabasePath is the sqlite file used with STORE_DRIVER=sqlite
	DefaultDatabasePath = "./bookshelf.db"
)
