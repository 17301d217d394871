package http

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Library Library
	Monitor StateReader

	// Application info
	Version string
}
