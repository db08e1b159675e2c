package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 100 to fit in PostgreSQL VARCHAR(100) and provide
	// reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 100

	// MaxDocumentTitleLength is the maximum length for document titles.
	MaxDocumentTitleLength = 200

	// MaxExcerptLength is the maximum length for document excerpts.
	MaxExcerptLength = 500

	// MaxPathLength is the maximum length for full hierarchical paths.
	// Set to 500 to allow paths like "A/B/C/D/E/document" where each
	// segment can be up to 100 characters. Longer paths indicate
	// overly deep hierarchies (anti-pattern).
	MaxPathLength = 500

	// DefaultFolderIcon is the glyph assigned to auto-created ancestor folders.
	DefaultFolderIcon = "📁"

	// DefaultCategoryIcon is the glyph assigned to auto-created categories
	// and their root folders.
	DefaultCategoryIcon = "📂"
)
