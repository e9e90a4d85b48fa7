package mcp

import "github.com/tuilad01/excelext/internal/table"

const (
	// DefaultMaxRow is the extraction row cap when none is given
	DefaultMaxRow = table.DefaultMaxRow

	// MaxRowLimit is the largest row cap a client may request
	MaxRowLimit = 100000

	// DefaultMaxColumn is the extraction column cap when none is given
	DefaultMaxColumn = table.DefaultMaxColumn

	// MaxColumnLimit is the largest column cap a client may request
	MaxColumnLimit = 2000

	// MaxInstructions is the most render instructions accepted per call
	MaxInstructions = 10000

	// MaxOutputBytes is the maximum size of JSON output (5MB)
	MaxOutputBytes = 5 * 1024 * 1024
)
