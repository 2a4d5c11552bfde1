// Package source reads the raw people records, one per line, from a file or
// a PostgreSQL query.
package source

import (
	"context"
)

// Loader returns the records in the order they should be numbered.
type Loader interface {
	Load(ctx context.Context) ([]string, error)
	Name() string
}
