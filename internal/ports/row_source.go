package ports

import "context"

// Port: a boundary for reading raw delivery rows from an input source.
type RowSource interface {
	// ReadRows returns every data row in input order, header excluded.
	// Fields per row are not guaranteed; validation happens downstream.
	ReadRows(ctx context.Context) ([][]string, error)
}
