package drapery

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOptionID is matched by every error reporting an id that is
	// not in the catalog (or a tab that does not exist).
	ErrUnknownOptionID = errors.New("drapery: unknown option id")
	// ErrInvalidCatalog is matched by catalog load and validation failures.
	ErrInvalidCatalog = errors.New("drapery: invalid catalog")
	// ErrInvalidConfig is matched by config load and validation failures.
	ErrInvalidConfig = errors.New("drapery: invalid config")
)

// Option categories named in UnknownOptionError.
const (
	CategoryColor  = "color"
	CategoryDesign = "design"
	CategorySize   = "size"
	CategoryTab    = "tab"
)

// UnknownOptionError reports a selection of an id the catalog doesn't have.
type UnknownOptionError struct {
	Category string
	ID       string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("drapery: unknown %s %q", e.Category, e.ID)
}

// Is makes errors.Is(err, ErrUnknownOptionID) true.
func (e *UnknownOptionError) Is(target error) bool {
	return target == ErrUnknownOptionID
}

// CatalogError wraps a catalog parse or validation failure.
type CatalogError struct {
	Source string // file path, or "embedded"
	Err    error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("drapery: catalog %s: %v", e.Source, e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrInvalidCatalog) true.
func (e *CatalogError) Is(target error) bool {
	return target == ErrInvalidCatalog
}
