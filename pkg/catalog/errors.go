package catalog

import "errors"

var (
	ErrInvalidCatalog   = errors.New("invalid catalog")
	ErrMalformedCatalog = errors.New("malformed catalog")
)
