package query

import "errors"

var (
	ErrInvalidYear = errors.New("query: year must be an integer")
)
