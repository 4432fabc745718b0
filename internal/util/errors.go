package util

import "errors"

var (
	ErrEmptyDocument    = errors.New("document has no retrievable content")
	ErrDocumentNotFound = errors.New("document not found")
)
