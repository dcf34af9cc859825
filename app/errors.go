package app

import "errors"

// Gateway failure taxonomy. Mutating operations abort on the first of these
// they hit; nothing is partially written.
var (
	ErrUnauthenticated = errors.New("no authenticated identity")
	ErrInvalid         = errors.New("invalid input")
	ErrUploadFailed    = errors.New("image upload failed")
	ErrInsertFailed    = errors.New("insert failed")
)
