package importservice

import "errors"

var (
	// ErrFileTooLarge is returned when an upload exceeds the file-size cap.
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")

	// ErrTooManyRows is returned when an upload exceeds the row cap.
	ErrTooManyRows = errors.New("file exceeds maximum allowed row count")

	// ErrCommitRejected is returned when a commit is refused because at
	// least one row failed validation. The audit trail is still written.
	ErrCommitRejected = errors.New("commit rejected: one or more rows failed validation")
)
