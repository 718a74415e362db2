package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("already exists")
	// ErrUnavailable is returned when a backing service is not configured.
	ErrUnavailable = errors.New("unavailable")
	// ErrNoTranscript is returned by a video source when a video has no caption track.
	ErrNoTranscript = errors.New("no transcript available")
)
