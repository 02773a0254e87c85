package domain

import "github.com/pkg/errors"

var (
	// ErrTransport is a network or HTTP layer failure.
	ErrTransport = errors.New("transport error")

	// ErrAccessDenied is returned when the site requires a login (HTTP 451).
	ErrAccessDenied = errors.New("access denied")

	// ErrUnsupportedChapter is returned for chapters hosted by a licensed
	// partner. No request is sent for them.
	ErrUnsupportedChapter = errors.New("unsupported chapter")

	// ErrMalformedResponse is returned when a payload lacks a mandatory field.
	ErrMalformedResponse = errors.New("malformed response")

	ErrNotUsed   = errors.New("not used")
	ErrInvalidID = errors.New("invalid manga id")
)
