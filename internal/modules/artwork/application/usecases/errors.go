package usecases

import "errors"

var (
	// ErrEmptyURL indicates an artwork request without a source URL.
	ErrEmptyURL = errors.New("artwork url is empty")
	// ErrInvalidWidth indicates a width outside the accepted range.
	ErrInvalidWidth = errors.New("invalid artwork width")
	// ErrUpstream indicates the source image could not be fetched or decoded.
	ErrUpstream = errors.New("failed to obtain artwork from upstream")
)
