package model

import "errors"

var (
	// ErrUnsupportedURL is returned when a URL fails the SupportedURL check.
	ErrUnsupportedURL = errors.New("only YouTube URLs are supported")

	// ErrNoStream is returned when extraction succeeded but no progressive
	// stream in the preferred container was found.
	ErrNoStream = errors.New("no suitable stream found")
)
