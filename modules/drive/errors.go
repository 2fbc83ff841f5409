package drive

import "errors"

// Sentinel errors for gateway operations. Each failing provider call site
// maps to its own sentinel; upstream status codes are never forwarded to
// callers.
var (
	// ErrFileNotFound is returned when no entry in the folder matches the
	// requested name.
	ErrFileNotFound = errors.New("file not found")

	// ErrListFailed is returned when the provider rejects the folder
	// listing query.
	ErrListFailed = errors.New("failed to fetch files from provider")

	// ErrSearchFailed is returned when the by-name search query fails.
	ErrSearchFailed = errors.New("failed to search for file")

	// ErrTargetFetchFailed is returned when a shortcut's target metadata
	// cannot be fetched.
	ErrTargetFetchFailed = errors.New("failed to fetch target file of shortcut")

	// ErrDownloadFailed is returned when the content download fails.
	ErrDownloadFailed = errors.New("failed to download file")
)
