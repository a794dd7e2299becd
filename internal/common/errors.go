// Package common defines the sentinel errors shared by the store, the
// producers and the outer surfaces of qrdeck. Callers should use errors.Is
// to match these values; components wrap them with context.
package common

import "errors"

var (
	// Input errors.
	ErrInvalidInput = errors.New("invalid input")

	// Camera errors.
	ErrCameraUnavailable       = errors.New("camera unavailable")
	ErrIlluminationUnsupported = errors.New("illumination unsupported")
	ErrScannerInactive         = errors.New("scanner not active")

	// Storage errors. ErrStorageUnavailable is non-fatal: the in-memory log
	// keeps working for the rest of the session.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Export errors.
	ErrShareUnsupported = errors.New("share unsupported")
)
