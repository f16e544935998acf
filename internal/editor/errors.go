package editor

import "errors"

var (
	// ErrInvalidDimensions is returned for a surface with a non-positive side.
	ErrInvalidDimensions = errors.New("surface dimensions must be positive")

	// ErrAttributeMismatch is returned when position and color buffers differ in length.
	ErrAttributeMismatch = errors.New("vertex attribute length mismatch")

	// ErrSurfaceRegistered is returned when a surface is registered twice.
	ErrSurfaceRegistered = errors.New("surface already registered")

	// ErrUnknownSurface is returned for a surface ID the editor does not hold.
	ErrUnknownSurface = errors.New("unknown surface")

	// ErrUnknownMesh is returned when a mesh handle does not resolve.
	ErrUnknownMesh = errors.New("unknown mesh")
)
