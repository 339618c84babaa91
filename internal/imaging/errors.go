package imaging

import "errors"

var (
	// ErrInvalidCrop reports a crop rectangle with zero (or negative) area.
	ErrInvalidCrop = errors.New("crop size must be greater than zero")

	// ErrCropOutOfBounds reports a crop rectangle that does not fit inside the source.
	ErrCropOutOfBounds = errors.New("crop rectangle is out of bounds")

	// ErrInvalidGeometry reports a mask request on an empty buffer.
	ErrInvalidGeometry = errors.New("image has invalid dimensions")

	// ErrInsetTooLarge reports an inset that leaves no area for the rounded region.
	ErrInsetTooLarge = errors.New("inset is too large for the crop size")

	// ErrInvalidTarget reports a non-positive output resolution.
	ErrInvalidTarget = errors.New("target size must be greater than zero")

	// ErrDirectoryCreate reports a failure creating the destination directory.
	ErrDirectoryCreate = errors.New("create folder failed")

	// ErrWriteFailed reports a failure encoding or writing the output file.
	ErrWriteFailed = errors.New("write failed")
)
