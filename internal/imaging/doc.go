// Package imaging implements the pixel work behind an export: cropping a
// rectangle out of a decoded source, masking it into a rounded rectangle,
// resampling it to the target resolution and persisting it as PNG.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with the origin at the
// top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - A CropRect covers columns [X, X+W) and rows [Y, Y+H)
//
// The mask engine samples every pixel at its center, (x+0.5, y+0.5), and
// classifies it against closed real-valued intervals. Buffers produced here
// are *image.NRGBA (8 bits per channel, straight alpha).
//
// # Pipeline
//
// Transform runs the stages in a fixed order:
//
//	validate crop -> crop -> validate target -> mask (rounded only) -> Lanczos resize
//
// Mask edges are resampled together with the image content. The crop copies
// into a new buffer, so the source is never modified.
//
// # Error Handling
//
// Failures are reported through sentinel errors (ErrInvalidCrop,
// ErrCropOutOfBounds, ErrInvalidGeometry, ErrInsetTooLarge, ErrInvalidTarget,
// ErrDirectoryCreate, ErrWriteFailed) wrapped with context. Use errors.Is to
// classify them.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The remaining functions are stateless
// and may run concurrently on different buffers.
package imaging
