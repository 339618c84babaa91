package imaging

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// WritePNG persists img as a PNG file at path.
//
// Missing ancestor directories are created first; an existing directory is
// not an error. The image is encoded in memory before the file is touched, so
// an encoding failure never leaves a partial file behind. An existing file at
// path is overwritten.
//
// # Errors
//
//   - ErrDirectoryCreate if the parent directory cannot be created
//   - ErrWriteFailed if encoding or writing fails
func WritePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrDirectoryCreate, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	return nil
}
