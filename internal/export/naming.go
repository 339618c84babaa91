package export

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NamingMode selects the output file name for a batch item.
type NamingMode string

const (
	// NamingIdentity keeps the source stem: photo.jpg -> photo.png.
	NamingIdentity NamingMode = "identity"
	// NamingCroppedSuffix appends "_cropped": photo.jpg -> photo_cropped.png.
	NamingCroppedSuffix NamingMode = "cropped-suffix"
)

const croppedSuffix = "_cropped"

// suffix returns the stem suffix for m, or an error for an unknown mode.
func (m NamingMode) suffix() (string, error) {
	switch m {
	case NamingIdentity:
		return "", nil
	case NamingCroppedSuffix:
		return croppedSuffix, nil
	default:
		return "", fmt.Errorf("%w: unknown naming mode %q", ErrInvalidConfig, string(m))
	}
}

// OutputName returns the PNG file name a source path exports to under m.
func OutputName(sourcePath string, m NamingMode) (string, error) {
	suffix, err := m.suffix()
	if err != nil {
		return "", err
	}
	return outputName(sourcePath, suffix), nil
}

func outputName(sourcePath, suffix string) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = "image"
	}
	return stem + suffix + ".png"
}
