package imaging

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// Shape selects whether the cropped buffer is masked.
type Shape string

const (
	// ShapeRectangular performs no masking.
	ShapeRectangular Shape = "rectangular"
	// ShapeRounded applies the rounded-rectangle mask.
	ShapeRounded Shape = "rounded"
)

// ParseShape parses a shape name. An empty name and the "rectangle" spelling
// used by the desktop UI both mean ShapeRectangular.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rectangular", "rectangle":
		return ShapeRectangular, nil
	case "rounded":
		return ShapeRounded, nil
	default:
		return "", fmt.Errorf("unknown shape: %q", s)
	}
}

// TargetSize is the output resolution in pixels.
type TargetSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Validate rejects non-positive dimensions. The resampler would accept a zero
// dimension and produce an empty or aspect-derived image, so it is refused here.
func (t TargetSize) Validate() error {
	if t.W <= 0 || t.H <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidTarget, t.W, t.H)
	}
	return nil
}

// TransformRequest describes one crop -> mask -> resize operation.
type TransformRequest struct {
	Crop   CropRect
	Shape  Shape
	Mask   MaskParams
	Target TargetSize
}

// Transform crops, optionally masks and resizes src according to req.
//
// The result is a new buffer of exactly req.Target pixels. Resampling uses the
// 3-lobe Lanczos filter; when the cropped size already equals the target the
// buffer is copied without resampling.
func Transform(src image.Image, req TransformRequest) (*image.NRGBA, error) {
	cropped, err := Crop(src, req.Crop)
	if err != nil {
		return nil, err
	}

	if err := req.Target.Validate(); err != nil {
		return nil, err
	}

	if req.Shape == ShapeRounded {
		if err := ApplyRoundedMask(cropped, req.Mask); err != nil {
			return nil, err
		}
	}

	return imaging.Resize(cropped, req.Target.W, req.Target.H, imaging.Lanczos), nil
}
