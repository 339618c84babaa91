package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropRect is a rectangle in source pixels with its origin at the top-left
// corner. It covers columns [X, X+W) and rows [Y, Y+H).
type CropRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Rect returns the rectangle as an image.Rectangle anchored at (0,0).
func (r CropRect) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Validate checks the rectangle against a source of the given bounds.
//
// A zero-area rectangle fails with ErrInvalidCrop before bounds are looked at.
// A rectangle that does not lie fully inside the source fails with
// ErrCropOutOfBounds. Nothing is clamped.
func (r CropRect) Validate(bounds image.Rectangle) error {
	if r.W <= 0 || r.H <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidCrop, r.W, r.H)
	}

	width, height := bounds.Dx(), bounds.Dy()
	// W and H are positive here, so the subtractions cannot overflow.
	if r.X < 0 || r.Y < 0 || r.X > width-r.W || r.Y > height-r.H {
		return fmt.Errorf("%w: (%d,%d) %dx%d exceeds %dx%d source",
			ErrCropOutOfBounds, r.X, r.Y, r.W, r.H, width, height)
	}

	return nil
}

// Crop extracts the rectangle into a new buffer of exactly r.W x r.H pixels.
func Crop(img image.Image, r CropRect) (*image.NRGBA, error) {
	bounds := img.Bounds()
	if err := r.Validate(bounds); err != nil {
		return nil, err
	}

	// imaging.Crop works in the source's absolute coordinates.
	return imaging.Crop(img, r.Rect().Add(bounds.Min)), nil
}
