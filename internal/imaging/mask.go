package imaging

import (
	"image"
	"image/color"
)

// MaskParams configures the rounded-rectangle mask.
//
// InsetPx is clamped to half the buffer width and height, RadiusPx to half the
// smaller side of the inset area. Both clamps are silent: they define the
// effective geometry rather than reject the request.
type MaskParams struct {
	RadiusPx    uint32 `json:"radius_px"`
	InsetPx     uint32 `json:"inset_px"`
	Transparent bool   `json:"transparent_png"`
}

var (
	transparentFill = color.NRGBA{R: 0, G: 0, B: 0, A: 0}
	opaqueWhiteFill = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Fill returns the color written over pixels outside the rounded region.
func (p MaskParams) Fill() color.NRGBA {
	if p.Transparent {
		return transparentFill
	}
	return opaqueWhiteFill
}

// span is a closed interval [lo, hi] on the real line.
type span struct {
	lo, hi float64
}

func (s span) contains(v float64) bool {
	return v >= s.lo && v <= s.hi
}

// roundedRect is the inside region of the mask in buffer coordinates.
type roundedRect struct {
	left, top, right, bottom float64
	radius                   float64
}

// newRoundedRect resolves the effective geometry for a w x h buffer.
func newRoundedRect(w, h int, p MaskParams) (roundedRect, error) {
	if w <= 0 || h <= 0 {
		return roundedRect{}, ErrInvalidGeometry
	}

	inset := int(min(uint64(p.InsetPx), uint64(w/2), uint64(h/2)))
	innerW := w - 2*inset
	innerH := h - 2*inset
	if innerW <= 0 || innerH <= 0 {
		return roundedRect{}, ErrInsetTooLarge
	}

	maxRadius := min(innerW, innerH) / 2
	radius := min(uint64(p.RadiusPx), uint64(maxRadius))

	return roundedRect{
		left:   float64(inset),
		top:    float64(inset),
		right:  float64(inset + innerW),
		bottom: float64(inset + innerH),
		radius: float64(radius),
	}, nil
}

func (r roundedRect) horizontal() span { return span{r.left, r.right} }
func (r roundedRect) vertical() span   { return span{r.top, r.bottom} }

// straightColumns is the band of x between the left and right corner squares.
func (r roundedRect) straightColumns() span {
	return span{r.left + r.radius, r.right - r.radius}
}

// straightRows is the band of y between the top and bottom corner squares.
func (r roundedRect) straightRows() span {
	return span{r.top + r.radius, r.bottom - r.radius}
}

// cornerCenter returns the circle center of the corner square holding (px, py).
// Each center sits radius away from its two nearest edges.
func (r roundedRect) cornerCenter(px, py float64) (float64, float64) {
	cx := r.right - r.radius
	if px < r.left+r.radius {
		cx = r.left + r.radius
	}
	cy := r.bottom - r.radius
	if py < r.top+r.radius {
		cy = r.top + r.radius
	}
	return cx, cy
}

// contains reports whether the sample point lies inside the rounded region.
func (r roundedRect) contains(px, py float64) bool {
	if r.radius == 0 {
		return r.horizontal().contains(px) && r.vertical().contains(py)
	}
	if r.straightColumns().contains(px) {
		return r.vertical().contains(py)
	}
	if r.straightRows().contains(py) {
		return r.horizontal().contains(px)
	}

	cx, cy := r.cornerCenter(px, py)
	dx, dy := px-cx, py-cy
	return dx*dx+dy*dy <= r.radius*r.radius
}

// ApplyRoundedMask replaces every pixel outside the rounded rectangle with the
// fill color from p and leaves every pixel inside untouched.
//
// The region is the inset rectangle (inset, inset)-(w-inset, h-inset) with
// circular corners of the effective radius. Pixels are sampled at their
// centers. The buffer is modified in place.
//
// # Errors
//
//   - ErrInvalidGeometry if the buffer has zero width or height
//   - ErrInsetTooLarge if the clamped inset leaves no inner area
func ApplyRoundedMask(img *image.NRGBA, p MaskParams) error {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	region, err := newRoundedRect(w, h, p)
	if err != nil {
		return err
	}

	fill := p.Fill()
	for y := 0; y < h; y++ {
		py := float64(y) + 0.5
		i := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		for x := 0; x < w; x++ {
			if !region.contains(float64(x)+0.5, py) {
				img.Pix[i+0] = fill.R
				img.Pix[i+1] = fill.G
				img.Pix[i+2] = fill.B
				img.Pix[i+3] = fill.A
			}
			i += 4
		}
	}

	return nil
}
