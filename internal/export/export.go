package export

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/image-crop-mcp/internal/imaging"
)

var (
	// ErrLoadFailed reports a source that cannot be read or decoded.
	ErrLoadFailed = errors.New("load failed")

	// ErrInvalidConfig reports batch options rejected before any item runs.
	ErrInvalidConfig = errors.New("invalid export configuration")

	// ErrCancelled reports a batch stopped by its caller.
	ErrCancelled = errors.New("export cancelled")
)

// LoadFunc decodes the image at path.
type LoadFunc func(path string) (image.Image, error)

// Exporter runs single and batch exports.
type Exporter struct {
	load LoadFunc
}

// New creates an Exporter that decodes sources with imaging.Load.
func New() *Exporter {
	return &Exporter{load: imaging.Load}
}

// NewWithLoader creates an Exporter with a custom decoder.
func NewWithLoader(load LoadFunc) *Exporter {
	return &Exporter{load: load}
}

// SingleRequest describes a one-file export.
type SingleRequest struct {
	InputPath  string
	OutputPath string
	Crop       imaging.CropRect
	Shape      imaging.Shape
	Mask       imaging.MaskParams
	Target     imaging.TargetSize
}

func (r SingleRequest) transformRequest() imaging.TransformRequest {
	return imaging.TransformRequest{
		Crop:   r.Crop,
		Shape:  r.Shape,
		Mask:   r.Mask,
		Target: r.Target,
	}
}

// ExportSingle loads req.InputPath, transforms it and writes req.OutputPath.
//
// Any failure aborts the export before the output is written. Unlike a batch,
// an out-of-bounds crop is an error here (imaging.ErrCropOutOfBounds).
func (e *Exporter) ExportSingle(req SingleRequest) error {
	src, err := e.load(req.InputPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	out, err := imaging.Transform(src, req.transformRequest())
	if err != nil {
		return err
	}

	return imaging.WritePNG(out, req.OutputPath)
}
