package export

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ironsheep/image-crop-mcp/internal/imaging"
	"github.com/ironsheep/image-crop-mcp/internal/listing"
)

const (
	msgNoImages  = "No supported images found."
	msgCancelled = "Export cancelled."
)

// BatchOptions applies to every item of a batch.
type BatchOptions struct {
	OutputDir string
	Crop      imaging.CropRect
	Shape     imaging.Shape
	Mask      imaging.MaskParams
	Target    imaging.TargetSize
	Naming    NamingMode
}

func (o BatchOptions) validate() (suffix string, err error) {
	suffix, err = o.Naming.suffix()
	if err != nil {
		return "", err
	}
	if _, err := imaging.ParseShape(string(o.Shape)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := o.Target.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return suffix, nil
}

func (o BatchOptions) transformRequest() imaging.TransformRequest {
	shape, _ := imaging.ParseShape(string(o.Shape))
	return imaging.TransformRequest{
		Crop:   o.Crop,
		Shape:  shape,
		Mask:   o.Mask,
		Target: o.Target,
	}
}

// RunBatch exports items in order into opts.OutputDir.
//
// An empty item list yields a summary carrying "No supported images found."
// An invalid configuration returns an error wrapping ErrInvalidConfig and no
// summary. Everything else, cancellation included, is reported through the
// returned Summary. onProgress may be nil.
func (e *Exporter) RunBatch(ctx context.Context, items []listing.Item, opts BatchOptions, onProgress ProgressFunc) (*Summary, error) {
	summary := newSummary()
	if len(items) == 0 {
		summary.Errors = append(summary.Errors, msgNoImages)
		return summary, nil
	}

	suffix, err := opts.validate()
	if err != nil {
		return nil, err
	}
	req := opts.transformRequest()

	total := len(items)
	for i, item := range items {
		if ctx.Err() != nil {
			summary.cancel()
			break
		}

		if onProgress != nil {
			onProgress(Progress{CurrentIndex: i + 1, Total: total, FileName: item.Name})
		}

		dest := filepath.Join(opts.OutputDir, outputName(item.Path, suffix))
		summary.record(e.exportItem(item, dest, req))
	}

	return summary, nil
}

// ExportDir lists the supported images directly inside inputDir and runs them
// as a batch.
func (e *Exporter) ExportDir(ctx context.Context, inputDir string, opts BatchOptions, onProgress ProgressFunc) (*Summary, error) {
	items, err := listing.List(inputDir)
	if err != nil {
		return nil, err
	}
	return e.RunBatch(ctx, items, opts, onProgress)
}

func (e *Exporter) exportItem(item listing.Item, dest string, req imaging.TransformRequest) itemResult {
	src, err := e.load(item.Path)
	if err != nil {
		return failed(fmt.Sprintf("%s: Load failed: %v", item.Name, err))
	}

	out, err := imaging.Transform(src, req)
	switch {
	case errors.Is(err, imaging.ErrCropOutOfBounds):
		return skipped()
	case errors.Is(err, imaging.ErrInvalidCrop):
		return failed(fmt.Sprintf("%s: Crop size must be greater than zero.", item.Name))
	case err != nil:
		return failed(fmt.Sprintf("%s: %v", item.Name, err))
	}

	if err := imaging.WritePNG(out, dest); err != nil {
		return failed(fmt.Sprintf("%s: %v", item.Name, err))
	}
	return exported()
}
