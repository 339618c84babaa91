package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/image-crop-mcp/internal/export"
	"github.com/ironsheep/image-crop-mcp/internal/imaging"
)

// Crop is the crop rectangle of a job, in source pixels.
type Crop struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
	W int `yaml:"w" json:"w"`
	H int `yaml:"h" json:"h"`
}

// Job carries the parameters of one export call. Input and Output are files
// for a single export and directories for a batch.
type Job struct {
	Input          string `yaml:"input" json:"input"`
	Output         string `yaml:"output" json:"output"`
	Crop           Crop   `yaml:"crop" json:"crop"`
	Shape          string `yaml:"shape" json:"shape"`
	RadiusPx       uint32 `yaml:"radius_px" json:"radius_px"`
	InsetPx        uint32 `yaml:"inset_px" json:"inset_px"`
	TargetW        int    `yaml:"target_w" json:"target_w"`
	TargetH        int    `yaml:"target_h" json:"target_h"`
	TransparentPNG bool   `yaml:"transparent_png" json:"transparent_png"`
	FilenameMode   string `yaml:"filename_mode" json:"filename_mode"`
}

// DefaultJob returns a job carrying the desktop UI defaults: rectangular
// shape, radius 18, no inset, 1600x1200 target, transparent fill and
// identity naming. Input, Output and Crop are left empty.
func DefaultJob() *Job {
	return &Job{
		Shape:          string(imaging.ShapeRectangular),
		RadiusPx:       18,
		InsetPx:        0,
		TargetW:        1600,
		TargetH:        1200,
		TransparentPNG: true,
		FilenameMode:   string(export.NamingIdentity),
	}
}

// LoadJob reads a YAML job file on top of DefaultJob.
func LoadJob(path string) (*Job, error) {
	job := DefaultJob()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, job); err != nil {
		return nil, err
	}

	return job, nil
}

// Validate checks the fields shared by single and batch exports. The crop
// rectangle is left to the export itself, which reports it per image.
func (j *Job) Validate() error {
	if j.Input == "" {
		return &ValidationError{Field: "input", Message: "input path is required"}
	}
	if j.Output == "" {
		return &ValidationError{Field: "output", Message: "output path is required"}
	}
	if _, err := imaging.ParseShape(j.Shape); err != nil {
		return &ValidationError{Field: "shape", Message: err.Error()}
	}
	if j.TargetW <= 0 || j.TargetH <= 0 {
		return &ValidationError{Field: "target", Message: "target size must be greater than zero"}
	}
	if _, err := export.OutputName("image", j.namingMode()); err != nil {
		return &ValidationError{Field: "filename_mode", Message: "must be identity or cropped-suffix"}
	}
	return nil
}

// TransformRequest converts the job's pixel parameters. An unknown shape maps
// to rectangular; call Validate first to reject it.
func (j *Job) TransformRequest() imaging.TransformRequest {
	shape, err := imaging.ParseShape(j.Shape)
	if err != nil {
		shape = imaging.ShapeRectangular
	}
	return imaging.TransformRequest{
		Crop:  imaging.CropRect{X: j.Crop.X, Y: j.Crop.Y, W: j.Crop.W, H: j.Crop.H},
		Shape: shape,
		Mask: imaging.MaskParams{
			RadiusPx:    j.RadiusPx,
			InsetPx:     j.InsetPx,
			Transparent: j.TransparentPNG,
		},
		Target: imaging.TargetSize{W: j.TargetW, H: j.TargetH},
	}
}

// SingleRequest converts the job into a one-file export from Input to Output.
func (j *Job) SingleRequest() export.SingleRequest {
	req := j.TransformRequest()
	return export.SingleRequest{
		InputPath:  j.Input,
		OutputPath: j.Output,
		Crop:       req.Crop,
		Shape:      req.Shape,
		Mask:       req.Mask,
		Target:     req.Target,
	}
}

// BatchOptions converts the job into batch options writing into Output. An
// empty filename mode means identity naming.
func (j *Job) BatchOptions() export.BatchOptions {
	req := j.TransformRequest()
	return export.BatchOptions{
		OutputDir: j.Output,
		Crop:      req.Crop,
		Shape:     imaging.Shape(j.Shape),
		Mask:      req.Mask,
		Target:    req.Target,
		Naming:    j.namingMode(),
	}
}

func (j *Job) namingMode() export.NamingMode {
	if j.FilenameMode == "" {
		return export.NamingIdentity
	}
	return export.NamingMode(j.FilenameMode)
}
