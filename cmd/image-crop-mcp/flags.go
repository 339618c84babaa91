package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-crop-mcp/internal/config"
)

// addJobFlags registers the flags that override a job file. Batch commands
// additionally take a naming mode.
func addJobFlags(cmd *cobra.Command, batch bool) {
	f := cmd.Flags()
	f.StringP("job", "c", "", "YAML job file")
	if batch {
		f.StringP("input", "i", "", "source folder")
		f.StringP("output", "o", "", "output folder")
		f.String("naming", "", "output naming: identity, cropped-suffix")
	} else {
		f.StringP("input", "i", "", "source image")
		f.StringP("output", "o", "", "output PNG path")
	}
	f.Int("x", 0, "crop left edge")
	f.Int("y", 0, "crop top edge")
	f.Int("w", 0, "crop width")
	f.Int("h", 0, "crop height")
	f.String("shape", "", "shape: rectangular, rounded")
	f.Uint32("radius", 0, "corner radius in pixels (rounded only)")
	f.Uint32("inset", 0, "inset in pixels (rounded only)")
	f.Int("target-w", 0, "output width")
	f.Int("target-h", 0, "output height")
	f.Bool("transparent", true, "transparent fill outside the rounded region")
}

// jobFromFlags loads the job file, if any, and applies explicitly set flags
// on top of it.
func jobFromFlags(cmd *cobra.Command) (*config.Job, error) {
	f := cmd.Flags()

	job := config.DefaultJob()
	if path, _ := f.GetString("job"); path != "" {
		loaded, err := config.LoadJob(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load job: %w", err)
		}
		job = loaded
	}

	stringFlags := map[string]*string{
		"input":  &job.Input,
		"output": &job.Output,
		"shape":  &job.Shape,
		"naming": &job.FilenameMode,
	}
	for name, dst := range stringFlags {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}

	intFlags := map[string]*int{
		"x":        &job.Crop.X,
		"y":        &job.Crop.Y,
		"w":        &job.Crop.W,
		"h":        &job.Crop.H,
		"target-w": &job.TargetW,
		"target-h": &job.TargetH,
	}
	for name, dst := range intFlags {
		if f.Changed(name) {
			*dst, _ = f.GetInt(name)
		}
	}

	if f.Changed("radius") {
		job.RadiusPx, _ = f.GetUint32("radius")
	}
	if f.Changed("inset") {
		job.InsetPx, _ = f.GetUint32("inset")
	}
	if f.Changed("transparent") {
		job.TransparentPNG, _ = f.GetBool("transparent")
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}
