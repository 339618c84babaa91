package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-crop-mcp/internal/config"
	"github.com/ironsheep/image-crop-mcp/internal/export"
	"github.com/ironsheep/image-crop-mcp/internal/listing"
	"github.com/ironsheep/image-crop-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "image-crop-mcp",
		Short: "Crop, round and resize images to PNG",
		Long: `image-crop-mcp crops images to a rectangle, optionally rounds the corners,
resizes the result with Lanczos resampling and writes lossless PNG.

Without a subcommand it runs as an MCP server over stdin/stdout.

Environment variables:
  IMAGE_CROP_MCP_LOG_LEVEL=debug    Enable debug logging`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// stdout is reserved for the MCP protocol
			log.SetOutput(os.Stderr)
			log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
		},
		RunE: runServe,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdin/stdout",
		RunE:  runServe,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export one image",
		RunE:  runExport,
	}
	addJobFlags(exportCmd, false)

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Export every supported image in a folder",
		Long: `Export every png, jpg, jpeg and webp file directly inside the input folder
with the same crop and shape. Images the crop does not fit are skipped.
Ctrl-C stops after the image in progress.`,
		RunE: runBatch,
	}
	addJobFlags(batchCmd, true)

	listCmd := &cobra.Command{
		Use:   "list <dir>",
		Short: "List the supported images in a folder",
		Args:  cobra.ExactArgs(1),
		RunE:  runList,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "image-crop-mcp %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  Build time: %s\n", BuildTime)
			fmt.Fprintf(cmd.OutOrStdout(), "  Git commit: %s\n", GitCommit)
		},
	}

	rootCmd.AddCommand(serveCmd, exportCmd, batchCmd, listCmd, versionCmd)
	return rootCmd
}

func runServe(cmd *cobra.Command, args []string) error {
	if config.LoadSettings().Debug() {
		log.Printf("Image Crop MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New()
	if err := srv.Run(context.Background()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	job, err := jobFromFlags(cmd)
	if err != nil {
		return err
	}

	if err := export.New().ExportSingle(job.SingleRequest()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", job.Output)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	job, err := jobFromFlags(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	stderr := cmd.ErrOrStderr()
	summary, err := export.New().ExportDir(ctx, job.Input, job.BatchOptions(), func(p export.Progress) {
		fmt.Fprintf(stderr, "[%d/%d] %s\n", p.CurrentIndex, p.Total, p.FileName)
	})
	if err != nil {
		return err
	}

	printSummary(cmd, summary)
	if summary.Cancelled {
		return export.ErrCancelled
	}
	return nil
}

func printSummary(cmd *cobra.Command, s *export.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Exported: %d\n", s.Exported)
	fmt.Fprintf(out, "Skipped:  %d\n", s.Skipped)
	if len(s.Errors) > 0 {
		fmt.Fprintf(out, "Errors:   %d\n", len(s.Errors))
		for _, msg := range s.Errors {
			fmt.Fprintf(out, "  %s\n", msg)
		}
	}
}

func runList(cmd *cobra.Command, args []string) error {
	items, err := listing.List(args[0])
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return errors.New("no supported images found")
	}
	for _, item := range items {
		fmt.Fprintln(cmd.OutOrStdout(), item.Path)
	}
	return nil
}
