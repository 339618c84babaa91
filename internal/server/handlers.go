package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/ironsheep/image-crop-mcp/internal/config"
	"github.com/ironsheep/image-crop-mcp/internal/export"
	"github.com/ironsheep/image-crop-mcp/internal/imaging"
	"github.com/ironsheep/image-crop-mcp/internal/listing"
)

// ProgressMethod is the notification sent as each batch item starts.
const ProgressMethod = "notifications/export_progress"

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_export_single").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// image_export_batch answers asynchronously once its run completes.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	if params.Name == "image_export_batch" {
		if err := s.startBatch(ctx, req.ID, params.Arguments); err != nil {
			return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
		}
		return nil
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return s.toolResponse(req.ID, result)
}

// executeTool dispatches the synchronous tools.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Inspection
	case "image_list":
		return s.handleImageList(args)
	case "image_info":
		return s.handleImageInfo(args)
	case "image_preview":
		return s.handleImagePreview(args)

	// Export
	case "image_export_single":
		return s.handleExportSingle(args)
	case "image_export_cancel":
		return s.handleExportCancel(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

func (s *Server) toolResponse(id interface{}, result interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// jobArgs decodes tool arguments on top of the default job, so omitted
// parameters keep their defaults.
type jobArgs struct {
	config.Job
	RunID string `json:"run_id"`
}

func decodeJobArgs(args json.RawMessage) (*jobArgs, error) {
	a := &jobArgs{Job: *config.DefaultJob()}
	if err := json.Unmarshal(args, a); err != nil {
		return nil, err
	}
	return a, nil
}

// === Inspection Handlers ===

type pathArgs struct {
	Path string `json:"path"`
}

type listResult struct {
	Dir    string         `json:"dir"`
	Count  int            `json:"count"`
	Images []listing.Item `json:"images"`
}

func (s *Server) handleImageList(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	items, err := listing.List(a.Path)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []listing.Item{}
	}
	return &listResult{Dir: a.Path, Count: len(items), Images: items}, nil
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImagePreview(args json.RawMessage) (interface{}, error) {
	a, err := decodeJobArgs(args)
	if err != nil {
		return nil, err
	}
	if _, err := imaging.ParseShape(a.Shape); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", export.ErrLoadFailed, err)
	}
	return imaging.Preview(img, a.TransformRequest())
}

// === Export Handlers ===

type singleResult struct {
	OutputPath string `json:"outputPath"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

func (s *Server) handleExportSingle(args json.RawMessage) (interface{}, error) {
	a, err := decodeJobArgs(args)
	if err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if err := s.exporter.ExportSingle(a.SingleRequest()); err != nil {
		return nil, err
	}
	s.cache.Evict(a.Output)

	return &singleResult{OutputPath: a.Output, Width: a.TargetW, Height: a.TargetH}, nil
}

type progressParams struct {
	RunID string `json:"runId"`
	export.Progress
}

type batchResult struct {
	RunID string `json:"runId"`
	*export.Summary
}

// startBatch launches a batch run on its own goroutine. The run answers id
// with a batchResult, or an error response, when it completes.
func (s *Server) startBatch(ctx context.Context, id interface{}, args json.RawMessage) error {
	a, err := decodeJobArgs(args)
	if err != nil {
		return err
	}
	if a.Input == "" {
		return &config.ValidationError{Field: "input", Message: "input folder is required"}
	}
	if a.Output == "" {
		return &config.ValidationError{Field: "output", Message: "output folder is required"}
	}

	runID, runCtx, err := s.runs.start(ctx, a.RunID)
	if err != nil {
		return err
	}
	opts := a.BatchOptions()

	if s.debug {
		log.Printf("Batch %s started: %s -> %s", runID, a.Input, a.Output)
	}

	go func() {
		defer s.runs.finish(runID)

		summary, err := s.exporter.ExportDir(runCtx, a.Input, opts, func(p export.Progress) {
			s.notify(ProgressMethod, &progressParams{RunID: runID, Progress: p})
		})
		// Exports may overwrite files that were previewed earlier.
		s.cache.Clear()

		if err != nil {
			if s.debug {
				log.Printf("Batch %s failed: %v", runID, err)
			}
			s.send(s.errorResponse(id, -32000, "Tool execution failed", err.Error()))
			return
		}

		if s.debug {
			log.Printf("Batch %s finished: exported=%d skipped=%d errors=%d cancelled=%v",
				runID, summary.Exported, summary.Skipped, len(summary.Errors), summary.Cancelled)
		}
		s.send(s.toolResponse(id, &batchResult{RunID: runID, Summary: summary}))
	}()

	return nil
}

type cancelArgs struct {
	RunID string `json:"run_id"`
}

type cancelResult struct {
	Cancelled []string `json:"cancelled"`
	Count     int      `json:"count"`
}

func (s *Server) handleExportCancel(args json.RawMessage) (interface{}, error) {
	var a cancelArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	ids := s.runs.cancel(a.RunID)
	if ids == nil {
		ids = []string{}
	}
	if s.debug {
		log.Printf("Cancel requested for %q: %d run(s)", a.RunID, len(ids))
	}
	return &cancelResult{Cancelled: ids, Count: len(ids)}, nil
}
