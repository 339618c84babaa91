package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/image-crop-mcp/internal/export"
)

// createTestImageFile writes a solid PNG into dir and returns its path
func createTestImageFile(t *testing.T, dir, name string, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

type batchSummaryJSON struct {
	RunID     string   `json:"runId"`
	Exported  int      `json:"exported"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors"`
	Cancelled bool     `json:"cancelled"`
}

func callTool(s *Server, name string, args interface{}) *MCPResponse {
	params, _ := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	return s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  params,
	})
}

// toolText extracts the JSON text of a successful in-process tool response.
func toolText(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v (%v)", resp.Error.Message, resp.Error.Data)
	}
	content := resp.Result.(map[string]interface{})["content"].([]map[string]interface{})
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), v); err != nil {
		t.Fatalf("invalid tool text: %v", err)
	}
}

// decodeToolText extracts the JSON text of a tool response read off the wire.
func decodeToolText(t *testing.T, msg map[string]interface{}, v interface{}) {
	t.Helper()

	if msg["error"] != nil {
		t.Fatalf("Unexpected error: %v", msg["error"])
	}
	result := msg["result"].(map[string]interface{})
	content := result["content"].([]interface{})[0].(map[string]interface{})
	if err := json.Unmarshal([]byte(content["text"].(string)), v); err != nil {
		t.Fatalf("invalid tool text: %v", err)
	}
}

func TestHandleToolsCall_ImageList(t *testing.T) {
	s := New()
	dir := t.TempDir()
	createTestImageFile(t, dir, "b.png", 4, 4, color.White)
	createTestImageFile(t, dir, "A.png", 4, 4, color.White)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var result listResult
	toolText(t, callTool(s, "image_list", map[string]interface{}{"path": dir}), &result)

	if result.Count != 2 {
		t.Fatalf("Count: got %d, want 2", result.Count)
	}
	if result.Images[0].Name != "A.png" || result.Images[1].Name != "b.png" {
		t.Errorf("order: got %s, %s", result.Images[0].Name, result.Images[1].Name)
	}
}

func TestHandleToolsCall_ImageListEmpty(t *testing.T) {
	s := New()

	resp := callTool(s, "image_list", map[string]interface{}{"path": t.TempDir()})
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	content := resp.Result.(map[string]interface{})["content"].([]map[string]interface{})
	if !strings.Contains(content[0]["text"].(string), `"images": []`) {
		t.Errorf("empty listing should encode an empty array: %s", content[0]["text"])
	}
}

func TestHandleToolsCall_ImageInfo(t *testing.T) {
	s := New()
	path := createTestImageFile(t, t.TempDir(), "info.png", 120, 90, color.RGBA{1, 2, 3, 255})

	var info struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Format string `json:"format"`
	}
	toolText(t, callTool(s, "image_info", map[string]interface{}{"path": path}), &info)

	if info.Width != 120 || info.Height != 90 || info.Format != "png" {
		t.Errorf("info: got %+v", info)
	}
}

func TestHandleToolsCall_ImagePreview(t *testing.T) {
	s := New()
	path := createTestImageFile(t, t.TempDir(), "p.png", 60, 40, color.RGBA{0, 0, 255, 255})

	var result struct {
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		ImageBase64 string `json:"image_base64"`
	}
	toolText(t, callTool(s, "image_preview", map[string]interface{}{
		"input":    path,
		"crop":     map[string]int{"x": 10, "y": 5, "w": 30, "h": 30},
		"shape":    "rounded",
		"target_w": 30,
		"target_h": 30,
	}), &result)

	if result.Width != 30 || result.Height != 30 {
		t.Fatalf("dimensions: got %dx%d, want 30x30", result.Width, result.Height)
	}
	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	img, err := png.Decode(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	// Default radius 18 clamps to 15 and default transparency applies.
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("corner alpha: got %d, want 0", a)
	}
}

func TestHandleToolsCall_ExportSingle(t *testing.T) {
	s := New()
	dir := t.TempDir()
	src := createTestImageFile(t, dir, "src.png", 50, 50, color.RGBA{200, 100, 0, 255})
	out := filepath.Join(dir, "exports", "out.png")

	var result singleResult
	toolText(t, callTool(s, "image_export_single", map[string]interface{}{
		"input":    src,
		"output":   out,
		"crop":     map[string]int{"x": 0, "y": 0, "w": 25, "h": 25},
		"target_w": 100,
		"target_h": 80,
	}), &result)

	if result.OutputPath != out {
		t.Errorf("OutputPath: got %s, want %s", result.OutputPath, out)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 80 {
		t.Errorf("output size: got %dx%d, want 100x80", cfg.Width, cfg.Height)
	}
}

func TestHandleToolsCall_ExportSingleErrors(t *testing.T) {
	s := New()
	dir := t.TempDir()
	src := createTestImageFile(t, dir, "src.png", 10, 10, color.White)

	tests := []struct {
		name     string
		args     map[string]interface{}
		wantData string
	}{
		{
			"out of bounds",
			map[string]interface{}{"input": src, "output": filepath.Join(dir, "o.png"),
				"crop": map[string]int{"x": 5, "y": 0, "w": 10, "h": 10}},
			"crop rectangle is out of bounds",
		},
		{
			"missing source",
			map[string]interface{}{"input": filepath.Join(dir, "none.png"), "output": filepath.Join(dir, "o.png"),
				"crop": map[string]int{"x": 0, "y": 0, "w": 5, "h": 5}},
			"load failed",
		},
		{
			"missing output",
			map[string]interface{}{"input": src, "crop": map[string]int{"x": 0, "y": 0, "w": 5, "h": 5}},
			"output",
		},
		{
			"zero target",
			map[string]interface{}{"input": src, "output": filepath.Join(dir, "o.png"),
				"crop": map[string]int{"x": 0, "y": 0, "w": 5, "h": 5}, "target_w": 0},
			"target",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(s, "image_export_single", tt.args)
			if resp.Error == nil {
				t.Fatal("expected error response")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
			}
			if data, _ := resp.Error.Data.(string); !strings.Contains(data, tt.wantData) {
				t.Errorf("Error data: got %q, want it to mention %q", data, tt.wantData)
			}
		})
	}
}

func TestHandleToolsCall_ExportBatchValidation(t *testing.T) {
	s := New()

	resp := callTool(s, "image_export_batch", map[string]interface{}{"output": t.TempDir()})
	if resp == nil || resp.Error == nil {
		t.Fatal("missing input should be rejected immediately")
	}
	if s.runs.count() != 0 {
		t.Error("rejected batch should not register a run")
	}
}

func TestHandleToolsCall_ExportBatchInvalidConfig(t *testing.T) {
	var out syncBuffer
	s := NewWithIO(strings.NewReader(""), &out)
	in := t.TempDir()
	createTestImageFile(t, in, "a.png", 10, 10, color.White)

	resp := callTool(s, "image_export_batch", map[string]interface{}{
		"input":         in,
		"output":        t.TempDir(),
		"crop":          map[string]int{"x": 0, "y": 0, "w": 5, "h": 5},
		"filename_mode": "ui",
	})
	if resp != nil {
		t.Fatalf("batch should answer asynchronously, got %+v", resp)
	}
	s.runs.wait()

	msgs := decodeLines(t, out.Bytes())
	if len(msgs) != 1 || msgs[0]["error"] == nil {
		t.Fatalf("expected one error response, got %v", msgs)
	}
	data := msgs[0]["error"].(map[string]interface{})["data"].(string)
	if !strings.Contains(data, "naming mode") {
		t.Errorf("error data: got %q", data)
	}
}

func TestHandleToolsCall_ExportBatchDuplicateRunID(t *testing.T) {
	s := New()
	if _, _, err := s.runs.start(context.Background(), "busy"); err != nil {
		t.Fatal(err)
	}
	defer s.runs.finish("busy")

	resp := callTool(s, "image_export_batch", map[string]interface{}{
		"input": t.TempDir(), "output": t.TempDir(), "run_id": "busy",
	})
	if resp == nil || resp.Error == nil {
		t.Fatal("duplicate run id should be rejected")
	}
}

func TestHandleToolsCall_ExportCancelNoRuns(t *testing.T) {
	s := New()

	var result cancelResult
	toolText(t, callTool(s, "image_export_cancel", map[string]interface{}{}), &result)
	if result.Count != 0 || len(result.Cancelled) != 0 {
		t.Errorf("cancel with no runs: got %+v", result)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`{invalid`),
	})

	if resp == nil || resp.Error == nil {
		t.Fatal("Expected error response")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New()

	_, err := s.executeTool("image_ocr_full", json.RawMessage(`{}`))
	if err == nil {
		t.Error("executeTool should fail for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New()

	for _, name := range []string{"image_list", "image_info", "image_preview", "image_export_single", "image_export_cancel"} {
		if _, err := s.executeTool(name, json.RawMessage(`{invalid`)); err == nil {
			t.Errorf("%s should fail for invalid JSON", name)
		}
	}
}

// TestRun_CancelDuringBatch drives a live server over pipes. The fake loader
// holds the first image until the cancel request has been answered.
func TestRun_CancelDuringBatch(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		if err := os.WriteFile(filepath.Join(in, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	release := make(chan struct{})
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	s := NewWithIO(inR, outW)
	s.exporter = export.NewWithLoader(func(path string) (image.Image, error) {
		<-release
		img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
		for i := range img.Pix {
			img.Pix[i] = 0xff
		}
		return img, nil
	})

	done := make(chan error, 1)
	go func() {
		done <- s.Run(context.Background())
		outW.Close()
	}()

	dec := json.NewDecoder(outR)
	read := func() map[string]interface{} {
		var m map[string]interface{}
		if err := dec.Decode(&m); err != nil {
			t.Fatalf("read failed: %v", err)
		}
		return m
	}
	write := func(line string) {
		if _, err := io.WriteString(inW, line+"\n"); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	write(`{"jsonrpc":"2.0","id":"batch","method":"tools/call","params":{"name":"image_export_batch","arguments":{"input":"` +
		filepath.ToSlash(in) + `","output":"` + filepath.ToSlash(out) +
		`","crop":{"x":0,"y":0,"w":10,"h":10},"target_w":10,"target_h":10,"run_id":"r1"}}}`)

	first := read()
	if first["method"] != ProgressMethod {
		t.Fatalf("expected progress notification, got %v", first)
	}
	if params := first["params"].(map[string]interface{}); params["fileName"] != "a.png" || params["runId"] != "r1" {
		t.Errorf("progress params: %v", params)
	}

	write(`{"jsonrpc":"2.0","id":"cancel","method":"tools/call","params":{"name":"image_export_cancel","arguments":{"run_id":"r1"}}}`)

	var cancelled cancelResult
	decodeToolText(t, read(), &cancelled)
	if cancelled.Count != 1 || cancelled.Cancelled[0] != "r1" {
		t.Errorf("cancel result: %+v", cancelled)
	}

	close(release)

	final := read()
	if final["id"] != "batch" {
		t.Fatalf("expected batch response, got %v", final)
	}
	var summary batchSummaryJSON
	decodeToolText(t, final, &summary)

	if summary.Exported != 1 || !summary.Cancelled {
		t.Errorf("summary: %+v", summary)
	}
	if len(summary.Errors) != 1 || summary.Errors[0] != "Export cancelled." {
		t.Errorf("errors: %v", summary.Errors)
	}
	if _, err := os.Stat(filepath.Join(out, "b.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("b.png should not have been exported: %v", err)
	}

	inW.Close()
	if err := <-done; err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}
