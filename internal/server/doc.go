// Package server implements the MCP (Model Context Protocol) server for the
// crop and export tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses and notifications on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Inspection:
//   - image_list: Supported images in a folder
//   - image_info: Dimensions and format of one image
//   - image_preview: In-memory transform returned as base64 PNG
//
// Export:
//   - image_export_single: One image to one PNG
//   - image_export_batch: A folder to an output folder
//   - image_export_cancel: Cancel a running batch
//
// # Batch Runs
//
// image_export_batch does not answer immediately. The run executes on its own
// goroutine with its own context while the server keeps reading requests, so
// image_export_cancel can reach it. Each image start is announced with a
// notifications/export_progress notification carrying runId, currentIndex,
// total and fileName. When the run ends the original request is answered
// with the summary. All output goes through one locked encoder.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Per-image batch failures are not errors; they are listed in the summary.
package server
