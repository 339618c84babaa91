package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/ironsheep/image-crop-mcp/internal/config"
	"github.com/ironsheep/image-crop-mcp/internal/export"
	"github.com/ironsheep/image-crop-mcp/internal/imaging"
)

// ServerName and ServerVersion are reported during the initialize handshake.
const (
	ServerName    = "image-crop-mcp"
	ServerVersion = "0.1.0"
)

// Server handles MCP protocol communication
type Server struct {
	cache    *imaging.ImageCache
	exporter *export.Exporter
	debug    bool

	in io.Reader

	// outMu serializes responses and notifications written by batch runs.
	outMu sync.Mutex
	out   *json.Encoder

	runs *runRegistry
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MCPNotification represents an outgoing notification (no ID)
type MCPNotification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// New creates a server on stdin and stdout.
func New() *Server {
	return NewWithIO(os.Stdin, os.Stdout)
}

// NewWithIO creates a server that reads requests from in and writes
// responses and notifications to out.
func NewWithIO(in io.Reader, out io.Writer) *Server {
	return &Server{
		cache:    imaging.NewImageCache(),
		exporter: export.New(),
		debug:    config.LoadSettings().Debug(),
		in:       in,
		out:      json.NewEncoder(out),
		runs:     newRunRegistry(),
	}
}

// Run reads requests until the input is exhausted, then waits for batch runs
// still in flight. Cancelling ctx cancels every active batch run.
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		if resp := s.handleRequest(ctx, &req); resp != nil {
			s.send(resp)
		}
	}

	s.runs.wait()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// send writes one message. It is safe for concurrent use.
func (s *Server) send(v interface{}) {
	s.outMu.Lock()
	defer s.outMu.Unlock()

	if err := s.out.Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func (s *Server) notify(method string, params interface{}) {
	s.send(&MCPNotification{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
	})
}

// handleRequest routes requests to appropriate handlers. A nil response means
// nothing is sent now, either because the method is a notification or because
// a batch run will answer later.
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    ServerName,
				"version": ServerVersion,
			},
		},
	}
}
