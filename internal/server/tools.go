package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func integerProp(description string, def interface{}) map[string]interface{} {
	p := map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"description": description,
	}
	if def != nil {
		p["default"] = def
	}
	return p
}

// transformProperties are shared by the preview and export tools.
func transformProperties() map[string]interface{} {
	return map[string]interface{}{
		"crop": map[string]interface{}{
			"type":        "object",
			"description": "Crop rectangle in source pixels; origin top-left, must lie inside the image",
			"properties": map[string]interface{}{
				"x": integerProp("Left edge", nil),
				"y": integerProp("Top edge", nil),
				"w": integerProp("Width, greater than zero", nil),
				"h": integerProp("Height, greater than zero", nil),
			},
			"required": []string{"x", "y", "w", "h"},
		},
		"shape": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"rectangular", "rounded"},
			"description": "Output shape. Default rectangular",
			"default":     "rectangular",
		},
		"radius_px": integerProp("Corner radius in crop pixels, clamped to half the inner size (rounded only)", 18),
		"inset_px":  integerProp("Margin between the crop edge and the rounded region (rounded only)", 0),
		"target_w":  integerProp("Output width in pixels", 1600),
		"target_h":  integerProp("Output height in pixels", 1200),
		"transparent_png": map[string]interface{}{
			"type":        "boolean",
			"description": "Fill outside the rounded region with transparency instead of opaque white",
			"default":     true,
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Inspection
		{
			Name:        "image_list",
			Description: "List the supported images (png, jpg, jpeg, webp) directly inside a folder, sorted by name.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProp("Absolute path to the folder"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_info",
			Description: "Load an image file and return its dimensions, format and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProp("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_preview",
			Description: "Crop, optionally round and resize an image in memory and return the result as base64-encoded PNG without writing any file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(transformProperties(), map[string]interface{}{
					"input": stringProp("Absolute path to the source image"),
				}),
				"required": []string{"input", "crop"},
			},
		},

		// Export
		{
			Name:        "image_export_single",
			Description: "Crop, optionally round and resize one image and write it as PNG. Missing output folders are created and existing files are overwritten.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(transformProperties(), map[string]interface{}{
					"input":  stringProp("Absolute path to the source image"),
					"output": stringProp("Absolute path of the PNG to write"),
				}),
				"required": []string{"input", "output", "crop"},
			},
		},
		{
			Name:        "image_export_batch",
			Description: "Apply one crop and shape to every supported image in a folder and write PNGs to an output folder. Sends notifications/export_progress as each image starts and responds with a summary when the run ends. Images the crop does not fit are skipped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(transformProperties(), map[string]interface{}{
					"input":  stringProp("Absolute path to the source folder"),
					"output": stringProp("Absolute path to the output folder"),
					"filename_mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"identity", "cropped-suffix"},
						"description": "identity keeps the source name, cropped-suffix appends _cropped. Default identity",
						"default":     "identity",
					},
					"run_id": stringProp("Optional identifier used by progress notifications and image_export_cancel"),
				}),
				"required": []string{"input", "output", "crop"},
			},
		},
		{
			Name:        "image_export_cancel",
			Description: "Request cancellation of a running batch export. The image in progress finishes; no further images start.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"run_id": stringProp("Run to cancel. Omit to cancel every active run"),
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
