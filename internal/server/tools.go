package server

// Tool represents an MCP tool definition.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema fragment shared by every tool: the image to
// operate on.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// Marker schema fragments shared by the watershed tools.

func bgLevelProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Background marker cutoff 1-255; 0 selects the default 30",
		"default":     30,
	}
}

func fgLevelProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Foreground marker cutoff 1-255; 0 selects the default 150. Ignored when seeds are given",
		"default":     150,
	}
}

func seedsProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": "Explicit object seed points; each becomes its own basin, replacing the fg_level markers",
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"x": map[string]interface{}{"type": "integer"},
				"y": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"x", "y"},
		},
	}
}

// GetToolDefinitions returns all available tools.
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and color depth. Loading caches the image for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. Use this to zoom into segmented regions for closer inspection.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},

		// Analysis
		{
			Name:        "image_histogram",
			Description: "Compute the 256-bin luminance histogram of an image, with mean, median and peak. Read it to pick threshold levels and watershed marker cutoffs: separate peaks are the background and object populations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"channels": map[string]interface{}{
						"type":        "boolean",
						"description": "Also include per-channel RGB histograms. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_threshold",
			Description: "Binarize an image at a luminance level. Method 'manual' uses the given level; 'otsu' computes the level from the histogram. Returns the mask as base64 PNG plus the foreground fraction.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"method": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"manual", "otsu"},
						"description": "Threshold selection method. Default 'otsu'",
						"default":     "otsu",
					},
					"level": map[string]interface{}{
						"type":        "integer",
						"description": "Luminance cutoff 1-255 for method 'manual'; 0 selects the default 128",
						"default":     128,
					},
				},
				"required": []string{"path"},
			},
		},

		// Primitives
		{
			Name:        "image_edge_detect",
			Description: "Canny edge detection. Returns a binary edge image as base64 PNG with edges in white.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"threshold_low": map[string]interface{}{
						"type":        "integer",
						"description": "Hysteresis low threshold 1-255; 0 selects the default 50",
						"default":     50,
					},
					"threshold_high": map[string]interface{}{
						"type":        "integer",
						"description": "Hysteresis high threshold 1-255; 0 selects the default 150",
						"default":     150,
					},
					"blur_radius": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian prefilter radius in pixels; 0 selects the default 1.4",
						"default":     1.4,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sobel",
			Description: "Sobel gradient magnitude, normalized to full range, as base64 PNG. This is the elevation map the watershed transform floods.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"save_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to also write the elevation map to; format by extension (e.g. .png)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_fill_holes",
			Description: "Binarize an image and fill enclosed background holes in the foreground, optionally dropping small objects. The edge-based segmentation workflow uses this to turn closed contours into solid regions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"level": map[string]interface{}{
						"type":        "integer",
						"description": "Binarization luminance cutoff 1-255; 0 selects the default 128",
						"default":     128,
					},
					"min_area": map[string]interface{}{
						"type":        "integer",
						"description": "Drop filled objects smaller than this many pixels. Default 0 (keep all)",
						"default":     0,
					},
					"save_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to also write the filled mask to; format by extension (e.g. .png)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_morphology",
			Description: "Binarize an image and apply binary morphology: dilate grows the foreground, erode shrinks it, one 3x3 square structuring element pass per iteration.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"op": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"dilate", "erode"},
						"description": "Morphological operation to apply",
					},
					"iterations": map[string]interface{}{
						"type":        "integer",
						"description": "Number of passes; 0 selects the default 1",
						"default":     1,
					},
					"level": map[string]interface{}{
						"type":        "integer",
						"description": "Binarization luminance cutoff 1-255; 0 selects the default 128",
						"default":     128,
					},
				},
				"required": []string{"path", "op"},
			},
		},
		{
			Name:        "image_watershed",
			Description: "Marker-based watershed transform. Markers come from luminance cutoffs (pixels at or below bg_level seed the background basin, pixels at or above fg_level seed object basins) or from explicit seed points. Floods the Sobel elevation map and returns per-basin regions plus the watershed lines as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty(),
					"bg_level": bgLevelProperty(),
					"fg_level": fgLevelProperty(),
					"seeds":    seedsProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_label",
			Description: "Connected-component labeling (4-connectivity) of a binarized image. Returns per-region area, bounding box, centroid and mean intensity, sorted by area.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"method": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"manual", "otsu"},
						"description": "Binarization method. Default 'otsu'",
						"default":     "otsu",
					},
					"level": map[string]interface{}{
						"type":        "integer",
						"description": "Luminance cutoff 1-255 for method 'manual'; 0 selects the default 128",
						"default":     128,
					},
					"min_area": map[string]interface{}{
						"type":        "integer",
						"description": "Ignore components smaller than this many pixels. Default 1",
						"default":     1,
					},
				},
				"required": []string{"path"},
			},
		},

		// Pipelines
		{
			Name:        "image_segment_edges",
			Description: "Edge-based segmentation pipeline: Canny edges, fill holes, remove small objects, label. Works when object outlines are closed contours. Returns regions and a colorized label overlay as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"threshold_low": map[string]interface{}{
						"type":        "integer",
						"description": "Canny low threshold 1-255; 0 selects the default 50",
						"default":     50,
					},
					"threshold_high": map[string]interface{}{
						"type":        "integer",
						"description": "Canny high threshold 1-255; 0 selects the default 150",
						"default":     150,
					},
					"min_area": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum object area in pixels. Default 64",
						"default":     64,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_segment_watershed",
			Description: "Region-based segmentation pipeline: luminance-derived or seeded markers, Sobel elevation, watershed flood, label. Assigns every pixel to a basin, so it handles objects edge detection cannot close. Returns regions (background basin flagged) and a colorized label overlay as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty(),
					"bg_level": bgLevelProperty(),
					"fg_level": fgLevelProperty(),
					"seeds":    seedsProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_segment_overlay",
			Description: "Run a segmentation pipeline and return only the visualization: either a colorized label overlay or the boundary lines drawn over the source image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"pipeline": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"edges", "watershed"},
						"description": "Which pipeline to run. Default 'watershed'",
						"default":     "watershed",
					},
					"style": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"labels", "boundaries"},
						"description": "Colorized regions or boundary lines. Default 'labels'. 'boundaries' requires the watershed pipeline",
						"default":     "labels",
					},
					"alpha": map[string]interface{}{
						"type":        "number",
						"description": "Label tint strength in (0, 1]; 0 selects the default 0.5",
						"default":     0.5,
					},
					"boundary_color": map[string]interface{}{
						"type":        "string",
						"description": "Hex color for boundary lines, e.g. #FF0000. Default red",
						"default":     "#FF0000",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}
