package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/stonebell/segment-mcp/internal/imaging"
	"github.com/stonebell/segment-mcp/internal/segmentation"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_histogram").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified
// tool. The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Debug().Str("tool", params.Name).Err(err).Msg("tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
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

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads the image from cache
//  4. Calls the appropriate imaging/segmentation function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_crop":
		return s.handleImageCrop(args)

	// Analysis
	case "image_histogram":
		return s.handleImageHistogram(args)
	case "image_threshold":
		return s.handleImageThreshold(args)

	// Primitives
	case "image_edge_detect":
		return s.handleImageEdgeDetect(args)
	case "image_sobel":
		return s.handleImageSobel(args)
	case "image_fill_holes":
		return s.handleImageFillHoles(args)
	case "image_morphology":
		return s.handleImageMorphology(args)
	case "image_watershed":
		return s.handleImageWatershed(args)
	case "image_label":
		return s.handleImageLabel(args)

	// Pipelines
	case "image_segment_edges":
		return s.handleImageSegmentEdges(args)
	case "image_segment_watershed":
		return s.handleImageSegmentWatershed(args)
	case "image_segment_overlay":
		return s.handleImageSegmentOverlay(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

// === Analysis Handlers ===

type imageHistogramArgs struct {
	Path     string `json:"path"`
	Channels bool   `json:"channels"`
}

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imageHistogramArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Histogram(img, a.Channels)
}

type imageThresholdArgs struct {
	Path   string `json:"path"`
	Method string `json:"method"`
	Level  int    `json:"level"`
}

func (s *Server) handleImageThreshold(args json.RawMessage) (interface{}, error) {
	var a imageThresholdArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	result, _, err := binarize(img, a.Method, a.Level)
	return result, err
}

// binarize applies the shared method/level argument convention: method
// defaults to "otsu", level to 128 for "manual".
func binarize(img image.Image, method string, level int) (*imaging.ThresholdResult, *segmentation.Mask, error) {
	switch method {
	case "", "otsu":
		return imaging.OtsuThreshold(img)
	case "manual":
		if level == 0 {
			level = 128
		}
		return imaging.Threshold(img, level)
	default:
		return nil, nil, fmt.Errorf("unknown threshold method: %s", method)
	}
}

// === Primitive Handlers ===

type imageEdgeDetectArgs struct {
	Path          string  `json:"path"`
	ThresholdLow  int     `json:"threshold_low"`
	ThresholdHigh int     `json:"threshold_high"`
	BlurRadius    float64 `json:"blur_radius"`
}

// edgeDetectResult is the wire shape of image_edge_detect.
type edgeDetectResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	EdgePixels  int    `json:"edge_pixels"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleImageEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a imageEdgeDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts := segmentation.DefaultCannyOptions()
	if a.ThresholdLow != 0 {
		opts.ThresholdLow = a.ThresholdLow
	}
	if a.ThresholdHigh != 0 {
		opts.ThresholdHigh = a.ThresholdHigh
	}
	if a.BlurRadius != 0 {
		opts.BlurRadius = a.BlurRadius
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	edges, err := segmentation.Canny(segmentation.FromImage(img), opts)
	if err != nil {
		return nil, err
	}

	encoded, err := imaging.EncodeBase64PNG(edges.ToGray())
	if err != nil {
		return nil, err
	}
	return &edgeDetectResult{
		Width:       edges.Width,
		Height:      edges.Height,
		EdgePixels:  edges.Count(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

type imageSobelArgs struct {
	Path     string `json:"path"`
	SavePath string `json:"save_path"`
}

// sobelResult is the wire shape of image_sobel.
type sobelResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	SavedPath   string `json:"saved_path,omitempty"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleImageSobel(args json.RawMessage) (interface{}, error) {
	var a imageSobelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	elevation := segmentation.SobelMagnitude(segmentation.FromImage(img))
	if a.SavePath != "" {
		if err := imaging.Save(elevation.ToGray(), a.SavePath); err != nil {
			return nil, err
		}
	}

	encoded, err := imaging.EncodeBase64PNG(elevation.ToGray())
	if err != nil {
		return nil, err
	}
	return &sobelResult{
		Width:       elevation.Width,
		Height:      elevation.Height,
		SavedPath:   a.SavePath,
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

type imageFillHolesArgs struct {
	Path     string `json:"path"`
	Level    int    `json:"level"`
	MinArea  int    `json:"min_area"`
	SavePath string `json:"save_path"`
}

// fillHolesResult is the wire shape of image_fill_holes.
type fillHolesResult struct {
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	Level            int    `json:"level"`
	ForegroundBefore int    `json:"foreground_before"`
	ForegroundAfter  int    `json:"foreground_after"`
	SavedPath        string `json:"saved_path,omitempty"`
	ImageBase64      string `json:"image_base64"`
	MimeType         string `json:"mime_type"`
}

func (s *Server) handleImageFillHoles(args json.RawMessage) (interface{}, error) {
	var a imageFillHolesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Level == 0 {
		a.Level = 128
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	_, mask, err := imaging.Threshold(img, a.Level)
	if err != nil {
		return nil, err
	}

	before := mask.Count()
	filled := segmentation.FillHoles(mask)
	if a.MinArea > 1 {
		filled = segmentation.RemoveSmallObjects(filled, a.MinArea)
	}

	if a.SavePath != "" {
		if err := imaging.Save(filled.ToGray(), a.SavePath); err != nil {
			return nil, err
		}
	}

	encoded, err := imaging.EncodeBase64PNG(filled.ToGray())
	if err != nil {
		return nil, err
	}
	return &fillHolesResult{
		Width:            filled.Width,
		Height:           filled.Height,
		Level:            a.Level,
		ForegroundBefore: before,
		ForegroundAfter:  filled.Count(),
		SavedPath:        a.SavePath,
		ImageBase64:      encoded,
		MimeType:         "image/png",
	}, nil
}

type imageMorphologyArgs struct {
	Path       string `json:"path"`
	Op         string `json:"op"`
	Iterations int    `json:"iterations"`
	Level      int    `json:"level"`
}

// morphologyResult is the wire shape of image_morphology.
type morphologyResult struct {
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	Op               string `json:"op"`
	Iterations       int    `json:"iterations"`
	Level            int    `json:"level"`
	ForegroundBefore int    `json:"foreground_before"`
	ForegroundAfter  int    `json:"foreground_after"`
	ImageBase64      string `json:"image_base64"`
	MimeType         string `json:"mime_type"`
}

func (s *Server) handleImageMorphology(args json.RawMessage) (interface{}, error) {
	var a imageMorphologyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Iterations == 0 {
		a.Iterations = 1
	}
	if a.Level == 0 {
		a.Level = 128
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	_, mask, err := imaging.Threshold(img, a.Level)
	if err != nil {
		return nil, err
	}

	before := mask.Count()
	var out *segmentation.Mask
	switch a.Op {
	case "dilate":
		out = segmentation.Dilate(mask, a.Iterations)
	case "erode":
		out = segmentation.Erode(mask, a.Iterations)
	default:
		return nil, fmt.Errorf("unknown morphology op: %q (want dilate or erode)", a.Op)
	}

	encoded, err := imaging.EncodeBase64PNG(out.ToGray())
	if err != nil {
		return nil, err
	}
	return &morphologyResult{
		Width:            out.Width,
		Height:           out.Height,
		Op:               a.Op,
		Iterations:       a.Iterations,
		Level:            a.Level,
		ForegroundBefore: before,
		ForegroundAfter:  out.Count(),
		ImageBase64:      encoded,
		MimeType:         "image/png",
	}, nil
}

type imageWatershedArgs struct {
	Path    string              `json:"path"`
	BgLevel int                 `json:"bg_level"`
	FgLevel int                 `json:"fg_level"`
	Seeds   []segmentation.Seed `json:"seeds"`
}

// watershedResult is the wire shape of image_watershed: regions plus the
// watershed lines drawn over the source.
type watershedResult struct {
	RegionCount    int                   `json:"region_count"`
	BoundaryPixels int                   `json:"boundary_pixels"`
	Regions        []segmentation.Region `json:"regions"`
	ImageBase64    string                `json:"image_base64"`
	MimeType       string                `json:"mime_type"`
}

func (a *imageWatershedArgs) options() segmentation.WatershedSegmentOptions {
	opts := segmentation.DefaultWatershedSegmentOptions()
	if a.BgLevel != 0 {
		opts.BackgroundLevel = a.BgLevel
	}
	if a.FgLevel != 0 {
		opts.ForegroundLevel = a.FgLevel
	}
	opts.Seeds = a.Seeds
	return opts
}

func (s *Server) handleImageWatershed(args json.RawMessage) (interface{}, error) {
	var a imageWatershedArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	result, err := segmentation.SegmentWatershed(segmentation.FromImage(img), a.options())
	if err != nil {
		return nil, err
	}

	overlay, err := imaging.RenderBoundaryOverlay(img, result.Boundaries, "#FF0000")
	if err != nil {
		return nil, err
	}
	return &watershedResult{
		RegionCount:    len(result.Regions),
		BoundaryPixels: result.Boundaries.Count(),
		Regions:        result.Regions,
		ImageBase64:    overlay.ImageBase64,
		MimeType:       overlay.MimeType,
	}, nil
}

type imageLabelArgs struct {
	Path    string `json:"path"`
	Method  string `json:"method"`
	Level   int    `json:"level"`
	MinArea int    `json:"min_area"`
}

// labelResult is the wire shape of image_label.
type labelResult struct {
	Count   int                   `json:"count"`
	Level   int                   `json:"level"`
	Method  string                `json:"method"`
	Regions []segmentation.Region `json:"regions"`
}

func (s *Server) handleImageLabel(args json.RawMessage) (interface{}, error) {
	var a imageLabelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	thresholded, mask, err := binarize(img, a.Method, a.Level)
	if err != nil {
		return nil, err
	}
	if a.MinArea > 1 {
		mask = segmentation.RemoveSmallObjects(mask, a.MinArea)
	}

	labels, count := segmentation.Label(mask)
	regions := segmentation.MeasureRegions(labels, segmentation.FromImage(img))
	return &labelResult{
		Count:   count,
		Level:   thresholded.Level,
		Method:  thresholded.Method,
		Regions: regions,
	}, nil
}

// === Pipeline Handlers ===

type imageSegmentEdgesArgs struct {
	Path          string `json:"path"`
	ThresholdLow  int    `json:"threshold_low"`
	ThresholdHigh int    `json:"threshold_high"`
	MinArea       int    `json:"min_area"`
}

// segmentResult is the wire shape shared by the two pipeline tools.
type segmentResult struct {
	RegionCount    int                   `json:"region_count"`
	Regions        []segmentation.Region `json:"regions"`
	BoundaryPixels int                   `json:"boundary_pixels,omitempty"`
	ImageBase64    string                `json:"image_base64"`
	MimeType       string                `json:"mime_type"`
}

func (a *imageSegmentEdgesArgs) options() segmentation.EdgeSegmentOptions {
	opts := segmentation.DefaultEdgeSegmentOptions()
	if a.ThresholdLow != 0 {
		opts.Canny.ThresholdLow = a.ThresholdLow
	}
	if a.ThresholdHigh != 0 {
		opts.Canny.ThresholdHigh = a.ThresholdHigh
	}
	if a.MinArea != 0 {
		opts.MinArea = a.MinArea
	}
	return opts
}

func (s *Server) handleImageSegmentEdges(args json.RawMessage) (interface{}, error) {
	var a imageSegmentEdgesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	result, err := segmentation.SegmentEdges(segmentation.FromImage(img), a.options())
	if err != nil {
		return nil, err
	}

	overlay, err := imaging.RenderLabelOverlay(img, result.Labels, 0.5)
	if err != nil {
		return nil, err
	}
	return &segmentResult{
		RegionCount: len(result.Regions),
		Regions:     result.Regions,
		ImageBase64: overlay.ImageBase64,
		MimeType:    overlay.MimeType,
	}, nil
}

func (s *Server) handleImageSegmentWatershed(args json.RawMessage) (interface{}, error) {
	var a imageWatershedArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	result, err := segmentation.SegmentWatershed(segmentation.FromImage(img), a.options())
	if err != nil {
		return nil, err
	}

	overlay, err := imaging.RenderLabelOverlay(img, result.Labels, 0.5)
	if err != nil {
		return nil, err
	}
	return &segmentResult{
		RegionCount:    len(result.Regions),
		Regions:        result.Regions,
		BoundaryPixels: result.Boundaries.Count(),
		ImageBase64:    overlay.ImageBase64,
		MimeType:       overlay.MimeType,
	}, nil
}

type imageSegmentOverlayArgs struct {
	Path          string  `json:"path"`
	Pipeline      string  `json:"pipeline"`
	Style         string  `json:"style"`
	Alpha         float64 `json:"alpha"`
	BoundaryColor string  `json:"boundary_color"`
}

func (s *Server) handleImageSegmentOverlay(args json.RawMessage) (interface{}, error) {
	var a imageSegmentOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Pipeline == "" {
		a.Pipeline = "watershed"
	}
	if a.Style == "" {
		a.Style = "labels"
	}
	if a.Alpha == 0 {
		a.Alpha = 0.5
	}
	if a.BoundaryColor == "" {
		a.BoundaryColor = "#FF0000"
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	src := segmentation.FromImage(img)

	switch a.Pipeline {
	case "edges":
		switch a.Style {
		case "labels":
		case "boundaries":
			return nil, fmt.Errorf("style 'boundaries' requires the watershed pipeline")
		default:
			return nil, fmt.Errorf("unknown overlay style: %s", a.Style)
		}
		result, err := segmentation.SegmentEdges(src, segmentation.DefaultEdgeSegmentOptions())
		if err != nil {
			return nil, err
		}
		return imaging.RenderLabelOverlay(img, result.Labels, a.Alpha)

	case "watershed":
		result, err := segmentation.SegmentWatershed(src, segmentation.DefaultWatershedSegmentOptions())
		if err != nil {
			return nil, err
		}
		switch a.Style {
		case "labels":
			return imaging.RenderLabelOverlay(img, result.Labels, a.Alpha)
		case "boundaries":
			return imaging.RenderBoundaryOverlay(img, result.Boundaries, a.BoundaryColor)
		default:
			return nil, fmt.Errorf("unknown overlay style: %s", a.Style)
		}

	default:
		return nil, fmt.Errorf("unknown pipeline: %s", a.Pipeline)
	}
}
