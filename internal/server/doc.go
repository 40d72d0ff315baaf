// Package server implements the MCP (Model Context Protocol) server for the
// segmentation tools.
//
// This package provides a JSON-RPC 2.0 server that exposes image-segmentation
// capabilities through the MCP protocol. It's designed to work with Claude
// and other MCP-compatible clients.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// The server provides 13 tools organized into categories:
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_crop: Extract rectangular region
//
// Analysis:
//   - image_histogram: Luminance (and optional RGB) histograms
//   - image_threshold: Manual or Otsu binarization
//
// Segmentation Primitives:
//   - image_edge_detect: Canny edge detection
//   - image_sobel: Gradient magnitude / elevation map
//   - image_fill_holes: Morphological hole filling
//   - image_watershed: Marker-based watershed transform
//   - image_label: Connected-component labeling with region properties
//
// Pipelines:
//   - image_segment_edges: Canny -> fill holes -> remove small -> label
//   - image_segment_watershed: markers -> elevation -> watershed -> label
//   - image_segment_overlay: visualization only (labels or boundaries)
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images, keyed by path
// and reused across tool calls for the lifetime of the process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
package server
