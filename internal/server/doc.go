// Package server implements the MCP (Model Context Protocol) server for
// content-aware cropping.
//
// This package provides a JSON-RPC 2.0 server that exposes the crop search
// and its scoring heuristics through the MCP protocol, so that MCP clients
// can ask where an image should be cut for a given aspect ratio and inspect
// why.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Heuristics:
//   - image_sample_heuristics: Luma, saturation and skin likelihood at a pixel
//   - image_importance: Weight of a pixel relative to a crop
//   - image_importance_map: Importance weights rendered as an image
//
// Crop Search:
//   - image_score_crop: Score a caller-supplied crop
//   - image_find_crops: Ranked crops for an aspect ratio
//   - image_smart_crop: Best crop rendered at the target size
//
// Visualization:
//   - image_analysis_map: The skin/detail/saturation feature map
//   - image_crop_overlay: Best crops outlined on the image
//
// # Image Caching
//
// Images are cached by path and reused across tool calls. The cache size is
// bounded by the cache_size setting; the oldest image is evicted first.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg)
//	if err := srv.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
package server
