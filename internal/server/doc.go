// Package server implements the MCP (Model Context Protocol) server for foot
// shape analysis.
//
// This package provides a JSON-RPC 2.0 server that exposes the footshape
// engine through the MCP protocol, so an assistant can classify a foot photo,
// an external mask or a set of hand-placed landmarks and explain the football
// boot advice that follows.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - notifications/initialized: Client acknowledgment (no response)
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - image_load: Load image and get metadata
//
// Foot Analysis:
//   - foot_analyze_image: Threshold a photo and classify the foot
//   - foot_analyze_mask: Classify an external alpha mask
//   - foot_analyze_landmarks: Classify six labelled points
//
// Debug Helpers:
//   - foot_overlay: Draw box, slices, centroid and landmarks
//   - foot_crop: Extract the padded foot region
//   - image_sample_color: Color and brightness at a pixel
//
// # Image Caching
//
// Decoded images are cached by path. An entry is reused only while the file's
// modification time and size are unchanged, so a recapture saved over the same
// path is picked up on the next call. Capture scaling and blur are applied per
// call.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000 and data {"kind": ..., "message": ...}, where kind is
// detection_failure, incomplete_landmarks or invalid_input.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv, err := server.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
