// Package api provides the HTTP REST API and WebSocket server for
// WardCall Core.
//
// It exposes the call intake and closure routes the bedside devices
// call, the nurse roster management routes, and the WebSocket channel
// the ward dashboards subscribe to for real-time call events.
//
// The server follows the same lifecycle pattern as the other
// infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple
// goroutines.
package api
