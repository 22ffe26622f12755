// Package delivery defines the contract every transport-facing server
// (HTTP API, Pub/Sub push worker) fulfills so binaries can start them
// uniformly.
package delivery

import "context"

// Delivery is a long-running server started by the binary's fx invoke.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
