// Package delivery defines the contract every transport (HTTP, worker, ...)
// fulfills so main can start them uniformly.
package delivery

import "context"

// Delivery is a serving endpoint managed by the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
