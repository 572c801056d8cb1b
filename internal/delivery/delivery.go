// Package delivery holds the process entry points that accept traffic.
package delivery

import "context"

// Delivery is a server started by main and stopped through the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
