// Package delivery defines the transports the service exposes.
package delivery

import "context"

// Delivery is a transport started by the application once the container is built.
type Delivery interface {
	Serve(ctx context.Context) error
}
