package source

import (
	"context"

	"togglpace/internal/core/model"
)

// Source supplies the {today, historical} entry payload the trajectory
// pipeline consumes. The upstream either delivers a complete payload or an
// explicit error; the core never sees a partial one.
type Source interface {
	Payload(ctx context.Context) (model.Payload, error)
}
