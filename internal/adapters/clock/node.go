// Package clock provides the wall clock used by retries and schedules.
package clock

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
)

// NodeID is the unique identifier for the clock Graft node.
const NodeID graft.ID = "adapter.clock"

func init() {
	graft.Register(graft.Node[clockwork.Clock]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (clockwork.Clock, error) {
			return clockwork.NewRealClock(), nil
		},
	})
}
