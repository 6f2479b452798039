package store

import (
	"context"

	"github.com/wib2/futsal-record/internals/state"
)

// Envelope wraps the snapshot with the writer's identity and a revision
// stamp so receivers can drop echoes of their own writes. Rev is a
// monotonically increasing wall-clock value; last writer wins.
type Envelope struct {
	State    state.PersistShape `json:"state"`
	ClientID string             `json:"client_id,omitempty"`
	Rev      int64              `json:"rev,omitempty"`
}

// Store is the remote persistence boundary: one opaque document, upserted
// wholesale, with push notifications for other writers' saves.
type Store interface {
	Load(ctx context.Context) (*Envelope, error)
	Save(ctx context.Context, env Envelope) error
	Subscribe(fn func(Envelope)) (func(), error)
}
