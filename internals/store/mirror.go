package store

import (
	"encoding/json"

	"github.com/wib2/futsal-record/internals/state"
	"github.com/wib2/futsal-record/pkg/kvstore"
)

const mirrorKey = "futsal_state_snapshot"

// Mirror keeps a durable local copy of every accepted snapshot in the KV
// store, independent of remote availability. It is the fallback of record
// when Postgres is unreachable at boot.
type Mirror struct {
	KV kvstore.KVStore
}

func NewMirror(kv kvstore.KVStore) *Mirror {
	return &Mirror{KV: kv}
}

func (m *Mirror) Load() (*state.PersistShape, error) {
	// A missing key reads as no mirror, same as a corrupt one.
	raw, err := m.KV.Get(mirrorKey)
	if err != nil || raw == "" {
		return nil, nil
	}
	var s state.PersistShape
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		// Treat a corrupt mirror as absent.
		return nil, nil
	}
	return &s, nil
}

func (m *Mirror) Save(s state.PersistShape) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return m.KV.Set(mirrorKey, string(raw))
}
