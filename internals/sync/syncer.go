package sync

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wib2/futsal-record/internals/state"
	"github.com/wib2/futsal-record/internals/store"
	"github.com/wib2/futsal-record/pkg/kvstore"
)

// SaveDebounce is how long after the last accepted mutation the remote save
// fires. Keystroke-level edits collapse into one write.
const SaveDebounce = 200 * time.Millisecond

// Syncer owns the in-memory snapshot. Mutations go through Apply, which
// swaps in the new value, mirrors it locally and schedules a debounced
// remote save stamped with this process's client id. Remote envelopes come
// in through HandleRemote with echo suppression. Advisory only: concurrent
// writers resolve by last-write-wins overwrite, no retries anywhere.
type Syncer struct {
	mu       sync.Mutex
	cur      state.PersistShape
	remote   store.Store
	mirror   *store.Mirror
	clientID string
	debounce time.Duration
	timer    *time.Timer
	lastRev  int64
	onChange func(state.PersistShape)
}

// New builds a syncer around an initial snapshot. remote and mirror may be
// nil; the syncer then just serves memory.
func New(initial state.PersistShape, remote store.Store, mirror *store.Mirror, clientID string, debounce time.Duration) *Syncer {
	if debounce <= 0 {
		debounce = SaveDebounce
	}
	return &Syncer{
		cur:      state.Normalize(initial),
		remote:   remote,
		mirror:   mirror,
		clientID: clientID,
		debounce: debounce,
	}
}

// OnChange registers the single listener notified with every new snapshot,
// local or remote. Used for the websocket broadcast.
func (s *Syncer) OnChange(fn func(state.PersistShape)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Syncer) ClientID() string { return s.clientID }

// Snapshot returns a copy of the current state.
func (s *Syncer) Snapshot() state.PersistShape {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Clone()
}

// Apply runs a mutation against the current snapshot. On success the result
// becomes current, is mirrored, and a debounced remote save is scheduled.
func (s *Syncer) Apply(mut func(state.PersistShape) (state.PersistShape, error)) (state.PersistShape, error) {
	s.mu.Lock()
	next, err := mut(s.cur)
	if err != nil {
		s.mu.Unlock()
		return state.PersistShape{}, err
	}
	s.cur = next
	s.mirrorLocked()
	if s.remote != nil {
		if s.timer != nil {
			s.timer.Stop()
		}
		s.timer = time.AfterFunc(s.debounce, s.flush)
	}
	fn, snap := s.onChange, s.cur.Clone()
	s.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
	return snap, nil
}

// flush pushes the current snapshot to the remote store. Fire-and-forget:
// a failure is logged and the write is simply lost until the next edit.
func (s *Syncer) flush() {
	s.mu.Lock()
	rev := time.Now().UnixMilli()
	if rev <= s.lastRev {
		rev = s.lastRev + 1
	}
	s.lastRev = rev
	env := store.Envelope{State: s.cur.Clone(), ClientID: s.clientID, Rev: rev}
	remote := s.remote
	s.mu.Unlock()

	if remote == nil {
		return
	}
	if err := remote.Save(context.Background(), env); err != nil {
		log.Printf("remote save failed: %v", err)
	}
}

// Start subscribes to remote change pushes. The returned function cancels
// the subscription.
func (s *Syncer) Start() (func(), error) {
	if s.remote == nil {
		return func() {}, nil
	}
	return s.remote.Subscribe(s.HandleRemote)
}

// HandleRemote installs a snapshot received from another writer. Our own
// recent writes echo back through the fanout; those are dropped so two open
// editors don't ping-pong the same document forever.
func (s *Syncer) HandleRemote(env store.Envelope) {
	s.mu.Lock()
	if env.ClientID == s.clientID && env.Rev <= s.lastRev {
		s.mu.Unlock()
		return
	}
	s.cur = state.Normalize(env.State)
	if env.Rev > s.lastRev {
		s.lastRev = env.Rev
	}
	s.mirrorLocked()
	fn, snap := s.onChange, s.cur.Clone()
	s.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

func (s *Syncer) mirrorLocked() {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.Save(s.cur); err != nil {
		log.Printf("mirror save failed: %v", err)
	}
}

const clientIDKey = "futsal_client_id"

// LoadClientID returns this installation's stable client id, minting and
// persisting one on first run.
func LoadClientID(kv kvstore.KVStore) string {
	if kv != nil {
		if id, err := kv.Get(clientIDKey); err == nil && id != "" {
			return id
		}
	}
	id := uuid.NewString()
	if kv != nil {
		if err := kv.Set(clientIDKey, id); err != nil {
			log.Printf("could not persist client id: %v", err)
		}
	}
	return id
}
