package gate

import (
	"errors"
	"testing"
)

// fakeKV is a map-backed stand-in for the Redis store.
type fakeKV struct {
	kv    map[string]string
	lists map[string][]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{kv: map[string]string{}, lists: map[string][]string{}}
}

func (f *fakeKV) Get(key string) (string, error) {
	v, ok := f.kv[key]
	if !ok {
		return "", errors.New("missing key")
	}
	return v, nil
}

func (f *fakeKV) Set(key string, value interface{}) error {
	f.kv[key] = value.(string)
	return nil
}

func (f *fakeKV) Delete(key string) error {
	delete(f.kv, key)
	delete(f.lists, key)
	return nil
}

func (f *fakeKV) RPush(key string, values ...interface{}) error {
	for _, v := range values {
		f.lists[key] = append(f.lists[key], v.(string))
	}
	return nil
}

func (f *fakeKV) LRange(key string, start, stop int64) ([]string, error) {
	return f.lists[key], nil
}

func (f *fakeKV) LRem(key string, count int64, value interface{}) error {
	out := f.lists[key][:0]
	removed := int64(0)
	for _, v := range f.lists[key] {
		if v == value.(string) && removed < count {
			removed++
			continue
		}
		out = append(out, v)
	}
	f.lists[key] = out
	return nil
}

func TestSetPinOnce(t *testing.T) {
	g := New(newFakeKV(), "test-secret")

	if g.HasPin() {
		t.Fatal("fresh gate reports a pin")
	}

	token, err := g.SetPin("0917")
	if err != nil {
		t.Fatalf("SetPin: %v", err)
	}
	if token == "" {
		t.Fatal("SetPin returned no editor token")
	}
	if !g.HasPin() {
		t.Fatal("pin not stored")
	}

	if _, err := g.SetPin("1234"); !errors.Is(err, ErrPinSet) {
		t.Fatalf("second SetPin error = %v, want ErrPinSet", err)
	}
	if _, err := New(newFakeKV(), "test-secret").SetPin(""); !errors.Is(err, ErrEmptyPin) {
		t.Fatalf("empty SetPin error = %v, want ErrEmptyPin", err)
	}
}

func TestUnlockAndValidate(t *testing.T) {
	g := New(newFakeKV(), "test-secret")
	if _, err := g.SetPin("0917"); err != nil {
		t.Fatalf("SetPin: %v", err)
	}

	if _, err := g.Unlock("0000"); !errors.Is(err, ErrPinWrong) {
		t.Fatalf("wrong pin error = %v, want ErrPinWrong", err)
	}

	token, err := g.Unlock("0917")
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if !g.Validate(token) {
		t.Fatal("freshly issued token does not validate")
	}
	if g.Validate("") || g.Validate("garbage") {
		t.Fatal("junk token validated")
	}
}

func TestLockRevokesToken(t *testing.T) {
	g := New(newFakeKV(), "test-secret")
	token, err := g.SetPin("0917")
	if err != nil {
		t.Fatalf("SetPin: %v", err)
	}

	if err := g.Lock(token); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if g.Validate(token) {
		t.Fatal("revoked token still validates")
	}

	// Other sessions' tokens survive a lock.
	t1, _ := g.Unlock("0917")
	t2, _ := g.Unlock("0917")
	if err := g.Lock(t1); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if g.Validate(t1) {
		t.Fatal("locked token still validates")
	}
	if !g.Validate(t2) {
		t.Fatal("unrelated token revoked")
	}
}

func TestResetPinRevokesEverything(t *testing.T) {
	g := New(newFakeKV(), "test-secret")
	t1, err := g.SetPin("0917")
	if err != nil {
		t.Fatalf("SetPin: %v", err)
	}

	if _, err := g.ResetPin("0000", "1234"); !errors.Is(err, ErrPinWrong) {
		t.Fatalf("wrong old pin error = %v, want ErrPinWrong", err)
	}
	if _, err := g.ResetPin("0917", ""); !errors.Is(err, ErrEmptyPin) {
		t.Fatalf("empty new pin error = %v, want ErrEmptyPin", err)
	}

	t2, err := g.ResetPin("0917", "1234")
	if err != nil {
		t.Fatalf("ResetPin: %v", err)
	}
	if g.Validate(t1) {
		t.Fatal("pre-reset token still validates")
	}
	if !g.Validate(t2) {
		t.Fatal("reset did not hand back a working token")
	}

	if _, err := g.Unlock("0917"); !errors.Is(err, ErrPinWrong) {
		t.Fatalf("old pin still unlocks: err = %v", err)
	}
	if _, err := g.Unlock("1234"); err != nil {
		t.Fatalf("new pin does not unlock: %v", err)
	}

	if _, err := New(newFakeKV(), "test-secret").ResetPin("0917", "1234"); !errors.Is(err, ErrPinNotSet) {
		t.Fatalf("reset without pin error = %v, want ErrPinNotSet", err)
	}
}

func TestUnlockWithoutPin(t *testing.T) {
	g := New(newFakeKV(), "test-secret")
	if _, err := g.Unlock("0917"); !errors.Is(err, ErrPinNotSet) {
		t.Fatalf("error = %v, want ErrPinNotSet", err)
	}
}

func TestHashPinStable(t *testing.T) {
	if HashPin("0917") != HashPin("0917") {
		t.Fatal("hash not deterministic")
	}
	if HashPin("0917") == HashPin("0918") {
		t.Fatal("distinct pins collide")
	}
	// The frontend stored hex SHA-256; the format must stay comparable.
	if got := len(HashPin("0917")); got != 64 {
		t.Fatalf("hash length = %d, want 64 hex chars", got)
	}
}
