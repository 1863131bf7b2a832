package generator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
)

// ulidState keeps the last millisecond and its entropy so ids minted in the
// same millisecond increment the random part by one instead of redrawing.
type ulidState struct {
	mu      sync.Mutex
	lastMs  uint64
	entropy *ulid.MonotonicEntropy
}

func newULIDState(r RandomSource) *ulidState {
	return &ulidState{entropy: ulid.Monotonic(r, 1)}
}

func (e *Engine) generateULID() (ID, error) {
	s := e.ulid
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := ulid.Timestamp(e.clock.Now())
	if ms < s.lastMs {
		// Keep lexicographic order when the clock steps back.
		ms = s.lastMs
	}

	id, err := ulid.New(ms, s.entropy)
	if errors.Is(err, ulid.ErrMonotonicOverflow) {
		// 80 bits exhausted within one millisecond: borrow the next one.
		ms++
		id, err = ulid.New(ms, s.entropy)
	}
	if err != nil {
		return ID{}, fmt.Errorf("failed to generate ULID: %w", err)
	}
	s.lastMs = ms

	raw := make([]byte, 16)
	copy(raw, id[:])
	return ID{Type: TypeULID, Raw: raw, Canonical: id.String()}, nil
}
