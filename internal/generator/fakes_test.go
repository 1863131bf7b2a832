package generator_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/weiawesome/wes-io-live/idgen/internal/generator"
)

// countingReader yields 0, 1, 2, ... as random bytes.
type countingReader struct {
	mu   sync.Mutex
	next byte
}

func (r *countingReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range p {
		p[i] = r.next
		r.next++
	}
	return len(p), nil
}

// switchReader delegates to countingReader until broken is set.
type switchReader struct {
	countingReader
	broken atomic.Bool
}

func (r *switchReader) Read(p []byte) (int, error) {
	if r.broken.Load() {
		return 0, errors.New("entropy unavailable")
	}
	return r.countingReader.Read(p)
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

var (
	testNode = generator.StaticIdentity{
		Node:    [6]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06},
		Process: [5]byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee},
		Print:   "ab12",
	}
	testTime = time.Date(2024, time.March, 14, 15, 9, 26, 535_000_000, time.UTC)
)
