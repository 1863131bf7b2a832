package generator

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

// RandomSource supplies random bytes. Implementations must be safe for
// concurrent use; the engine shares one source across all schemes.
type RandomSource interface {
	io.Reader
}

// Clock supplies the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemRandom is the process CSPRNG.
var SystemRandom RandomSource = rand.Reader

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the host wall clock.
var SystemClock Clock = systemClock{}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Offset between the Gregorian epoch (1582-10-15) and the Unix epoch in
// 100-nanosecond ticks.
const gregorianOffset = 122192928000000000

// gregorianTicks converts t to 100ns ticks since 1582-10-15.
func gregorianTicks(t time.Time) uint64 {
	return uint64(t.UnixNano()/100) + gregorianOffset
}

func readRandom(r RandomSource, p []byte) error {
	if _, err := io.ReadFull(r, p); err != nil {
		return fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	return nil
}

// randomBelow returns a uniform value in [0, n) using rejection sampling.
func randomBelow(r RandomSource, n uint32) (uint32, error) {
	limit := (1<<32 - 1) - ((1<<32 - 1) % n)
	var buf [4]byte
	for {
		if err := readRandom(r, buf[:]); err != nil {
			return 0, err
		}
		v := binary.BigEndian.Uint32(buf[:])
		if v < limit {
			return v % n, nil
		}
	}
}
