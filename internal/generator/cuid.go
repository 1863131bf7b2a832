package generator

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

const (
	cuidBlockSize = 4
	// cuidDiscrete is the number of values one base36 block can hold.
	cuidDiscrete = 36 * 36 * 36 * 36
)

// cuidState owns the CUID v1 session counter.
type cuidState struct {
	counter atomic.Uint64
}

func newCUIDState() *cuidState { return &cuidState{} }

func (s *cuidState) next() uint64 {
	return (s.counter.Add(1) - 1) % cuidDiscrete
}

func (e *Engine) generateCUID(spec Spec) (ID, error) {
	switch spec.Version() {
	case 1:
		return e.generateCUID1()
	case 0, 2:
		return e.generateCUID2(spec)
	}
	return ID{}, fmt.Errorf("%w: cuid version %d", ErrUnsupportedType, spec.Version())
}

// generateCUID1 emits the reference cuid layout: the letter c, the base36
// millisecond timestamp, a 4-digit counter block, the 4-digit host
// fingerprint and two 4-digit random blocks. The timestamp is not padded or
// truncated, so ids grow to 26 characters once it needs a ninth digit.
func (e *Engine) generateCUID1() (ID, error) {
	var b strings.Builder
	b.Grow(25)
	b.WriteByte('c')
	b.WriteString(strconv.FormatInt(e.clock.Now().UnixMilli(), 36))
	b.WriteString(padBase36(e.cuid.next(), cuidBlockSize))
	b.WriteString(padFingerprint(e.node.Fingerprint()))
	for i := 0; i < 2; i++ {
		n, err := randomBelow(e.random, cuidDiscrete)
		if err != nil {
			return ID{}, err
		}
		b.WriteString(padBase36(uint64(n), cuidBlockSize))
	}
	return ID{Type: TypeCUID, Version: 1, Canonical: b.String()}, nil
}

func padFingerprint(fp string) string {
	fp = strings.ToLower(fp)
	if len(fp) >= cuidBlockSize {
		return fp[len(fp)-cuidBlockSize:]
	}
	return strings.Repeat("0", cuidBlockSize-len(fp)) + fp
}
