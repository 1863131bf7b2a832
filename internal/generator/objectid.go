package generator

import (
	"encoding/binary"
	"encoding/hex"
	"sync/atomic"
)

const objectIDCounterMask = 1<<24 - 1

// objectIDState owns the process-wide ObjectID counter. Only the low 24 bits
// are used, so values repeat after 2^24 ids within the same second and
// session; callers needing more accept the collision risk.
type objectIDState struct {
	counter atomic.Uint32
}

func newObjectIDState(r RandomSource) (*objectIDState, error) {
	var b [4]byte
	if err := readRandom(r, b[1:]); err != nil {
		return nil, err
	}
	s := &objectIDState{}
	s.counter.Store(binary.BigEndian.Uint32(b[:]))
	return s, nil
}

func (s *objectIDState) next() uint32 {
	return s.counter.Add(1) & objectIDCounterMask
}

func (e *Engine) generateObjectID() (ID, error) {
	raw := make([]byte, 12)
	binary.BigEndian.PutUint32(raw[0:4], uint32(e.clock.Now().Unix()))
	process := e.node.ProcessUnique()
	copy(raw[4:9], process[:])

	n := e.objectID.next()
	if n == 0 {
		e.logger.Debug().Msg("objectid counter wrapped")
	}
	raw[9] = byte(n >> 16)
	raw[10] = byte(n >> 8)
	raw[11] = byte(n)

	return ID{Type: TypeObjectID, Raw: raw, Canonical: hex.EncodeToString(raw)}, nil
}
