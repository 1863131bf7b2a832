package generator

import (
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectIDCounterWraps(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	e.objectID.counter.Store(objectIDCounterMask - 1)
	id, err := e.generateObjectID()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xff, 0xff}, id.Raw[9:])

	id, err = e.generateObjectID()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x00}, id.Raw[9:])
}

func TestCUIDCounterWraps(t *testing.T) {
	s := newCUIDState()
	s.counter.Store(cuidDiscrete - 1)
	assert.Equal(t, uint64(cuidDiscrete-1), s.next())
	assert.Equal(t, uint64(0), s.next())
}

func TestSnowflakeState(t *testing.T) {
	s, err := newSnowflakeState(1, DefaultSnowflakeEpoch)
	require.NoError(t, err)

	ts, seq, regressed := s.next(1000)
	assert.Equal(t, int64(1000), ts)
	assert.Equal(t, int64(0), seq)
	assert.False(t, regressed)

	ts, seq, regressed = s.next(900)
	assert.Equal(t, int64(1000), ts)
	assert.Equal(t, int64(1), seq)
	assert.True(t, regressed)

	s.sequence = maxSnowflakeSequence
	ts, seq, regressed = s.next(1000)
	assert.Equal(t, int64(1001), ts)
	assert.Equal(t, int64(0), seq)
	assert.False(t, regressed)
}

func TestUUIDV1StateRegression(t *testing.T) {
	s, err := newUUIDV1State(rand.Reader)
	require.NoError(t, err)

	now := gregorianTicks(time.Now())
	_, seq1, regressed := s.next(now)
	assert.False(t, regressed)

	_, seq2, regressed := s.next(now - 10)
	assert.True(t, regressed)
	assert.Equal(t, (seq1+1)&0x3fff, seq2)
}

func TestRandomBelow(t *testing.T) {
	for range 1000 {
		n, err := randomBelow(rand.Reader, cuidDiscrete)
		require.NoError(t, err)
		assert.Less(t, n, uint32(cuidDiscrete))
	}
}

func TestPadBase36(t *testing.T) {
	assert.Equal(t, "000a", padBase36(10, 4))
	assert.Equal(t, "zz", padBase36(36*36*5-1, 2))
	assert.Equal(t, "1z", cuidFingerprint(71, "")[:2])
}
