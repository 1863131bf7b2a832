package generator

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"sync"
)

const (
	snowflakeTimestampBits = 41
	snowflakeMachineBits   = 10
	snowflakeSequenceBits  = 12

	maxSnowflakeMachineID = (1 << snowflakeMachineBits) - 1 // 1023
	maxSnowflakeSequence  = (1 << snowflakeSequenceBits) - 1 // 4095

	snowflakeMachineShift   = snowflakeSequenceBits
	snowflakeTimestampShift = snowflakeSequenceBits + snowflakeMachineBits
)

// SnowflakeParts is the decoded layout of a snowflake id.
type SnowflakeParts struct {
	TimestampMs int64 // absolute Unix ms
	MachineID   int64
	Sequence    int64
}

// DecodeSnowflake splits id using the given custom epoch.
func DecodeSnowflake(id, epoch int64) SnowflakeParts {
	ts := (id >> snowflakeTimestampShift) & ((1 << snowflakeTimestampBits) - 1)
	return SnowflakeParts{
		TimestampMs: ts + epoch,
		MachineID:   (id >> snowflakeMachineShift) & maxSnowflakeMachineID,
		Sequence:    id & maxSnowflakeSequence,
	}
}

// snowflakeState owns the sequence and last timestamp of one machine id.
type snowflakeState struct {
	mu        sync.Mutex
	epoch     int64 // custom epoch in ms
	machineID int64
	sequence  int64
	lastTime  int64 // last timestamp handed out, absolute ms
	lastClock int64 // last clock reading, absolute ms
}

func newSnowflakeState(machineID, epoch int64) (*snowflakeState, error) {
	if machineID < 0 || machineID > maxSnowflakeMachineID {
		return nil, fmt.Errorf("snowflake machine_id must be between 0 and %d, got %d", maxSnowflakeMachineID, machineID)
	}
	return &snowflakeState{epoch: epoch, machineID: machineID, lastTime: -1, lastClock: -1}, nil
}

// next returns the timestamp and sequence for a new id. A clock behind the
// last timestamp reuses it, and an exhausted sequence moves to the next
// millisecond, so ids stay unique and increasing without waiting.
func (s *snowflakeState) next(now int64) (ts, seq int64, regressed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	regressed = now < s.lastClock
	s.lastClock = now
	if now < s.lastTime {
		now = s.lastTime
	}
	if now == s.lastTime {
		s.sequence = (s.sequence + 1) & maxSnowflakeSequence
		if s.sequence == 0 {
			now++
		}
	} else {
		s.sequence = 0
	}
	s.lastTime = now
	return now, s.sequence, regressed
}

func (e *Engine) generateSnowflake() (ID, error) {
	now := e.clock.Now().UnixMilli()
	ts, seq, regressed := e.snowflake.next(now)
	if regressed {
		e.logger.Warn().
			Err(ErrClockRegression).
			Int64("clock_ms", now).
			Int64("issued_ms", ts).
			Msg("snowflake clock moved backwards, keeping last timestamp")
	}

	rel := ts - e.snowflake.epoch
	if rel < 0 {
		return ID{}, fmt.Errorf("current time is before snowflake epoch %d", e.snowflake.epoch)
	}
	if rel >= 1<<snowflakeTimestampBits {
		return ID{}, fmt.Errorf("snowflake timestamp overflows %d bits", snowflakeTimestampBits)
	}

	id := (rel << snowflakeTimestampShift) | (e.snowflake.machineID << snowflakeMachineShift) | seq
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(id))
	return ID{Type: TypeSnowflake, Raw: raw, Canonical: strconv.FormatInt(id, 10)}, nil
}
