package generator

import (
	"encoding/binary"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// uuidV1State owns the UUID v1 clock sequence and the last tick handed out.
type uuidV1State struct {
	mu        sync.Mutex
	clockSeq  uint16
	lastTicks uint64
}

func newUUIDV1State(r RandomSource) (*uuidV1State, error) {
	var b [2]byte
	if err := readRandom(r, b[:]); err != nil {
		return nil, err
	}
	return &uuidV1State{clockSeq: binary.BigEndian.Uint16(b[:]) & 0x3fff}, nil
}

// next returns the tick count and clock sequence to embed. A tick at or
// behind the previous one bumps the sequence; regressed reports whether the
// clock actually went backwards.
func (s *uuidV1State) next(ticks uint64) (uint64, uint16, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	regressed := ticks < s.lastTicks
	if ticks <= s.lastTicks {
		s.clockSeq = (s.clockSeq + 1) & 0x3fff
	}
	s.lastTicks = ticks
	return ticks, s.clockSeq, regressed
}

func (e *Engine) generateUUID(spec Spec) (ID, error) {
	version := spec.Version()
	if version == 0 {
		version = 4
	}

	var (
		u   uuid.UUID
		err error
	)
	switch version {
	case 1:
		u = e.newV1()
	case 3, 5:
		u, err = hashedUUID(spec, version)
	case 4:
		u, err = uuid.NewRandomFromReader(e.random)
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrRandomSource, err)
		}
	default:
		err = fmt.Errorf("%w: uuid version %d", ErrUnsupportedType, version)
	}
	if err != nil {
		return ID{}, err
	}

	raw := make([]byte, 16)
	copy(raw, u[:])
	return ID{Type: TypeUUID, Version: version, Raw: raw, Canonical: u.String()}, nil
}

// newV1 lays out time_low, time_mid, time_hi_and_version, the variant-tagged
// clock sequence and the node.
func (e *Engine) newV1() uuid.UUID {
	now := e.clock.Now()
	ticks, seq, regressed := e.v1.next(gregorianTicks(now))
	if regressed {
		e.logger.Warn().
			Err(ErrClockRegression).
			Time("clock", now).
			Uint16("clock_sequence", seq).
			Msg("uuid v1 clock moved backwards, clock sequence bumped")
	}

	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], uint32(ticks))
	binary.BigEndian.PutUint16(u[4:6], uint16(ticks>>32))
	binary.BigEndian.PutUint16(u[6:8], uint16(ticks>>48)&0x0fff|0x1000)
	binary.BigEndian.PutUint16(u[8:10], seq|0x8000)
	node := e.node.NodeID()
	copy(u[10:], node[:])
	return u
}

func hashedUUID(spec Spec, version int) (uuid.UUID, error) {
	ns, err := ParseNamespace(spec.Namespace())
	if err != nil {
		return uuid.Nil, err
	}
	if spec.Name() == "" {
		return uuid.Nil, fmt.Errorf("%w: uuid v%d requires a name, e.g. example.com", ErrMissingName, version)
	}
	if version == 3 {
		return uuid.NewMD5(ns, []byte(spec.Name())), nil
	}
	return uuid.NewSHA1(ns, []byte(spec.Name())), nil
}

// ParseNamespace resolves a UUID v3/v5 namespace. Besides any UUID string it
// accepts the RFC 4122 aliases dns, url, oid and x500.
func ParseNamespace(s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return uuid.Nil, fmt.Errorf("%w: namespace is required, e.g. dns or 6ba7b810-9dad-11d1-80b4-00c04fd430c8", ErrInvalidNamespace)
	case "dns":
		return uuid.NameSpaceDNS, nil
	case "url":
		return uuid.NameSpaceURL, nil
	case "oid":
		return uuid.NameSpaceOID, nil
	case "x500":
		return uuid.NameSpaceX500, nil
	}
	ns, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q is not a uuid", ErrInvalidNamespace, s)
	}
	return ns, nil
}
