package generator

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/nrednav/cuid2"
)

const (
	minCUID2Length = 2
	maxCUID2Length = 32
)

// cuid2State caches one initialised cuid2 generator per length. Each
// generator carries its own session counter, so calls are serialised.
type cuid2State struct {
	mu   sync.Mutex
	gens map[int]func() string
}

func newCUID2State() *cuid2State {
	return &cuid2State{gens: make(map[int]func() string)}
}

func validateCUID2Length(n int) error {
	if n < minCUID2Length || n > maxCUID2Length {
		return fmt.Errorf("%w: cuid2 length must be between %d and %d, got %d", ErrInvalidLength, minCUID2Length, maxCUID2Length, n)
	}
	return nil
}

func (e *Engine) generateCUID2(spec Spec) (id ID, err error) {
	length := e.cuid2Length
	if n, ok := spec.Length(); ok {
		length = n
	}
	if err := validateCUID2Length(length); err != nil {
		return ID{}, err
	}

	e.cuid2.mu.Lock()
	defer e.cuid2.mu.Unlock()
	defer recoverRandomFailure(&err)

	gen, err := e.cuid2Generator(length)
	if err != nil {
		return ID{}, err
	}
	return ID{Type: TypeCUID, Version: 2, Canonical: gen()}, nil
}

// cuid2Generator must be called with e.cuid2.mu held.
func (e *Engine) cuid2Generator(length int) (func() string, error) {
	if gen, ok := e.cuid2.gens[length]; ok {
		return gen, nil
	}
	gen, err := cuid2.Init(
		cuid2.WithLength(length),
		cuid2.WithFingerprint(e.node.Fingerprint()),
		cuid2.WithRandomFunc(e.randomFloat),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init cuid2 generator: %w", err)
	}
	e.cuid2.gens[length] = gen
	return gen, nil
}

// randomFailure carries a random source error out of the cuid2 callback,
// which has no error return.
type randomFailure struct{ err error }

// recoverRandomFailure turns a randomFailure panic into *err and re-panics
// on anything else.
func recoverRandomFailure(err *error) {
	r := recover()
	if r == nil {
		return
	}
	f, ok := r.(randomFailure)
	if !ok {
		panic(r)
	}
	*err = f.err
}

// randomFloat draws a float in [0, 1) from the random source. A failed read
// aborts the current generation with ErrRandomSource.
func (e *Engine) randomFloat() float64 {
	var b [8]byte
	if err := readRandom(e.random, b[:]); err != nil {
		panic(randomFailure{err: err})
	}
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}
