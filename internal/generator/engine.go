package generator

import (
	"fmt"

	"github.com/rs/zerolog"
)

const (
	DefaultNanoIDSize     = 21
	DefaultNanoIDAlphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DefaultCUID2Length    = 24
	// DefaultSnowflakeEpoch is 2024-01-01T00:00:00Z in Unix milliseconds.
	DefaultSnowflakeEpoch int64 = 1704067200000
)

// Engine generates identifiers. The mutable state it owns (counters, clock
// sequence, monotonic ULID entropy, snowflake sequence) is guarded per scheme,
// so one Engine can be shared by concurrent callers.
type Engine struct {
	random RandomSource
	clock  Clock
	node   NodeIdentity
	logger zerolog.Logger

	nanoSize     int
	nanoAlphabet string
	cuid2Length  int
	machineID    int64
	epoch        int64

	v1        *uuidV1State
	objectID  *objectIDState
	cuid      *cuidState
	cuid2     *cuid2State
	ulid      *ulidState
	snowflake *snowflakeState
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandom replaces the random source.
func WithRandom(r RandomSource) Option { return func(e *Engine) { e.random = r } }

// WithClock replaces the clock.
func WithClock(c Clock) Option { return func(e *Engine) { e.clock = c } }

// WithNode replaces the node identity.
func WithNode(n NodeIdentity) Option { return func(e *Engine) { e.node = n } }

// WithLogger sets the logger used for clock regression and counter wrap reports.
func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.logger = l } }

// WithNanoIDDefaults sets the NanoID size and alphabet used when a Spec
// does not carry its own.
func WithNanoIDDefaults(size int, alphabet string) Option {
	return func(e *Engine) {
		e.nanoSize = size
		e.nanoAlphabet = alphabet
	}
}

// WithCUID2Length sets the CUID2 length used when a Spec does not carry one.
func WithCUID2Length(n int) Option { return func(e *Engine) { e.cuid2Length = n } }

// WithSnowflake sets the snowflake machine id and custom epoch (Unix ms).
func WithSnowflake(machineID, epoch int64) Option {
	return func(e *Engine) {
		e.machineID = machineID
		e.epoch = epoch
	}
}

// New creates an Engine. Without options it uses the system CSPRNG, the
// system clock and the host identity.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		random:       SystemRandom,
		clock:        SystemClock,
		logger:       zerolog.Nop(),
		nanoSize:     DefaultNanoIDSize,
		nanoAlphabet: DefaultNanoIDAlphabet,
		cuid2Length:  DefaultCUID2Length,
		epoch:        DefaultSnowflakeEpoch,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := validateNanoID(e.nanoSize, e.nanoAlphabet); err != nil {
		return nil, fmt.Errorf("nanoid defaults: %w", err)
	}
	if err := validateCUID2Length(e.cuid2Length); err != nil {
		return nil, fmt.Errorf("cuid2 defaults: %w", err)
	}

	if e.node == nil {
		host, err := NewHostIdentity(e.random)
		if err != nil {
			return nil, fmt.Errorf("failed to derive host identity: %w", err)
		}
		e.node = host
	}

	var err error
	if e.v1, err = newUUIDV1State(e.random); err != nil {
		return nil, err
	}
	if e.objectID, err = newObjectIDState(e.random); err != nil {
		return nil, err
	}
	e.cuid = newCUIDState()
	e.cuid2 = newCUID2State()
	e.ulid = newULIDState(e.random)
	if e.snowflake, err = newSnowflakeState(e.machineID, e.epoch); err != nil {
		return nil, err
	}
	return e, nil
}

// Generate builds the identifier described by spec.
func (e *Engine) Generate(spec Spec) (ID, error) {
	switch spec.Type() {
	case TypeUUID:
		return e.generateUUID(spec)
	case TypeObjectID:
		if err := noVersion(spec); err != nil {
			return ID{}, err
		}
		return e.generateObjectID()
	case TypeNanoID:
		if err := noVersion(spec); err != nil {
			return ID{}, err
		}
		return e.generateNanoID(spec)
	case TypeCUID:
		return e.generateCUID(spec)
	case TypeULID:
		if err := noVersion(spec); err != nil {
			return ID{}, err
		}
		return e.generateULID()
	case TypeKSUID:
		if err := noVersion(spec); err != nil {
			return ID{}, err
		}
		return e.generateKSUID()
	case TypeSnowflake:
		if err := noVersion(spec); err != nil {
			return ID{}, err
		}
		return e.generateSnowflake()
	}
	return ID{}, fmt.Errorf("%w: %q", ErrUnsupportedType, spec.Type())
}

// GenerateString generates an identifier and renders it with the format,
// prefix and suffix carried in the request.
func (e *Engine) GenerateString(spec Spec) (string, error) {
	id, err := e.Generate(spec)
	if err != nil {
		return "", err
	}
	return Render(id, spec.Format(), spec.Prefix(), spec.Suffix()), nil
}

// GenerateBatch renders count identifiers. Every id goes through Generate
// so counters and monotonic state advance across the batch.
func (e *Engine) GenerateBatch(spec Spec, count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: must be at least 1, got %d", ErrInvalidCount, count)
	}
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id, err := e.GenerateString(spec)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func noVersion(spec Spec) error {
	if spec.Version() != 0 {
		return fmt.Errorf("%w: %s has no version %d", ErrUnsupportedType, spec.Type(), spec.Version())
	}
	return nil
}
