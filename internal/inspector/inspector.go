// Package inspector classifies an arbitrary string as one or more
// identifier schemes and decodes the fields that are reversible.
package inspector

import (
	"cmp"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nrednav/cuid2"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/ksuid"

	"github.com/weiawesome/wes-io-live/idgen/internal/generator"
)

// Confidence ranks how well a string fits a scheme.
type Confidence int

const (
	Low Confidence = iota + 1
	Medium
	High
)

func (c Confidence) String() string {
	switch c {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	}
	return "unknown"
}

// Decoded field names.
const (
	FieldTimestamp     = "embedded_timestamp"
	FieldNodeID        = "node_id"
	FieldClockSequence = "clock_sequence"
	FieldHash          = "hash"
	FieldProcessUnique = "process_unique"
	FieldCounter       = "counter"
	FieldRandomness    = "randomness"
	FieldPayload       = "payload"
	FieldFingerprint   = "fingerprint"
	FieldMachineID     = "machine_id"
	FieldSequence      = "sequence"
)

// Candidate is one possible classification of an inspected string.
type Candidate struct {
	Type       generator.Type
	Version    int
	Confidence Confidence
	Reason     string
	// Decoded holds the reversible fields; nil for hash-based or random ids.
	Decoded map[string]string
}

// cuidV1TailLen covers the counter, fingerprint and two random blocks.
const cuidV1TailLen = 16

var (
	hexPattern       = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	base62Pattern    = regexp.MustCompile(`^[0-9A-Za-z]{27}$`)
	cuidV1Pattern    = regexp.MustCompile(`^c[0-9a-z]{24,28}$`)
	cuidV2Pattern    = regexp.MustCompile(`^[a-z][0-9a-z]{23,31}$`)
	snowflakePattern = regexp.MustCompile(`^[0-9]{15,19}$`)
	nanoIDPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]{10,64}$`)
)

// Inspector classifies strings. The zero value is not usable; use New.
type Inspector struct {
	from, to       time.Time
	snowflakeEpoch int64
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithPlausibleRange sets the calendar window an embedded timestamp must
// fall in for a high confidence match. to is exclusive.
func WithPlausibleRange(from, to time.Time) Option {
	return func(i *Inspector) {
		i.from = from
		i.to = to
	}
}

// WithSnowflakeEpoch sets the custom epoch used to decode snowflake ids.
func WithSnowflakeEpoch(ms int64) Option {
	return func(i *Inspector) { i.snowflakeEpoch = ms }
}

// New returns an Inspector with a 2000..2100 plausible range.
func New(opts ...Option) *Inspector {
	i := &Inspector{
		from:           time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		to:             time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC),
		snowflakeEpoch: generator.DefaultSnowflakeEpoch,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

var defaultInspector = New()

// Inspect classifies s with the default Inspector.
func Inspect(s string) []Candidate { return defaultInspector.Inspect(s) }

// Inspect returns the candidates for s, most likely first. An empty or
// unrecognised string yields no candidates.
func (i *Inspector) Inspect(s string) []Candidate {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var out []Candidate
	screens := []func(string) (Candidate, bool){
		i.screenUUID,
		i.screenObjectID,
		i.screenULID,
		i.screenKSUID,
		i.screenCUIDv1,
		i.screenCUIDv2,
		i.screenSnowflake,
	}
	for _, screen := range screens {
		if c, ok := screen(s); ok {
			out = append(out, c)
		}
	}
	if len(out) == 0 && nanoIDPattern.MatchString(s) {
		out = append(out, Candidate{
			Type:       generator.TypeNanoID,
			Confidence: Low,
			Reason:     "url-safe alphabet only, no decodable fields",
		})
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		if a.Confidence != b.Confidence {
			return cmp.Compare(b.Confidence, a.Confidence)
		}
		return cmp.Compare(specificity(a), specificity(b))
	})
	return out
}

func specificity(c Candidate) int {
	switch c.Type {
	case generator.TypeUUID:
		return 0
	case generator.TypeObjectID:
		return 1
	case generator.TypeULID:
		return 2
	case generator.TypeKSUID:
		return 3
	case generator.TypeCUID:
		if c.Version == 1 {
			return 4
		}
		return 6
	case generator.TypeSnowflake:
		return 5
	}
	return 7
}

func (i *Inspector) plausible(t time.Time) bool {
	return !t.Before(i.from) && t.Before(i.to)
}

func (i *Inspector) rank(t time.Time, ok Confidence) Confidence {
	if i.plausible(t) {
		return ok
	}
	return Low
}

// uuidDigits strips the urn prefix, braces and hyphens at 8-4-4-4-12.
func uuidDigits(s string) string {
	if len(s) >= 9 && strings.EqualFold(s[:9], "urn:uuid:") {
		s = s[9:]
	}
	if len(s) == 38 && s[0] == '{' && s[37] == '}' {
		s = s[1:37]
	}
	if len(s) == 36 && s[8] == '-' && s[13] == '-' && s[18] == '-' && s[23] == '-' {
		s = s[:8] + s[9:13] + s[14:18] + s[19:23] + s[24:]
	}
	return s
}

func (i *Inspector) screenUUID(s string) (Candidate, bool) {
	digits := uuidDigits(s)
	if len(digits) != 32 || !hexPattern.MatchString(digits) {
		return Candidate{}, false
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return Candidate{}, false
	}
	u, err := uuid.FromBytes(raw)
	if err != nil {
		return Candidate{}, false
	}

	c := Candidate{Type: generator.TypeUUID, Version: int(u.Version())}
	if u.Variant() != uuid.RFC4122 {
		c.Version = 0
		c.Confidence = Low
		c.Reason = "hex string, not a valid RFC UUID"
		return c, true
	}

	switch u.Version() {
	case 1:
		sec, nsec := u.Time().UnixTime()
		c.Confidence = High
		c.Reason = "RFC 4122 time-based UUID"
		c.Decoded = map[string]string{
			FieldTimestamp:     formatTime(time.Unix(sec, nsec)),
			FieldNodeID:        hex.EncodeToString(u.NodeID()),
			FieldClockSequence: strconv.Itoa(u.ClockSequence()),
		}
	case 3:
		c.Confidence = High
		c.Reason = "RFC 4122 name-based UUID"
		c.Decoded = map[string]string{FieldHash: "md5"}
	case 4:
		c.Confidence = High
		c.Reason = "RFC 4122 random UUID"
	case 5:
		c.Confidence = High
		c.Reason = "RFC 4122 name-based UUID"
		c.Decoded = map[string]string{FieldHash: "sha1"}
	default:
		c.Version = 0
		c.Confidence = Low
		c.Reason = "hex string, not a valid RFC UUID"
	}
	return c, true
}

func (i *Inspector) screenObjectID(s string) (Candidate, bool) {
	if len(s) != 24 || !hexPattern.MatchString(s) {
		return Candidate{}, false
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Candidate{}, false
	}

	ts := time.Unix(int64(binary.BigEndian.Uint32(raw[:4])), 0)
	counter := uint32(raw[9])<<16 | uint32(raw[10])<<8 | uint32(raw[11])
	c := Candidate{
		Type:       generator.TypeObjectID,
		Confidence: i.rank(ts, High),
		Reason:     "24 hex digits with a leading seconds timestamp",
		Decoded: map[string]string{
			FieldTimestamp:     ts.UTC().Format(time.RFC3339),
			FieldProcessUnique: hex.EncodeToString(raw[4:9]),
			FieldCounter:       strconv.FormatUint(uint64(counter), 10),
		},
	}
	if c.Confidence == Low {
		c.Reason = "24 hex digits, timestamp outside the plausible range"
	}
	return c, true
}

func (i *Inspector) screenULID(s string) (Candidate, bool) {
	if len(s) != ulid.EncodedSize {
		return Candidate{}, false
	}
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return Candidate{}, false
	}

	ts := ulid.Time(id.Time())
	c := Candidate{
		Type:       generator.TypeULID,
		Confidence: i.rank(ts, High),
		Reason:     "26 Crockford base32 digits with a millisecond timestamp",
		Decoded: map[string]string{
			FieldTimestamp:  formatTime(ts),
			FieldRandomness: hex.EncodeToString(id.Entropy()),
		},
	}
	if c.Confidence == Low {
		c.Reason = "Crockford base32, timestamp outside the plausible range"
	}
	return c, true
}

func (i *Inspector) screenKSUID(s string) (Candidate, bool) {
	if !base62Pattern.MatchString(s) {
		return Candidate{}, false
	}
	id, err := ksuid.Parse(s)
	if err != nil {
		return Candidate{}, false
	}

	ts := id.Time()
	c := Candidate{
		Type:       generator.TypeKSUID,
		Confidence: i.rank(ts, High),
		Reason:     "27 base62 digits with a seconds timestamp",
		Decoded: map[string]string{
			FieldTimestamp: ts.UTC().Format(time.RFC3339),
			FieldPayload:   hex.EncodeToString(id.Payload()),
		},
	}
	if c.Confidence == Low {
		c.Reason = "base62, timestamp outside the plausible range"
	}
	return c, true
}

func (i *Inspector) screenCUIDv1(s string) (Candidate, bool) {
	if !cuidV1Pattern.MatchString(s) {
		return Candidate{}, false
	}
	// The timestamp takes whatever precedes the 16 fixed-width tail digits.
	tail := len(s) - cuidV1TailLen
	ms, err := strconv.ParseInt(s[1:tail], 36, 64)
	if err != nil {
		return Candidate{}, false
	}
	counter, err := strconv.ParseUint(s[tail:tail+4], 36, 32)
	if err != nil {
		return Candidate{}, false
	}

	ts := time.UnixMilli(ms)
	c := Candidate{
		Type:       generator.TypeCUID,
		Version:    1,
		Confidence: i.rank(ts, High),
		Reason:     "c marker followed by timestamp, counter, fingerprint and random blocks",
		Decoded: map[string]string{
			FieldTimestamp:   formatTime(ts),
			FieldCounter:     strconv.FormatUint(counter, 10),
			FieldFingerprint: s[tail+4 : tail+8],
		},
	}
	if c.Confidence == Low {
		c.Reason = "cuid shape, timestamp outside the plausible range"
	}
	return c, true
}

func (i *Inspector) screenCUIDv2(s string) (Candidate, bool) {
	if !cuidV2Pattern.MatchString(s) || !cuid2.IsCuid(s) {
		return Candidate{}, false
	}
	return Candidate{
		Type:       generator.TypeCUID,
		Version:    2,
		Confidence: Medium,
		Reason:     "lowercase base36 starting with a letter, no decodable fields",
	}, true
}

func (i *Inspector) screenSnowflake(s string) (Candidate, bool) {
	if !snowflakePattern.MatchString(s) {
		return Candidate{}, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return Candidate{}, false
	}

	parts := generator.DecodeSnowflake(n, i.snowflakeEpoch)
	ts := time.UnixMilli(parts.TimestampMs)
	c := Candidate{
		Type:       generator.TypeSnowflake,
		Confidence: i.rank(ts, Medium),
		Reason:     "decimal int64 decoded with the configured epoch",
		Decoded: map[string]string{
			FieldTimestamp: formatTime(ts),
			FieldMachineID: strconv.FormatInt(parts.MachineID, 10),
			FieldSequence:  strconv.FormatInt(parts.Sequence, 10),
		},
	}
	if c.Confidence == Low {
		c.Reason = "decimal int64, timestamp outside the plausible range"
	}
	return c, true
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
