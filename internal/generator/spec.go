package generator

import (
	"fmt"
	"strings"
)

// Type names an identifier scheme.
type Type string

const (
	TypeUUID      Type = "uuid"
	TypeObjectID  Type = "objectid"
	TypeNanoID    Type = "nanoid"
	TypeCUID      Type = "cuid"
	TypeULID      Type = "ulid"
	TypeKSUID     Type = "ksuid"
	TypeSnowflake Type = "snowflake"
)

// Types lists every supported scheme.
var Types = []Type{TypeUUID, TypeObjectID, TypeNanoID, TypeCUID, TypeULID, TypeKSUID, TypeSnowflake}

// ParseType maps a user supplied name to a Type. Matching is case-insensitive
// and accepts a few common spellings.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uuid", "":
		return TypeUUID, nil
	case "objectid", "oid", "object_id":
		return TypeObjectID, nil
	case "nanoid", "nano":
		return TypeNanoID, nil
	case "cuid":
		return TypeCUID, nil
	case "ulid":
		return TypeULID, nil
	case "ksuid":
		return TypeKSUID, nil
	case "snowflake":
		return TypeSnowflake, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedType, s)
}

// Format selects the textual rendering of UUIDs.
type Format string

const (
	FormatHyphenated Format = "hyphenated"
	FormatSimple     Format = "simple"
	FormatURN        Format = "urn"
)

// ParseFormat maps a user supplied name to a Format; empty selects hyphenated.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hyphenated", "hyphen":
		return FormatHyphenated, nil
	case "simple":
		return FormatSimple, nil
	case "urn":
		return FormatURN, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// Spec describes one identifier to generate. It is immutable once built
// with NewSpec.
type Spec struct {
	typ       Type
	version   int
	namespace string
	name      string
	length    int
	hasLength bool
	alphabet  string
	format    Format
	prefix    string
	suffix    string
}

// SpecOption configures a Spec.
type SpecOption func(*Spec)

// NewSpec builds a Spec for t.
func NewSpec(t Type, opts ...SpecOption) Spec {
	s := Spec{typ: t, format: FormatHyphenated}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithVersion selects the UUID (1, 3, 4, 5) or CUID (1, 2) version.
// Zero selects the default version of the type.
func WithVersion(v int) SpecOption { return func(s *Spec) { s.version = v } }

// WithNamespace sets the UUID v3/v5 namespace: a UUID or one of the aliases
// dns, url, oid and x500.
func WithNamespace(ns string) SpecOption { return func(s *Spec) { s.namespace = ns } }

// WithName sets the UUID v3/v5 name.
func WithName(name string) SpecOption { return func(s *Spec) { s.name = name } }

// WithLength sets an explicit NanoID or CUID2 length.
func WithLength(n int) SpecOption {
	return func(s *Spec) {
		s.length = n
		s.hasLength = true
	}
}

// WithAlphabet sets a custom NanoID alphabet.
func WithAlphabet(a string) SpecOption { return func(s *Spec) { s.alphabet = a } }

// WithFormat sets the UUID rendering.
func WithFormat(f Format) SpecOption { return func(s *Spec) { s.format = f } }

// WithPrefix sets a string prepended to the rendered id.
func WithPrefix(p string) SpecOption { return func(s *Spec) { s.prefix = p } }

// WithSuffix sets a string appended to the rendered id.
func WithSuffix(x string) SpecOption { return func(s *Spec) { s.suffix = x } }

func (s Spec) Type() Type        { return s.typ }
func (s Spec) Version() int      { return s.version }
func (s Spec) Namespace() string { return s.namespace }
func (s Spec) Name() string      { return s.name }
func (s Spec) Alphabet() string  { return s.alphabet }
func (s Spec) Format() Format    { return s.format }
func (s Spec) Prefix() string    { return s.prefix }
func (s Spec) Suffix() string    { return s.suffix }

// Length returns the explicit length and whether one was set.
func (s Spec) Length() (int, bool) { return s.length, s.hasLength }

// ID is a generated identifier before decoration.
type ID struct {
	Type    Type
	Version int
	// Raw is the fixed-width binary form. It is nil for NanoID and CUID,
	// which are symbol sequences rather than bytes.
	Raw       []byte
	Canonical string
}

func (id ID) String() string { return id.Canonical }
