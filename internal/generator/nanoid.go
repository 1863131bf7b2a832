package generator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const maxNanoIDSize = 256

func validateNanoID(size int, alphabet string) error {
	if size < 1 || size > maxNanoIDSize {
		return fmt.Errorf("%w: nanoid size must be between 1 and %d, got %d", ErrInvalidLength, maxNanoIDSize, size)
	}
	if n := utf8.RuneCountInString(alphabet); n < 2 || len(alphabet) > 255 {
		return fmt.Errorf("%w: nanoid alphabet must have 2 to 255 characters, got %d", ErrInvalidAlphabet, n)
	}
	return nil
}

// nanoParams resolves the size and alphabet for spec, falling back to the
// engine defaults.
func (e *Engine) nanoParams(spec Spec) (int, string, error) {
	size := e.nanoSize
	if n, ok := spec.Length(); ok {
		size = n
	}
	alphabet := e.nanoAlphabet
	if spec.Alphabet() != "" {
		alphabet = spec.Alphabet()
	}
	if err := validateNanoID(size, alphabet); err != nil {
		return 0, "", err
	}
	return size, alphabet, nil
}

func (e *Engine) generateNanoID(spec Spec) (ID, error) {
	size, alphabet, err := e.nanoParams(spec)
	if err != nil {
		return ID{}, err
	}

	id, err := gonanoid.Generate(alphabet, size)
	if err != nil {
		return ID{}, fmt.Errorf("%w: failed to generate nanoid: %v", ErrRandomSource, err)
	}
	return ID{Type: TypeNanoID, Canonical: id}, nil
}

// ValidateNanoID reports whether id has the size and alphabet that spec
// carries, or the engine defaults where spec leaves them unset. reason
// explains a mismatch; err is set only when spec itself is invalid.
func (e *Engine) ValidateNanoID(id string, spec Spec) (valid bool, reason string, err error) {
	size, alphabet, err := e.nanoParams(spec)
	if err != nil {
		return false, "", err
	}
	if n := utf8.RuneCountInString(id); n != size {
		return false, fmt.Sprintf("expected length %d, got %d", size, n), nil
	}
	for _, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return false, fmt.Sprintf("character %q not in alphabet", c), nil
		}
	}
	return true, "", nil
}
