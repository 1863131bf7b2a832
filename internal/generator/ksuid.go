package generator

import (
	"fmt"

	"github.com/segmentio/ksuid"
)

const ksuidPayloadLen = 16

func (e *Engine) generateKSUID() (ID, error) {
	payload := make([]byte, ksuidPayloadLen)
	if err := readRandom(e.random, payload); err != nil {
		return ID{}, err
	}
	id, err := ksuid.FromParts(e.clock.Now(), payload)
	if err != nil {
		return ID{}, fmt.Errorf("failed to generate KSUID: %w", err)
	}
	return ID{Type: TypeKSUID, Raw: id.Bytes(), Canonical: id.String()}, nil
}
