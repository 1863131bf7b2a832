package grpc

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// codecName is sent as the content-subtype: application/grpc+json.
const codecName = "json"

// Codec marshals the domain request and response types as JSON. The server
// forces it for every call, and Client forces it on the caller side.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec marshal %T: %w", v, err)
	}
	return b, nil
}

func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec unmarshal %T: %w", v, err)
	}
	return nil
}

func (Codec) Name() string { return codecName }
