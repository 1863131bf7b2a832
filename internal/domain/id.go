package domain

import (
	"github.com/weiawesome/wes-io-live/idgen/internal/generator"
	"github.com/weiawesome/wes-io-live/idgen/internal/inspector"
)

// GenerateRequest represents a request for one identifier.
type GenerateRequest struct {
	Type      string `json:"type"`
	Version   int    `json:"version,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Name      string `json:"name,omitempty"`
	// Length is a pointer so an explicit zero is rejected rather than
	// treated as "use the default".
	Length   *int   `json:"length,omitempty"`
	Alphabet string `json:"alphabet,omitempty"`
	Format   string `json:"format,omitempty"`
	Prefix   string `json:"prefix,omitempty"`
	Suffix   string `json:"suffix,omitempty"`
}

// GenerateBatchRequest represents a request for count identifiers of one spec.
type GenerateBatchRequest struct {
	GenerateRequest
	Count int `json:"count"`
}

// InspectRequest represents a classification request.
type InspectRequest struct {
	ID string `json:"id" form:"id"`
}

// ValidateRequest asks whether ID is a well-formed identifier of Type.
// Length and Alphabet only apply to NanoID and default to the configured
// generator settings.
type ValidateRequest struct {
	ID       string `json:"id" form:"id"`
	Type     string `json:"type" form:"type"`
	Length   *int   `json:"length,omitempty" form:"length"`
	Alphabet string `json:"alphabet,omitempty" form:"alphabet"`
}

// GenerateResponse represents one generated identifier.
type GenerateResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Version int    `json:"version,omitempty"`
}

// GenerateBatchResponse represents a batch of generated identifiers.
type GenerateBatchResponse struct {
	IDs  []string `json:"ids"`
	Type string   `json:"type"`
}

// CandidateResponse is one classification of an inspected string.
type CandidateResponse struct {
	Type       string            `json:"type"`
	Version    int               `json:"version,omitempty"`
	Confidence string            `json:"confidence"`
	Reason     string            `json:"reason"`
	Decoded    map[string]string `json:"decoded,omitempty"`
}

// InspectResponse lists the candidates for an inspected string, most likely
// first. An empty list means the string is not a known identifier.
type InspectResponse struct {
	ID         string              `json:"id"`
	Candidates []CandidateResponse `json:"candidates"`
}

// ValidateResponse reports the outcome of a validation. Candidate is the
// matching classification when Valid is true.
type ValidateResponse struct {
	Valid     bool               `json:"valid"`
	Reason    string             `json:"reason,omitempty"`
	Candidate *CandidateResponse `json:"candidate,omitempty"`
}

// ToSpec converts the request into a generator.Spec.
func (r *GenerateRequest) ToSpec() (generator.Spec, error) {
	t, err := generator.ParseType(r.Type)
	if err != nil {
		return generator.Spec{}, err
	}
	format, err := generator.ParseFormat(r.Format)
	if err != nil {
		return generator.Spec{}, err
	}

	opts := []generator.SpecOption{
		generator.WithVersion(r.Version),
		generator.WithNamespace(r.Namespace),
		generator.WithName(r.Name),
		generator.WithAlphabet(r.Alphabet),
		generator.WithFormat(format),
		generator.WithPrefix(r.Prefix),
		generator.WithSuffix(r.Suffix),
	}
	if r.Length != nil {
		opts = append(opts, generator.WithLength(*r.Length))
	}
	return generator.NewSpec(t, opts...), nil
}

// NanoIDSpec returns the generator.Spec a NanoID is validated against.
func (r *ValidateRequest) NanoIDSpec() generator.Spec {
	opts := []generator.SpecOption{generator.WithAlphabet(r.Alphabet)}
	if r.Length != nil {
		opts = append(opts, generator.WithLength(*r.Length))
	}
	return generator.NewSpec(generator.TypeNanoID, opts...)
}

// CandidatesToResponse converts inspector candidates for API responses.
func CandidatesToResponse(cs []inspector.Candidate) []CandidateResponse {
	out := make([]CandidateResponse, len(cs))
	for i, c := range cs {
		out[i] = CandidateToResponse(c)
	}
	return out
}

// CandidateToResponse converts one inspector candidate.
func CandidateToResponse(c inspector.Candidate) CandidateResponse {
	return CandidateResponse{
		Type:       string(c.Type),
		Version:    c.Version,
		Confidence: c.Confidence.String(),
		Reason:     c.Reason,
		Decoded:    c.Decoded,
	}
}
