package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/weiawesome/wes-io-live/idgen/internal/domain"
	"github.com/weiawesome/wes-io-live/idgen/internal/generator"
	"github.com/weiawesome/wes-io-live/idgen/internal/inspector"
	"github.com/weiawesome/wes-io-live/idgen/pkg/log"
)

// DefaultMaxBatch is the largest batch accepted when none is configured.
const DefaultMaxBatch = 1000

var (
	ErrBatchTooLarge = errors.New("batch count exceeds limit")
	ErrMissingType   = errors.New("missing id type")
)

// Generator is the part of generator.Engine the service needs.
type Generator interface {
	Generate(spec generator.Spec) (generator.ID, error)
	GenerateBatch(spec generator.Spec, count int) ([]string, error)
	ValidateNanoID(id string, spec generator.Spec) (bool, string, error)
}

// Classifier is the part of inspector.Inspector the service needs.
type Classifier interface {
	Inspect(s string) []inspector.Candidate
}

// idServiceImpl implements IDService interface.
type idServiceImpl struct {
	gen      Generator
	insp     Classifier
	maxBatch int
}

// NewIDService creates a new id service. A maxBatch below one selects
// DefaultMaxBatch.
func NewIDService(gen Generator, insp Classifier, maxBatch int) IDService {
	if maxBatch < 1 {
		maxBatch = DefaultMaxBatch
	}
	return &idServiceImpl{
		gen:      gen,
		insp:     insp,
		maxBatch: maxBatch,
	}
}

// IsInvalidArgument reports whether err was caused by the request.
func IsInvalidArgument(err error) bool {
	return generator.IsInvalidArgument(err) ||
		errors.Is(err, ErrBatchTooLarge) ||
		errors.Is(err, ErrMissingType)
}

// Generate generates one identifier.
func (s *idServiceImpl) Generate(ctx context.Context, req *domain.GenerateRequest) (*domain.GenerateResponse, error) {
	spec, err := req.ToSpec()
	if err != nil {
		return nil, err
	}
	l := log.Ctx(log.WithStr(ctx, log.FieldIDType, string(spec.Type())))

	id, err := s.gen.Generate(spec)
	if err != nil {
		l.Warn().Err(err).Int(log.FieldIDVersion, spec.Version()).Msg("failed to generate id")
		return nil, err
	}

	l.Debug().Int(log.FieldIDVersion, id.Version).Msg("id generated")
	return &domain.GenerateResponse{
		ID:      generator.Render(id, spec.Format(), spec.Prefix(), spec.Suffix()),
		Type:    string(id.Type),
		Version: id.Version,
	}, nil
}

// GenerateBatch generates req.Count identifiers of one spec.
func (s *idServiceImpl) GenerateBatch(ctx context.Context, req *domain.GenerateBatchRequest) (*domain.GenerateBatchResponse, error) {
	if req.Count > s.maxBatch {
		return nil, fmt.Errorf("%w: count must be between 1 and %d, got %d", ErrBatchTooLarge, s.maxBatch, req.Count)
	}

	spec, err := req.ToSpec()
	if err != nil {
		return nil, err
	}
	l := log.Ctx(log.WithStr(ctx, log.FieldIDType, string(spec.Type())))

	ids, err := s.gen.GenerateBatch(spec, req.Count)
	if err != nil {
		l.Warn().Err(err).Int(log.FieldCount, req.Count).Msg("failed to generate batch")
		return nil, err
	}

	l.Debug().Int(log.FieldCount, len(ids)).Msg("batch generated")
	return &domain.GenerateBatchResponse{
		IDs:  ids,
		Type: string(spec.Type()),
	}, nil
}

// Inspect classifies req.ID. An unknown string yields an empty candidate
// list, not an error.
func (s *idServiceImpl) Inspect(ctx context.Context, req *domain.InspectRequest) (*domain.InspectResponse, error) {
	candidates := s.insp.Inspect(req.ID)

	l := log.Ctx(ctx)
	evt := l.Debug().Int(log.FieldCount, len(candidates))
	if len(candidates) > 0 {
		evt = evt.Str(log.FieldIDType, string(candidates[0].Type))
	}
	evt.Msg("id inspected")

	return &domain.InspectResponse{
		ID:         req.ID,
		Candidates: domain.CandidatesToResponse(candidates),
	}, nil
}

// Validate reports whether req.ID is a well-formed req.Type. A candidate of
// that type must rank above low confidence. NanoID carries no structure
// beyond its alphabet, so it is checked against the requested or configured
// size and alphabet instead.
func (s *idServiceImpl) Validate(ctx context.Context, req *domain.ValidateRequest) (*domain.ValidateResponse, error) {
	if strings.TrimSpace(req.Type) == "" {
		return nil, ErrMissingType
	}
	t, err := generator.ParseType(req.Type)
	if err != nil {
		return nil, err
	}

	var resp *domain.ValidateResponse
	if t == generator.TypeNanoID {
		resp, err = s.validateNanoID(req)
		if err != nil {
			return nil, err
		}
	} else {
		resp = s.validateStructured(req.ID, t)
	}

	l := log.Ctx(ctx)
	l.Debug().Str(log.FieldIDType, string(t)).Bool("valid", resp.Valid).Msg("id validated")
	return resp, nil
}

func (s *idServiceImpl) validateStructured(id string, t generator.Type) *domain.ValidateResponse {
	resp := &domain.ValidateResponse{Reason: fmt.Sprintf("not a %s", t)}
	for _, c := range s.insp.Inspect(id) {
		if c.Type != t {
			continue
		}
		if c.Confidence == inspector.Low {
			resp.Reason = c.Reason
			continue
		}
		match := domain.CandidateToResponse(c)
		return &domain.ValidateResponse{Valid: true, Candidate: &match}
	}
	return resp
}

func (s *idServiceImpl) validateNanoID(req *domain.ValidateRequest) (*domain.ValidateResponse, error) {
	valid, reason, err := s.gen.ValidateNanoID(req.ID, req.NanoIDSpec())
	if err != nil {
		return nil, err
	}
	if !valid {
		return &domain.ValidateResponse{Reason: reason}, nil
	}
	match := domain.CandidateToResponse(inspector.Candidate{
		Type:       generator.TypeNanoID,
		Confidence: inspector.Low,
		Reason:     "matches nanoid size and alphabet",
		Decoded:    map[string]string{"length": strconv.Itoa(utf8.RuneCountInString(req.ID))},
	})
	return &domain.ValidateResponse{Valid: true, Candidate: &match}, nil
}
