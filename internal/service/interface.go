package service

import (
	"context"

	"github.com/weiawesome/wes-io-live/idgen/internal/domain"
)

// IDService defines the interface for identifier generation and inspection.
type IDService interface {
	Generate(ctx context.Context, req *domain.GenerateRequest) (*domain.GenerateResponse, error)
	GenerateBatch(ctx context.Context, req *domain.GenerateBatchRequest) (*domain.GenerateBatchResponse, error)
	Inspect(ctx context.Context, req *domain.InspectRequest) (*domain.InspectResponse, error)
	Validate(ctx context.Context, req *domain.ValidateRequest) (*domain.ValidateResponse, error)
}
