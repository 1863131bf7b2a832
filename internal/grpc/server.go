package grpc

import (
	"context"
	"fmt"
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/weiawesome/wes-io-live/idgen/internal/domain"
	"github.com/weiawesome/wes-io-live/idgen/internal/service"
	pkglog "github.com/weiawesome/wes-io-live/idgen/pkg/log"
)

type idServer struct {
	svc service.IDService
}

func (s *idServer) GenerateID(ctx context.Context, req *domain.GenerateRequest) (*domain.GenerateResponse, error) {
	resp, err := s.svc.Generate(ctx, req)
	if err != nil {
		return nil, toStatus(err, "failed to generate ID")
	}
	return resp, nil
}

func (s *idServer) GenerateBatchIDs(ctx context.Context, req *domain.GenerateBatchRequest) (*domain.GenerateBatchResponse, error) {
	resp, err := s.svc.GenerateBatch(ctx, req)
	if err != nil {
		return nil, toStatus(err, "failed to generate batch IDs")
	}
	return resp, nil
}

func (s *idServer) InspectID(ctx context.Context, req *domain.InspectRequest) (*domain.InspectResponse, error) {
	resp, err := s.svc.Inspect(ctx, req)
	if err != nil {
		return nil, toStatus(err, "failed to inspect ID")
	}
	return resp, nil
}

func (s *idServer) ValidateID(ctx context.Context, req *domain.ValidateRequest) (*domain.ValidateResponse, error) {
	resp, err := s.svc.Validate(ctx, req)
	if err != nil {
		return nil, toStatus(err, "failed to validate ID")
	}
	return resp, nil
}

func toStatus(err error, msg string) error {
	if service.IsInvalidArgument(err) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Errorf(codes.Internal, "%s: %v", msg, err)
}

// NewServer creates a gRPC server with idgen.v1.IDService registered.
func NewServer(svc service.IDService, logger zerolog.Logger) *grpc.Server {
	s := grpc.NewServer(
		grpc.ForceServerCodec(Codec{}),
		grpc.UnaryInterceptor(pkglog.UnaryServerInterceptor(logger)),
		grpc.StreamInterceptor(pkglog.StreamServerInterceptor(logger)),
	)
	RegisterIDServiceServer(s, &idServer{svc: svc})
	return s
}

// StartGRPCServer creates and starts the gRPC server in a background goroutine.
func StartGRPCServer(addr string, svc service.IDService, logger zerolog.Logger) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := NewServer(svc, logger)

	go func() {
		logger.Info().Str("addr", addr).Msg("grpc server listening")
		if err := s.Serve(lis); err != nil {
			logger.Error().Err(err).Msg("grpc server error")
		}
	}()

	return s, nil
}
