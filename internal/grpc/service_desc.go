package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/weiawesome/wes-io-live/idgen/internal/domain"
)

const (
	serviceName = "idgen.v1.IDService"

	GenerateIDFullMethod       = "/" + serviceName + "/GenerateID"
	GenerateBatchIDsFullMethod = "/" + serviceName + "/GenerateBatchIDs"
	InspectIDFullMethod        = "/" + serviceName + "/InspectID"
	ValidateIDFullMethod       = "/" + serviceName + "/ValidateID"
)

// IDServiceServer is the server API for idgen.v1.IDService.
type IDServiceServer interface {
	GenerateID(context.Context, *domain.GenerateRequest) (*domain.GenerateResponse, error)
	GenerateBatchIDs(context.Context, *domain.GenerateBatchRequest) (*domain.GenerateBatchResponse, error)
	InspectID(context.Context, *domain.InspectRequest) (*domain.InspectResponse, error)
	ValidateID(context.Context, *domain.ValidateRequest) (*domain.ValidateResponse, error)
}

// ServiceDesc describes idgen.v1.IDService. Messages travel as JSON, see Codec.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*IDServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GenerateID", Handler: generateIDHandler},
		{MethodName: "GenerateBatchIDs", Handler: generateBatchIDsHandler},
		{MethodName: "InspectID", Handler: inspectIDHandler},
		{MethodName: "ValidateID", Handler: validateIDHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "idgen/v1/id.proto",
}

// RegisterIDServiceServer registers srv on s.
func RegisterIDServiceServer(s grpc.ServiceRegistrar, srv IDServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func generateIDHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(domain.GenerateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).GenerateID(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GenerateIDFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IDServiceServer).GenerateID(ctx, req.(*domain.GenerateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func generateBatchIDsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(domain.GenerateBatchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).GenerateBatchIDs(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GenerateBatchIDsFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IDServiceServer).GenerateBatchIDs(ctx, req.(*domain.GenerateBatchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func inspectIDHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(domain.InspectRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).InspectID(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: InspectIDFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IDServiceServer).InspectID(ctx, req.(*domain.InspectRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func validateIDHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(domain.ValidateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).ValidateID(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ValidateIDFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IDServiceServer).ValidateID(ctx, req.(*domain.ValidateRequest))
	}
	return interceptor(ctx, in, info, handler)
}
