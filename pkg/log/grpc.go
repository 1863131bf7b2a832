package log

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const metadataKeyRequestID = "x-request-id"

// UnaryServerInterceptor returns a gRPC unary server interceptor that
// creates a child logger with request metadata and injects it into context.
// Calls that fail with a server-side code are logged at error level.
func UnaryServerInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		start := time.Now()

		ctx, child := serverContext(ctx, logger, info.FullMethod)
		resp, err := handler(ctx, req)

		logCompletion(child, err, start, "unary call completed")
		return resp, err
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor(logger zerolog.Logger) grpc.StreamServerInterceptor {
	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		start := time.Now()

		ctx, child := serverContext(ss.Context(), logger, info.FullMethod)
		err := handler(srv, &wrappedStream{ServerStream: ss, ctx: ctx})

		logCompletion(child, err, start, "stream call completed")
		return err
	}
}

// UnaryClientInterceptor forwards the request id found in ctx as
// x-request-id metadata, so a call chain shares one id across services.
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		if id := RequestID(ctx); id != "" {
			ctx = metadata.AppendToOutgoingContext(ctx, metadataKeyRequestID, id)
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

func serverContext(ctx context.Context, logger zerolog.Logger, method string) (context.Context, zerolog.Logger) {
	reqID := requestIDFromMD(ctx)
	child := logger.With().
		Str(FieldRequestID, reqID).
		Str(FieldGRPCMethod, method).
		Logger()
	return WithLogger(WithRequestID(ctx, reqID), child), child
}

func logCompletion(l zerolog.Logger, err error, start time.Time, msg string) {
	code := status.Code(err)

	evt := l.Info()
	switch code {
	case codes.OK, codes.InvalidArgument, codes.NotFound, codes.Canceled:
	default:
		evt = l.Error()
	}
	evt.Str(FieldGRPCCode, code.String()).
		Float64(FieldLatency, float64(time.Since(start).Milliseconds())).
		Err(err).
		Msg(msg)
}

// wrappedStream overrides Context() to inject the child logger.
type wrappedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedStream) Context() context.Context {
	return w.ctx
}

func requestIDFromMD(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		vals := md.Get(metadataKeyRequestID)
		if len(vals) > 0 && vals[0] != "" {
			return vals[0]
		}
	}
	return uuid.New().String()
}
