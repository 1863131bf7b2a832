package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/weiawesome/wes-io-live/idgen/internal/domain"
	pkglog "github.com/weiawesome/wes-io-live/idgen/pkg/log"
)

// Client calls idgen.v1.IDService.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an existing connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Dial opens an insecure connection to addr that speaks the JSON codec and
// forwards the caller's request id.
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(Codec{})),
		grpc.WithUnaryInterceptor(pkglog.UnaryClientInterceptor()),
	}, opts...)
	return grpc.NewClient(addr, opts...)
}

func (c *Client) GenerateID(ctx context.Context, in *domain.GenerateRequest, opts ...grpc.CallOption) (*domain.GenerateResponse, error) {
	out := new(domain.GenerateResponse)
	if err := c.cc.Invoke(ctx, GenerateIDFullMethod, in, out, c.callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GenerateBatchIDs(ctx context.Context, in *domain.GenerateBatchRequest, opts ...grpc.CallOption) (*domain.GenerateBatchResponse, error) {
	out := new(domain.GenerateBatchResponse)
	if err := c.cc.Invoke(ctx, GenerateBatchIDsFullMethod, in, out, c.callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) InspectID(ctx context.Context, in *domain.InspectRequest, opts ...grpc.CallOption) (*domain.InspectResponse, error) {
	out := new(domain.InspectResponse)
	if err := c.cc.Invoke(ctx, InspectIDFullMethod, in, out, c.callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ValidateID(ctx context.Context, in *domain.ValidateRequest, opts ...grpc.CallOption) (*domain.ValidateResponse, error) {
	out := new(domain.ValidateResponse)
	if err := c.cc.Invoke(ctx, ValidateIDFullMethod, in, out, c.callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
}
