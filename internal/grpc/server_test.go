package grpc_test

import (
	"context"
	"net"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/weiawesome/wes-io-live/idgen/internal/domain"
	"github.com/weiawesome/wes-io-live/idgen/internal/generator"
	idgrpc "github.com/weiawesome/wes-io-live/idgen/internal/grpc"
	"github.com/weiawesome/wes-io-live/idgen/internal/inspector"
	"github.com/weiawesome/wes-io-live/idgen/internal/service"
	pkglog "github.com/weiawesome/wes-io-live/idgen/pkg/log"
)

func newTestClient(t *testing.T) *idgrpc.Client {
	t.Helper()

	e, err := generator.New()
	require.NoError(t, err)
	return newTestClientFor(t, service.NewIDService(e, inspector.New(), 5))
}

func newTestClientFor(t *testing.T, svc service.IDService) *idgrpc.Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := idgrpc.NewServer(svc, zerolog.Nop())
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := idgrpc.Dial("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return idgrpc.NewClient(conn)
}

func TestGenerateID(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)
	ctx := context.Background()

	resp, err := client.GenerateID(ctx, &domain.GenerateRequest{
		Type:      "uuid",
		Version:   5,
		Namespace: "dns",
		Name:      "example.com",
		Format:    "simple",
	})
	require.NoError(t, err)
	assert.Equal(t, "cfbff0d193755685968c48ce8b15ae17", resp.ID)
	assert.Equal(t, "uuid", resp.Type)
	assert.Equal(t, 5, resp.Version)

	resp, err = client.GenerateID(ctx, &domain.GenerateRequest{Type: "cuid", Version: 1})
	require.NoError(t, err)
	assert.Len(t, resp.ID, 25)
	assert.Equal(t, 1, resp.Version)
}

func TestGenerateIDInvalidArgument(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)

	_, err := client.GenerateID(context.Background(), &domain.GenerateRequest{Type: "uuid", Version: 3})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), generator.ErrInvalidNamespace.Error())
}

func TestGenerateBatchIDs(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)
	ctx := context.Background()

	resp, err := client.GenerateBatchIDs(ctx, &domain.GenerateBatchRequest{
		GenerateRequest: domain.GenerateRequest{Type: "snowflake", Prefix: "sf_"},
		Count:           5,
	})
	require.NoError(t, err)
	require.Len(t, resp.IDs, 5)
	seen := make(map[string]struct{}, len(resp.IDs))
	for _, id := range resp.IDs {
		assert.Regexp(t, `^sf_[0-9]+$`, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 5)

	_, err = client.GenerateBatchIDs(ctx, &domain.GenerateBatchRequest{
		GenerateRequest: domain.GenerateRequest{Type: "snowflake"},
		Count:           6,
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestInspectID(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)
	ctx := context.Background()

	resp, err := client.InspectID(ctx, &domain.InspectRequest{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV"})
	require.NoError(t, err)
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", resp.ID)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "ulid", resp.Candidates[0].Type)
	assert.Equal(t, "high", resp.Candidates[0].Confidence)
	assert.Equal(t, "2016-07-30T23:54:10.259Z", resp.Candidates[0].Decoded["embedded_timestamp"])

	resp, err = client.InspectID(ctx, &domain.InspectRequest{ID: "%%%"})
	require.NoError(t, err)
	assert.Empty(t, resp.Candidates)
}

func TestValidateID(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)
	ctx := context.Background()

	resp, err := client.ValidateID(ctx, &domain.ValidateRequest{ID: "507f1f77bcf86cd799439011", Type: "objectid"})
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	require.NotNil(t, resp.Candidate)
	assert.Equal(t, "objectid", resp.Candidate.Type)

	resp, err = client.ValidateID(ctx, &domain.ValidateRequest{ID: "507f1f77bcf86cd799439011", Type: "ksuid"})
	require.NoError(t, err)
	assert.False(t, resp.Valid)

	_, err = client.ValidateID(ctx, &domain.ValidateRequest{ID: "x", Type: "guid"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

// recordingService captures the request id seen by the server.
type recordingService struct {
	service.IDService
	got chan string
}

func (r *recordingService) Inspect(ctx context.Context, req *domain.InspectRequest) (*domain.InspectResponse, error) {
	r.got <- pkglog.RequestID(ctx)
	return &domain.InspectResponse{ID: req.ID}, nil
}

func TestRequestIDPropagation(t *testing.T) {
	t.Parallel()

	rec := &recordingService{got: make(chan string, 2)}
	client := newTestClientFor(t, rec)

	ctx := pkglog.WithRequestID(context.Background(), "req-42")
	_, err := client.InspectID(ctx, &domain.InspectRequest{ID: "x"})
	require.NoError(t, err)
	assert.Equal(t, "req-42", <-rec.got)

	_, err = client.InspectID(context.Background(), &domain.InspectRequest{ID: "x"})
	require.NoError(t, err)
	assert.NotEmpty(t, <-rec.got)
}
