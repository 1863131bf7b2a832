package grpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/wes-io-live/idgen/internal/domain"
)

func TestCodec(t *testing.T) {
	t.Parallel()

	c := Codec{}
	assert.Equal(t, "json", c.Name())

	n := 12
	b, err := c.Marshal(&domain.GenerateBatchRequest{
		GenerateRequest: domain.GenerateRequest{Type: "nanoid", Length: &n},
		Count:           3,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"nanoid","length":12,"count":3}`, string(b))

	var got domain.GenerateBatchRequest
	require.NoError(t, c.Unmarshal(b, &got))
	assert.Equal(t, "nanoid", got.Type)
	require.NotNil(t, got.Length)
	assert.Equal(t, 12, *got.Length)
	assert.Equal(t, 3, got.Count)

	var empty domain.InspectRequest
	require.NoError(t, c.Unmarshal(nil, &empty))
	assert.Error(t, c.Unmarshal([]byte("{"), &empty))
}
