package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/wes-io-live/idgen/internal/generator"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()

	dir := t.TempDir()
	if body != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	}
	t.Setenv("IDGEN_CONFIG_PATH", dir)
}

func TestLoadDefaults(t *testing.T) {
	writeConfig(t, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 50053, cfg.GRPC.Port)
	assert.Equal(t, int64(1), cfg.Snowflake.MachineID)
	assert.Equal(t, generator.DefaultSnowflakeEpoch, cfg.Snowflake.Epoch)
	assert.Equal(t, generator.DefaultNanoIDSize, cfg.NanoID.Size)
	assert.Equal(t, generator.DefaultNanoIDAlphabet, cfg.NanoID.Alphabet)
	assert.Equal(t, generator.DefaultCUID2Length, cfg.CUID2.Length)
	assert.Equal(t, 2000, cfg.Inspector.MinYear)
	assert.Equal(t, 2100, cfg.Inspector.MaxYear)
	assert.Equal(t, 1000, cfg.Batch.MaxCount)
	assert.Equal(t, "info", cfg.Log.Level)

	_, ok, err := cfg.UUID.Node()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadFileAndEnv(t *testing.T) {
	writeConfig(t, `
server:
  port: 9000
snowflake:
  machine_id: 42
nanoid:
  size: 32
uuid:
  node_id: "02:00:5e:10:00:01"
log:
  level: debug
  pretty: true
`)
	t.Setenv("GRPC_PORT", "6000")
	t.Setenv("BATCH_MAX_COUNT", "50")
	t.Setenv("IDGEN_CUID2_LENGTH", "30")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 6000, cfg.GRPC.Port)
	assert.Equal(t, int64(42), cfg.Snowflake.MachineID)
	assert.Equal(t, 32, cfg.NanoID.Size)
	assert.Equal(t, 50, cfg.Batch.MaxCount)
	assert.Equal(t, 30, cfg.CUID2.Length)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)

	node, ok, err := cfg.UUID.Node()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, [6]byte{0x02, 0x00, 0x5e, 0x10, 0x00, 0x01}, node)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad node id", "uuid:\n  node_id: xyz\n"},
		{"short node id", "uuid:\n  node_id: 0102\n"},
		{"inverted inspector range", "inspector:\n  min_year: 2100\n  max_year: 2000\n"},
		{"zero batch", "batch:\n  max_count: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, tt.body)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
