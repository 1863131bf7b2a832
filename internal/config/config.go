package config

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/weiawesome/wes-io-live/idgen/internal/generator"
	pkgconfig "github.com/weiawesome/wes-io-live/idgen/pkg/config"
)

type Config struct {
	Server    ServerConfig
	GRPC      GRPCConfig
	Snowflake SnowflakeConfig
	NanoID    NanoIDConfig    `mapstructure:"nanoid"`
	CUID2     CUID2Config     `mapstructure:"cuid2"`
	UUID      UUIDConfig      `mapstructure:"uuid"`
	Inspector InspectorConfig `mapstructure:"inspector"`
	Batch     BatchConfig     `mapstructure:"batch"`
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type GRPCConfig struct {
	Host string
	Port int
}

type SnowflakeConfig struct {
	MachineID int64 `mapstructure:"machine_id"`
	Epoch     int64
}

type NanoIDConfig struct {
	Size     int    `mapstructure:"size"`
	Alphabet string `mapstructure:"alphabet"`
}

type CUID2Config struct {
	Length int `mapstructure:"length"`
}

// UUIDConfig overrides the hardware address used as the UUID v1 node id.
// NodeID is 12 hex digits, optionally separated by colons or hyphens.
type UUIDConfig struct {
	NodeID string `mapstructure:"node_id"`
}

type InspectorConfig struct {
	MinYear int `mapstructure:"min_year"`
	MaxYear int `mapstructure:"max_year"`
}

type BatchConfig struct {
	MaxCount int `mapstructure:"max_count"`
}

type LogConfig struct {
	Level  string
	Pretty bool
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load(
		pkgconfig.GetEnv("IDGEN_CONFIG_PATH", "./config"), "config",
		pkgconfig.WithEnvPrefix("IDGEN"),
	)
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("grpc.host", "0.0.0.0")
	v.SetDefault("grpc.port", 50053)
	v.SetDefault("snowflake.machine_id", 1)
	v.SetDefault("snowflake.epoch", generator.DefaultSnowflakeEpoch)
	v.SetDefault("nanoid.size", generator.DefaultNanoIDSize)
	v.SetDefault("nanoid.alphabet", generator.DefaultNanoIDAlphabet)
	v.SetDefault("cuid2.length", generator.DefaultCUID2Length)
	v.SetDefault("uuid.node_id", "")
	v.SetDefault("inspector.min_year", 2000)
	v.SetDefault("inspector.max_year", 2100)
	v.SetDefault("batch.max_count", 1000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("grpc.port", "GRPC_PORT")
	v.BindEnv("snowflake.machine_id", "SNOWFLAKE_MACHINE_ID")
	v.BindEnv("nanoid.size", "NANOID_SIZE")
	v.BindEnv("nanoid.alphabet", "NANOID_ALPHABET")
	v.BindEnv("cuid2.length", "CUID2_LENGTH")
	v.BindEnv("uuid.node_id", "UUID_NODE_ID")
	v.BindEnv("batch.max_count", "BATCH_MAX_COUNT")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Inspector.MinYear >= c.Inspector.MaxYear {
		return fmt.Errorf("inspector.min_year (%d) must be before inspector.max_year (%d)", c.Inspector.MinYear, c.Inspector.MaxYear)
	}
	if c.Batch.MaxCount < 1 {
		return fmt.Errorf("batch.max_count must be positive, got %d", c.Batch.MaxCount)
	}
	if _, _, err := c.UUID.Node(); err != nil {
		return err
	}
	return nil
}

// Node parses NodeID. ok is false when no override is configured.
func (u UUIDConfig) Node() (node [6]byte, ok bool, err error) {
	s := strings.NewReplacer(":", "", "-", "").Replace(strings.TrimSpace(u.NodeID))
	if s == "" {
		return node, false, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != len(node) {
		return node, false, fmt.Errorf("uuid.node_id must be 12 hex digits, got %q", u.NodeID)
	}
	copy(node[:], b)
	return node, true, nil
}
