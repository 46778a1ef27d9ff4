package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"

	"github.com/soundprediction/gfdminer/pkg/graph"
	"github.com/soundprediction/gfdminer/pkg/miner"
)

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Mining configuration
	Mining MiningConfig `mapstructure:"mining"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Source configuration
	Source SourceConfig `mapstructure:"source"`

	// Checkpoint configuration
	Checkpoint CheckpointConfig `mapstructure:"checkpoint"`

	// Export configuration
	Export ExportConfig `mapstructure:"export"`

	// CircuitBreaker configuration
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	Color bool   `mapstructure:"color"`
}

// MiningConfig holds the clause generation parameters
type MiningConfig struct {
	DepthStart       int      `mapstructure:"depth_start"`
	DepthStop        int      `mapstructure:"depth_stop"`
	MinSupport       int      `mapstructure:"min_support"`
	MinConfidence    int      `mapstructure:"min_confidence"`
	Mode             string   `mapstructure:"mode"` // head/body letters: AA..BB
	PExplore         float64  `mapstructure:"p_explore"`
	PExtend          float64  `mapstructure:"p_extend"`
	Prune            bool     `mapstructure:"prune"`
	MaxLengthBody    int      `mapstructure:"max_length_body"`
	MaxWidth         int      `mapstructure:"max_width"`
	Multimodal       bool     `mapstructure:"multimodal"`
	Seed             int64    `mapstructure:"seed"`
	Workers          int      `mapstructure:"workers"` // 0 = GOMAXPROCS
	IgnorePredicates []string `mapstructure:"ignore_predicates"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// SourceConfig holds graph source configuration
type SourceConfig struct {
	Driver   string `mapstructure:"driver"` // file, neo4j
	URI      string `mapstructure:"uri"`    // file path or bolt URI
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// CheckpointConfig holds checkpoint configuration
type CheckpointConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// ExportConfig holds result export configuration
type ExportConfig struct {
	Format string `mapstructure:"format"` // tsv, parquet
	Path   string `mapstructure:"path"`
}

// CircuitBreakerConfig holds configuration for circuit breaking on
// remote graph sources
type CircuitBreakerConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"` // in seconds
	Timeout          int     `mapstructure:"timeout"`  // in seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio"`
}

// Default returns the built-in configuration without consulting files
// or the environment.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Color: true},
		Mining: MiningConfig{
			DepthStart:    0,
			DepthStop:     2,
			MinSupport:    2,
			MinConfidence: 2,
			Mode:          "BB",
			PExplore:      1.0,
			PExtend:       1.0,
			Prune:         true,
			MaxLengthBody: 8,
			MaxWidth:      8,
			Seed:          1,
		},
		Server: ServerConfig{Host: "localhost", Port: 8080, Mode: "release"},
		Source: SourceConfig{Driver: "file", Database: "neo4j"},
		Export: ExportConfig{Format: "tsv", Path: "clauses.tsv"},
		CircuitBreaker: CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         60,
			Timeout:          30,
			ReadyToTripRatio: 0.6,
		},
	}
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	overrideWithEnv(config)

	return config, nil
}

// Options maps the mining section onto miner parameters.
func (m MiningConfig) Options() miner.Options {
	opts := miner.DefaultOptions()
	opts.Depths = miner.DepthRange{Start: m.DepthStart, Stop: m.DepthStop}
	opts.MinSupport = m.MinSupport
	opts.MinConfidence = m.MinConfidence
	opts.Mode = miner.Mode(m.Mode)
	opts.PExplore = m.PExplore
	opts.PExtend = m.PExtend
	opts.Prune = m.Prune
	opts.MaxLengthBody = m.MaxLengthBody
	opts.MaxWidth = m.MaxWidth
	opts.Multimodal = m.Multimodal
	opts.Seed = m.Seed

	if len(m.IgnorePredicates) > 0 {
		opts.IgnorePredicates = make([]graph.IRI, 0, len(m.IgnorePredicates))
		for _, p := range m.IgnorePredicates {
			opts.IgnorePredicates = append(opts.IgnorePredicates, graph.IRI(p))
		}
	}
	return opts
}

// setDefaults sets default configuration values
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.color", true)

	// Mining defaults
	viper.SetDefault("mining.depth_start", 0)
	viper.SetDefault("mining.depth_stop", 2)
	viper.SetDefault("mining.min_support", 2)
	viper.SetDefault("mining.min_confidence", 2)
	viper.SetDefault("mining.mode", "BB")
	viper.SetDefault("mining.p_explore", 1.0)
	viper.SetDefault("mining.p_extend", 1.0)
	viper.SetDefault("mining.prune", true)
	viper.SetDefault("mining.max_length_body", 8)
	viper.SetDefault("mining.max_width", 8)
	viper.SetDefault("mining.multimodal", false)
	viper.SetDefault("mining.seed", 1)
	viper.SetDefault("mining.workers", 0)

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")

	// Source defaults
	viper.SetDefault("source.driver", "file")
	viper.SetDefault("source.uri", "")
	viper.SetDefault("source.username", "")
	viper.SetDefault("source.password", "")
	viper.SetDefault("source.database", "neo4j")

	// Checkpoint defaults
	home, err := os.UserHomeDir()
	if err == nil {
		viper.SetDefault("checkpoint.dir", fmt.Sprintf("%s/.gfdminer/checkpoints", home))
	}
	viper.SetDefault("checkpoint.enabled", false)

	// Export defaults
	viper.SetDefault("export.format", "tsv")
	viper.SetDefault("export.path", "clauses.tsv")

	// Circuit breaker defaults
	viper.SetDefault("circuit_breaker.enabled", true)
	viper.SetDefault("circuit_breaker.max_requests", 3)
	viper.SetDefault("circuit_breaker.interval", 60)
	viper.SetDefault("circuit_breaker.timeout", 30)
	viper.SetDefault("circuit_breaker.ready_to_trip_ratio", 0.6)
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		config.Source.Driver = "neo4j"
		config.Source.URI = uri
	}
	if user := os.Getenv("NEO4J_USER"); user != "" {
		config.Source.Username = user
	}
	if pass := os.Getenv("NEO4J_PASSWORD"); pass != "" {
		config.Source.Password = pass
	}

	if driver := os.Getenv("SOURCE_DRIVER"); driver != "" {
		config.Source.Driver = driver
	}
	if uri := os.Getenv("SOURCE_URI"); uri != "" {
		config.Source.URI = uri
	}

	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			config.Server.Port = n
		}
	}

	if dir := os.Getenv("CHECKPOINT_DIR"); dir != "" {
		config.Checkpoint.Dir = dir
	}
}
