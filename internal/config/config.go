// Package config loads and validates the archiver's YAML configuration.
package config

import "time"

// ArchiverConfig is the root configuration for an archiver instance.
type ArchiverConfig struct {
	Instance InstanceConfig `yaml:"instance"`
	Gateway  GatewayConfig  `yaml:"gateway"`
	Database DBConfig       `yaml:"database"`
	Streams  []StreamConfig `yaml:"streams"`
	Poller   PollerConfig   `yaml:"poller"`
	Writer   WriterConfig   `yaml:"writer"`
	Feed     FeedConfig     `yaml:"feed"`
	Health   HealthConfig   `yaml:"health"`
}

// InstanceConfig identifies this archiver.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// GatewayConfig holds TN gateway settings.
type GatewayConfig struct {
	URL          string        `yaml:"url"`
	Token        string        `yaml:"token"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// DBConfig holds the Postgres connection for archived records.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// StreamConfig selects one stream to archive. When ID is empty it is
// derived from Name at startup.
type StreamConfig struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	DataProvider string `yaml:"data_provider"`
}

// PollerConfig holds record poller settings.
type PollerConfig struct {
	Interval    time.Duration `yaml:"interval"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
}

// WriterConfig holds batch writer settings.
type WriterConfig struct {
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	BufferSize    int           `yaml:"buffer_size"`
}

// FeedConfig holds live websocket feed settings. When disabled the archiver
// relies on polling alone.
type FeedConfig struct {
	Enabled     bool          `yaml:"enabled"`
	URL         string        `yaml:"url"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
	BufferSize  int           `yaml:"buffer_size"`
}

// HealthConfig holds the health endpoint settings.
type HealthConfig struct {
	Port int `yaml:"port"`
}
