package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultGatewayTimeout      = 30 * time.Second
	DefaultGatewayMaxRetries   = 3
	DefaultGatewayPollInterval = 2 * time.Second
	DefaultDBPort              = 5432
	DefaultDBSSLMode           = "prefer"
	DefaultMaxConns            = 10
	DefaultMinConns            = 2
	DefaultPollInterval        = 15 * time.Minute
	DefaultPollConcurrency     = 4
	DefaultPollTimeout         = 30 * time.Second
	DefaultBatchSize           = 1000
	DefaultFlushInterval       = time.Second
	DefaultBufferSize          = 10000
	DefaultFeedReadTimeout     = 30 * time.Second
	DefaultFeedBufferSize      = 1000
	DefaultHealthPort          = 8080
)

func (c *ArchiverConfig) applyDefaults() {
	// Gateway defaults
	if c.Gateway.Timeout == 0 {
		c.Gateway.Timeout = DefaultGatewayTimeout
	}
	if c.Gateway.MaxRetries == 0 {
		c.Gateway.MaxRetries = DefaultGatewayMaxRetries
	}
	if c.Gateway.PollInterval == 0 {
		c.Gateway.PollInterval = DefaultGatewayPollInterval
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Poller defaults
	if c.Poller.Interval == 0 {
		c.Poller.Interval = DefaultPollInterval
	}
	if c.Poller.Concurrency == 0 {
		c.Poller.Concurrency = DefaultPollConcurrency
	}
	if c.Poller.Timeout == 0 {
		c.Poller.Timeout = DefaultPollTimeout
	}

	// Writer defaults
	if c.Writer.BatchSize == 0 {
		c.Writer.BatchSize = DefaultBatchSize
	}
	if c.Writer.FlushInterval == 0 {
		c.Writer.FlushInterval = DefaultFlushInterval
	}
	if c.Writer.BufferSize == 0 {
		c.Writer.BufferSize = DefaultBufferSize
	}

	// Feed defaults
	if c.Feed.ReadTimeout == 0 {
		c.Feed.ReadTimeout = DefaultFeedReadTimeout
	}
	if c.Feed.BufferSize == 0 {
		c.Feed.BufferSize = DefaultFeedBufferSize
	}

	// Health defaults
	if c.Health.Port == 0 {
		c.Health.Port = DefaultHealthPort
	}
}
