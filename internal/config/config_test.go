package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archiver.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

const validYAML = `
instance:
  id: test-archiver
gateway:
  url: https://node.example.com
  token: test-token
database:
  host: localhost
  name: tn_archive
  user: archiver
  password: secret
streams:
  - name: truflation.us.cpi
  - id: st0123456789abcdef0123456789abcd
    data_provider: "0xabc"
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeTempFile(t, validYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Instance.ID != "test-archiver" {
		t.Errorf("Instance.ID = %q, want %q", cfg.Instance.ID, "test-archiver")
	}
	if cfg.Gateway.URL != "https://node.example.com" {
		t.Errorf("Gateway.URL = %q, want %q", cfg.Gateway.URL, "https://node.example.com")
	}
	if len(cfg.Streams) != 2 {
		t.Fatalf("Streams = %d, want 2", len(cfg.Streams))
	}
	if cfg.Streams[0].Name != "truflation.us.cpi" {
		t.Errorf("Streams[0].Name = %q, want truflation.us.cpi", cfg.Streams[0].Name)
	}
	if cfg.Streams[1].DataProvider != "0xabc" {
		t.Errorf("Streams[1].DataProvider = %q, want 0xabc", cfg.Streams[1].DataProvider)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_TN_TOKEN", "secret123")

	yaml := `
instance:
  id: test-archiver
gateway:
  url: https://node.example.com
  token: ${TEST_TN_TOKEN}
database:
  host: localhost
  name: tn_archive
  user: archiver
  password: pw
streams:
  - name: a
`
	cfg, err := Load(writeTempFile(t, yaml))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Gateway.Token != "secret123" {
		t.Errorf("Gateway.Token = %q, want %q", cfg.Gateway.Token, "secret123")
	}
}

func TestLoadAndValidate_AppliesDefaults(t *testing.T) {
	cfg, err := LoadAndValidate(writeTempFile(t, validYAML))
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}

	if cfg.Gateway.Timeout != DefaultGatewayTimeout {
		t.Errorf("Gateway.Timeout = %v, want %v", cfg.Gateway.Timeout, DefaultGatewayTimeout)
	}
	if cfg.Database.Port != DefaultDBPort {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, DefaultDBPort)
	}
	if cfg.Database.SSLMode != DefaultDBSSLMode {
		t.Errorf("Database.SSLMode = %q, want %q", cfg.Database.SSLMode, DefaultDBSSLMode)
	}
	if cfg.Poller.Interval != 15*time.Minute {
		t.Errorf("Poller.Interval = %v, want 15m", cfg.Poller.Interval)
	}
	if cfg.Writer.BatchSize != DefaultBatchSize {
		t.Errorf("Writer.BatchSize = %d, want %d", cfg.Writer.BatchSize, DefaultBatchSize)
	}
	if cfg.Health.Port != DefaultHealthPort {
		t.Errorf("Health.Port = %d, want %d", cfg.Health.Port, DefaultHealthPort)
	}
}

func TestValidate_Errors(t *testing.T) {
	base := func() *ArchiverConfig {
		cfg, err := Load(writeTempFile(t, validYAML))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*ArchiverConfig)
	}{
		{"missing instance id", func(c *ArchiverConfig) { c.Instance.ID = "" }},
		{"missing gateway url", func(c *ArchiverConfig) { c.Gateway.URL = "" }},
		{"missing gateway token", func(c *ArchiverConfig) { c.Gateway.Token = "" }},
		{"missing db host", func(c *ArchiverConfig) { c.Database.Host = "" }},
		{"missing db password", func(c *ArchiverConfig) { c.Database.Password = "" }},
		{"min conns above max", func(c *ArchiverConfig) { c.Database.MinConns = 20 }},
		{"no streams", func(c *ArchiverConfig) { c.Streams = nil }},
		{"stream without id or name", func(c *ArchiverConfig) { c.Streams[0] = StreamConfig{} }},
		{"zero concurrency", func(c *ArchiverConfig) { c.Poller.Concurrency = -1 }},
		{"feed enabled without url", func(c *ArchiverConfig) { c.Feed.Enabled = true; c.Feed.URL = "" }},
		{"bad health port", func(c *ArchiverConfig) { c.Health.Port = 70000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() = nil error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeTempFile(t, "instance: [unclosed")); err == nil {
		t.Error("Load() = nil error for invalid yaml")
	}
}
