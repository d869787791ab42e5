package config

import (
	"os"
	"time"
)

// Snapshot backend identifiers.
const (
	BackendFile = "file"
	BackendS3   = "s3"
)

// Config holds runtime settings for the FocusFlow CLI.
//
// TasksDebounce and VaultDebounce are the coalescing windows before a local
// mutation is pushed to the remote snapshot.
type Config struct {
	DatabasePath string

	SnapshotBackend string
	SnapshotDir     string
	S3Region        string
	S3Endpoint      string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string

	TasksDebounce time.Duration
	VaultDebounce time.Duration

	AnthropicAPIKey string
	AnthropicModel  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "focusflow.db"
	c.SnapshotBackend = BackendFile
	c.SnapshotDir = "snapshots"
	c.TasksDebounce = 2 * time.Second
	c.VaultDebounce = 5 * time.Second
	c.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	c.AnthropicModel = "claude-sonnet-4-20250514"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
