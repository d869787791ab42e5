package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/focusflow/focusflow/internal/flagx"
	"github.com/focusflow/focusflow/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the debounce windows either as strings
// like "2s" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config (which uses time.Duration).
type JsonConfig struct {
	DatabasePath    string          `json:"database_path"`
	SnapshotBackend string          `json:"snapshot_backend"`
	SnapshotDir     string          `json:"snapshot_dir"`
	S3Region        string          `json:"s3_region"`
	S3Endpoint      string          `json:"s3_endpoint"`
	S3Bucket        string          `json:"s3_bucket"`
	S3AccessKey     string          `json:"s3_access_key"`
	S3SecretKey     string          `json:"s3_secret_key"`
	TasksDebounce   *timex.Duration `json:"tasks_debounce"`
	VaultDebounce   *timex.Duration `json:"vault_debounce"`
	AnthropicModel  string          `json:"anthropic_model"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags via flagx.JsonConfigFlags; when no
// path is given the Config is left untouched. Absent JSON fields keep the
// value already in Config.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.SnapshotBackend != "" {
		cfg.SnapshotBackend = jc.SnapshotBackend
	}
	if jc.SnapshotDir != "" {
		cfg.SnapshotDir = jc.SnapshotDir
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3Endpoint != "" {
		cfg.S3Endpoint = jc.S3Endpoint
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
	if jc.TasksDebounce != nil {
		cfg.TasksDebounce = time.Duration(jc.TasksDebounce.Duration)
	}
	if jc.VaultDebounce != nil {
		cfg.VaultDebounce = time.Duration(jc.VaultDebounce.Duration)
	}
	if jc.AnthropicModel != "" {
		cfg.AnthropicModel = jc.AnthropicModel
	}
}
