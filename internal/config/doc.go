// Package config loads runtime configuration for the FocusFlow CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path to the local SQLite database file
//	-b string   snapshot backend: "file" or "s3"
//	-s string   directory for the file snapshot backend
//	-m string   Anthropic model for smart capture
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the debounce windows, so values can
// be either strings like "2s" or integer nanoseconds:
//
//	{
//	  "database_path": "focusflow.db",
//	  "snapshot_backend": "s3",
//	  "snapshot_dir": "snapshots",
//	  "tasks_debounce": "2s",
//	  "vault_debounce": "5s",
//	  "s3_region": "us-east-1",
//	  "s3_endpoint": "http://127.0.0.1:9000",
//	  "s3_bucket": "focusflow",
//	  "s3_access_key": "minioadmin",
//	  "s3_secret_key": "minioadmin",
//	  "anthropic_model": "claude-sonnet-4-20250514"
//	}
//
// The Anthropic API key is never read from JSON or flags; it comes from the
// ANTHROPIC_API_KEY environment variable only.
package config
