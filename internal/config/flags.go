package config

import (
	"flag"
	"os"

	"github.com/focusflow/focusflow/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the local SQLite database file
//	-b string   snapshot backend: "file" or "s3"
//	-s string   directory for the file snapshot backend
//	-m string   Anthropic model for smart capture
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-b", "-s", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	fs.StringVar(&cfg.SnapshotBackend, "b", cfg.SnapshotBackend, "snapshot backend (file or s3)")
	fs.StringVar(&cfg.SnapshotDir, "s", cfg.SnapshotDir, "directory for the file snapshot backend")
	fs.StringVar(&cfg.AnthropicModel, "m", cfg.AnthropicModel, "model used for smart capture")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
