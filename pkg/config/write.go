package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// WriteDefaultConfig writes the embedded default config to path, and the
// JSON schema next to it. An existing config is left alone unless force is
// set, in which case it is first renamed to a timestamped backup.
func WriteDefaultConfig(path string, force bool) error {
	exists := false

	info, err := os.Stat(path)
	if info != nil {
		switch {
		case err == nil && info.Mode().IsRegular():
			exists = true
		case info.IsDir():
			return fmt.Errorf("%s: path is a directory", path)
		default:
			return fmt.Errorf("%s: unknown file state", path)
		}
	}

	dir := filepath.Dir(path)

	err = os.MkdirAll(dir, 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	if exists && force {
		backup := filepath.Join(dir, fmt.Sprintf("%s.%d.old", filepath.Base(path), time.Now().UnixNano()))
		slog.Info("backing up existing config file",
			slog.String("path", backup),
		)

		err = os.Rename(path, backup)
		if err != nil {
			return fmt.Errorf("rename existing config file to backup: %w", err)
		}

		exists = false
	}

	if exists {
		slog.Debug("configuration file already exists, skipping write",
			slog.String("path", path),
		)
	} else {
		slog.Info("write default configuration",
			slog.String("path", path),
		)

		err = os.WriteFile(path, defaultConfigYAML, 0o600)
		if err != nil {
			return fmt.Errorf("write config file: %w", err)
		}
	}

	schemaPath := filepath.Join(dir, SchemaFile)
	slog.Debug("write JSON schema",
		slog.String("path", schemaPath),
	)

	err = os.WriteFile(schemaPath, schemaJSON, 0o600)
	if err != nil {
		return fmt.Errorf("write schema file: %w", err)
	}

	return nil
}
