package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// HomeFile is the config file name looked up in the home directory.
	HomeFile = ".nepo.yml"
	// XDGFile is the config file looked up in the XDG config directories.
	XDGFile = "nepo/config.yaml"
)

var ErrNoHome = errors.New("unable to find home directory")

// GetPath returns the config file to load. A non-empty override is returned
// as-is. Otherwise ~/.nepo.yml is used if it exists, then nepo/config.yaml in
// the XDG config directories, and finally ~/.nepo.yml even though it is
// missing, so that the error names the expected file.
func GetPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoHome, err)
	}

	homePath := filepath.Join(home, HomeFile)
	if isFile(homePath) {
		return homePath, nil
	}

	xdgPath, err := xdg.SearchConfigFile(XDGFile)
	if err == nil {
		return xdgPath, nil
	}

	slog.Debug("no config file found",
		slog.String("home", homePath),
		slog.Any("xdg", err),
	)

	return homePath, nil
}

// DefaultWritePath is where --write-config puts a new config file when no
// path is given: the XDG config home.
func DefaultWritePath() (string, error) {
	p, err := xdg.ConfigFile(XDGFile)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}

	return p, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
