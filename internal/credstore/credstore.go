// Package credstore persists auth.Credentials to a JSON file under the
// user's config directory, the way a CLI session survives across
// invocations without re-running the device-code flow every time.
// Grounded on original_source/tidal-dl/src/main.rs's
// get_config_path/load_credentials/save_credentials.
package credstore

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/tidal-dl/tidal-dl/internal/auth"
	"github.com/tidal-dl/tidal-dl/internal/tidalerr"
)

const (
	appDirName  = "tidal-dl"
	fileName    = "credentials.json"
	dirPerm     = 0o700
	filePerm    = 0o600
)

// Path returns the path credentials are read from and written to,
// creating the containing directory if it doesn't exist yet.
// os.UserConfigDir is the standard-library analogue of the original's
// dirs::config_dir — both resolve to $XDG_CONFIG_HOME (or its platform
// equivalent) with no third-party dependency needed for anything this
// simple.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", tidalerr.IO(err)
	}
	appDir := filepath.Join(configDir, appDirName)
	if err := os.MkdirAll(appDir, dirPerm); err != nil {
		return "", tidalerr.IO(err)
	}
	return filepath.Join(appDir, fileName), nil
}

// Load reads stored credentials, returning (nil, nil) if no credentials
// file exists yet — a fresh install, not an error.
func Load() (*auth.Credentials, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, tidalerr.IO(err)
	}
	var creds auth.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, tidalerr.JSON(err)
	}
	return &creds, nil
}

// Save writes creds to the credentials file, pretty-printed the same way
// the original's serde_json::to_string_pretty does — this file is meant
// to be human-readable for anyone debugging a stuck session.
func Save(creds *auth.Credentials) error {
	path, err := Path()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return tidalerr.JSON(err)
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return tidalerr.IO(err)
	}
	return nil
}
