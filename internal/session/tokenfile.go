package session

import (
	"os"

	"gopkg.in/yaml.v3"
)

// storedSession is the durable remnant of a sign-in: just enough to restore
// the session through a refresh grant on the next start.
type storedSession struct {
	RefreshToken string `yaml:"refresh_token"`
}

// tokenFile persists the refresh token between runs. An empty path disables
// persistence entirely.
type tokenFile struct {
	path string
}

// Load returns the stored refresh token, or "" when none is stored.
func (f tokenFile) Load() string {
	if f.path == "" {
		return ""
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return ""
	}

	var stored storedSession
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return ""
	}
	return stored.RefreshToken
}

// Save writes the refresh token. The file is a credential, hence 0o600.
func (f tokenFile) Save(refreshToken string) error {
	if f.path == "" {
		return nil
	}
	data, err := yaml.Marshal(storedSession{RefreshToken: refreshToken})
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

// Clear removes the stored token.
func (f tokenFile) Clear() {
	if f.path == "" {
		return
	}
	_ = os.Remove(f.path)
}
