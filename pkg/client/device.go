package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DeviceFile is the identity a device keeps across restarts.
type DeviceFile struct {
	AnonymousSessionID string `yaml:"anonymous_session_id"`
	UserID             string `yaml:"user_id,omitempty"`
	SessionToken       string `yaml:"session_token,omitempty"`
}

// LoadDeviceFile reads the device file at path, creating it with a fresh anonymous session id
// on first use.
func LoadDeviceFile(path string) (*DeviceFile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		f := &DeviceFile{AnonymousSessionID: uuid.NewString()}
		if err := f.Save(path); err != nil {
			return nil, err
		}
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read device file: %w", err)
	}

	var f DeviceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse device file: %w", err)
	}
	if f.AnonymousSessionID == "" {
		f.AnonymousSessionID = uuid.NewString()
		if err := f.Save(path); err != nil {
			return nil, err
		}
	}
	return &f, nil
}

// Save writes the file atomically with owner-only permissions.
func (f *DeviceFile) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode device file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create device dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write device file: %w", err)
	}
	return os.Rename(tmp, path)
}

// Identity is the user identity when the device holds a session for one, the anonymous
// session otherwise.
func (f *DeviceFile) Identity() tournamenttypes.Identity {
	if f.UserID != "" && f.SessionToken != "" {
		return tournamenttypes.UserIdentity(tournamenttypes.UserID(f.UserID))
	}
	return tournamenttypes.AnonymousIdentity(tournamenttypes.AnonymousSessionID(f.AnonymousSessionID))
}

// SignIn records an authenticated user session.
func (f *DeviceFile) SignIn(userID, token string) {
	f.UserID = userID
	f.SessionToken = token
}

// SignOut falls back to the anonymous identity.
func (f *DeviceFile) SignOut() {
	f.UserID = ""
	f.SessionToken = ""
}
