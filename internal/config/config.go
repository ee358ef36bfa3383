// Package config loads and stores deskbridge configuration in the XDG config dir.
// The file is YAML; a missing file yields defaults that match the KWin plugin.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"deskbridge/cli/internal/errors"
	"deskbridge/cli/internal/xdg"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultObjectPath is where the KWin plugin registers its object.
	DefaultObjectPath = "/WindowManager"
	// DefaultInterface is the D-Bus interface of the window manager object.
	DefaultInterface = "io.github.deskbridge.WindowManager"
	// DefaultMaxFrameSize bounds inbound frames; browsers cap messages to
	// the host at 64 MiB.
	DefaultMaxFrameSize = 64 << 20
	socketName          = "deskbridge.socket"
)

// Config holds deskbridge settings.
type Config struct {
	Remote RemoteConfig `yaml:"remote"`
	Bridge BridgeConfig `yaml:"bridge"`
	Log    LogConfig    `yaml:"log"`
}

// RemoteConfig locates the window manager's peer D-Bus server. Setting
// Destination treats Address as a message bus and the object as owned by
// that bus name.
type RemoteConfig struct {
	Address       string        `yaml:"address"`
	ObjectPath    string        `yaml:"object_path"`
	Interface     string        `yaml:"interface"`
	Destination   string        `yaml:"destination,omitempty"`
	AnonymousAuth bool          `yaml:"anonymous_auth"`
	CallTimeout   time.Duration `yaml:"call_timeout"`
	DialTimeout   time.Duration `yaml:"dial_timeout"`
}

// BridgeConfig tunes the stdio side.
type BridgeConfig struct {
	MaxFrameSize   uint32 `yaml:"max_frame_size"`
	StrictRequests bool   `yaml:"strict_requests"`
	DebugTraces    bool   `yaml:"debug_traces"`
}

// LogConfig controls logging. An empty File logs to stderr; a relative
// File is placed in the XDG state dir.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Remote: RemoteConfig{
			Address:     "unix:path=" + filepath.Join(xdg.RuntimeDir(), socketName),
			ObjectPath:  DefaultObjectPath,
			Interface:   DefaultInterface,
			DialTimeout: 10 * time.Second,
		},
		Bridge: BridgeConfig{
			MaxFrameSize:   DefaultMaxFrameSize,
			StrictRequests: true,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads configuration from path, or from Path() when path is empty.
// A missing file returns defaults; fields absent from the file keep their
// defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return c, err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, errors.Wrap(errors.ConfigInvalid, "parse "+path, err)
	}
	return c, c.Validate()
}

// Save writes configuration to path (Path() when empty) with 0600 permissions.
func Save(path string, c Config) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// Validate checks fields the bridge cannot run without.
func (c Config) Validate() error {
	switch {
	case c.Remote.Address == "":
		return errors.New(errors.ConfigInvalid, "remote.address is required")
	case c.Remote.ObjectPath == "" || c.Remote.ObjectPath[0] != '/':
		return errors.New(errors.ConfigInvalid, fmt.Sprintf("remote.object_path %q must be absolute", c.Remote.ObjectPath))
	case c.Remote.Interface == "":
		return errors.New(errors.ConfigInvalid, "remote.interface is required")
	case c.Remote.CallTimeout < 0 || c.Remote.DialTimeout < 0:
		return errors.New(errors.ConfigInvalid, "remote timeouts must not be negative")
	}
	return nil
}

// LogFile resolves Log.File against the XDG state dir. It returns "" when
// logging goes to stderr.
func (c Config) LogFile() (string, error) {
	if c.Log.File == "" || filepath.IsAbs(c.Log.File) {
		return c.Log.File, nil
	}
	dir, err := xdg.StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Log.File), nil
}
