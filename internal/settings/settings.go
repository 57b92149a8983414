// Package settings loads the editor's own preferences.
//
// Preferences live in a TOML file, by default
// $XDG_CONFIG_HOME/hconf/settings.toml. A missing file is not an error;
// every field has a default.
package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// DefaultConfigPath is the config file edited when nothing else is given.
const DefaultConfigPath = "~/.config/hypr/hyprland.conf"

// Settings holds the editor preferences.
type Settings struct {
	// ConfigPath is the file to edit. "~" and $VARS are expanded.
	ConfigPath string `toml:"config_path"`

	// Indent is the number of spaces written per nesting level on save.
	Indent int `toml:"indent"`

	// Tabs indents with tabs instead of spaces and overrides Indent.
	Tabs bool `toml:"tabs"`

	// Watch reloads the file when another program changes it.
	Watch bool `toml:"watch"`

	// Backup keeps the previous version as "<config_path>~" on save.
	Backup bool `toml:"backup"`
}

// Default returns the settings used when no settings file exists.
func Default() *Settings {
	return &Settings{
		ConfigPath: DefaultConfigPath,
		Indent:     4,
		Watch:      true,
	}
}

// DefaultPath returns the location of the settings file.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = filepath.Join("~", ".config")
	}
	return ExpandPath(filepath.Join(dir, "hconf", "settings.toml"))
}

// Load reads settings from path. Fields missing from the file keep their
// defaults and a missing file yields Default().
func Load(path string) (*Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			glog.V(1).Infof("no settings file at %s, using defaults", path)
			s.ConfigPath = ExpandPath(s.ConfigPath)
			return s, nil
		}
		return nil, errors.Wrapf(err, "read settings %s", path)
	}

	if err := toml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrapf(err, "parse settings %s", path)
	}
	if err := s.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid settings %s", path)
	}

	s.ConfigPath = ExpandPath(s.ConfigPath)
	return s, nil
}

func (s *Settings) validate() error {
	if s.Indent < 0 {
		return errors.Errorf("indent must not be negative, got %d", s.Indent)
	}
	if strings.TrimSpace(s.ConfigPath) == "" {
		return errors.New("config_path must not be empty")
	}
	return nil
}

// ExpandPath expands environment variables and a leading "~" in path.
// Supports $VAR and ${VAR} syntax.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			glog.Warningf("cannot expand %q: %v", path, err)
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
