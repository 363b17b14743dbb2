package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Conf holds values from the optional config file and from command-line
// overrides. Environment variables are read through it as well.
var Conf = newViper()

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.AutomaticEnv()
	return v
}

type Config interface {
	EnvConfig
	ClientConfig
	SessionConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

// ClientConfig covers the outbound API client.
type ClientConfig interface {
	GetBaseURL() string
	GetLoginPath() string
	GetDashboardPath() string
	GetHTTPTimeout() time.Duration
}

type mainConfig struct {
	EnvVars
	Client
	Session
}

func New() Config {
	return mainConfig{}
}

// DefaultFile is $HOME/.schoolctl/config.yaml.
func DefaultFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".schoolctl", "config.yaml")
	}
	return filepath.Join(home, ".schoolctl", "config.yaml")
}

// Load reads a YAML config file whose keys are the environment variable
// names in lower case (school_base_url: https://...). Environment variables
// still win over the file. A missing file is not an error unless required.
func Load(path string, required bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrapf(err, "[config.Load] %s", path)
	}
	Conf.SetConfigFile(path)
	Conf.SetConfigType("yaml")
	if err := Conf.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "[config.Load] %s", path)
	}
	return nil
}

// Override sets envVar for the rest of the process, taking precedence over
// the environment and the config file. Used for command-line flags.
func Override(envVar, value string) {
	Conf.Set(strings.ToLower(envVar), value)
}

// Reset drops the config file and all overrides.
func Reset() {
	Conf = newViper()
}
