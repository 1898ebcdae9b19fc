package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stoewer/go-strcase"

	"github.com/omfj/appwash-cli/pkg/env"
)

const (
	configName    = "config"
	configType    = "yaml"
	defaultDirRel = ".appwash"
)

// Config holds the settings of a shell run.
type Config struct {
	APIURL      string        `mapstructure:"api_url"`
	LocationID  string        `mapstructure:"location_id"`
	ServiceType string        `mapstructure:"service_type"`
	Language    string        `mapstructure:"language"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Verbose     bool          `mapstructure:"verbose"`
}

// Init wires viper to the registered environment variables and to an
// optional config.yaml read through fs. A missing file is fine; a file that
// does not parse is not.
func Init(fs afero.Fs) error {
	viper.SetFs(fs)

	for _, v := range env.VarDescriptions() {
		if v.ConfigKey == "" {
			continue
		}
		viper.SetDefault(v.ConfigKey, v.DefaultValue)
		if err := viper.BindEnv(v.ConfigKey, v.Name); err != nil {
			return fmt.Errorf("failed to bind %s: %w", v.Name, err)
		}
	}

	dir, err := Dir()
	if err != nil {
		return err
	}
	viper.SetConfigName(configName)
	viper.SetConfigType(configType)
	viper.AddConfigPath(dir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config from %s: %w", dir, err)
	}
	return nil
}

// Dir returns the directory config.yaml is looked up in.
func Dir() (string, error) {
	if dir := env.ConfigDir.Get(); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultDirRel), nil
}

// Get unmarshals whatever viper currently holds.
func Get() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.ServiceType = NormalizeServiceType(cfg.ServiceType)
	return &cfg, nil
}

// NormalizeServiceType turns user spellings such as "washing-machine" or
// "dryer" into the API's upper snake case constants.
func NormalizeServiceType(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strcase.UpperSnakeCase(s)
}
