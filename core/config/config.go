// Package config provides configuration management for issueboss.
//
// Values come, in increasing precedence, from defaults, an optional YAML
// config file, ISSUEBOSS_* environment variables and command-line flags.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	ierr "github.com/gaurav-prasanna/issueboss/core/errors"
)

// EnvPrefix is the prefix of environment overrides (ISSUEBOSS_TRELLO_BOARD).
const EnvPrefix = "ISSUEBOSS"

// Config is the resolved configuration.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	Input    string `mapstructure:"input" yaml:"input" validate:"oneof=auto markdown toml html"`
	Color    string `mapstructure:"color" yaml:"color" validate:"oneof=auto always never"`
	Trello   Trello `mapstructure:"trello" yaml:"trello"`
	Gitlab   Gitlab `mapstructure:"gitlab" yaml:"gitlab"`
}

// Trello configures the trello CLI adapter.
type Trello struct {
	Command  string `mapstructure:"command" yaml:"command" validate:"required"`
	Board    string `mapstructure:"board" yaml:"board"`
	List     string `mapstructure:"list" yaml:"list"`
	Position string `mapstructure:"position" yaml:"position" validate:"oneof=top bottom"`
}

// Gitlab configures the glab CLI adapter.
type Gitlab struct {
	Command   string `mapstructure:"command" yaml:"command" validate:"required"`
	Project   string `mapstructure:"project" yaml:"project"`
	LabelsKey string `mapstructure:"labels_key" yaml:"labels_key"`
}

// trelloTarget holds what the trello subcommand cannot run without.
type trelloTarget struct {
	Board string `validate:"required"`
	List  string `validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		return name
	})
	return v
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("input", "auto")
	v.SetDefault("color", "auto")
	v.SetDefault("trello.command", "trello")
	v.SetDefault("trello.board", "")
	v.SetDefault("trello.list", "")
	v.SetDefault("trello.position", "bottom")
	v.SetDefault("gitlab.command", "glab")
	v.SetDefault("gitlab.project", "")
	v.SetDefault("gitlab.labels_key", "labels")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds flags to config keys. bindings maps flag name to key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, bindings map[string]string) error {
	for name, key := range bindings {
		flag := fs.Lookup(name)
		if flag == nil {
			return ierr.Config(nil, "unknown flag %q", name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return ierr.Config(err, "binding flag %q", name)
		}
	}
	return nil
}

// DefaultPaths lists the config files tried when no path is given.
func DefaultPaths() []string {
	paths := []string{".issueboss.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "issueboss", "config.yaml"))
	}
	return paths
}

// Load reads the config file (an explicit path must exist; default paths
// are optional), decodes and validates.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path == "" {
		for _, candidate := range DefaultPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, ierr.Config(err, "reading config file %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, ierr.Config(err, "decoding config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	return validationError(validate.Struct(c))
}

// ValidateTrello checks that a board and list are known.
func (c *Config) ValidateTrello() error {
	return validationError(validate.Struct(trelloTarget{Board: c.Trello.Board, List: c.Trello.List}))
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ierr.Config(err, "invalid configuration")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		_, field, _ := strings.Cut(fe.Namespace(), ".")
		field = strings.ToLower(field)
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, field+" must be one of: "+fe.Param())
		default:
			msgs = append(msgs, field+" failed "+fe.Tag())
		}
	}
	return ierr.Config(nil, "invalid configuration: %s", strings.Join(msgs, "; "))
}
