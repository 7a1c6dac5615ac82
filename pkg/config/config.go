// Package config loads the run configuration of the documentation generator.
//
// Settings come from a testdoc.yaml file and TESTDOC_* environment variables,
// with environment values taking precedence. List values such as
// TESTDOC_FILTERS_INCLUDE_TAGS are comma separated; replacements can only be
// set in the file:
//
//	title: Checkout Suite
//	tags_chart: true
//	precision: 2
//	inputs: ["build/testdoc/**/*.yaml"]
//	filters:
//	  include_tags: ["Feature:.*"]
//	  exclude_methods: [".*Flaky.*"]
//	replacements:
//	  - pattern: "api"
//	    replacement: "API"
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/specvital/testdoc/pkg/docmodel"
	"github.com/specvital/testdoc/pkg/domain"
	"github.com/specvital/testdoc/pkg/filter"
	"github.com/specvital/testdoc/pkg/narrative"
	"github.com/specvital/testdoc/pkg/stats"
)

const (
	// DefaultName is the config file name searched for, without extension.
	DefaultName = "testdoc"
	// EnvPrefix prefixes environment overrides (e.g., TESTDOC_TITLE).
	EnvPrefix = "TESTDOC"
)

// DefaultInputs selects hand-off files when no input is configured.
var DefaultInputs = []string{"**/*.testdoc.yaml"}

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the run configuration.
type Config struct {
	CaseSensitive bool                    `mapstructure:"case_sensitive"`
	DarkMode      bool                    `mapstructure:"dark_mode"`
	Filters       filter.Patterns         `mapstructure:"filters"`
	Header        string                  `mapstructure:"header"`
	Inputs        []string                `mapstructure:"inputs" validate:"dive,required"`
	MatchTimeout  time.Duration           `mapstructure:"match_timeout" validate:"gte=0"`
	Precision     int                     `mapstructure:"precision" validate:"oneof=1 2"`
	Replacements  []narrative.Replacement `mapstructure:"replacements"`
	TagsChart     bool                    `mapstructure:"tags_chart"`
	Title         string                  `mapstructure:"title"`
	Workers       int                     `mapstructure:"workers" validate:"gte=0"`
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		Inputs:       append([]string(nil), DefaultInputs...),
		MatchTimeout: filter.DefaultMatchTimeout,
		Precision:    int(stats.DefaultPrecision),
		Title:        domain.DefaultTitle,
	}
}

type loadOptions struct {
	file        string
	searchPaths []string
}

// Option is a functional option for Load.
type Option func(*loadOptions)

// WithFile loads the given file instead of searching for testdoc.yaml.
// A missing file is an error.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.file = path
	}
}

// WithSearchPath adds a directory searched for testdoc.yaml.
func WithSearchPath(dir string) Option {
	return func(o *loadOptions) {
		if dir != "" {
			o.searchPaths = append(o.searchPaths, dir)
		}
	}
}

// Load reads the configuration. Without WithFile, a missing testdoc.yaml
// falls back to defaults and environment overrides.
func Load(opts ...Option) (*Config, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if o.file != "" {
		v.SetConfigFile(o.file)
	} else {
		v.SetConfigName(DefaultName)
		v.SetConfigType("yaml")
		if len(o.searchPaths) == 0 {
			v.AddConfigPath(".")
		}
		for _, dir := range o.searchPaths {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if o.file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unable to decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("case_sensitive", d.CaseSensitive)
	v.SetDefault("dark_mode", d.DarkMode)
	v.SetDefault("header", d.Header)
	v.SetDefault("inputs", d.Inputs)
	v.SetDefault("match_timeout", d.MatchTimeout)
	v.SetDefault("precision", d.Precision)
	v.SetDefault("tags_chart", d.TagsChart)
	v.SetDefault("title", d.Title)
	v.SetDefault("workers", d.Workers)

	// Registered so AutomaticEnv picks up TESTDOC_FILTERS_* (comma separated).
	for _, key := range filterKeys {
		v.SetDefault(key, []string{})
	}
}

var filterKeys = []string{
	"filters.exclude_methods",
	"filters.exclude_tags",
	"filters.include_methods",
	"filters.include_tags",
}

var validate = validator.New()

// Validate checks the values Load cannot coerce: precision is 1 or 2,
// workers and match_timeout are not negative, and no input glob is empty.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q (value %v)", ErrInvalidConfig, fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Settings returns the presentation settings.
func (c *Config) Settings() domain.Settings {
	return domain.Settings{
		DarkMode:  c.DarkMode,
		Header:    c.Header,
		TagsChart: c.TagsChart,
		Title:     c.Title,
	}
}

// Build compiles the filters and returns the assembler configuration.
// A nil logger disables filter logging.
func (c *Config) Build(logger *zap.SugaredLogger) (docmodel.Config, error) {
	if err := c.Validate(); err != nil {
		return docmodel.Config{}, err
	}

	filterOpts := []filter.Option{
		filter.WithCaseSensitive(c.CaseSensitive),
		filter.WithMatchTimeout(c.MatchTimeout),
	}
	if logger != nil {
		filterOpts = append(filterOpts, filter.WithLogger(logger))
	}

	f, err := filter.New(c.Filters, filterOpts...)
	if err != nil {
		return docmodel.Config{}, fmt.Errorf("config: filters: %w", err)
	}

	return docmodel.Config{
		Filter:       f,
		Precision:    stats.Precision(c.Precision),
		Replacements: append([]narrative.Replacement(nil), c.Replacements...),
		Settings:     c.Settings(),
	}, nil
}
