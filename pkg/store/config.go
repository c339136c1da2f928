package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	DefaultPath    = "~/.jquest"
	DefaultAPIURL  = "http://localhost:3000"
	DefaultTimeout = 30 * time.Second
)

// Config is the resolved client configuration.
type Config interface {
	BasePath() string
	APIURL() string
	Timeout() time.Duration
}

// LoadConfig reads .jquest.yaml from JQUEST_CONFIG_PATH or the working
// directory, with JQUEST_* environment variables taking precedence.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("timeout", DefaultTimeout.String())
	v.SetConfigName(".jquest") // .yaml is implicit
	v.SetEnvPrefix("JQUEST")
	v.AutomaticEnv()

	if override := os.Getenv("JQUEST_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	timeout := v.GetDuration("timeout")
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &fileConfig{
		Path:           path,
		API:            strings.TrimRight(strings.TrimSpace(v.GetString("api_url")), "/"),
		RequestTimeout: timeout,
	}, nil
}

// StaticConfig is a Config with fixed values, used by tests and flags.
func StaticConfig(path, apiURL string, timeout time.Duration) Config {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &fileConfig{Path: path, API: apiURL, RequestTimeout: timeout}
}

// WithAPIURL returns cfg with the API URL replaced when apiURL is set.
func WithAPIURL(cfg Config, apiURL string) Config {
	if strings.TrimSpace(apiURL) == "" {
		return cfg
	}
	return &fileConfig{
		Path:           cfg.BasePath(),
		API:            strings.TrimRight(strings.TrimSpace(apiURL), "/"),
		RequestTimeout: cfg.Timeout(),
	}
}

type fileConfig struct {
	Path           string        `json:"path"`
	API            string        `json:"api_url"`
	RequestTimeout time.Duration `json:"timeout"`
}

func (f *fileConfig) BasePath() string       { return f.Path }
func (f *fileConfig) APIURL() string         { return f.API }
func (f *fileConfig) Timeout() time.Duration { return f.RequestTimeout }
