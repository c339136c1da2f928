// Package runner holds what every command runner shares: how results are
// written and how the Service is assembled from configuration.
package runner

import (
	"fmt"
	"io"
	"net/url"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"tableflip.dev/jquest/pkg/api"
	"tableflip.dev/jquest/pkg/app"
	"tableflip.dev/jquest/pkg/printers"
	"tableflip.dev/jquest/pkg/store"
)

// Output is where and how a runner writes its result.
type Output struct {
	Format printers.Format
	Out    io.Writer
	ShowID bool
}

func (o Output) Writer() io.Writer {
	if o.Out == nil {
		return color.Output
	}
	return o.Out
}

// Structured reports whether results are encoded instead of pretty printed.
func (o Output) Structured() bool {
	return o.Format == printers.FormatJSON || o.Format == printers.FormatYAML
}

func (o Output) Pretty() *printers.PrettyPrint {
	return &printers.PrettyPrint{ShowID: o.ShowID, Out: o.Writer()}
}

// Encode writes v in the structured format.
func (o Output) Encode(v interface{}) error {
	return printers.Encode(o.Writer(), o.Format, v)
}

// Env is what a command needs to build a Service.
type Env struct {
	// APIURL overrides the configured API root when set.
	APIURL string
	Log    *zap.Logger

	// Config defaults to store.LoadConfig.
	Config store.Config
}

// Service loads configuration and persistence and connects the API client
// to the persisted session cookie.
func (e *Env) Service() (*app.Service, error) {
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	cfg := e.Config
	if cfg == nil {
		var err error
		if cfg, err = store.LoadConfig(); err != nil {
			return nil, err
		}
	}
	if e.APIURL != "" {
		cfg = store.WithAPIURL(cfg, e.APIURL)
	}

	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	origin, err := url.Parse(cfg.APIURL())
	if err != nil {
		return nil, fmt.Errorf("api url %q: %w", cfg.APIURL(), err)
	}
	jar, err := api.NewPersistentJar(origin, p)
	if err != nil {
		return nil, err
	}
	client, err := api.New(api.Options{
		BaseURL: cfg.APIURL(),
		Timeout: cfg.Timeout(),
		Jar:     jar,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}
	log.Debug("service ready",
		zap.String("api_url", cfg.APIURL()),
		zap.String("path", cfg.BasePath()))

	svc := app.New(client, p, log)
	svc.Cookies = jar
	return svc, nil
}

// Failure prints the user facing messages for err and returns err so the
// process exits non-zero.
func Failure(o Output, err error, fallback string) error {
	if err == nil || o.Structured() {
		return err
	}
	o.Pretty().Messages(app.FailureMessages(err, fallback))
	return err
}
