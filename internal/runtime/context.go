// Package runtime holds the shared application state handed to the
// command layer.
package runtime

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MSSputnik/RVEZeitmessung/internal/conf"
	"github.com/MSSputnik/RVEZeitmessung/internal/datastore"
	"github.com/MSSputnik/RVEZeitmessung/internal/logging"
	"github.com/MSSputnik/RVEZeitmessung/internal/observability/metrics"
)

// Context holds the overall application state: the settings, the opened
// store and the metrics collectors.
type Context struct {
	Settings *conf.Settings
	Store    datastore.Interface
	Metrics  *metrics.StoreMetrics
	Log      *slog.Logger
}

// NewContext creates a new Context with the provided settings and a
// private metrics registry.
func NewContext(settings *conf.Settings) (*Context, error) {
	registry := prometheus.NewRegistry()
	storeMetrics, err := metrics.NewStoreMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("initializing metrics: %w", err)
	}
	return &Context{
		Settings: settings,
		Metrics:  storeMetrics,
		Log:      logging.ForService("zeitnahme"),
	}, nil
}

// OpenStore constructs and opens the datastore configured in the
// settings. It is idempotent.
func (c *Context) OpenStore() error {
	if c.Store != nil {
		return nil
	}
	store := datastore.New(c.Settings)
	if store == nil {
		return fmt.Errorf("no database output is enabled in the configuration")
	}
	if err := store.Open(); err != nil {
		return err
	}
	if c.Log != nil {
		c.Log.Debug("opened datastore", "path", c.Settings.Output.SQLite.Path)
	}
	c.Store = store
	return nil
}

// CloseStore closes the datastore when one was opened.
func (c *Context) CloseStore() error {
	if c.Store == nil {
		return nil
	}
	err := c.Store.Close()
	c.Store = nil
	return err
}
