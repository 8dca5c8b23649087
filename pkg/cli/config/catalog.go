package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/mailcrest/mailcrest/pkg/catalog"
)

// Catalog holds CLI flags for the action catalog source
type Catalog struct {
	source string
}

// Flags returns CLI flags for catalog configuration
func (x *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Catalog document source: a file path or gs://bucket/object (empty for the built-in catalog)",
			Sources:     cli.EnvVars("MAILCREST_CATALOG"),
			Destination: &x.source,
		},
	}
}

// Configure loads and validates the catalog document from the configured
// source, falling back to the built-in catalog when no source is set.
func (x *Catalog) Configure(ctx context.Context) (*catalog.ActionCatalog, *catalog.CompoundCatalog, error) {
	if x.source == "" {
		actions, compounds, err := catalog.LoadDefault()
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to load built-in catalog")
		}
		return actions, compounds, nil
	}

	actions, compounds, err := catalog.Load(ctx, x.source)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load catalog", goerr.V("source", x.source))
	}
	return actions, compounds, nil
}

// Source returns the configured catalog source, or "(built-in)" when unset
func (x *Catalog) Source() string {
	if x.source == "" {
		return "(built-in)"
	}
	return x.source
}

// LogValue renders the catalog config for startup logging
func (x Catalog) LogValue() slog.Value {
	return slog.GroupValue(slog.String("source", x.Source()))
}
