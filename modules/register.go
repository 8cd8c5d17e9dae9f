// Package modules provides shared module registration for the styler server.
package modules

import (
	"context"
	"database/sql"
	"time"

	"github.com/TheLab-ms/styler/engine"
	"github.com/TheLab-ms/styler/engine/settings"
	"github.com/TheLab-ms/styler/modules/dashboard"
	"github.com/TheLab-ms/styler/modules/embed"
	"github.com/TheLab-ms/styler/modules/theme"
)

// Options configures module registration.
type Options struct {
	Database *sql.DB
	Settings *settings.Store
	Events   *engine.EventLogger

	// Catalog defaults to the built-in widget library when nil.
	Catalog *dashboard.Catalog

	SaveRatePerSecond int
	SessionTTL        time.Duration
}

// Register adds all modules to the app and returns the embed module, whose
// store backs the dashboard.
func Register(ctx context.Context, a *engine.App, opts Options) *embed.Module {
	catalog := opts.Catalog
	if catalog == nil {
		catalog = dashboard.DefaultCatalog()
	}

	// The embed module owns the widget_instances table, so it goes first.
	editor := embed.New(opts.Database, opts.Events, opts.SaveRatePerSecond, opts.SessionTTL)
	a.Add(editor)

	a.Add(dashboard.New(catalog, editor.Store()))
	a.Add(theme.New(ctx, opts.Settings))

	return editor
}
