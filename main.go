// Styler is the dashboard server: it serves the widget catalog, the widgets
// placed on the dashboard and the editor that styles and embeds them.
// Persistent state lives in sqlite.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/TheLab-ms/styler/db"
	"github.com/TheLab-ms/styler/engine"
	"github.com/TheLab-ms/styler/engine/settings"
	"github.com/TheLab-ms/styler/modules"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	HttpAddr string `envDefault:":8080"`

	// Dir holds the sqlite database.
	Dir string `envDefault:"."`

	// SaveRatePerSecond caps how fast queued widget saves are written.
	SaveRatePerSecond int `envDefault:"10"`

	// SessionTTL is how long an idle editor session is kept.
	SessionTTL time.Duration `envDefault:"1h"`

	LogLevel slog.Level `envDefault:"INFO"`
}

func main() {
	conf, err := env.ParseAsWithOptions[Config](env.Options{Prefix: "STYLER_", UseFieldNameByDefault: true})
	if err != nil {
		panic(err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: conf.LogLevel,
	})))

	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		err := engine.CheckHealthProbe("http://localhost" + conf.HttpAddr + "/healthz")
		if err != nil {
			panic(err)
		}
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := newApp(ctx, conf)
	if err != nil {
		panic(err)
	}

	slog.Info("starting server", "addr", conf.HttpAddr)
	app.Run(ctx)
}

func newApp(ctx context.Context, conf Config) (*engine.App, error) {
	if conf.SaveRatePerSecond <= 0 {
		return nil, fmt.Errorf("SaveRatePerSecond must be positive, got %d", conf.SaveRatePerSecond)
	}

	database, err := db.Open(filepath.Join(conf.Dir, "styler.sqlite3"))
	if err != nil {
		return nil, err
	}

	settingsStore := settings.New(database)
	if err := settingsStore.EnsureDefaults(ctx); err != nil {
		return nil, fmt.Errorf("seeding settings: %w", err)
	}

	router := engine.NewRouter(nil)
	router.HandleFunc("GET", "/healthz", engine.ServeHealthProbe(database))

	a := engine.NewApp(conf.HttpAddr, router)
	modules.Register(ctx, a, modules.Options{
		Database:          database,
		Settings:          settingsStore,
		Events:            engine.NewEventLogger(database),
		SaveRatePerSecond: conf.SaveRatePerSecond,
		SessionTTL:        conf.SessionTTL,
	})

	return a, nil
}
