package settings

import (
	"context"
	"os"
)

// Definition defines a setting for registration.
type Definition struct {
	Key         string
	Module      string
	Description string
	Default     string

	// Env optionally names an environment variable used to seed the value
	// the first time the setting is seen.
	Env string
}

// Definitions contains all known settings.
var Definitions = []Definition{
	{Key: "ui.theme", Module: "theme", Description: "Dashboard color theme (light or dark)", Default: "dark", Env: "STYLER_DefaultTheme"},
}

// EnsureDefaults inserts all defined settings that don't exist yet.
// Existing values are never overwritten.
func (s *Store) EnsureDefaults(ctx context.Context) error {
	for _, def := range Definitions {
		value := def.Default
		if def.Env != "" {
			if v := os.Getenv(def.Env); v != "" {
				value = v
			}
		}

		_, err := s.db.ExecContext(ctx, `
			INSERT INTO settings (key, module, description, value)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				module = excluded.module,
				description = excluded.description
		`, def.Key, def.Module, def.Description, value)
		if err != nil {
			return err
		}
	}
	return nil
}
