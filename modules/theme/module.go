// Package theme stores the dashboard's light/dark color theme.
package theme

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/TheLab-ms/styler/engine"
	"github.com/TheLab-ms/styler/engine/settings"
	"github.com/julienschmidt/httprouter"
)

const (
	Light = "light"
	Dark  = "dark"

	settingKey = "ui.theme"
)

func valid(theme string) bool { return theme == Light || theme == Dark }

type Module struct {
	settings *settings.Store

	mu      sync.RWMutex
	current string
}

func New(ctx context.Context, store *settings.Store) *Module {
	m := &Module{settings: store}
	store.Watch(ctx, settingKey, func(v string) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.current = v
	})
	return m
}

// Current returns the stored theme, falling back to dark.
func (m *Module) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !valid(m.current) {
		return Dark
	}
	return m.current
}

func (m *Module) AttachRoutes(router *engine.Router) {
	router.Handle("GET", "/api/theme", m.getTheme)
	router.Handle("PUT", "/api/theme", m.setTheme)
	router.Handle("POST", "/api/theme/toggle", m.toggleTheme)
}

type themeBody struct {
	Theme string `json:"theme"`
}

func (m *Module) getTheme(r *http.Request, ps httprouter.Params) engine.Response {
	return engine.JSON(themeBody{Theme: m.Current()})
}

func (m *Module) setTheme(r *http.Request, ps httprouter.Params) engine.Response {
	var req themeBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return engine.ClientErrorf("invalid request body: %s", err)
	}
	if !valid(req.Theme) {
		return engine.ClientErrorf("theme must be %q or %q", Light, Dark)
	}
	if err := m.settings.Set(r.Context(), settingKey, req.Theme); err != nil {
		return engine.Error(err)
	}
	return engine.JSON(req)
}

func (m *Module) toggleTheme(r *http.Request, ps httprouter.Params) engine.Response {
	next := Light
	if m.Current() == Light {
		next = Dark
	}
	if err := m.settings.Set(r.Context(), settingKey, next); err != nil {
		return engine.Error(err)
	}
	return engine.JSON(themeBody{Theme: next})
}
