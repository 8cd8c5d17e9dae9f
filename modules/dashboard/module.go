// Package dashboard serves the widget catalog and the widgets placed on the
// dashboard grid.
package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TheLab-ms/styler/engine"
	"github.com/TheLab-ms/styler/modules/embed"
	"github.com/julienschmidt/httprouter"
)

// gridColumns is the width of the dashboard grid.
const gridColumns = 12

type Module struct {
	catalog *Catalog
	store   *embed.Store
}

func New(catalog *Catalog, store *embed.Store) *Module {
	return &Module{catalog: catalog, store: store}
}

func (m *Module) AttachRoutes(router *engine.Router) {
	router.Handle("GET", "/api/catalog", m.getCatalog)
	router.Handle("GET", "/api/widgets", m.listWidgets)
	router.Handle("POST", "/api/widgets", m.addWidget)
	router.Handle("PUT", "/api/widgets/:id/layout", m.updateLayout)
	router.Handle("DELETE", "/api/widgets/:id", m.removeWidget)
}

func (m *Module) getCatalog(r *http.Request, ps httprouter.Params) engine.Response {
	return engine.JSON(m.catalog.Widgets)
}

func (m *Module) listWidgets(r *http.Request, ps httprouter.Params) engine.Response {
	list, err := m.store.List(r.Context())
	if err != nil {
		return engine.Error(err)
	}
	return engine.JSON(list)
}

func (m *Module) addWidget(r *http.Request, ps httprouter.Params) engine.Response {
	var req struct {
		CatalogID string `json:"catalogId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return engine.ClientErrorf("invalid request body: %s", err)
	}
	entry, ok := m.catalog.Get(req.CatalogID)
	if !ok {
		return engine.ClientErrorf("unknown catalog widget %q", req.CatalogID)
	}

	existing, err := m.store.List(r.Context())
	if err != nil {
		return engine.Error(err)
	}
	inst, err := m.store.Create(r.Context(), entry.ID, entry.Title, placeBelow(existing, entry.Layout))
	if err != nil {
		return engine.Error(err)
	}
	return engine.JSONStatus(http.StatusCreated, inst)
}

func (m *Module) updateLayout(r *http.Request, ps httprouter.Params) engine.Response {
	var layout embed.Layout
	if err := json.NewDecoder(r.Body).Decode(&layout); err != nil {
		return engine.ClientErrorf("invalid request body: %s", err)
	}
	if layout.X < 0 || layout.Y < 0 || layout.W <= 0 || layout.H <= 0 || layout.X+layout.W > gridColumns {
		return engine.ClientErrorf("layout doesn't fit the %d column grid", gridColumns)
	}

	err := m.store.UpdateLayout(r.Context(), ps.ByName("id"), layout)
	if errors.Is(err, embed.ErrNotFound) {
		return engine.NotFoundf("widget not found")
	}
	if err != nil {
		return engine.Error(err)
	}
	return engine.Empty()
}

func (m *Module) removeWidget(r *http.Request, ps httprouter.Params) engine.Response {
	err := m.store.Delete(r.Context(), ps.ByName("id"))
	if errors.Is(err, embed.ErrNotFound) {
		return engine.NotFoundf("widget not found")
	}
	if err != nil {
		return engine.Error(err)
	}
	return engine.Empty()
}

// placeBelow puts a new widget at the left edge under everything on the grid.
func placeBelow(existing []*embed.Instance, size embed.Layout) embed.Layout {
	bottom := 0
	for _, inst := range existing {
		bottom = max(bottom, inst.Layout.Y+inst.Layout.H)
	}
	return embed.Layout{X: 0, Y: bottom, W: min(size.W, gridColumns), H: size.H}
}
