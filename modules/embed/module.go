// Package embed edits how a dashboard widget is embedded. An editor session
// works on one widget in one of three modes (a styled SDK widget, a bare SDK
// snippet or raw HTML) and saves the active mode in the background.
package embed

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/TheLab-ms/styler/engine"
	"github.com/TheLab-ms/styler/internal/chartstyle"
	"github.com/julienschmidt/httprouter"
)

const (
	saveQueueDepth  = 256
	eventsTTL       = 30 * 24 * 60 * 60 // 30 days in seconds
	maxRequestBytes = 1 << 20
)

type Module struct {
	store    *Store
	events   *engine.EventLogger
	saver    *AsyncSaver
	sessions *sessions
	saveRPS  int
}

func New(db *sql.DB, events *engine.EventLogger, saveRPS int, sessionTTL time.Duration) *Module {
	store := NewStore(db)
	return &Module{
		store:    store,
		events:   events,
		saver:    NewAsyncSaver(store, events, saveQueueDepth),
		sessions: newSessions(sessionTTL),
		saveRPS:  saveRPS,
	}
}

// Store exposes the widget instances, e.g. to the dashboard.
func (m *Module) Store() *Store { return m.store }

func (m *Module) AttachRoutes(router *engine.Router) {
	router.Handle("POST", "/api/editor", m.openSession)
	router.Handle("GET", "/api/editor/:session", m.getSession)
	router.Handle("DELETE", "/api/editor/:session", m.closeSession)
	router.Handle("PUT", "/api/editor/:session/tab", m.selectTab)
	router.Handle("PATCH", "/api/editor/:session/style", m.updateStyle)
	router.Handle("PUT", "/api/editor/:session/fields", m.setFields)
	router.Handle("POST", "/api/editor/:session/preview", m.preview)
	router.Handle("POST", "/api/editor/:session/save", m.save)
	router.Handle("GET", "/api/events", m.listEvents)
}

func (m *Module) AttachWorkers(mgr *engine.ProcMgr) {
	mgr.Add(engine.Poll(time.Second, engine.PollWorkqueue(engine.WithRateLimiting(m.saver, m.saveRPS))))
	mgr.Add(engine.Poll(time.Minute, m.sessions.expire))
	mgr.Add(engine.Poll(time.Hour, m.events.Prune(eventsTTL)))
}

func (m *Module) openSession(r *http.Request, ps httprouter.Params) engine.Response {
	var req struct {
		InstanceID string `json:"instanceId"`
	}
	if err := readJSON(r, &req); err != nil {
		return engine.ClientErrorf("invalid request body: %s", err)
	}

	var existing Existing
	if req.InstanceID != "" {
		var err error
		existing, err = m.store.LoadExisting(r.Context(), req.InstanceID)
		if errors.Is(err, ErrNotFound) {
			return engine.NotFoundf("widget %s not found", req.InstanceID)
		}
		if err != nil {
			slog.Error("unable to load saved widget - starting from defaults", "instanceID", req.InstanceID, "error", err)
			existing = Existing{}
		}
	}

	ed := NewEditor(m.saver, existing.Styled)
	if req.InstanceID != "" {
		ed.Load(req.InstanceID, existing)
	}
	id := m.sessions.open(ed)

	return engine.JSONStatus(http.StatusCreated, map[string]any{"session": id, "state": ed.State()})
}

// withEditor looks up the session and calls fn with its editor locked.
func (m *Module) withEditor(ps httprouter.Params, fn func(*Editor) engine.Response) engine.Response {
	var resp engine.Response
	ok := m.sessions.with(ps.ByName("session"), func(ed *Editor) { resp = fn(ed) })
	if !ok {
		return engine.NotFoundf("editor session not found")
	}
	return resp
}

func (m *Module) getSession(r *http.Request, ps httprouter.Params) engine.Response {
	return m.withEditor(ps, func(ed *Editor) engine.Response { return engine.JSON(ed.State()) })
}

func (m *Module) closeSession(r *http.Request, ps httprouter.Params) engine.Response {
	if !m.sessions.close(ps.ByName("session")) {
		return engine.NotFoundf("editor session not found")
	}
	return engine.Empty()
}

func (m *Module) selectTab(r *http.Request, ps httprouter.Params) engine.Response {
	var req struct {
		Tab Tab `json:"tab"`
	}
	if err := readJSON(r, &req); err != nil {
		return engine.ClientErrorf("invalid request body: %s", err)
	}
	return m.withEditor(ps, func(ed *Editor) engine.Response {
		if err := ed.SelectTab(req.Tab); err != nil {
			return engine.ClientErrorf("%s", err)
		}
		return engine.JSON(ed.State())
	})
}

func (m *Module) updateStyle(r *http.Request, ps httprouter.Params) engine.Response {
	patch, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		return engine.ClientErrorf("reading request body: %s", err)
	}
	return m.withEditor(ps, func(ed *Editor) engine.Response {
		next, err := chartstyle.Merge(ed.Style(), patch)
		if err != nil {
			return engine.ClientErrorf("%s", err)
		}
		if err := next.Validate(); err != nil {
			return engine.ClientErrorf("%s", err)
		}
		ed.SetStyle(next)
		return engine.JSON(ed.State())
	})
}

func (m *Module) setFields(r *http.Request, ps httprouter.Params) engine.Response {
	var req struct {
		StyledInput     *string `json:"styledInput"`
		SDKWidgetOid    *string `json:"sdkWidgetOid"`
		SDKDashboardOid *string `json:"sdkDashboardOid"`
		HTML            *string `json:"html"`
	}
	if err := readJSON(r, &req); err != nil {
		return engine.ClientErrorf("invalid request body: %s", err)
	}
	return m.withEditor(ps, func(ed *Editor) engine.Response {
		if req.StyledInput != nil {
			ed.SetStyledInput(*req.StyledInput)
		}
		if req.SDKWidgetOid != nil || req.SDKDashboardOid != nil {
			st := ed.State()
			w, d := st.SDKWidgetOid, st.SDKDashboardOid
			if req.SDKWidgetOid != nil {
				w = *req.SDKWidgetOid
			}
			if req.SDKDashboardOid != nil {
				d = *req.SDKDashboardOid
			}
			ed.SetSDKFields(w, d)
		}
		if req.HTML != nil {
			ed.SetHTML(*req.HTML)
		}
		return engine.JSON(ed.State())
	})
}

func (m *Module) preview(r *http.Request, ps httprouter.Params) engine.Response {
	opts := chartstyle.Options{}
	if err := readJSON(r, &opts); err != nil {
		return engine.ClientErrorf("invalid chart options: %s", err)
	}
	if opts == nil {
		opts = chartstyle.Options{}
	}
	return m.withEditor(ps, func(ed *Editor) engine.Response {
		style := ed.Style()
		return engine.JSON(map[string]any{
			"options":     ed.Preview(opts),
			"widgetStyle": style.WidgetStyle(),
			"palette":     style.Palette(),
		})
	})
}

func (m *Module) save(r *http.Request, ps httprouter.Params) engine.Response {
	sessionID := ps.ByName("session")
	var saved bool
	resp := m.withEditor(ps, func(ed *Editor) engine.Response {
		saved = ed.Save(r.Context())
		return nil
	})
	if resp != nil {
		return resp
	}
	if !saved {
		return engine.Empty()
	}
	m.sessions.close(sessionID)
	return engine.Accepted()
}

func (m *Module) listEvents(r *http.Request, ps httprouter.Params) engine.Response {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return engine.ClientErrorf("invalid limit %q", s)
		}
		limit = min(n, 500)
	}
	events, err := m.events.Recent(r.Context(), limit)
	if err != nil {
		return engine.Error(err)
	}
	if events == nil {
		events = []*engine.Event{}
	}
	return engine.JSON(events)
}

// readJSON decodes the request body into v. An empty body leaves v untouched.
func readJSON(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
