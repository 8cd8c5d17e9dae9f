package embed

import (
	"context"
	"fmt"

	"github.com/TheLab-ms/styler/internal/chartstyle"
	"github.com/TheLab-ms/styler/internal/snippet"
)

// Tab is the embedding mode being edited.
type Tab string

const (
	TabStyled Tab = "styled"
	TabSDK    Tab = "sdk"
	TabHTML   Tab = "html"
)

func (t Tab) valid() bool { return t == TabStyled || t == TabSDK || t == TabHTML }

// Editor holds the state of one widget editing session. Every tab keeps its
// own fields, so switching tabs never loses unsaved input.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	persister  Persister
	instanceID string
	tab        Tab

	// styled tab
	style        chartstyle.StyleConfig
	styledInput  string
	styledLocked bool

	// sdk tab
	sdkWidgetOid    string
	sdkDashboardOid string

	// html tab
	html string
}

// NewEditor starts a session on the styled tab, with the widget code and
// style of initial, when one is given. Otherwise it starts on the sdk tab
// with the default style.
func NewEditor(p Persister, initial *StyledConfig) *Editor {
	e := &Editor{persister: p, tab: TabSDK, style: chartstyle.Default()}
	if initial != nil {
		e.tab = TabStyled
		e.style = initial.Style
		e.styledInput = snippet.Generate(initial.WidgetOid, initial.DashboardOid)
	}
	return e
}

// Load prepares the editor for an already saved widget.
//
// Styled configs open the styled tab with the snippet re-synthesized from the
// saved identifiers. Embed code opens the html tab when it is plain markup and
// the sdk tab otherwise. When nothing was saved the editor keeps its defaults.
func (e *Editor) Load(instanceID string, existing Existing) {
	e.instanceID = instanceID

	switch {
	case existing.Styled != nil:
		e.tab = TabStyled
		e.style = existing.Styled.Style
		e.styledInput = snippet.Generate(existing.Styled.WidgetOid, existing.Styled.DashboardOid)
		e.styledLocked = true

	case existing.EmbedCode != "" && snippet.IsRawHTML(existing.EmbedCode):
		e.tab = TabHTML
		e.html = existing.EmbedCode

	case existing.EmbedCode != "":
		e.tab = TabSDK
		ids := snippet.Extract(existing.EmbedCode)
		e.sdkWidgetOid = deref(ids.WidgetOid)
		e.sdkDashboardOid = deref(ids.DashboardOid)
	}
}

func (e *Editor) InstanceID() string { return e.instanceID }

func (e *Editor) Tab() Tab { return e.tab }

// SelectTab switches the active tab.
func (e *Editor) SelectTab(t Tab) error {
	if !t.valid() {
		return fmt.Errorf("unknown tab %q", t)
	}
	e.tab = t
	return nil
}

func (e *Editor) Style() chartstyle.StyleConfig { return e.style }

// SetStyle replaces the whole style record.
func (e *Editor) SetStyle(c chartstyle.StyleConfig) { e.style = c }

// UpdateStyle merges a partial JSON style over the current one.
func (e *Editor) UpdateStyle(patch []byte) error {
	next, err := chartstyle.Merge(e.style, patch)
	if err != nil {
		return err
	}
	e.style = next
	return nil
}

// SetStyledInput stores the pasted widget code. The code of a widget that was
// saved in styled mode can't be changed, only its style; false is returned
// when the input was ignored for that reason.
func (e *Editor) SetStyledInput(code string) bool {
	if e.styledLocked {
		return false
	}
	e.styledInput = code
	return true
}

// StyledIDs extracts the identifiers from the pasted widget code.
func (e *Editor) StyledIDs() snippet.IDs { return snippet.Extract(e.styledInput) }

func (e *Editor) SetSDKFields(widgetOid, dashboardOid string) {
	e.sdkWidgetOid = widgetOid
	e.sdkDashboardOid = dashboardOid
}

func (e *Editor) SetHTML(markup string) { e.html = markup }

// Target builds the target for the active tab. False means the tab's input
// is incomplete and there is nothing to save.
func (e *Editor) Target() (Target, bool) {
	switch e.tab {
	case TabStyled:
		ids := e.StyledIDs()
		if !ids.Complete() {
			return nil, false
		}
		return Styled{Config: StyledConfig{
			WidgetOid:    *ids.WidgetOid,
			DashboardOid: *ids.DashboardOid,
			Style:        e.style,
		}}, true

	case TabSDK:
		if e.sdkWidgetOid == "" || e.sdkDashboardOid == "" {
			return nil, false
		}
		return SDK{EmbedCode: snippet.Generate(e.sdkWidgetOid, e.sdkDashboardOid)}, true

	case TabHTML:
		if e.html == "" {
			return nil, false
		}
		return HTML{EmbedCode: e.html}, true
	}
	return nil, false
}

// Save hands the active tab's target to the persister. Incomplete input makes
// it a no-op that returns false.
func (e *Editor) Save(ctx context.Context) bool {
	target, ok := e.Target()
	if !ok {
		return false
	}
	e.persister.Save(ctx, target, e.instanceID)
	return true
}

// Preview applies the current style to a renderer option tree.
func (e *Editor) Preview(opts chartstyle.Options) chartstyle.Options {
	return chartstyle.Apply(e.style, opts)
}

// State is a snapshot of the editor for API clients.
type State struct {
	InstanceID        string                 `json:"instanceId,omitempty"`
	Tab               Tab                    `json:"tab"`
	Style             chartstyle.StyleConfig `json:"styleConfig"`
	StyledInput       string                 `json:"styledInput"`
	StyledInputLocked bool                   `json:"styledInputLocked"`
	StyledIDs         snippet.IDs            `json:"styledIds"`
	SDKWidgetOid      string                 `json:"sdkWidgetOid"`
	SDKDashboardOid   string                 `json:"sdkDashboardOid"`
	HTML              string                 `json:"html"`
	CanSave           bool                   `json:"canSave"`
}

func (e *Editor) State() State {
	_, ok := e.Target()
	return State{
		InstanceID:        e.instanceID,
		Tab:               e.tab,
		Style:             e.style,
		StyledInput:       e.styledInput,
		StyledInputLocked: e.styledLocked,
		StyledIDs:         e.StyledIDs(),
		SDKWidgetOid:      e.sdkWidgetOid,
		SDKDashboardOid:   e.sdkDashboardOid,
		HTML:              e.html,
		CanSave:           ok,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
