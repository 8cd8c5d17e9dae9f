package embed

import (
	"context"

	"github.com/TheLab-ms/styler/internal/chartstyle"
)

// Kind names the embedding mode of a saved widget.
type Kind string

const (
	KindStyled Kind = "styled"
	KindSDK    Kind = "sdk"
	KindHTML   Kind = "html"
)

// Target is what gets persisted for a widget: exactly one of Styled, SDK or HTML.
type Target interface {
	Kind() Kind
	isTarget()
}

// StyledConfig is a widget embedded through the SDK with a full style.
type StyledConfig struct {
	WidgetOid    string                 `json:"widgetOid"`
	DashboardOid string                 `json:"dashboardOid"`
	Style        chartstyle.StyleConfig `json:"styleConfig"`
}

type Styled struct{ Config StyledConfig }

// SDK is a minimal SDK snippet with no styling.
type SDK struct{ EmbedCode string }

// HTML is opaque markup.
type HTML struct{ EmbedCode string }

func (Styled) Kind() Kind { return KindStyled }
func (SDK) Kind() Kind    { return KindSDK }
func (HTML) Kind() Kind   { return KindHTML }

func (Styled) isTarget() {}
func (SDK) isTarget()    {}
func (HTML) isTarget()   {}

// Existing is what a previously saved widget looks like to the editor.
// At most one of the fields is set; both empty means nothing was saved yet.
type Existing struct {
	Styled    *StyledConfig
	EmbedCode string
}

// Persister receives targets from the editor. Save must not block on the
// round trip to the store, and failures are reported out of band.
// An empty instanceID creates a new widget.
type Persister interface {
	Save(ctx context.Context, target Target, instanceID string)
}
