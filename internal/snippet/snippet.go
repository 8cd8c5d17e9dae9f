// Package snippet reads and writes the textual embed code of a BI widget:
//
//	<WidgetById widgetOid="<id>" dashboardOid="<id>" />
package snippet

import (
	"strings"
)

const (
	WidgetAttr    = "widgetOid"
	DashboardAttr = "dashboardOid"

	// Marker identifies SDK embed code, as opposed to arbitrary HTML.
	Marker = "WidgetById"
)

// IDs holds the identifiers found in a snippet. A nil field means the
// attribute wasn't found.
type IDs struct {
	WidgetOid    *string `json:"widgetOid"`
	DashboardOid *string `json:"dashboardOid"`
}

// Complete is true when both identifiers were found.
func (i IDs) Complete() bool { return i.WidgetOid != nil && i.DashboardOid != nil }

// Extract pulls the widget and dashboard identifiers out of text.
// Each attribute is looked up independently and only its first occurrence counts.
func Extract(text string) IDs {
	return IDs{
		WidgetOid:    Attr(text, WidgetAttr),
		DashboardOid: Attr(text, DashboardAttr),
	}
}

// Attr returns the value of the first name="value" pair in text.
// Returns nil when the attribute is missing, unterminated or empty.
func Attr(text, name string) *string {
	prefix := name + `="`
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], prefix)
		if i < 0 {
			return nil
		}
		start := offset + i
		offset = start + 1

		// "xwidgetOid" is a different attribute
		if start > 0 && isNameByte(text[start-1]) {
			continue
		}

		valStart := start + len(prefix)
		end := strings.IndexByte(text[valStart:], '"')
		if end <= 0 {
			return nil
		}
		val := text[valStart : valStart+end]
		return &val
	}
	return nil
}

func isNameByte(b byte) bool {
	return b == '_' || b == '-' || b == ':' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// Generate renders the canonical simple SDK snippet.
func Generate(widgetOid, dashboardOid string) string {
	return "<" + Marker + " " + WidgetAttr + `="` + widgetOid + `" ` + DashboardAttr + `="` + dashboardOid + `" />`
}

// IsRawHTML reports whether previously saved embed code is plain markup
// rather than an SDK snippet.
func IsRawHTML(code string) bool {
	return strings.HasPrefix(strings.TrimSpace(code), "<") && !strings.Contains(code, Marker)
}
