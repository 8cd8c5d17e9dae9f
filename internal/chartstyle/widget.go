package chartstyle

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// WidgetStyle is the widget chrome (frame and header) handed to the embedding
// SDK next to the option tree.
type WidgetStyle struct {
	BackgroundColor string      `json:"backgroundColor"`
	Border          bool        `json:"border"`
	BorderColor     string      `json:"borderColor"`
	CornerRadius    Size        `json:"cornerRadius"`
	Shadow          Shadow      `json:"shadow"`
	SpaceAround     Size        `json:"spaceAround"`
	Header          HeaderStyle `json:"header"`
}

type HeaderStyle struct {
	BackgroundColor  string         `json:"backgroundColor"`
	DividerLine      bool           `json:"dividerLine"`
	DividerLineColor string         `json:"dividerLineColor"`
	Hidden           bool           `json:"hidden"`
	TitleAlignment   TitleAlignment `json:"titleAlignment"`
	TitleTextColor   string         `json:"titleTextColor"`
}

func (c StyleConfig) WidgetStyle() WidgetStyle {
	return WidgetStyle{
		BackgroundColor: c.BackgroundColor,
		Border:          c.Border,
		BorderColor:     c.BorderColor,
		CornerRadius:    c.CornerRadius,
		Shadow:          c.Shadow,
		SpaceAround:     c.SpaceAround,
		Header: HeaderStyle{
			BackgroundColor:  c.HeaderBackgroundColor,
			DividerLine:      c.HeaderDividerLine,
			DividerLineColor: c.HeaderDividerLineColor,
			Hidden:           c.HeaderHidden,
			TitleAlignment:   c.HeaderTitleAlignment,
			TitleTextColor:   c.HeaderTitleTextColor,
		},
	}
}

// Palette returns the three palette colors with their saturation scaled by
// the vibrance. A vibrance of 0.5 leaves the saturation as picked, 0 turns the
// palette gray and 1 doubles the saturation (clamped).
// Colors that aren't valid hex strings are returned untouched.
func (c StyleConfig) Palette() []string {
	factor := c.Vibrance * 2
	out := make([]string, 0, 3)
	for _, hex := range []string{c.PaletteColor1, c.PaletteColor2, c.PaletteColor3} {
		col, err := colorful.Hex(hex)
		if err != nil {
			out = append(out, hex)
			continue
		}
		h, s, l := col.Hsl()
		out = append(out, colorful.Hsl(h, math.Min(1, s*factor), l).Clamped().Hex())
	}
	return out
}
