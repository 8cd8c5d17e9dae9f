package chartstyle

import "strconv"

const (
	dashSolid = "Solid"
	dashDot   = "Dot"

	// gradientAlpha is appended to a series color to fade the top of an area fill.
	gradientAlpha = "90"
	gradientEnd   = "#FFFFFF00"
)

type gridLine struct {
	width int
	dash  string // empty leaves the axis dash style alone
}

type gridPolicy struct{ x, y gridLine }

var gridPolicies = map[GridLineStyle]gridPolicy{
	GridBoth:  {x: gridLine{1, dashSolid}, y: gridLine{1, dashSolid}},
	GridYOnly: {x: gridLine{0, ""}, y: gridLine{1, dashSolid}},
	GridXOnly: {x: gridLine{1, dashSolid}, y: gridLine{0, ""}},
	GridDots:  {x: gridLine{1, dashDot}, y: gridLine{1, dashDot}},
	GridNone:  {x: gridLine{0, ""}, y: gridLine{0, ""}},
}

type legendPolicy struct {
	align, verticalAlign, layout string
}

var legendPolicies = map[LegendPosition]legendPolicy{
	LegendLeft:   {align: "left", verticalAlign: "middle", layout: "vertical"},
	LegendRight:  {align: "right", verticalAlign: "middle", layout: "vertical"},
	LegendTop:    {align: "center", verticalAlign: "top", layout: "horizontal"},
	LegendBottom: {align: "center", verticalAlign: "bottom", layout: "horizontal"},
}

// Apply layers the style onto the renderer option tree and returns it.
// The tree is modified in place; a nil tree is replaced by a new one.
// Missing sections are created, so Apply is safe on any input and applying
// it twice with the same style yields the same tree.
//
// The pie, line and area plot options are written whatever the chart type
// is. The renderer ignores the sections it doesn't draw.
func Apply(cfg StyleConfig, opts Options) Options {
	if opts == nil {
		opts = Options{}
	}

	section(opts, "chart")["backgroundColor"] = "transparent"

	x, y := axes(opts, "xAxis"), axes(opts, "yAxis")
	cosmetic := map[string]any{
		"gridLineColor": cfg.AxisColor,
		"lineColor":     cfg.AxisColor,
		"tickColor":     cfg.AxisColor,
	}
	for _, axis := range append(append([]map[string]any{}, x...), y...) {
		merge(axis, cosmetic)
	}

	if p, ok := gridPolicies[cfg.GridLineStyle]; ok {
		applyGridLine(x, p.x)
		applyGridLine(y, p.y)
	}

	legend := section(opts, "legend")
	if p, ok := legendPolicies[cfg.LegendPosition]; ok {
		legend["enabled"] = true
		legend["align"] = p.align
		legend["verticalAlign"] = p.verticalAlign
		legend["layout"] = p.layout
	} else if cfg.LegendPosition == LegendHidden {
		legend["enabled"] = false
	}

	plot := section(opts, "plotOptions")
	merge(section(plot, "series"), map[string]any{
		"borderRadius": cfg.BorderRadius,
		"pointWidth":   cfg.BarWidth,
		"opacity":      cfg.BarOpacity,
		"borderColor":  cfg.BorderColor,
		"borderWidth":  1,
	})
	merge(section(plot, "pie"), map[string]any{
		"innerSize":   innerSize(cfg),
		"opacity":     cfg.PieOpacity,
		"borderColor": cfg.BorderColor,
		"borderWidth": 2,
	})
	for _, key := range []string{"line", "area"} {
		s := section(plot, key)
		s["lineWidth"] = cfg.LineWidth
		section(s, "marker")["radius"] = cfg.MarkerRadius
	}

	if cfg.ApplyGradient {
		for _, s := range seriesList(opts) {
			if s["type"] != "area" {
				continue
			}
			color, ok := s["color"].(string)
			if !ok {
				continue
			}
			s["fillColor"] = map[string]any{
				"linearGradient": map[string]any{"x1": 0, "x2": 0, "y1": 0, "y2": 1},
				"stops": []any{
					[]any{0, color + gradientAlpha},
					[]any{1, gradientEnd},
				},
			}
		}
	}

	return opts
}

func applyGridLine(group []map[string]any, g gridLine) {
	for _, axis := range group {
		axis["gridLineWidth"] = g.width
		if g.dash != "" {
			axis["gridLineDashStyle"] = g.dash
		}
	}
}

func innerSize(cfg StyleConfig) string {
	if !cfg.IsDonut {
		return "0%"
	}
	return strconv.Itoa(cfg.DonutWidth) + "%"
}
