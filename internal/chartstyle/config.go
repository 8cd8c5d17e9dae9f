// Package chartstyle models the user-editable style of an embedded chart widget
// and maps it onto the option tree consumed by the chart renderer.
package chartstyle

import (
	"encoding/json"
	"errors"
	"fmt"
)

// StyleConfig is the flat record of every stylable widget attribute.
// Values are always fully populated: start from Default and replace fields.
type StyleConfig struct {
	BackgroundColor string `json:"backgroundColor"`
	AxisColor       string `json:"axisColor"`
	BorderColor     string `json:"borderColor"`
	Border          bool   `json:"border"`
	CornerRadius    Size   `json:"cornerRadius"`
	Shadow          Shadow `json:"shadow"`
	SpaceAround     Size   `json:"spaceAround"`

	HeaderBackgroundColor  string         `json:"headerBackgroundColor"`
	HeaderDividerLine      bool           `json:"headerDividerLine"`
	HeaderDividerLineColor string         `json:"headerDividerLineColor"`
	HeaderHidden           bool           `json:"headerHidden"`
	HeaderTitleAlignment   TitleAlignment `json:"headerTitleAlignment"`
	HeaderTitleTextColor   string         `json:"headerTitleTextColor"`

	GridLineStyle  GridLineStyle  `json:"gridLineStyle"`
	LegendPosition LegendPosition `json:"legendPosition"`
	Height         int            `json:"height"`
	Width          int            `json:"width"`

	PaletteColor1 string  `json:"paletteColor1"`
	PaletteColor2 string  `json:"paletteColor2"`
	PaletteColor3 string  `json:"paletteColor3"`
	Vibrance      float64 `json:"vibrance"`

	ChartType ChartType `json:"chartType"`

	// bar/column
	BorderRadius int     `json:"borderRadius"`
	BarWidth     int     `json:"barWidth"`
	BarOpacity   float64 `json:"barOpacity"`

	// pie
	IsDonut    bool    `json:"isDonut"`
	DonutWidth int     `json:"donutWidth"`
	PieOpacity float64 `json:"pieOpacity"`

	// line/area
	LineWidth     int  `json:"lineWidth"`
	MarkerRadius  int  `json:"markerRadius"`
	ApplyGradient bool `json:"applyGradient"`
}

// Default returns the style given to a freshly added widget.
func Default() StyleConfig {
	return StyleConfig{
		BackgroundColor: "#ffffff",
		AxisColor:       "#666666",
		BorderColor:     "#000000",
		Border:          true,
		CornerRadius:    SizeMedium,
		Shadow:          ShadowMedium,
		SpaceAround:     SizeMedium,

		HeaderBackgroundColor:  "#ffffff",
		HeaderDividerLine:      true,
		HeaderDividerLineColor: "#E5E7EB",
		HeaderHidden:           false,
		HeaderTitleAlignment:   AlignLeft,
		HeaderTitleTextColor:   "#111827",

		GridLineStyle:  GridBoth,
		LegendPosition: LegendRight,
		Height:         400,
		Width:          600,

		PaletteColor1: "#4F46E5",
		PaletteColor2: "#10B981",
		PaletteColor3: "#F59E0B",
		Vibrance:      0.5,

		ChartType: ChartColumn,

		BorderRadius: 10,
		BarWidth:     20,
		BarOpacity:   1,

		IsDonut:    true,
		DonutWidth: 60,
		PieOpacity: 1,

		LineWidth:     2,
		MarkerRadius:  4,
		ApplyGradient: false,
	}
}

// Merge overlays a partial JSON object onto prev and returns the result.
// Keys present in the patch replace the matching fields, everything else is
// carried over from prev. Unknown keys are ignored.
func Merge(prev StyleConfig, patch []byte) (StyleConfig, error) {
	next := prev
	if err := json.Unmarshal(patch, &next); err != nil {
		return prev, fmt.Errorf("decoding style patch: %w", err)
	}
	return next, nil
}

// Validate checks that every enumerated field holds a known value.
// The transform never calls this; it is meant for untrusted input.
func (c StyleConfig) Validate() error {
	var errs []error
	check := func(ok bool, field string, val any) {
		if !ok {
			errs = append(errs, fmt.Errorf("invalid %s: %q", field, val))
		}
	}

	_, ok := chartTypes[c.ChartType]
	check(ok, "chartType", c.ChartType)
	_, ok = gridLineStyles[c.GridLineStyle]
	check(ok, "gridLineStyle", c.GridLineStyle)
	_, ok = legendPositions[c.LegendPosition]
	check(ok, "legendPosition", c.LegendPosition)
	_, ok = sizes[c.CornerRadius]
	check(ok, "cornerRadius", c.CornerRadius)
	_, ok = sizes[c.SpaceAround]
	check(ok, "spaceAround", c.SpaceAround)
	_, ok = shadows[c.Shadow]
	check(ok, "shadow", c.Shadow)
	_, ok = titleAlignments[c.HeaderTitleAlignment]
	check(ok, "headerTitleAlignment", c.HeaderTitleAlignment)

	if c.Vibrance < 0 || c.Vibrance > 1 {
		errs = append(errs, fmt.Errorf("vibrance out of range: %v", c.Vibrance))
	}
	return errors.Join(errs...)
}
