package chartstyle

// ChartType selects which renderer chart the widget draws.
type ChartType string

const (
	ChartColumn     ChartType = "column"
	ChartBar        ChartType = "bar"
	ChartPie        ChartType = "pie"
	ChartArea       ChartType = "area"
	ChartLine       ChartType = "line"
	ChartIndicator  ChartType = "indicator"
	ChartPivot      ChartType = "pivot"
	ChartTable      ChartType = "table"
	ChartScatter    ChartType = "scatter"
	ChartTreemap    ChartType = "treemap"
	ChartCalendar   ChartType = "calendar"
	ChartScatterMap ChartType = "scatterMap"
	ChartAreaMap    ChartType = "areaMap"
	ChartSunburst   ChartType = "sunburst"
	ChartBox        ChartType = "box"
	ChartPolar      ChartType = "polar"
	ChartFunnel     ChartType = "funnel"
	ChartBlox       ChartType = "blox"
	ChartTabber     ChartType = "tabber"
	ChartOther      ChartType = "other"
)

var chartTypes = set(ChartColumn, ChartBar, ChartPie, ChartArea, ChartLine, ChartIndicator,
	ChartPivot, ChartTable, ChartScatter, ChartTreemap, ChartCalendar, ChartScatterMap,
	ChartAreaMap, ChartSunburst, ChartBox, ChartPolar, ChartFunnel, ChartBlox, ChartTabber, ChartOther)

type GridLineStyle string

const (
	GridBoth  GridLineStyle = "both"
	GridYOnly GridLineStyle = "y-only"
	GridXOnly GridLineStyle = "x-only"
	GridDots  GridLineStyle = "dots"
	GridNone  GridLineStyle = "none"
)

var gridLineStyles = set(GridBoth, GridYOnly, GridXOnly, GridDots, GridNone)

type LegendPosition string

const (
	LegendRight  LegendPosition = "right"
	LegendLeft   LegendPosition = "left"
	LegendTop    LegendPosition = "top"
	LegendBottom LegendPosition = "bottom"
	LegendHidden LegendPosition = "hidden"
)

var legendPositions = set(LegendRight, LegendLeft, LegendTop, LegendBottom, LegendHidden)

// Size is shared by the corner radius and the space around the widget.
type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

var sizes = set(SizeSmall, SizeMedium, SizeLarge)

type Shadow string

const (
	ShadowNone   Shadow = "None"
	ShadowLight  Shadow = "Light"
	ShadowMedium Shadow = "Medium"
	ShadowDark   Shadow = "Dark"
)

var shadows = set(ShadowNone, ShadowLight, ShadowMedium, ShadowDark)

type TitleAlignment string

const (
	AlignLeft   TitleAlignment = "Left"
	AlignCenter TitleAlignment = "Center"
)

var titleAlignments = set(AlignLeft, AlignCenter)

func set[T comparable](vals ...T) map[T]struct{} {
	m := make(map[T]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return m
}
