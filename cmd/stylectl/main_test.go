package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	stylePath := filepath.Join(dir, "style.json")
	require.NoError(t, os.WriteFile(stylePath, []byte(`{"legendPosition":"hidden","gridLineStyle":"none"}`), 0644))

	out, err := execute(t, `{"xAxis":{},"yAxis":{}}`, "render", "--style", stylePath)
	require.NoError(t, err)

	var opts map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &opts))
	assert.Equal(t, false, opts["legend"].(map[string]any)["enabled"])
	assert.Equal(t, float64(0), opts["xAxis"].(map[string]any)["gridLineWidth"])
	assert.Equal(t, "transparent", opts["chart"].(map[string]any)["backgroundColor"])
}

func TestRenderChrome(t *testing.T) {
	out, err := execute(t, "", "render", "--chrome")
	require.NoError(t, err)

	var resp struct {
		Options     map[string]any `json:"options"`
		WidgetStyle map[string]any `json:"widgetStyle"`
		Palette     []string       `json:"palette"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Contains(t, resp.Options, "plotOptions")
	assert.Equal(t, "#ffffff", resp.WidgetStyle["backgroundColor"])
	assert.Len(t, resp.Palette, 3)
}

func TestRenderInvalidStyle(t *testing.T) {
	stylePath := filepath.Join(t.TempDir(), "style.json")
	require.NoError(t, os.WriteFile(stylePath, []byte(`{"shadow":"Huge"}`), 0644))

	_, err := execute(t, "{}", "render", "--style", stylePath)
	assert.ErrorContains(t, err, "invalid style")
}

func TestExtract(t *testing.T) {
	out, err := execute(t, `<WidgetById widgetOid="W1" dashboardOid="D1" />`, "extract")
	require.NoError(t, err)
	assert.JSONEq(t, `{"widgetOid":"W1","dashboardOid":"D1"}`, out)

	out, err = execute(t, `<WidgetById widgetOid="W1" />`, "extract")
	require.NoError(t, err)
	assert.JSONEq(t, `{"widgetOid":"W1","dashboardOid":null}`, out)

	_, err = execute(t, `<WidgetById widgetOid="W1" />`, "extract", "--strict")
	assert.Error(t, err)
}

func TestSnippet(t *testing.T) {
	out, err := execute(t, "", "snippet", "W", "D")
	require.NoError(t, err)
	assert.Equal(t, `<WidgetById widgetOid="W" dashboardOid="D" />`+"\n", out)

	_, err = execute(t, "", "snippet", "W")
	assert.Error(t, err)
}
