package embed

import (
	"context"
	"testing"

	"github.com/TheLab-ms/styler/internal/chartstyle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type savedCall struct {
	target     Target
	instanceID string
}

type fakePersister struct{ calls []savedCall }

func (f *fakePersister) Save(ctx context.Context, target Target, instanceID string) {
	f.calls = append(f.calls, savedCall{target: target, instanceID: instanceID})
}

func TestNewEditor(t *testing.T) {
	ed := NewEditor(&fakePersister{}, nil)
	assert.Equal(t, TabSDK, ed.Tab())
	assert.Equal(t, chartstyle.Default(), ed.Style())

	style := chartstyle.Default()
	style.ChartType = chartstyle.ChartPie
	p := &fakePersister{}
	ed = NewEditor(p, &StyledConfig{WidgetOid: "w", DashboardOid: "d", Style: style})
	assert.Equal(t, TabStyled, ed.Tab())
	assert.Equal(t, chartstyle.ChartPie, ed.Style().ChartType)

	// The initial ids are kept, so the styled tab can be saved right away
	assert.True(t, ed.State().CanSave)
	assert.True(t, ed.Save(context.Background()))
	require.Len(t, p.calls, 1)
	assert.Equal(t, Styled{Config: StyledConfig{WidgetOid: "w", DashboardOid: "d", Style: style}}, p.calls[0].target)
}

func TestEditorLoad(t *testing.T) {
	t.Run("styled", func(t *testing.T) {
		style := chartstyle.Default()
		style.Vibrance = 0.9
		ed := NewEditor(&fakePersister{}, nil)
		ed.Load("inst-1", Existing{Styled: &StyledConfig{WidgetOid: "W1", DashboardOid: "D1", Style: style}})

		assert.Equal(t, TabStyled, ed.Tab())
		assert.Equal(t, 0.9, ed.Style().Vibrance)
		ids := ed.StyledIDs()
		require.True(t, ids.Complete())
		assert.Equal(t, "W1", *ids.WidgetOid)
		assert.Equal(t, "D1", *ids.DashboardOid)

		// the pasted code of a styled widget is fixed
		assert.False(t, ed.SetStyledInput(`<WidgetById widgetOid="X" dashboardOid="Y" />`))
		assert.Equal(t, "W1", *ed.StyledIDs().WidgetOid)
	})

	t.Run("raw html", func(t *testing.T) {
		ed := NewEditor(&fakePersister{}, nil)
		ed.Load("inst-2", Existing{EmbedCode: "<p>Hello</p>"})
		assert.Equal(t, TabHTML, ed.Tab())
		assert.Equal(t, "<p>Hello</p>", ed.State().HTML)
	})

	t.Run("sdk snippet", func(t *testing.T) {
		ed := NewEditor(&fakePersister{}, nil)
		ed.Load("inst-3", Existing{EmbedCode: `  <WidgetById widgetOid="A" dashboardOid="B" />`})
		assert.Equal(t, TabSDK, ed.Tab())
		st := ed.State()
		assert.Equal(t, "A", st.SDKWidgetOid)
		assert.Equal(t, "B", st.SDKDashboardOid)
	})

	t.Run("nothing saved", func(t *testing.T) {
		ed := NewEditor(&fakePersister{}, nil)
		ed.Load("inst-4", Existing{})
		assert.Equal(t, TabSDK, ed.Tab())
		assert.Equal(t, "inst-4", ed.InstanceID())
		assert.True(t, ed.SetStyledInput("anything"))
	})
}

func TestEditorSave(t *testing.T) {
	t.Run("incomplete input is a no-op", func(t *testing.T) {
		p := &fakePersister{}
		ed := NewEditor(p, nil)

		for _, tab := range []Tab{TabStyled, TabSDK, TabHTML} {
			require.NoError(t, ed.SelectTab(tab))
			assert.False(t, ed.Save(context.Background()))
		}

		require.NoError(t, ed.SelectTab(TabStyled))
		ed.SetStyledInput(`<WidgetById widgetOid="W" />`)
		assert.False(t, ed.Save(context.Background()))

		require.NoError(t, ed.SelectTab(TabSDK))
		ed.SetSDKFields("W", "")
		assert.False(t, ed.Save(context.Background()))

		assert.Empty(t, p.calls)
	})

	t.Run("styled", func(t *testing.T) {
		p := &fakePersister{}
		ed := NewEditor(p, nil)
		require.NoError(t, ed.SelectTab(TabStyled))
		ed.SetStyledInput(`<WidgetById widgetOid="W" dashboardOid="D" />`)
		require.NoError(t, ed.UpdateStyle([]byte(`{"chartType":"line","lineWidth":4}`)))

		assert.True(t, ed.Save(context.Background()))
		require.Len(t, p.calls, 1)
		assert.Equal(t, "", p.calls[0].instanceID)

		styled, ok := p.calls[0].target.(Styled)
		require.True(t, ok)
		assert.Equal(t, "W", styled.Config.WidgetOid)
		assert.Equal(t, "D", styled.Config.DashboardOid)
		assert.Equal(t, chartstyle.ChartLine, styled.Config.Style.ChartType)
		assert.Equal(t, 4, styled.Config.Style.LineWidth)
	})

	t.Run("sdk", func(t *testing.T) {
		p := &fakePersister{}
		ed := NewEditor(p, nil)
		ed.Load("inst-1", Existing{})
		ed.SetSDKFields("W", "D")

		assert.True(t, ed.Save(context.Background()))
		require.Len(t, p.calls, 1)
		assert.Equal(t, "inst-1", p.calls[0].instanceID)
		assert.Equal(t, SDK{EmbedCode: `<WidgetById widgetOid="W" dashboardOid="D" />`}, p.calls[0].target)
	})

	t.Run("only the active tab is saved", func(t *testing.T) {
		p := &fakePersister{}
		ed := NewEditor(p, nil)
		ed.SetSDKFields("W", "D")
		ed.SetHTML("<iframe></iframe>")
		require.NoError(t, ed.SelectTab(TabHTML))

		assert.True(t, ed.Save(context.Background()))
		require.Len(t, p.calls, 1)
		assert.Equal(t, HTML{EmbedCode: "<iframe></iframe>"}, p.calls[0].target)

		// switching back keeps the sdk fields
		require.NoError(t, ed.SelectTab(TabSDK))
		assert.Equal(t, "W", ed.State().SDKWidgetOid)
	})
}

func TestEditorSelectTab(t *testing.T) {
	ed := NewEditor(&fakePersister{}, nil)
	assert.Error(t, ed.SelectTab("csdk"))
	assert.Equal(t, TabSDK, ed.Tab())
}

func TestEditorUpdateStyle(t *testing.T) {
	ed := NewEditor(&fakePersister{}, nil)
	require.NoError(t, ed.UpdateStyle([]byte(`{"isDonut":true,"donutWidth":40}`)))
	assert.True(t, ed.Style().IsDonut)
	assert.Equal(t, 40, ed.Style().DonutWidth)

	before := ed.Style()
	assert.Error(t, ed.UpdateStyle([]byte(`{"isDonut":`)))
	assert.Equal(t, before, ed.Style())
}

func TestEditorPreview(t *testing.T) {
	ed := NewEditor(&fakePersister{}, nil)
	require.NoError(t, ed.UpdateStyle([]byte(`{"chartType":"pie","isDonut":true,"donutWidth":30}`)))

	opts := ed.Preview(chartstyle.Options{})
	pie := opts["plotOptions"].(map[string]any)["pie"].(map[string]any)
	assert.Equal(t, "30%", pie["innerSize"])
}
