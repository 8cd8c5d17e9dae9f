package theme

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TheLab-ms/styler/db"
	"github.com/TheLab-ms/styler/engine"
	"github.com/TheLab-ms/styler/engine/settings"
	"github.com/gavv/httpexpect/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeAPI(t *testing.T) {
	store := settings.New(db.OpenTest(t))
	m := New(testContext(t), store)
	assert.Equal(t, Dark, m.Current())

	router := engine.NewRouter(nil)
	m.AttachRoutes(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	e := httpexpect.Default(t, server.URL)

	e.GET("/api/theme").
		Expect().
		Status(http.StatusOK).JSON().Object().Value("theme").IsEqual("dark")

	e.PUT("/api/theme").
		WithJSON(map[string]any{"theme": "light"}).
		Expect().
		Status(http.StatusOK)

	e.GET("/api/theme").
		Expect().
		Status(http.StatusOK).JSON().Object().Value("theme").IsEqual("light")

	val, err := store.Get(testContext(t), "ui.theme")
	require.NoError(t, err)
	assert.Equal(t, "light", val)

	e.PUT("/api/theme").
		WithJSON(map[string]any{"theme": "sepia"}).
		Expect().
		Status(http.StatusBadRequest)

	e.POST("/api/theme/toggle").
		Expect().
		Status(http.StatusOK).JSON().Object().Value("theme").IsEqual("dark")
	assert.Equal(t, Dark, m.Current())
}

func TestThemeSeededDefault(t *testing.T) {
	t.Setenv("STYLER_DefaultTheme", "light")
	store := settings.New(db.OpenTest(t))
	require.NoError(t, store.EnsureDefaults(testContext(t)))

	assert.Equal(t, Light, New(testContext(t), store).Current())
}
