package modules

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TheLab-ms/styler/db"
	"github.com/TheLab-ms/styler/engine"
	"github.com/TheLab-ms/styler/engine/settings"
	"github.com/gavv/httpexpect/v2"
)

func TestRegister(t *testing.T) {
	database := db.OpenTest(t)
	router := engine.NewRouter(nil)
	a := engine.NewApp(":0", router)
	Register(testContext(t), a, Options{
		Database:          database,
		Settings:          settings.New(database),
		Events:            engine.NewEventLogger(database),
		SaveRatePerSecond: 10,
		SessionTTL:        time.Minute,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	e := httpexpect.Default(t, server.URL)

	// A widget added from the catalog can be opened in the editor
	id := e.POST("/api/widgets").
		WithJSON(map[string]any{"catalogId": "chart3"}).
		Expect().
		Status(http.StatusCreated).JSON().Object().Value("id").String().Raw()

	e.POST("/api/editor").
		WithJSON(map[string]any{"instanceId": id}).
		Expect().
		Status(http.StatusCreated).JSON().Object().
		Value("state").Object().Value("tab").IsEqual("sdk")

	e.GET("/api/theme").
		Expect().
		Status(http.StatusOK).JSON().Object().Value("theme").IsEqual("dark")
}
