package transfer

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	svc, _ := setupService(t)
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app
}

func TestHandleImportAndExport_JSON(t *testing.T) {
	app := setupApp(t)

	body := `{"resources": [{"name": "Iron Ore", "category": "Material"}]}`
	req := httptest.NewRequest("POST", "/transfer/import?format=json&strategy=skip", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	require.NotNil(t, report.Resources)
	assert.Equal(t, 1, report.Resources.Created)

	resp, err = app.Test(httptest.NewRequest("GET", "/transfer/export?format=json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	exported, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(exported), "Iron Ore")
}

func TestHandleExport_Markdown(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/transfer/export?format=markdown", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/markdown")
}

func TestHandleExport_RejectsCSV(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/transfer/export?format=csv", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleImport_BadStrategy(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest("POST", "/transfer/import?format=json&strategy=merge", strings.NewReader("{}"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleImport_EmptyBody(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest("POST", "/transfer/import?format=json", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleImport_MalformedDocument(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest("POST", "/transfer/import?format=json", strings.NewReader("{not json"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
