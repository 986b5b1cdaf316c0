package catalog

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"craftdex/feature/catalog/models"
)

func setupTestApp(t *testing.T) (*fiber.App, Store) {
	t.Helper()

	store := setupTestStore(t)
	feature := NewFeature(store, zap.NewNop())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app, store
}

func TestHandleListResources(t *testing.T) {
	app, store := setupTestApp(t)

	require.NoError(t, store.CreateResource(context.Background(),
		&models.Resource{Name: "Iron Ore", Category: "Material"}))

	resp, err := app.Test(httptest.NewRequest("GET", "/resources", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var resources []models.Resource
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&resources))
	require.Len(t, resources, 1)
	assert.Equal(t, "Iron Ore", resources[0].Name)
}

func TestHandleGetResource_NotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/resources/Unobtainium", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleGetRecipe(t *testing.T) {
	app, store := setupTestApp(t)
	ctx := context.Background()

	ore := &models.Resource{Name: "Iron Ore"}
	require.NoError(t, store.CreateResource(ctx, ore))
	rec := &models.CraftingRecipe{
		Name:           "Iron Ingot",
		OutputItemName: "Iron Ingot",
		Ingredients:    []models.RecipeIngredient{{ResourceID: ore.ID, Quantity: 3}},
	}
	require.NoError(t, store.CreateRecipe(ctx, rec))

	resp, err := app.Test(httptest.NewRequest("GET", "/recipes/Iron%20Ingot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.CraftingRecipe
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "Iron Ingot", got.Name)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, "Iron Ore", got.Ingredients[0].ResourceName)
}

func TestHandleGetRecipe_NotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/recipes/Nothing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
