package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"craftdex/core/database"
	"craftdex/feature/catalog/models"
)

func setupTestStore(t *testing.T) Store {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	return NewStore(db)
}

func TestResourceLifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	res := &models.Resource{Name: "Iron Ore", Category: "Material", Rarity: "Common"}
	require.NoError(t, store.CreateResource(ctx, res))
	require.NotZero(t, res.ID)

	got, err := store.GetResourceByName(ctx, "Iron Ore")
	require.NoError(t, err)
	assert.Equal(t, "Material", got.Category)

	err = store.UpdateResourceFields(ctx, res.ID, map[string]any{"rarity": "Rare"})
	require.NoError(t, err)

	got, err = store.GetResourceByName(ctx, "Iron Ore")
	require.NoError(t, err)
	assert.Equal(t, "Rare", got.Rarity)
	assert.Equal(t, "Material", got.Category)

	require.NoError(t, store.DeleteResource(ctx, res.ID))
	_, err = store.GetResourceByName(ctx, "Iron Ore")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateResource_DuplicateName(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateResource(ctx, &models.Resource{Name: "Water"}))

	err := store.CreateResource(ctx, &models.Resource{Name: "Water"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestGetResourceByName_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetResourceByName(context.Background(), "Unobtainium")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateResourceFields_EmptyMapIsNoOp(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	res := &models.Resource{Name: "Sand"}
	require.NoError(t, store.CreateResource(ctx, res))

	assert.NoError(t, store.UpdateResourceFields(ctx, res.ID, map[string]any{}))
}

func TestReplaceResource(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	res := &models.Resource{Name: "Copper Ore", Category: "Material", Description: "old"}
	require.NoError(t, store.CreateResource(ctx, res))

	replacement := &models.Resource{Name: "Copper Ore", Rarity: "Uncommon"}
	require.NoError(t, store.ReplaceResource(ctx, res.ID, replacement))

	got, err := store.GetResourceByName(ctx, "Copper Ore")
	require.NoError(t, err)
	assert.Equal(t, "Uncommon", got.Rarity)
	// Replacement is a fresh entity, not an update of the old one.
	assert.Empty(t, got.Category)
	assert.Empty(t, got.Description)
	assert.NotEqual(t, res.ID, got.ID)
}

func createTestResource(t *testing.T, store Store, name string) *models.Resource {
	t.Helper()
	res := &models.Resource{Name: name}
	require.NoError(t, store.CreateResource(context.Background(), res))
	return res
}

func TestRecipeLifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	ore := createTestResource(t, store, "Iron Ore")
	coal := createTestResource(t, store, "Coal")

	rec := &models.CraftingRecipe{
		Name:           "Iron Ingot",
		OutputItemName: "Iron Ingot",
		OutputQuantity: 2,
		Ingredients: []models.RecipeIngredient{
			{ResourceID: ore.ID, Quantity: 3},
			{ResourceID: coal.ID, Quantity: 1},
		},
	}
	require.NoError(t, store.CreateRecipe(ctx, rec))
	require.NotZero(t, rec.ID)

	got, err := store.GetRecipeByName(ctx, "Iron Ingot")
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, "Iron Ore", got.Ingredients[0].ResourceName)
	assert.Equal(t, "Coal", got.Ingredients[1].ResourceName)

	require.NoError(t, store.DeleteRecipe(ctx, got.ID))
	_, err = store.GetRecipeByName(ctx, "Iron Ingot")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRecipe_ReplacesIngredientSet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	ore := createTestResource(t, store, "Iron Ore")
	coal := createTestResource(t, store, "Coal")

	rec := &models.CraftingRecipe{
		Name:           "Iron Ingot",
		OutputItemName: "Iron Ingot",
		Ingredients:    []models.RecipeIngredient{{ResourceID: ore.ID, Quantity: 2}},
	}
	require.NoError(t, store.CreateRecipe(ctx, rec))

	err := store.UpdateRecipe(ctx, rec.ID,
		map[string]any{"crafting_time_seconds": 45},
		[]models.RecipeIngredient{{ResourceID: coal.ID, Quantity: 5}},
		true)
	require.NoError(t, err)

	got, err := store.GetRecipeByName(ctx, "Iron Ingot")
	require.NoError(t, err)
	assert.Equal(t, 45, got.CraftingTimeSeconds)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, coal.ID, got.Ingredients[0].ResourceID)
	assert.Equal(t, 5, got.Ingredients[0].Quantity)
}

func TestUpdateRecipe_WithoutIngredientFlagKeepsIngredients(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	ore := createTestResource(t, store, "Iron Ore")
	rec := &models.CraftingRecipe{
		Name:           "Iron Ingot",
		OutputItemName: "Iron Ingot",
		Ingredients:    []models.RecipeIngredient{{ResourceID: ore.ID, Quantity: 2}},
	}
	require.NoError(t, store.CreateRecipe(ctx, rec))

	err := store.UpdateRecipe(ctx, rec.ID, map[string]any{"description": "smelted"}, nil, false)
	require.NoError(t, err)

	got, err := store.GetRecipeByName(ctx, "Iron Ingot")
	require.NoError(t, err)
	assert.Equal(t, "smelted", got.Description)
	require.Len(t, got.Ingredients, 1)
}

func TestReplaceRecipe_NoIngredientRemnants(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	a := createTestResource(t, store, "Resource A")
	b := createTestResource(t, store, "Resource B")

	rec := &models.CraftingRecipe{
		Name:           "Widget",
		OutputItemName: "Widget",
		Ingredients:    []models.RecipeIngredient{{ResourceID: a.ID, Quantity: 2}},
	}
	require.NoError(t, store.CreateRecipe(ctx, rec))

	replacement := &models.CraftingRecipe{
		Name:           "Widget",
		OutputItemName: "Widget",
		Ingredients:    []models.RecipeIngredient{{ResourceID: b.ID, Quantity: 5}},
	}
	require.NoError(t, store.ReplaceRecipe(ctx, rec.ID, replacement))

	got, err := store.GetRecipeByName(ctx, "Widget")
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, b.ID, got.Ingredients[0].ResourceID)
	assert.Equal(t, 5, got.Ingredients[0].Quantity)
}

func TestDeleteResource_CascadesToIngredients(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	ore := createTestResource(t, store, "Iron Ore")
	coal := createTestResource(t, store, "Coal")

	rec := &models.CraftingRecipe{
		Name:           "Iron Ingot",
		OutputItemName: "Iron Ingot",
		Ingredients: []models.RecipeIngredient{
			{ResourceID: ore.ID, Quantity: 3},
			{ResourceID: coal.ID, Quantity: 1},
		},
	}
	require.NoError(t, store.CreateRecipe(ctx, rec))

	require.NoError(t, store.DeleteResource(ctx, coal.ID))

	got, err := store.GetRecipeByName(ctx, "Iron Ingot")
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, ore.ID, got.Ingredients[0].ResourceID)
}

func TestListRecipes_OrderedByName(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Zip Line", "Bandage", "Rope"} {
		rec := &models.CraftingRecipe{Name: name, OutputItemName: name}
		require.NoError(t, store.CreateRecipe(ctx, rec))
	}

	recipes, err := store.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "Bandage", recipes[0].Name)
	assert.Equal(t, "Rope", recipes[1].Name)
	assert.Equal(t, "Zip Line", recipes[2].Name)
}
