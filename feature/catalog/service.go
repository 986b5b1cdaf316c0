package catalog

import (
	"context"

	"craftdex/feature/catalog/models"

	"go.uber.org/zap"
)

// Service exposes read access to the catalog for the HTTP surface.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// ListResources returns all resources ordered by name.
func (s *Service) ListResources(ctx context.Context) ([]models.Resource, error) {
	return s.store.ListResources(ctx)
}

// GetResource returns a single resource by its unique name.
func (s *Service) GetResource(ctx context.Context, name string) (*models.Resource, error) {
	return s.store.GetResourceByName(ctx, name)
}

// ListRecipes returns all recipes with their ingredients, ordered by name.
func (s *Service) ListRecipes(ctx context.Context) ([]models.CraftingRecipe, error) {
	return s.store.ListRecipes(ctx)
}

// GetRecipe returns a single recipe by its unique name, ingredients included.
func (s *Service) GetRecipe(ctx context.Context, name string) (*models.CraftingRecipe, error) {
	return s.store.GetRecipeByName(ctx, name)
}
