package transfer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"craftdex/feature/catalog"
	"craftdex/feature/catalog/models"
	"craftdex/feature/transfer/records"
)

// Resolver turns raw ingredient references into persistable ingredient rows.
// References carrying a resource identifier pass through unchanged; named
// references are looked up in the store. A reference that cannot be resolved
// is dropped with a warning so one bad ingredient never sinks its recipe.
type Resolver struct {
	store  catalog.Store
	logger *zap.Logger
}

// NewResolver creates a resolver backed by store.
func NewResolver(store catalog.Store, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve maps a recipe's raw ingredient references to ingredient rows.
// Duplicate references to the same resource keep the first occurrence.
// recipeName is only used in warnings.
func (r *Resolver) Resolve(ctx context.Context, recipeName string, ingredients []records.Ingredient) []models.RecipeIngredient {
	resolved := make([]models.RecipeIngredient, 0, len(ingredients))
	seen := make(map[uint]struct{}, len(ingredients))

	for _, ing := range ingredients {
		if ing.Quantity <= 0 {
			r.logger.Warn("Dropping ingredient with non-positive quantity",
				zap.String("recipe", recipeName),
				zap.String("resource", ing.ResourceName),
				zap.Int("quantity", ing.Quantity))
			continue
		}

		var resourceID uint
		switch {
		case ing.ResourceID != nil && *ing.ResourceID != 0:
			resourceID = *ing.ResourceID
		case ing.ResourceName != "":
			res, err := r.store.GetResourceByName(ctx, ing.ResourceName)
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					r.logger.Warn("Dropping ingredient referencing unknown resource",
						zap.String("recipe", recipeName),
						zap.String("resource", ing.ResourceName))
				} else {
					r.logger.Warn("Dropping ingredient after resource lookup failure",
						zap.String("recipe", recipeName),
						zap.String("resource", ing.ResourceName),
						zap.Error(err))
				}
				continue
			}
			resourceID = res.ID
		default:
			r.logger.Warn("Dropping ingredient without a resource reference",
				zap.String("recipe", recipeName))
			continue
		}

		if _, dup := seen[resourceID]; dup {
			r.logger.Warn("Dropping duplicate ingredient reference",
				zap.String("recipe", recipeName),
				zap.Uint("resource_id", resourceID))
			continue
		}
		seen[resourceID] = struct{}{}

		resolved = append(resolved, models.RecipeIngredient{
			ResourceID: resourceID,
			Quantity:   ing.Quantity,
		})
	}

	return resolved
}
