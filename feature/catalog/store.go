package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"craftdex/feature/catalog/models"

	"gorm.io/gorm"
)

// Store failure sentinels. The gateway guarantees these are distinguishable
// so callers can treat a duplicate name differently from a plain failure.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrDuplicateName = errors.New("duplicate name")
)

// Store is the persistence gateway for the catalog. Every mutating recipe
// operation commits the recipe's scalar fields and its owned ingredient rows
// in one transaction.
type Store interface {
	CreateResource(ctx context.Context, res *models.Resource) error
	GetResourceByName(ctx context.Context, name string) (*models.Resource, error)
	ListResources(ctx context.Context) ([]models.Resource, error)
	// UpdateResourceFields applies only the given columns. An empty map is a
	// no-op success.
	UpdateResourceFields(ctx context.Context, id uint, fields map[string]any) error
	// ReplaceResource deletes the resource (cascading to ingredient rows that
	// reference it) and creates a fresh one, atomically.
	ReplaceResource(ctx context.Context, id uint, res *models.Resource) error
	DeleteResource(ctx context.Context, id uint) error

	CreateRecipe(ctx context.Context, rec *models.CraftingRecipe) error
	GetRecipeByName(ctx context.Context, name string) (*models.CraftingRecipe, error)
	ListRecipes(ctx context.Context) ([]models.CraftingRecipe, error)
	// UpdateRecipe applies the given columns and, when replaceIngredients is
	// set, swaps the full ingredient set for the supplied one.
	UpdateRecipe(ctx context.Context, id uint, fields map[string]any, ingredients []models.RecipeIngredient, replaceIngredients bool) error
	// ReplaceRecipe deletes the recipe with its owned ingredients and creates
	// a fresh one, atomically.
	ReplaceRecipe(ctx context.Context, id uint, rec *models.CraftingRecipe) error
	DeleteRecipe(ctx context.Context, id uint) error
}

// NewStore creates a GORM-backed Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

type gormStore struct {
	db *gorm.DB
}

// translate maps GORM sentinels onto the gateway's error taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateName
	default:
		return err
	}
}

func (s *gormStore) CreateResource(ctx context.Context, res *models.Resource) error {
	if err := s.db.WithContext(ctx).Create(res).Error; err != nil {
		return fmt.Errorf("failed to create resource %s: %w", res.Name, translate(err))
	}
	return nil
}

func (s *gormStore) GetResourceByName(ctx context.Context, name string) (*models.Resource, error) {
	var res models.Resource
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&res).Error
	if err != nil {
		return nil, translate(err)
	}
	return &res, nil
}

func (s *gormStore) ListResources(ctx context.Context) ([]models.Resource, error) {
	var out []models.Resource
	if err := s.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return out, nil
}

func (s *gormStore) UpdateResourceFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Model(&models.Resource{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("failed to update resource %d: %w", id, translate(err))
	}
	return nil
}

func (s *gormStore) ReplaceResource(ctx context.Context, id uint, res *models.Resource) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteResourceTx(tx, id); err != nil {
			return err
		}
		res.ID = 0
		return tx.Create(res).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace resource %s: %w", res.Name, translate(err))
	}
	return nil
}

func (s *gormStore) DeleteResource(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteResourceTx(tx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete resource %d: %w", id, translate(err))
	}
	return nil
}

// deleteResourceTx removes a resource and every ingredient row referencing
// it. The explicit ingredient delete keeps the cascade independent of
// whether the underlying schema enforces foreign keys.
func deleteResourceTx(tx *gorm.DB, id uint) error {
	if err := tx.Where("resource_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	result := tx.Delete(&models.Resource{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *gormStore) CreateRecipe(ctx context.Context, rec *models.CraftingRecipe) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Create inserts the owned ingredient rows with the recipe.
		return tx.Create(rec).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create recipe %s: %w", rec.Name, translate(err))
	}
	return nil
}

func (s *gormStore) GetRecipeByName(ctx context.Context, name string) (*models.CraftingRecipe, error) {
	var rec models.CraftingRecipe
	err := s.db.WithContext(ctx).Preload("Ingredients").Where("name = ?", name).First(&rec).Error
	if err != nil {
		return nil, translate(err)
	}
	if err := s.resolveIngredientNames(ctx, []models.CraftingRecipe{rec}); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *gormStore) ListRecipes(ctx context.Context) ([]models.CraftingRecipe, error) {
	var out []models.CraftingRecipe
	if err := s.db.WithContext(ctx).Preload("Ingredients").Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	if err := s.resolveIngredientNames(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// resolveIngredientNames recomputes each ingredient's display name from the
// current resources table.
func (s *gormStore) resolveIngredientNames(ctx context.Context, recipes []models.CraftingRecipe) error {
	ids := make([]uint, 0)
	seen := make(map[uint]struct{})
	for i := range recipes {
		for _, ing := range recipes[i].Ingredients {
			if _, ok := seen[ing.ResourceID]; !ok {
				seen[ing.ResourceID] = struct{}{}
				ids = append(ids, ing.ResourceID)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var resources []models.Resource
	if err := s.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&resources).Error; err != nil {
		return fmt.Errorf("failed to resolve ingredient names: %w", err)
	}
	names := make(map[uint]string, len(resources))
	for _, r := range resources {
		names[r.ID] = r.Name
	}

	for i := range recipes {
		for j := range recipes[i].Ingredients {
			recipes[i].Ingredients[j].ResourceName = names[recipes[i].Ingredients[j].ResourceID]
		}
	}
	return nil
}

func (s *gormStore) UpdateRecipe(ctx context.Context, id uint, fields map[string]any, ingredients []models.RecipeIngredient, replaceIngredients bool) error {
	if len(fields) == 0 && !replaceIngredients {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(&models.CraftingRecipe{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return err
			}
		}
		if replaceIngredients {
			if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			for i := range ingredients {
				ingredients[i].ID = 0
				ingredients[i].RecipeID = id
			}
			if len(ingredients) > 0 {
				if err := tx.Create(&ingredients).Error; err != nil {
					return err
				}
			}
			if len(fields) == 0 {
				// The ingredient swap alone must still bump the recipe's
				// updated_at.
				if err := tx.Model(&models.CraftingRecipe{}).Where("id = ?", id).
					Update("updated_at", time.Now().UTC()).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update recipe %d: %w", id, translate(err))
	}
	return nil
}

func (s *gormStore) ReplaceRecipe(ctx context.Context, id uint, rec *models.CraftingRecipe) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteRecipeTx(tx, id); err != nil {
			return err
		}
		rec.ID = 0
		for i := range rec.Ingredients {
			rec.Ingredients[i].ID = 0
			rec.Ingredients[i].RecipeID = 0
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace recipe %s: %w", rec.Name, translate(err))
	}
	return nil
}

func (s *gormStore) DeleteRecipe(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteRecipeTx(tx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete recipe %d: %w", id, translate(err))
	}
	return nil
}

// deleteRecipeTx removes a recipe and its owned ingredient rows.
func deleteRecipeTx(tx *gorm.DB, id uint) error {
	if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	result := tx.Delete(&models.CraftingRecipe{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
