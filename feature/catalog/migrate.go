package catalog

import (
	"craftdex/feature/catalog/models"

	"gorm.io/gorm"
)

// Tables lists the catalog table names, in dependency order. Used with the
// schema inspector to warn about an uninitialized database.
func Tables() []string {
	return []string{"resources", "crafting_recipes", "recipe_ingredients"}
}

// Migrate creates any missing catalog tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Resource{},
		&models.CraftingRecipe{},
		&models.RecipeIngredient{},
	)
}
