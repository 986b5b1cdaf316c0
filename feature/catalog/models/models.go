package models

import "time"

// Resource is a harvestable material or component tracked by the catalog.
type Resource struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"uniqueIndex;size:120;not null" json:"name"`
	Category        string    `gorm:"size:60" json:"category"`
	Rarity          string    `gorm:"size:60" json:"rarity"`
	Description     string    `json:"description"`
	SourceLocations string    `json:"source_locations"`
	IconPath        string    `json:"icon_path"`
	Discovered      bool      `json:"discovered"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName overrides the table name.
func (Resource) TableName() string {
	return "resources"
}

// CraftingRecipe describes how an item is crafted. A recipe exclusively owns
// its ingredient rows: deleting or replacing the recipe removes them with it.
type CraftingRecipe struct {
	ID                  uint               `gorm:"primaryKey" json:"id"`
	Name                string             `gorm:"uniqueIndex;size:120;not null" json:"name"`
	Description         string             `json:"description"`
	OutputItemName      string             `gorm:"size:120;not null" json:"output_item_name"`
	OutputQuantity      int                `gorm:"default:1" json:"output_quantity"`
	CraftingTimeSeconds int                `json:"crafting_time_seconds"`
	RequiredStation     string             `gorm:"size:120" json:"required_station"`
	SkillRequirement    string             `gorm:"size:120" json:"skill_requirement"`
	IconPath            string             `json:"icon_path"`
	Discovered          bool               `json:"discovered"`
	Ingredients         []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// TableName overrides the table name.
func (CraftingRecipe) TableName() string {
	return "crafting_recipes"
}

// RecipeIngredient links a recipe to a resource with a quantity. It belongs
// to exactly one recipe and references exactly one resource.
type RecipeIngredient struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	RecipeID   uint `gorm:"index;not null" json:"recipe_id"`
	ResourceID uint `gorm:"index;not null" json:"resource_id"`
	Quantity   int  `gorm:"not null" json:"quantity"`

	// ResourceName is resolved from the current Resource row for display and
	// export. It is never persisted, so it can't go stale.
	ResourceName string `gorm:"-" json:"resource_name,omitempty"`
}

// TableName overrides the table name.
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
