package transfer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"craftdex/core/reconcile"
	"craftdex/feature/catalog"
	"craftdex/feature/catalog/models"
	"craftdex/feature/transfer/records"
)

// resourceAdapter reconciles canonical resource records against the catalog.
type resourceAdapter struct {
	store catalog.Store
}

func newResourceAdapter(store catalog.Store) *resourceAdapter {
	return &resourceAdapter{store: store}
}

func (a *resourceAdapter) Kind() string { return "resource" }

func (a *resourceAdapter) Key(rec reconcile.Record) string {
	r, ok := rec.(records.Resource)
	if !ok {
		return ""
	}
	return strings.TrimSpace(r.Name)
}

func (a *resourceAdapter) Validate(rec reconcile.Record) error {
	if _, ok := rec.(records.Resource); !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}
	return nil
}

func (a *resourceAdapter) Find(ctx context.Context, key string) (uint, bool, error) {
	existing, err := a.store.GetResourceByName(ctx, key)
	if errors.Is(err, catalog.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return existing.ID, true, nil
}

func (a *resourceAdapter) Create(ctx context.Context, rec reconcile.Record) error {
	r, ok := rec.(records.Resource)
	if !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}
	return a.store.CreateResource(ctx, resourceModel(r))
}

func (a *resourceAdapter) Update(ctx context.Context, id uint, rec reconcile.Record) error {
	r, ok := rec.(records.Resource)
	if !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}
	return a.store.UpdateResourceFields(ctx, id, resourceFieldMap(r))
}

func (a *resourceAdapter) Replace(ctx context.Context, id uint, rec reconcile.Record) error {
	r, ok := rec.(records.Resource)
	if !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}
	return a.store.ReplaceResource(ctx, id, resourceModel(r))
}

// resourceModel builds a full entity from a record. Absent optional fields
// take the model's zero values.
func resourceModel(r records.Resource) *models.Resource {
	m := &models.Resource{Name: strings.TrimSpace(r.Name)}
	if r.Category != nil {
		m.Category = *r.Category
	}
	if r.Rarity != nil {
		m.Rarity = *r.Rarity
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.SourceLocations != nil {
		m.SourceLocations = *r.SourceLocations
	}
	if r.IconPath != nil {
		m.IconPath = *r.IconPath
	}
	if r.Discovered != nil {
		m.Discovered = *r.Discovered
	}
	return m
}

// resourceFieldMap builds the partial-update column map from the fields
// present on the record. Name, identifier and timestamps never move through
// an update.
func resourceFieldMap(r records.Resource) map[string]any {
	fields := make(map[string]any)
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	if r.Rarity != nil {
		fields["rarity"] = *r.Rarity
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.SourceLocations != nil {
		fields["source_locations"] = *r.SourceLocations
	}
	if r.IconPath != nil {
		fields["icon_path"] = *r.IconPath
	}
	if r.Discovered != nil {
		fields["discovered"] = *r.Discovered
	}
	return fields
}

// recipeAdapter reconciles canonical recipe records against the catalog.
// Ingredient references are resolved immediately before each store write so
// they can see resources created earlier in the same batch.
type recipeAdapter struct {
	store    catalog.Store
	resolver *Resolver
}

func newRecipeAdapter(store catalog.Store, resolver *Resolver) *recipeAdapter {
	return &recipeAdapter{store: store, resolver: resolver}
}

func (a *recipeAdapter) Kind() string { return "recipe" }

func (a *recipeAdapter) Key(rec reconcile.Record) string {
	r, ok := rec.(records.Recipe)
	if !ok {
		return ""
	}
	return strings.TrimSpace(r.Name)
}

func (a *recipeAdapter) Validate(rec reconcile.Record) error {
	r, ok := rec.(records.Recipe)
	if !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}
	if r.OutputItemName == nil || strings.TrimSpace(*r.OutputItemName) == "" {
		return errors.New("missing output item name")
	}
	return nil
}

func (a *recipeAdapter) Find(ctx context.Context, key string) (uint, bool, error) {
	existing, err := a.store.GetRecipeByName(ctx, key)
	if errors.Is(err, catalog.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return existing.ID, true, nil
}

func (a *recipeAdapter) Create(ctx context.Context, rec reconcile.Record) error {
	r, ok := rec.(records.Recipe)
	if !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}
	return a.store.CreateRecipe(ctx, a.recipeModel(ctx, r))
}

func (a *recipeAdapter) Update(ctx context.Context, id uint, rec reconcile.Record) error {
	r, ok := rec.(records.Recipe)
	if !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}

	// An ingredients key on the record, even an empty one, replaces the
	// recipe's whole ingredient set. An absent key leaves it alone.
	var ingredients []models.RecipeIngredient
	replaceIngredients := r.Ingredients != nil
	if replaceIngredients {
		ingredients = a.resolver.Resolve(ctx, r.Name, r.Ingredients)
	}

	return a.store.UpdateRecipe(ctx, id, recipeFieldMap(r), ingredients, replaceIngredients)
}

func (a *recipeAdapter) Replace(ctx context.Context, id uint, rec reconcile.Record) error {
	r, ok := rec.(records.Recipe)
	if !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}
	return a.store.ReplaceRecipe(ctx, id, a.recipeModel(ctx, r))
}

func (a *recipeAdapter) recipeModel(ctx context.Context, r records.Recipe) *models.CraftingRecipe {
	m := &models.CraftingRecipe{
		Name:           strings.TrimSpace(r.Name),
		OutputQuantity: 1,
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.OutputItemName != nil {
		m.OutputItemName = *r.OutputItemName
	}
	if r.OutputQuantity != nil {
		m.OutputQuantity = *r.OutputQuantity
	}
	if r.CraftingTimeSeconds != nil {
		m.CraftingTimeSeconds = *r.CraftingTimeSeconds
	}
	if r.RequiredStation != nil {
		m.RequiredStation = *r.RequiredStation
	}
	if r.SkillRequirement != nil {
		m.SkillRequirement = *r.SkillRequirement
	}
	if r.IconPath != nil {
		m.IconPath = *r.IconPath
	}
	if r.Discovered != nil {
		m.Discovered = *r.Discovered
	}
	if len(r.Ingredients) > 0 {
		m.Ingredients = a.resolver.Resolve(ctx, r.Name, r.Ingredients)
	}
	return m
}

func recipeFieldMap(r records.Recipe) map[string]any {
	fields := make(map[string]any)
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.OutputItemName != nil {
		fields["output_item_name"] = *r.OutputItemName
	}
	if r.OutputQuantity != nil {
		fields["output_quantity"] = *r.OutputQuantity
	}
	if r.CraftingTimeSeconds != nil {
		fields["crafting_time_seconds"] = *r.CraftingTimeSeconds
	}
	if r.RequiredStation != nil {
		fields["required_station"] = *r.RequiredStation
	}
	if r.SkillRequirement != nil {
		fields["skill_requirement"] = *r.SkillRequirement
	}
	if r.IconPath != nil {
		fields["icon_path"] = *r.IconPath
	}
	if r.Discovered != nil {
		fields["discovered"] = *r.Discovered
	}
	return fields
}
