package codec

import (
	"encoding/json"
	"fmt"

	"craftdex/feature/transfer/records"
)

// JSONCodec encodes and decodes the JSON document format:
//
//	{"metadata": {...}, "resources": [...], "crafting_recipes": [...]}
//
// Decoding is the structural inverse of encoding. Unknown keys are ignored;
// absent optional fields stay nil on the canonical record. Round-trip is
// lossless for all scalar fields.
type JSONCodec struct{}

type jsonMetadata struct {
	ExportDate     string `json:"export_date"`
	AppVersion     string `json:"app_version"`
	TotalResources int    `json:"total_resources"`
	TotalRecipes   int    `json:"total_recipes"`
}

type jsonResource struct {
	ID              *uint   `json:"id,omitempty"`
	Name            string  `json:"name"`
	Category        *string `json:"category,omitempty"`
	Rarity          *string `json:"rarity,omitempty"`
	Description     *string `json:"description,omitempty"`
	SourceLocations *string `json:"source_locations,omitempty"`
	IconPath        *string `json:"icon_path,omitempty"`
	Discovered      *bool   `json:"discovered,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}

type jsonIngredient struct {
	ResourceID *uint  `json:"resource_id,omitempty"`
	Name       string `json:"name,omitempty"`
	// resource_name is what exports write; name is also accepted on import.
	ResourceName string `json:"resource_name,omitempty"`
	Quantity     int    `json:"quantity"`
}

type jsonRecipe struct {
	ID                  *uint            `json:"id,omitempty"`
	Name                string           `json:"name"`
	Description         *string          `json:"description,omitempty"`
	OutputItemName      *string          `json:"output_item_name,omitempty"`
	OutputQuantity      *int             `json:"output_quantity,omitempty"`
	CraftingTimeSeconds *int             `json:"crafting_time_seconds,omitempty"`
	RequiredStation     *string          `json:"required_station,omitempty"`
	SkillRequirement    *string          `json:"skill_requirement,omitempty"`
	IconPath            *string          `json:"icon_path,omitempty"`
	Discovered          *bool            `json:"discovered,omitempty"`
	Ingredients         []jsonIngredient `json:"ingredients,omitempty"`
	CreatedAt           string           `json:"created_at,omitempty"`
	UpdatedAt           string           `json:"updated_at,omitempty"`
}

type jsonDocument struct {
	Metadata  jsonMetadata   `json:"metadata"`
	Resources []jsonResource `json:"resources,omitempty"`
	Recipes   []jsonRecipe   `json:"crafting_recipes,omitempty"`
}

// Encode renders a document as indented JSON.
func (JSONCodec) Encode(doc *records.Document) ([]byte, error) {
	out := jsonDocument{
		Metadata: jsonMetadata{
			ExportDate:     doc.Metadata.ExportDate,
			AppVersion:     doc.Metadata.AppVersion,
			TotalResources: doc.Metadata.TotalResources,
			TotalRecipes:   doc.Metadata.TotalRecipes,
		},
	}

	for _, r := range doc.Resources {
		out.Resources = append(out.Resources, jsonResource(r))
	}
	for _, r := range doc.Recipes {
		jr := jsonRecipe{
			ID:                  r.ID,
			Name:                r.Name,
			Description:         r.Description,
			OutputItemName:      r.OutputItemName,
			OutputQuantity:      r.OutputQuantity,
			CraftingTimeSeconds: r.CraftingTimeSeconds,
			RequiredStation:     r.RequiredStation,
			SkillRequirement:    r.SkillRequirement,
			IconPath:            r.IconPath,
			Discovered:          r.Discovered,
			CreatedAt:           r.CreatedAt,
			UpdatedAt:           r.UpdatedAt,
		}
		for _, ing := range r.Ingredients {
			jr.Ingredients = append(jr.Ingredients, jsonIngredient{
				ResourceID:   ing.ResourceID,
				ResourceName: ing.ResourceName,
				Quantity:     ing.Quantity,
			})
		}
		out.Recipes = append(out.Recipes, jr)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON document: %w", err)
	}
	return data, nil
}

// Decode parses a JSON document back into canonical records.
func (JSONCodec) Decode(data []byte) (*records.Document, error) {
	var in jsonDocument
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	doc := &records.Document{
		Metadata: records.Metadata{
			ExportDate:     in.Metadata.ExportDate,
			AppVersion:     in.Metadata.AppVersion,
			TotalResources: in.Metadata.TotalResources,
			TotalRecipes:   in.Metadata.TotalRecipes,
		},
	}

	for _, r := range in.Resources {
		doc.Resources = append(doc.Resources, records.Resource(r))
	}
	for _, r := range in.Recipes {
		rec := records.Recipe{
			ID:                  r.ID,
			Name:                r.Name,
			Description:         r.Description,
			OutputItemName:      r.OutputItemName,
			OutputQuantity:      r.OutputQuantity,
			CraftingTimeSeconds: r.CraftingTimeSeconds,
			RequiredStation:     r.RequiredStation,
			SkillRequirement:    r.SkillRequirement,
			IconPath:            r.IconPath,
			Discovered:          r.Discovered,
			CreatedAt:           r.CreatedAt,
			UpdatedAt:           r.UpdatedAt,
		}
		if r.Ingredients != nil {
			rec.Ingredients = make([]records.Ingredient, 0, len(r.Ingredients))
			for _, ing := range r.Ingredients {
				name := ing.Name
				if name == "" {
					name = ing.ResourceName
				}
				rec.Ingredients = append(rec.Ingredients, records.Ingredient{
					ResourceID:   ing.ResourceID,
					ResourceName: name,
					Quantity:     ing.Quantity,
				})
			}
		}
		doc.Recipes = append(doc.Recipes, rec)
	}

	return doc, nil
}
