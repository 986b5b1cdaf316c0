package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"craftdex/feature/transfer/records"
)

func TestMarkdownCodec_DecodeResourceSection(t *testing.T) {
	input := strings.Join([]string{
		"## Resources",
		"### Water",
		"- **Category:** Material",
		"- **Rarity:** Common",
	}, "\n")

	doc, err := NewMarkdownCodec(nil).Decode([]byte(input))
	require.NoError(t, err)
	require.Len(t, doc.Resources, 1)

	r := doc.Resources[0]
	assert.Equal(t, "Water", r.Name)
	require.NotNil(t, r.Category)
	assert.Equal(t, "Material", *r.Category)
	require.NotNil(t, r.Rarity)
	assert.Equal(t, "Common", *r.Rarity)
}

func TestMarkdownCodec_RoundTrip(t *testing.T) {
	codec := NewMarkdownCodec(nil)
	doc := sampleDocument()

	data, err := codec.Encode(doc)
	require.NoError(t, err)

	decoded, err := codec.Decode(data)
	require.NoError(t, err)

	require.Len(t, decoded.Resources, 2)
	assert.Equal(t, "Iron Ore", decoded.Resources[0].Name)
	assert.Equal(t, "Material", *decoded.Resources[0].Category)
	assert.Equal(t, "Raw ore found near cliffs", *decoded.Resources[0].Description)
	assert.Equal(t, "Northern Caves", *decoded.Resources[0].SourceLocations)

	require.Len(t, decoded.Recipes, 1)
	rec := decoded.Recipes[0]
	assert.Equal(t, "Iron Ingot", rec.Name)
	assert.Equal(t, "Iron Ingot", *rec.OutputItemName)
	assert.Equal(t, 2, *rec.OutputQuantity)
	assert.Equal(t, 30, *rec.CraftingTimeSeconds)
	assert.Equal(t, "Furnace", *rec.RequiredStation)
	assert.Equal(t, "Smelting", *rec.SkillRequirement)
	require.Len(t, rec.Ingredients, 2)
	assert.Equal(t, records.Ingredient{ResourceName: "Iron Ore", Quantity: 3}, rec.Ingredients[0])
	assert.Equal(t, records.Ingredient{ResourceName: "Coal", Quantity: 1}, rec.Ingredients[1])
}

func TestMarkdownCodec_IngredientMultiplier(t *testing.T) {
	input := strings.Join([]string{
		"## Crafting Recipes",
		"### Stew",
		"- Ingredient: 3x Iron Ingot",
		"- Ingredient: Spice",
	}, "\n")

	doc, err := NewMarkdownCodec(nil).Decode([]byte(input))
	require.NoError(t, err)
	require.Len(t, doc.Recipes, 1)

	ingredients := doc.Recipes[0].Ingredients
	require.Len(t, ingredients, 2)
	assert.Equal(t, records.Ingredient{ResourceName: "Iron Ingot", Quantity: 3}, ingredients[0])
	assert.Equal(t, records.Ingredient{ResourceName: "Spice", Quantity: 1}, ingredients[1])
}

func TestMarkdownCodec_OutputFallsBackToQuantityOne(t *testing.T) {
	input := strings.Join([]string{
		"## Crafting Recipes",
		"### Bandage",
		"- **Output:** Bandage Roll",
	}, "\n")

	doc, err := NewMarkdownCodec(nil).Decode([]byte(input))
	require.NoError(t, err)
	require.Len(t, doc.Recipes, 1)

	rec := doc.Recipes[0]
	assert.Equal(t, "Bandage Roll", *rec.OutputItemName)
	assert.Equal(t, 1, *rec.OutputQuantity)
}

func TestMarkdownCodec_SkipsUnparseableLines(t *testing.T) {
	input := strings.Join([]string{
		"## Resources",
		"### Water",
		"- a bullet with no colon at all",
		"- **Unknown Key:** ignored",
		"- **Rarity:** Common",
		"plain prose between bullets",
	}, "\n")

	doc, err := NewMarkdownCodec(nil).Decode([]byte(input))
	require.NoError(t, err)
	require.Len(t, doc.Resources, 1)

	r := doc.Resources[0]
	assert.Equal(t, "Water", r.Name)
	assert.Nil(t, r.Category)
	assert.Equal(t, "Common", *r.Rarity)
}

func TestMarkdownCodec_DecodeEmptyDocumentFails(t *testing.T) {
	_, err := NewMarkdownCodec(nil).Decode([]byte("# Nothing here\n\njust prose\n"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestMarkdownCodec_RecipesAlwaysCarryIngredientList(t *testing.T) {
	input := strings.Join([]string{
		"## Crafting Recipes",
		"### Rope",
		"- **Output:** 1x Rope",
	}, "\n")

	doc, err := NewMarkdownCodec(nil).Decode([]byte(input))
	require.NoError(t, err)
	require.Len(t, doc.Recipes, 1)
	assert.NotNil(t, doc.Recipes[0].Ingredients)
	assert.Empty(t, doc.Recipes[0].Ingredients)
}

func TestMarkdownParser_FlushOnSectionAndHeading(t *testing.T) {
	p := newMarkdownParser(nil)
	p.line("## Resources")
	p.line("### Sand")
	p.line("- **Category:** Material")

	// The pending resource is not in the document until something flushes it.
	assert.Empty(t, p.doc.Resources)

	p.line("### Clay")
	require.Len(t, p.doc.Resources, 1)
	assert.Equal(t, "Sand", p.doc.Resources[0].Name)

	p.line("## Crafting Recipes")
	require.Len(t, p.doc.Resources, 2)
	assert.Equal(t, "Clay", p.doc.Resources[1].Name)
}

func TestMarkdownParser_FinishFlushesPendingItem(t *testing.T) {
	p := newMarkdownParser(nil)
	p.line("## Crafting Recipes")
	p.line("### Rope")
	p.line("- Ingredient: 2x Plant Fiber")

	doc := p.finish()
	require.Len(t, doc.Recipes, 1)
	assert.Equal(t, "Rope", doc.Recipes[0].Name)
	require.Len(t, doc.Recipes[0].Ingredients, 1)
}

func TestSplitQuantity(t *testing.T) {
	tests := []struct {
		value string
		qty   int
		name  string
	}{
		{"3x Iron Ingot", 3, "Iron Ingot"},
		{"12x Water", 12, "Water"},
		{"Spice", 1, "Spice"},
		{"Flax Fiber", 1, "Flax Fiber"},
		{"x Water", 1, "x Water"},
	}

	for _, tt := range tests {
		qty, name := splitQuantity(tt.value)
		assert.Equal(t, tt.qty, qty, tt.value)
		assert.Equal(t, tt.name, name, tt.value)
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"**Category":        "category",
		"**Source Locations": "source_locations",
		"Ingredient":        "ingredient",
		" **Skill Required": "skill_required",
		"*Rarity*":          "rarity",
	}

	for raw, want := range tests {
		assert.Equal(t, want, normalizeKey(raw), raw)
	}
}
