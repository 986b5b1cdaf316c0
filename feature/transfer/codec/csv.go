package codec

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"craftdex/feature/transfer/records"
)

// Column headers for the two tables of a CSV bundle. The decoder matches
// columns by name, so reordered or extra columns in hand-edited files are
// tolerated; only the name column is mandatory.
var (
	resourceColumns = []string{
		"id", "name", "category", "rarity", "description", "source_locations",
		"icon_path", "discovered", "created_at", "updated_at",
	}
	recipeColumns = []string{
		"id", "name", "description", "output_item_name", "output_quantity",
		"crafting_time_seconds", "required_station", "skill_requirement",
		"icon_path", "discovered", "ingredients", "created_at", "updated_at",
	}
)

// csvIngredient is the shape of one element of the inline JSON array stored
// in a recipe row's ingredients cell.
type csvIngredient struct {
	ResourceID *uint  `json:"resource_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Quantity   int    `json:"quantity"`
}

// CSVCodec encodes and decodes the tabular format, one table per entity
// kind. A recipe's ingredients are serialized as a JSON array inside a
// single cell.
type CSVCodec struct {
	logger *zap.Logger
}

// NewCSVCodec returns a codec logging decode warnings to logger. A nil
// logger disables logging.
func NewCSVCodec(logger *zap.Logger) CSVCodec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return CSVCodec{logger: logger}
}

// EncodeResources renders resources as a CSV table.
func (CSVCodec) EncodeResources(resources []records.Resource) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(resourceColumns); err != nil {
		return nil, fmt.Errorf("failed to write resources CSV header: %w", err)
	}
	for _, r := range resources {
		row := []string{
			uintString(r.ID),
			r.Name,
			stringOr(r.Category, ""),
			stringOr(r.Rarity, ""),
			stringOr(r.Description, ""),
			stringOr(r.SourceLocations, ""),
			stringOr(r.IconPath, ""),
			flagString(r.Discovered),
			r.CreatedAt,
			r.UpdatedAt,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write resource row %q: %w", r.Name, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush resources CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeRecipes renders crafting recipes as a CSV table.
func (CSVCodec) EncodeRecipes(recipes []records.Recipe) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(recipeColumns); err != nil {
		return nil, fmt.Errorf("failed to write recipes CSV header: %w", err)
	}
	for _, r := range recipes {
		ingredients := make([]csvIngredient, 0, len(r.Ingredients))
		for _, ing := range r.Ingredients {
			ingredients = append(ingredients, csvIngredient{
				ResourceID: ing.ResourceID,
				Name:       ing.ResourceName,
				Quantity:   ing.Quantity,
			})
		}
		cell, err := json.Marshal(ingredients)
		if err != nil {
			return nil, fmt.Errorf("failed to encode ingredients for recipe %q: %w", r.Name, err)
		}

		row := []string{
			uintString(r.ID),
			r.Name,
			stringOr(r.Description, ""),
			stringOr(r.OutputItemName, ""),
			intString(r.OutputQuantity),
			intString(r.CraftingTimeSeconds),
			stringOr(r.RequiredStation, ""),
			stringOr(r.SkillRequirement, ""),
			stringOr(r.IconPath, ""),
			flagString(r.Discovered),
			string(cell),
			r.CreatedAt,
			r.UpdatedAt,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write recipe row %q: %w", r.Name, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush recipes CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeResources parses a resources CSV table.
func (c CSVCodec) DecodeResources(data []byte) ([]records.Resource, error) {
	rows, err := readTable(data)
	if err != nil {
		return nil, err
	}

	resources := make([]records.Resource, 0, len(rows))
	for _, row := range rows {
		r := records.Resource{Name: row.get("name")}
		if id, ok := row.uint("id"); ok {
			r.ID = &id
		}
		if v, ok := row.lookup("category"); ok {
			r.Category = records.StringPtr(v)
		}
		if v, ok := row.lookup("rarity"); ok {
			r.Rarity = records.StringPtr(v)
		}
		if v, ok := row.lookup("description"); ok {
			r.Description = records.StringPtr(v)
		}
		if v, ok := row.lookup("source_locations"); ok {
			r.SourceLocations = records.StringPtr(v)
		}
		if v, ok := row.lookup("icon_path"); ok {
			r.IconPath = records.StringPtr(v)
		}
		if v, ok := row.lookup("discovered"); ok {
			r.Discovered = records.BoolPtr(parseFlag(v))
		}
		resources = append(resources, r)
	}
	return resources, nil
}

// DecodeRecipes parses a crafting recipes CSV table. A recipe row with a
// malformed ingredients cell keeps an empty ingredient set rather than
// failing the row.
func (c CSVCodec) DecodeRecipes(data []byte) ([]records.Recipe, error) {
	rows, err := readTable(data)
	if err != nil {
		return nil, err
	}

	recipes := make([]records.Recipe, 0, len(rows))
	for _, row := range rows {
		r := records.Recipe{
			Name:        row.get("name"),
			Ingredients: []records.Ingredient{},
		}
		if id, ok := row.uint("id"); ok {
			r.ID = &id
		}
		if v, ok := row.lookup("description"); ok {
			r.Description = records.StringPtr(v)
		}
		if v, ok := row.lookup("output_item_name"); ok {
			r.OutputItemName = records.StringPtr(v)
		}
		if v, ok := row.lookup("output_quantity"); ok {
			r.OutputQuantity = records.IntPtr(intOr(v, 1))
		}
		if v, ok := row.lookup("crafting_time_seconds"); ok {
			r.CraftingTimeSeconds = records.IntPtr(intOr(v, 0))
		}
		if v, ok := row.lookup("required_station"); ok {
			r.RequiredStation = records.StringPtr(v)
		}
		if v, ok := row.lookup("skill_requirement"); ok {
			r.SkillRequirement = records.StringPtr(v)
		}
		if v, ok := row.lookup("icon_path"); ok {
			r.IconPath = records.StringPtr(v)
		}
		if v, ok := row.lookup("discovered"); ok {
			r.Discovered = records.BoolPtr(parseFlag(v))
		}

		if cell := row.get("ingredients"); cell != "" {
			var parsed []csvIngredient
			if err := json.Unmarshal([]byte(cell), &parsed); err != nil {
				c.logger.Warn("could not parse ingredients cell",
					zap.String("recipe", r.Name),
					zap.Error(err))
			} else {
				for _, ing := range parsed {
					r.Ingredients = append(r.Ingredients, records.Ingredient{
						ResourceID:   ing.ResourceID,
						ResourceName: ing.Name,
						Quantity:     ing.Quantity,
					})
				}
			}
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

// tableRow is one CSV record keyed by column name.
type tableRow map[string]string

func (r tableRow) get(col string) string { return r[col] }

func (r tableRow) lookup(col string) (string, bool) {
	v, ok := r[col]
	return v, ok
}

func (r tableRow) uint(col string) (uint, bool) {
	v, ok := r[col]
	if !ok || v == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// readTable reads a headered CSV table into name-keyed rows. The name column
// must be present; rows shorter than the header keep only the columns they
// cover.
func readTable(data []byte) ([]tableRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	raw, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty CSV table", ErrMalformed)
	}

	header := raw[0]
	hasName := false
	for _, col := range header {
		if col == "name" {
			hasName = true
			break
		}
	}
	if !hasName {
		return nil, fmt.Errorf("%w: CSV table has no name column", ErrMalformed)
	}

	rows := make([]tableRow, 0, len(raw)-1)
	for _, fields := range raw[1:] {
		row := make(tableRow, len(header))
		for i, col := range header {
			if i < len(fields) {
				row[col] = fields[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func intOr(v string, fallback int) int {
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func uintString(v *uint) string {
	if v == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*v), 10)
}

func intString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func flagString(v *bool) string {
	if v == nil {
		return ""
	}
	if *v {
		return "1"
	}
	return "0"
}
