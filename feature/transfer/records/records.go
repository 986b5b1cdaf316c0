package records

// Canonical, format-agnostic record shapes. Every codec decodes into these
// and encodes from these; the reconciliation adapters consume them.
//
// Optional scalar fields are pointers: nil means the field was absent from
// the input, which is how partial updates stay unambiguous. A legitimately
// empty or zero value is still "present". The recipe Ingredients slice uses
// the same convention at the collection level: nil means the input carried
// no ingredients key at all, while a non-nil empty slice means "replace the
// ingredient set with nothing".

// Resource is the canonical shape of a catalog resource.
type Resource struct {
	ID              *uint
	Name            string
	Category        *string
	Rarity          *string
	Description     *string
	SourceLocations *string
	IconPath        *string
	Discovered      *bool

	// Store-assigned timestamps, carried on export only; imports ignore them.
	CreatedAt string
	UpdatedAt string
}

// Recipe is the canonical shape of a crafting recipe.
type Recipe struct {
	ID                  *uint
	Name                string
	Description         *string
	OutputItemName      *string
	OutputQuantity      *int
	CraftingTimeSeconds *int
	RequiredStation     *string
	SkillRequirement    *string
	IconPath            *string
	Discovered          *bool
	Ingredients         []Ingredient

	CreatedAt string
	UpdatedAt string
}

// Ingredient is a raw ingredient reference before resolution: either a known
// resource identifier, or a resource name still to be looked up.
type Ingredient struct {
	ResourceID   *uint
	ResourceName string
	Quantity     int
}

// Document is a full decoded or to-be-encoded data set.
type Document struct {
	Metadata  Metadata
	Resources []Resource
	Recipes   []Recipe
}

// Metadata describes an exported document.
type Metadata struct {
	ExportDate     string
	AppVersion     string
	TotalResources int
	TotalRecipes   int
}

// Helpers for building records with literal values, mostly in tests and the
// export assembly.

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to i.
func IntPtr(i int) *int { return &i }

// UintPtr returns a pointer to u.
func UintPtr(u uint) *uint { return &u }

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }
