package codec

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"craftdex/core/utils"
	"craftdex/feature/transfer/records"
)

// MarkdownCodec encodes and decodes the human-readable Markdown format.
//
// The document is a title followed by an "Export Information" metadata
// section, a "## Resources" section and a "## Crafting Recipes" section. Each
// entity is a level-3 heading holding its name, followed by bullet lines of
// the form "- **Key:** Value". Recipe ingredients are bullet lines of the
// form "- Ingredient: 3x Iron Ore"; a quantity of one renders as the bare
// resource name. The encoder's output is exactly the grammar the decoder
// accepts, so exported documents re-import losslessly for the fields the
// format carries.
type MarkdownCodec struct {
	logger *zap.Logger
}

// NewMarkdownCodec returns a codec logging parse warnings to logger. A nil
// logger disables logging.
func NewMarkdownCodec(logger *zap.Logger) MarkdownCodec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return MarkdownCodec{logger: logger}
}

// Encode renders a document as Markdown.
func (c MarkdownCodec) Encode(doc *records.Document) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Craftdex Data Export\n\n")

	b.WriteString("## Export Information\n\n")
	fmt.Fprintf(&b, "- **Export Date:** %s\n", doc.Metadata.ExportDate)
	fmt.Fprintf(&b, "- **App Version:** %s\n", doc.Metadata.AppVersion)
	fmt.Fprintf(&b, "- **Total Resources:** %d\n", doc.Metadata.TotalResources)
	fmt.Fprintf(&b, "- **Total Recipes:** %d\n\n", doc.Metadata.TotalRecipes)

	if len(doc.Resources) > 0 {
		b.WriteString("## Resources\n\n")
		for _, r := range doc.Resources {
			fmt.Fprintf(&b, "### %s\n", r.Name)
			fmt.Fprintf(&b, "- **Category:** %s\n", stringOr(r.Category, "Unknown"))
			fmt.Fprintf(&b, "- **Rarity:** %s\n", stringOr(r.Rarity, "Unknown"))
			if v := stringOr(r.Description, ""); v != "" {
				fmt.Fprintf(&b, "- **Description:** %s\n", v)
			}
			if v := stringOr(r.SourceLocations, ""); v != "" {
				fmt.Fprintf(&b, "- **Source Locations:** %s\n", v)
			}
			b.WriteString("\n")
		}
	}

	if len(doc.Recipes) > 0 {
		b.WriteString("## Crafting Recipes\n\n")
		for _, r := range doc.Recipes {
			fmt.Fprintf(&b, "### %s\n", r.Name)
			qty := 1
			if r.OutputQuantity != nil {
				qty = *r.OutputQuantity
			}
			fmt.Fprintf(&b, "- **Output:** %dx %s\n", qty, stringOr(r.OutputItemName, "Unknown"))
			if v := stringOr(r.RequiredStation, ""); v != "" {
				fmt.Fprintf(&b, "- **Station:** %s\n", v)
			}
			if r.CraftingTimeSeconds != nil && *r.CraftingTimeSeconds > 0 {
				fmt.Fprintf(&b, "- **Time:** %d seconds\n", *r.CraftingTimeSeconds)
			}
			if v := stringOr(r.SkillRequirement, ""); v != "" {
				fmt.Fprintf(&b, "- **Skill Required:** %s\n", v)
			}
			if v := stringOr(r.Description, ""); v != "" {
				fmt.Fprintf(&b, "- **Description:** %s\n", v)
			}
			for _, ing := range r.Ingredients {
				if ing.Quantity == 1 {
					fmt.Fprintf(&b, "- Ingredient: %s\n", ing.ResourceName)
				} else {
					fmt.Fprintf(&b, "- Ingredient: %dx %s\n", ing.Quantity, ing.ResourceName)
				}
			}
			b.WriteString("\n")
		}
	}

	return []byte(b.String()), nil
}

// Decode parses a Markdown document back into canonical records. Individual
// malformed lines are logged and skipped; the decode fails only when no
// entity at all could be parsed.
func (c MarkdownCodec) Decode(data []byte) (*records.Document, error) {
	p := newMarkdownParser(c.logger)
	for _, line := range strings.Split(string(data), "\n") {
		p.line(line)
	}
	doc := p.finish()

	if len(doc.Resources) == 0 && len(doc.Recipes) == 0 {
		return nil, fmt.Errorf("%w: no resources or crafting recipes found", ErrMalformed)
	}
	return doc, nil
}

const (
	sectionResources = "resources"
	sectionRecipes   = "recipes"
)

// markdownParser accumulates entities line by line. It tracks the current
// document section and the item under construction; the pending item is
// flushed into the document when the next heading starts or at end of input.
type markdownParser struct {
	logger  *zap.Logger
	doc     records.Document
	section string

	pendingResource *records.Resource
	pendingRecipe   *records.Recipe
}

func newMarkdownParser(logger *zap.Logger) *markdownParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &markdownParser{logger: logger}
}

// line consumes one input line.
func (p *markdownParser) line(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}

	switch {
	case strings.HasPrefix(line, "## Resources"):
		p.flush()
		p.section = sectionResources
	case strings.HasPrefix(line, "## Crafting Recipes"):
		p.flush()
		p.section = sectionRecipes
	case strings.HasPrefix(line, "### "):
		p.flush()
		p.start(strings.TrimSpace(line[4:]))
	case strings.HasPrefix(line, "- "):
		p.bullet(line[2:])
	}
}

// start opens a new pending item named name in the current section.
func (p *markdownParser) start(name string) {
	switch p.section {
	case sectionResources:
		p.pendingResource = &records.Resource{Name: name}
	case sectionRecipes:
		p.pendingRecipe = &records.Recipe{
			Name:        name,
			Ingredients: []records.Ingredient{},
		}
	}
}

// flush moves the pending item, if any, into the document.
func (p *markdownParser) flush() {
	if p.pendingResource != nil {
		p.doc.Resources = append(p.doc.Resources, *p.pendingResource)
		p.pendingResource = nil
	}
	if p.pendingRecipe != nil {
		p.doc.Recipes = append(p.doc.Recipes, *p.pendingRecipe)
		p.pendingRecipe = nil
	}
}

// finish flushes the last pending item and returns the parsed document.
func (p *markdownParser) finish() *records.Document {
	p.flush()
	return &p.doc
}

// bullet handles a "- Key: Value" line for the pending item.
func (p *markdownParser) bullet(content string) {
	if p.pendingResource == nil && p.pendingRecipe == nil {
		return
	}

	idx := strings.IndexByte(content, ':')
	if idx < 0 {
		p.logger.Warn("skipping bullet line without a colon", zap.String("line", content))
		return
	}

	key := normalizeKey(content[:idx])
	value := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(content[idx+1:]), "*"))
	if key == "" {
		p.logger.Warn("skipping bullet line with an empty key", zap.String("line", content))
		return
	}

	switch {
	case p.pendingResource != nil:
		if apply, ok := resourceFields[key]; ok {
			apply(p.pendingResource, value)
		}
	case p.pendingRecipe != nil:
		if apply, ok := recipeFields[key]; ok {
			apply(p, p.pendingRecipe, value)
		}
	}
}

// normalizeKey turns a raw bullet key like "**Source Locations" into
// "source_locations". The emphasis markers and the trailing colon land in
// the key because the line is split at the first colon of "**Key:** Value".
func normalizeKey(raw string) string {
	key := strings.TrimSpace(raw)
	key = strings.Trim(key, "*")
	key = strings.TrimSuffix(key, ":")
	key = strings.Trim(key, "*")
	key = strings.TrimSpace(key)
	return strings.ReplaceAll(strings.ToLower(key), " ", "_")
}

// splitQuantity parses multiplier values like "3x Iron Ingot" into (3, "Iron
// Ingot"). When the text before the first 'x' is not a plain integer the
// whole value is the name and the quantity defaults to one.
func splitQuantity(value string) (int, string) {
	if idx := strings.IndexByte(value, 'x'); idx >= 0 {
		if qty, err := strconv.Atoi(strings.TrimSpace(value[:idx])); err == nil {
			return qty, strings.TrimSpace(value[idx+1:])
		}
	}
	return 1, strings.TrimSpace(value)
}

func parseFlag(value string) bool {
	return utils.ToBool(value)
}

func stringOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}

var resourceFields = map[string]func(r *records.Resource, value string){
	"name": func(r *records.Resource, v string) {
		if v != "" {
			r.Name = v
		}
	},
	"category":         func(r *records.Resource, v string) { r.Category = records.StringPtr(v) },
	"rarity":           func(r *records.Resource, v string) { r.Rarity = records.StringPtr(v) },
	"description":      func(r *records.Resource, v string) { r.Description = records.StringPtr(v) },
	"source_locations": func(r *records.Resource, v string) { r.SourceLocations = records.StringPtr(v) },
	"icon_path":        func(r *records.Resource, v string) { r.IconPath = records.StringPtr(v) },
	"discovered":       func(r *records.Resource, v string) { r.Discovered = records.BoolPtr(parseFlag(v)) },
}

var recipeFields = map[string]func(p *markdownParser, r *records.Recipe, value string){
	"output": func(_ *markdownParser, r *records.Recipe, v string) {
		qty, name := splitQuantity(v)
		r.OutputQuantity = records.IntPtr(qty)
		r.OutputItemName = records.StringPtr(name)
	},
	"station": func(_ *markdownParser, r *records.Recipe, v string) {
		r.RequiredStation = records.StringPtr(v)
	},
	"time": func(_ *markdownParser, r *records.Recipe, v string) {
		seconds := 0
		if fields := strings.Fields(v); len(fields) > 0 {
			seconds = utils.ToInt(fields[0])
		}
		r.CraftingTimeSeconds = records.IntPtr(seconds)
	},
	"description": func(_ *markdownParser, r *records.Recipe, v string) {
		r.Description = records.StringPtr(v)
	},
	"skill_required": func(_ *markdownParser, r *records.Recipe, v string) {
		r.SkillRequirement = records.StringPtr(v)
	},
	"skill_requirement": func(_ *markdownParser, r *records.Recipe, v string) {
		r.SkillRequirement = records.StringPtr(v)
	},
	"icon_path": func(_ *markdownParser, r *records.Recipe, v string) {
		r.IconPath = records.StringPtr(v)
	},
	"discovered": func(_ *markdownParser, r *records.Recipe, v string) {
		r.Discovered = records.BoolPtr(parseFlag(v))
	},
	"ingredient":  appendIngredient,
	"ingredients": appendIngredient,
}

func appendIngredient(p *markdownParser, r *records.Recipe, v string) {
	qty, name := splitQuantity(v)
	if name == "" {
		p.logger.Warn("skipping ingredient with an empty name", zap.String("recipe", r.Name))
		return
	}
	r.Ingredients = append(r.Ingredients, records.Ingredient{
		ResourceName: name,
		Quantity:     qty,
	})
}
