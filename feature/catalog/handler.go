package catalog

import (
	"errors"

	"craftdex/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/resources", h.HandleListResources)
	app.Get("/resources/:name", h.HandleGetResource)
	app.Get("/recipes", h.HandleListRecipes)
	app.Get("/recipes/:name", h.HandleGetRecipe)
}

// HandleListResources returns all resources.
// @Summary List Resources
// @Description Get all catalog resources ordered by name.
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Resource "Resources"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /resources [get]
func (h *Handler) HandleListResources(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	resources, err := h.service.ListResources(c.Context())
	if err != nil {
		l.Error("Failed to list resources", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(resources)
}

// HandleGetResource returns one resource by name.
// @Summary Get Resource
// @Description Get a single resource by its unique name.
// @Tags catalog
// @Produce json
// @Param name path string true "Resource name"
// @Success 200 {object} models.Resource "Resource"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /resources/{name} [get]
func (h *Handler) HandleGetResource(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("name")

	res, err := h.service.GetResource(c.Context(), name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "resource not found",
			})
		}
		l.Error("Failed to get resource", zap.String("name", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(res)
}

// HandleListRecipes returns all recipes with ingredients.
// @Summary List Recipes
// @Description Get all crafting recipes, ingredients included, ordered by name.
// @Tags catalog
// @Produce json
// @Success 200 {array} models.CraftingRecipe "Recipes"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /recipes [get]
func (h *Handler) HandleListRecipes(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	recipes, err := h.service.ListRecipes(c.Context())
	if err != nil {
		l.Error("Failed to list recipes", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(recipes)
}

// HandleGetRecipe returns one recipe by name.
// @Summary Get Recipe
// @Description Get a single crafting recipe by its unique name.
// @Tags catalog
// @Produce json
// @Param name path string true "Recipe name"
// @Success 200 {object} models.CraftingRecipe "Recipe"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /recipes/{name} [get]
func (h *Handler) HandleGetRecipe(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("name")

	rec, err := h.service.GetRecipe(c.Context(), name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "recipe not found",
			})
		}
		l.Error("Failed to get recipe", zap.String("name", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(rec)
}
