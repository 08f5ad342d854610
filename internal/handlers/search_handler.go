package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"talent-service/internal/middleware"
	"talent-service/internal/service"

	"github.com/gofiber/fiber/v3"
)

type SearchHandler struct {
	searchService *service.SearchService
	auth          *middleware.Auth
}

func NewSearchHandler(searchService *service.SearchService, auth *middleware.Auth) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		auth:          auth,
	}
}

func (h *SearchHandler) RegisterRoutes(app *fiber.App) {
	group := app.Group("/api/search", h.auth.RequireUser)

	group.Get("/", h.Search)
	group.Get("/category", h.SearchByCategory)
	group.Get("/availability", h.SearchByAvailability)
	group.Get("/top", h.TopProfiles)
	group.Get("/suggest", h.Suggest)

	app.Group("/api/ai-recommendation", h.auth.RequireUser).Get("/:userId", h.Recommend)
}

// Search runs the free-text fallback chain. Results come back as a
// bare JSON array in stage order.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	results, err := h.searchService.Search(ctx, callerID, c.Query("q"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuery) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Please write something to search",
			})
		}
		log.Printf("Search failed for user %s: %v", callerID, err)
		return serverError(c)
	}

	return c.Status(fiber.StatusOK).JSON(results)
}

func (h *SearchHandler) SearchByCategory(c fiber.Ctx) error {
	callerID := middleware.CallerID(c)
	category := c.Query("category")

	if category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Category is required",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	results, err := h.searchService.SearchByCategory(ctx, callerID, category)
	if err != nil {
		if errors.Is(err, service.ErrUnknownCategory) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid category",
			})
		}
		log.Printf("Category search failed for user %s: %v", callerID, err)
		return serverError(c)
	}

	return c.Status(fiber.StatusOK).JSON(results)
}

func (h *SearchHandler) SearchByAvailability(c fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	results, err := h.searchService.SearchByAvailability(ctx, callerID, c.Query("days"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidAvailability) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Availability required",
			})
		}
		log.Printf("Availability search failed for user %s: %v", callerID, err)
		return serverError(c)
	}

	return c.Status(fiber.StatusOK).JSON(results)
}

func (h *SearchHandler) TopProfiles(c fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	results, err := h.searchService.TopProfiles(ctx, callerID)
	if err != nil {
		log.Printf("Top profiles failed for user %s: %v", callerID, err)
		return serverError(c)
	}

	return c.Status(fiber.StatusOK).JSON(results)
}

// Suggest returns completion terms. Short queries yield an empty array
// rather than an error.
func (h *SearchHandler) Suggest(c fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	suggestions, err := h.searchService.Suggest(ctx, callerID, c.Query("q"))
	if err != nil {
		log.Printf("Suggest failed for user %s: %v", callerID, err)
		return serverError(c)
	}

	return c.Status(fiber.StatusOK).JSON(suggestions)
}

// Recommend returns skill-gap guidance for the named user's profile,
// derived from the category lexicon.
func (h *SearchHandler) Recommend(c fiber.Ctx) error {
	userID := c.Params("userId")

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	recommendations, err := h.searchService.Recommend(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Profile not found",
			})
		}
		log.Printf("Recommendation failed for user %s: %v", userID, err)
		return serverError(c)
	}

	return c.Status(fiber.StatusOK).JSON(recommendations)
}

func serverError(c fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Server error",
	})
}
