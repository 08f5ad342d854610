package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"talent-service/internal/middleware"
	"talent-service/internal/models"
	"talent-service/internal/service"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	auth           *middleware.Auth
}

func NewProfileHandler(profileService *service.ProfileService, auth *middleware.Auth) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		auth:           auth,
	}
}

func (h *ProfileHandler) RegisterRoutes(app *fiber.App) {
	group := app.Group("/api/profile", h.auth.RequireUser)

	group.Get("/", h.GetProfile)
	group.Post("/", h.UpsertProfile)
	group.Get("/:userId", h.GetProfileByID)
}

func (h *ProfileHandler) GetProfile(c fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.profileService.GetOwnProfile(ctx, callerID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) || errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Profile not found",
			})
		}
		log.Printf("Failed to get profile for user %s: %v", callerID, err)
		return serverError(c)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

// GetProfileByID serves another user's profile for the profile view
// page, joined with the owner's identity summary.
func (h *ProfileHandler) GetProfileByID(c fiber.Ctx) error {
	userID := c.Params("userId")

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.profileService.GetProfileByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) || errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Profile not found",
			})
		}
		log.Printf("Failed to get profile for user %s: %v", userID, err)
		return serverError(c)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) UpsertProfile(c fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	var dto models.ProfileDTO
	if err := c.Bind().Body(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	profile, created, err := h.profileService.UpsertProfile(ctx, callerID, &dto)
	if err != nil {
		log.Printf("Failed to upsert profile for user %s: %v", callerID, err)
		return serverError(c)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(profile)
}
