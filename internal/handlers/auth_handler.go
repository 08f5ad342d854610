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

type AuthHandler struct {
	authService *service.AuthService
	auth        *middleware.Auth
}

func NewAuthHandler(authService *service.AuthService, auth *middleware.Auth) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		auth:        auth,
	}
}

func (h *AuthHandler) RegisterRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", h.Register)
	authGroup.Post("/login", h.Login)
	authGroup.Post("/logout", h.Logout, h.auth.RequireUser)

	credGroup := app.Group("/api/credentials", h.auth.RequireUser)
	credGroup.Get("/", h.GetCredentials)
	credGroup.Put("/username", h.UpdateUsername)
	credGroup.Put("/email", h.UpdateEmail)
	credGroup.Put("/password", h.UpdatePassword)
	credGroup.Put("/professional", h.SwitchToProfessional)
	credGroup.Put("/user", h.SwitchToUser)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	if err := h.authService.Register(ctx, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Username or email already exists",
			})
		case errors.Is(err, service.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "All fields are required",
			})
		}
		log.Printf("Failed to register user: %v", err)
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
	})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	resp, err := h.authService.Login(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "The user does not exist",
			})
		case errors.Is(err, service.ErrWrongPassword):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "The password does not match",
			})
		}
		log.Printf("Failed to log user in: %v", err)
		return serverError(c)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.authService.Logout(ctx, middleware.Token(c)); err != nil {
		log.Printf("Failed to log user out: %v", err)
		return serverError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

func (h *AuthHandler) GetCredentials(c fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	user, err := h.authService.GetCredentials(ctx, callerID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Failed to get credentials for user %s: %v", callerID, err)
		return serverError(c)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *AuthHandler) UpdateUsername(c fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	var req models.UpdateUsernameRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	if err := h.authService.UpdateUsername(ctx, callerID, req.Username); err != nil {
		return h.credentialError(c, callerID, err, "Username is required", "Username already taken")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Username updated successfully",
	})
}

func (h *AuthHandler) UpdateEmail(c fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	var req models.UpdateEmailRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	if err := h.authService.UpdateEmail(ctx, callerID, req.Email); err != nil {
		return h.credentialError(c, callerID, err, "Email address is required", "Email already in use")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Email updated successfully",
	})
}

func (h *AuthHandler) UpdatePassword(c fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	var req models.UpdatePasswordRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	err := h.authService.UpdatePassword(ctx, callerID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Old and new passwords are required",
			})
		case errors.Is(err, service.ErrWrongPassword):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Incorrect old password",
			})
		case errors.Is(err, service.ErrSamePassword):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "New password must be different from old password",
			})
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Failed to update password for user %s: %v", callerID, err)
		return serverError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Password updated successfully",
	})
}

func (h *AuthHandler) SwitchToProfessional(c fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	profile, err := h.authService.SwitchToProfessional(ctx, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyProfessional):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Already a professional",
			})
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Failed to switch user %s to professional: %v", callerID, err)
		return serverError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Switched to professional successfully",
		"profile": profile,
	})
}

func (h *AuthHandler) SwitchToUser(c fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	if err := h.authService.SwitchToUser(ctx, callerID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Failed to switch user %s to regular user: %v", callerID, err)
		return serverError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Switched to regular user successfully",
	})
}

func (h *AuthHandler) credentialError(c fiber.Ctx, callerID string, err error, missingMsg, takenMsg string) error {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": missingMsg,
		})
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrEmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": takenMsg,
		})
	case errors.Is(err, service.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}
	log.Printf("Failed to update credentials for user %s: %v", callerID, err)
	return serverError(c)
}
