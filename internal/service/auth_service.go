package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"talent-service/internal/event"
	"talent-service/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Claims is the JWT payload issued at login. The search core only ever
// consumes the Id claim, for self-exclusion.
type Claims struct {
	jwt.RegisteredClaims
	Id       string `json:"id"`
	Username string `json:"username"`
	Usertype string `json:"usertype"`
}

type AuthService struct {
	users     UserStore
	profiles  ProfileStore
	sessions  SessionStore
	publisher event.Publisher
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(users UserStore, profiles ProfileStore, sessions SessionStore, publisher event.Publisher, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		profiles:  profiles,
		sessions:  sessions,
		publisher: publisher,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) error {
	if req.Username == "" || req.Fullname == "" || req.Email == "" || req.Password == "" {
		return ErrMissingFields
	}
	if req.Usertype == "" {
		req.Usertype = models.UserTypeSeeker
	}
	if req.Usertype != models.UserTypeSeeker && req.Usertype != models.UserTypeProfessional {
		return ErrMissingFields
	}

	existingByName, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	existingByEmail, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existingByName != nil || existingByEmail != nil {
		return ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.users.New(ctx, &models.User{
		Username:     req.Username,
		Fullname:     req.Fullname,
		Email:        req.Email,
		PasswordHash: string(hash),
		Usertype:     req.Usertype,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	identifier := strings.ToLower(strings.TrimSpace(req.Identifier))

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrWrongPassword
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		Id:       user.ID.Hex(),
		Username: user.Username,
		Usertype: string(user.Usertype),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if s.sessions != nil {
		if err := s.sessions.Save(ctx, token, user.ID.Hex(), s.tokenTTL); err != nil {
			log.Printf("Failed to save session for user %s: %v", user.ID.Hex(), err)
		}
	}

	return &models.LoginResponse{
		Message: "Login Successful",
		Token:   token,
		User: models.UserResponse{
			ID:       user.ID.Hex(),
			Username: user.Username,
			Fullname: user.Fullname,
			Email:    user.Email,
			Usertype: user.Usertype,
		},
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.sessions == nil {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// GetCredentials returns the caller's account without the password
// hash (the model never serializes it).
func (s *AuthService) GetCredentials(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *AuthService) UpdateUsername(ctx context.Context, userID, username string) error {
	if username == "" {
		return ErrMissingFields
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return ErrUsernameTaken
	}

	if err := s.users.SetUsername(ctx, userID, username); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update username: %w", err)
	}
	return nil
}

func (s *AuthService) UpdateEmail(ctx context.Context, userID, email string) error {
	if email == "" {
		return ErrMissingFields
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return ErrEmailTaken
	}

	if err := s.users.SetEmail(ctx, userID, email); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update email: %w", err)
	}
	return nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return ErrMissingFields
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(newPassword)) == nil {
		return ErrSamePassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.SetPasswordHash(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// SwitchToProfessional promotes the caller and creates their empty
// profile so they become a search target immediately.
func (s *AuthService) SwitchToProfessional(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.IsProfessional() {
		return nil, ErrAlreadyProfessional
	}

	if err := s.users.SetUsertype(ctx, userID, models.UserTypeProfessional); err != nil {
		return nil, fmt.Errorf("failed to update usertype: %w", err)
	}

	profile, err := s.profiles.New(ctx, models.NewEmptyProfile(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.publish(models.EventTypeUserRoleChanged, userID, profile.ID.Hex(), map[string]any{
		"usertype": models.UserTypeProfessional,
	})
	s.publish(models.EventTypeProfileCreated, userID, profile.ID.Hex(), nil)

	return profile, nil
}

// SwitchToUser demotes the caller and deletes their profile. The
// search path does not rely on this cleanup: a stale profile whose
// owner is no longer professional is filtered at query time anyway.
func (s *AuthService) SwitchToUser(ctx context.Context, userID string) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.users.SetUsertype(ctx, userID, models.UserTypeSeeker); err != nil {
		return fmt.Errorf("failed to update usertype: %w", err)
	}

	if err := s.profiles.DeleteByOwnerID(ctx, userID); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	s.publish(models.EventTypeUserRoleChanged, userID, "", map[string]any{
		"usertype": models.UserTypeSeeker,
	})
	s.publish(models.EventTypeProfileDeleted, userID, "", nil)

	return nil
}

func (s *AuthService) publish(eventType models.EventType, userID, profileID string, details map[string]any) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishEvent(&models.Event{
		EventType: eventType,
		UserID:    userID,
		ProfileID: profileID,
		Timestamp: int(time.Now().Unix()),
		Details:   details,
	})
	if err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
