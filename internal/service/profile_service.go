package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"talent-service/internal/event"
	"talent-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

type ProfileService struct {
	profiles  ProfileStore
	users     UserStore
	publisher event.Publisher
}

func NewProfileService(profiles ProfileStore, users UserStore, publisher event.Publisher) *ProfileService {
	return &ProfileService{
		profiles:  profiles,
		users:     users,
		publisher: publisher,
	}
}

// GetOwnProfile returns the caller's profile joined with their own
// identity summary.
func (s *ProfileService) GetOwnProfile(ctx context.Context, userID string) (*models.SearchResult, error) {
	return s.GetProfileByOwner(ctx, userID)
}

// GetProfileByOwner loads any user's profile joined with the owner's
// identity summary, for the public profile view.
func (s *ProfileService) GetProfileByOwner(ctx context.Context, userID string) (*models.SearchResult, error) {
	profile, err := s.profiles.FindByOwnerID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &models.SearchResult{
		Profile: *profile,
		Owner:   user.Summary(),
	}, nil
}

// UpsertProfile creates the caller's profile on first save and updates
// it afterwards. Owner-only by construction: the owner id always comes
// from the authenticated caller.
func (s *ProfileService) UpsertProfile(ctx context.Context, userID string, dto *models.ProfileDTO) (*models.Profile, bool, error) {
	incoming := profileFromDTO(userID, dto)

	existing, err := s.profiles.FindByOwnerID(ctx, userID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, fmt.Errorf("failed to check existing profile: %w", err)
	}

	if existing == nil {
		created, err := s.profiles.New(ctx, incoming)
		if err != nil {
			return nil, false, fmt.Errorf("failed to create profile: %w", err)
		}
		s.publish(models.EventTypeProfileCreated, userID, created.ID.Hex())
		return created, true, nil
	}

	updated, err := s.profiles.UpdateByOwnerID(ctx, userID, incoming)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update profile: %w", err)
	}
	s.publish(models.EventTypeProfileUpdated, userID, updated.ID.Hex())
	return updated, false, nil
}

func profileFromDTO(ownerID string, dto *models.ProfileDTO) *models.Profile {
	profile := models.NewEmptyProfile(ownerID)
	profile.Bio = dto.Bio
	if dto.Skills != nil {
		profile.Skills = dto.Skills
	}
	profile.Location = dto.Location
	if len(dto.Availability) == 7 {
		profile.Availability = dto.Availability
	}
	profile.Experience = dto.Experience
	profile.Qualifications = dto.Qualifications
	profile.Contact = dto.Contact
	if dto.EmploymentType != "" {
		profile.EmploymentType = dto.EmploymentType
	}
	if dto.WorkMode != "" {
		profile.WorkMode = dto.WorkMode
	}
	return profile
}

func (s *ProfileService) publish(eventType models.EventType, userID, profileID string) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishEvent(&models.Event{
		EventType: eventType,
		UserID:    userID,
		ProfileID: profileID,
		Timestamp: int(time.Now().Unix()),
	})
	if err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
