package service

import (
	"context"
	"errors"
	"testing"

	"talent-service/internal/event"
	"talent-service/internal/models"
)

func newProfileFixture() (*ProfileService, *fakeProfileStore, *fakeUserStore, *event.MockPublisher) {
	profiles := &fakeProfileStore{}
	users := &fakeUserStore{}
	publisher := event.NewMockPublisher()
	return NewProfileService(profiles, users, publisher), profiles, users, publisher
}

func TestGetOwnProfile(t *testing.T) {
	t.Run("joins the caller's identity", func(t *testing.T) {
		svc, profiles, users, _ := newProfileFixture()

		owner := newTestUser("owner", models.UserTypeProfessional)
		users.users = append(users.users, owner)
		profiles.profiles = append(profiles.profiles, newTestProfile(owner.ID.Hex(), 100))

		result, err := svc.GetOwnProfile(context.Background(), owner.ID.Hex())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Owner.Username != "owner" {
			t.Errorf("expected owner username, got %s", result.Owner.Username)
		}
	})

	t.Run("missing profile", func(t *testing.T) {
		svc, _, users, _ := newProfileFixture()

		owner := newTestUser("owner", models.UserTypeProfessional)
		users.users = append(users.users, owner)

		_, err := svc.GetOwnProfile(context.Background(), owner.ID.Hex())
		if !errors.Is(err, ErrProfileNotFound) {
			t.Fatalf("expected ErrProfileNotFound, got %v", err)
		}
	})
}

func TestGetProfileByOwner(t *testing.T) {
	t.Run("any caller can view a profile", func(t *testing.T) {
		svc, profiles, users, _ := newProfileFixture()

		owner := newTestUser("viewed", models.UserTypeProfessional)
		users.users = append(users.users, owner)
		profile := newTestProfile(owner.ID.Hex(), 100)
		profile.Bio = "product designer"
		profiles.profiles = append(profiles.profiles, profile)

		result, err := svc.GetProfileByOwner(context.Background(), owner.ID.Hex())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Owner.Username != "viewed" {
			t.Errorf("expected owner summary joined, got %s", result.Owner.Username)
		}
		if result.Bio != "product designer" {
			t.Errorf("expected profile fields, got bio %q", result.Bio)
		}
	})

	t.Run("missing profile", func(t *testing.T) {
		svc, _, _, _ := newProfileFixture()

		_, err := svc.GetProfileByOwner(context.Background(), "nobody")
		if !errors.Is(err, ErrProfileNotFound) {
			t.Fatalf("expected ErrProfileNotFound, got %v", err)
		}
	})
}

func TestUpsertProfile(t *testing.T) {
	t.Run("first save creates", func(t *testing.T) {
		svc, profiles, _, publisher := newProfileFixture()

		profile, created, err := svc.UpsertProfile(context.Background(), "owner-1", &models.ProfileDTO{
			Bio:    "backend engineer",
			Skills: []string{"go"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !created {
			t.Error("expected created=true on first save")
		}
		if profile.OwnerID != "owner-1" {
			t.Errorf("owner mismatch: %s", profile.OwnerID)
		}
		if len(profiles.profiles) != 1 {
			t.Fatalf("expected one stored profile, got %d", len(profiles.profiles))
		}
		if len(publisher.Events) != 1 || publisher.Events[0].EventType != models.EventTypeProfileCreated {
			t.Errorf("expected one profile-created event, got %v", publisher.Events)
		}
	})

	t.Run("second save updates", func(t *testing.T) {
		svc, profiles, _, publisher := newProfileFixture()

		_, _, err := svc.UpsertProfile(context.Background(), "owner-1", &models.ProfileDTO{Bio: "v1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		profile, created, err := svc.UpsertProfile(context.Background(), "owner-1", &models.ProfileDTO{Bio: "v2"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created {
			t.Error("expected created=false on second save")
		}
		if profile.Bio != "v2" {
			t.Errorf("expected bio v2, got %s", profile.Bio)
		}
		if len(profiles.profiles) != 1 {
			t.Fatalf("expected one stored profile, got %d", len(profiles.profiles))
		}
		if publisher.Events[len(publisher.Events)-1].EventType != models.EventTypeProfileUpdated {
			t.Errorf("expected a profile-updated event, got %v", publisher.Events)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		svc, _, _, _ := newProfileFixture()

		profile, _, err := svc.UpsertProfile(context.Background(), "owner-1", &models.ProfileDTO{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(profile.Availability) != 7 {
			t.Errorf("expected 7 availability days, got %d", len(profile.Availability))
		}
		if profile.ActiveDays() != 0 {
			t.Errorf("expected no active days by default, got %d", profile.ActiveDays())
		}
		if profile.EmploymentType == "" || profile.WorkMode == "" {
			t.Error("expected employment type and work mode defaults")
		}
		if profile.Skills == nil {
			t.Error("expected skills to default to an empty slice")
		}
	})

	t.Run("broker down does not block saves", func(t *testing.T) {
		svc := NewProfileService(&fakeProfileStore{}, &fakeUserStore{}, (*event.EventPublisher)(nil))

		_, created, err := svc.UpsertProfile(context.Background(), "owner-1", &models.ProfileDTO{Bio: "v1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !created {
			t.Error("expected created=true on first save")
		}
	})

	t.Run("malformed availability ignored", func(t *testing.T) {
		svc, _, _, _ := newProfileFixture()

		profile, _, err := svc.UpsertProfile(context.Background(), "owner-1", &models.ProfileDTO{
			Availability: []bool{true, true},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(profile.Availability) != 7 {
			t.Errorf("expected the 7-day default, got %d entries", len(profile.Availability))
		}
		if profile.ActiveDays() != 0 {
			t.Errorf("short availability vector must not be applied, got %d active days", profile.ActiveDays())
		}
	})
}
