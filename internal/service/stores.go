package service

import (
	"context"

	"talent-service/internal/models"
)

// ProfileStore is the query contract the services hold against the
// profile collection. Implemented by repository.ProfileRepository and
// by in-memory fakes in tests, which keeps the join, role-filter and
// self-exclusion rules testable without a running store.
type ProfileStore interface {
	New(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	FindByOwnerID(ctx context.Context, ownerID string) (*models.Profile, error)
	FindByOwnerIDs(ctx context.Context, ownerIDs []string) ([]*models.Profile, error)
	FindAll(ctx context.Context) ([]*models.Profile, error)
	FindRecent(ctx context.Context, limit int) ([]*models.Profile, error)
	TextSearch(ctx context.Context, query string) ([]*models.ScoredProfile, error)
	FieldSearch(ctx context.Context, tokens []string, limit int) ([]*models.Profile, error)
	UpdateByOwnerID(ctx context.Context, ownerID string, profile *models.Profile) (*models.Profile, error)
	DeleteByOwnerID(ctx context.Context, ownerID string) error
}

// UserStore is the identity-side contract.
type UserStore interface {
	New(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindProfessionalsByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	SearchProfessionals(ctx context.Context, q string) ([]*models.User, error)
	SetUsername(ctx context.Context, id string, username string) error
	SetEmail(ctx context.Context, id string, email string) error
	SetPasswordHash(ctx context.Context, id string, passwordHash string) error
	SetUsertype(ctx context.Context, id string, usertype models.UserType) error
}
