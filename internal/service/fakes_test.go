package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"talent-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// fakeProfileStore keeps profiles in memory and mimics the store-side
// matching the real repository delegates to MongoDB. TextSearch is the
// exception: index relevance cannot be emulated, so tests preload the
// scored result set explicitly.
type fakeProfileStore struct {
	profiles []*models.Profile
	scored   []*models.ScoredProfile

	textErr  error
	fieldErr error

	textCalls   int
	fieldCalls  int
	fieldLimit  int
	allCalls    int
	recentCalls int
	recentLimit int
}

func (f *fakeProfileStore) New(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if profile.ID.IsZero() {
		profile.ID = bson.NewObjectID()
	}
	now := int(time.Now().Unix())
	if profile.Metadata.CreatedAt == 0 {
		profile.Metadata.CreatedAt = now
	}
	profile.Metadata.UpdatedAt = now
	f.profiles = append(f.profiles, profile)
	return profile, nil
}

func (f *fakeProfileStore) FindByOwnerID(ctx context.Context, ownerID string) (*models.Profile, error) {
	for _, profile := range f.profiles {
		if profile.OwnerID == ownerID {
			return profile, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeProfileStore) FindByOwnerIDs(ctx context.Context, ownerIDs []string) ([]*models.Profile, error) {
	wanted := make(map[string]struct{}, len(ownerIDs))
	for _, id := range ownerIDs {
		wanted[id] = struct{}{}
	}
	var matched []*models.Profile
	for _, profile := range f.profiles {
		if _, ok := wanted[profile.OwnerID]; ok {
			matched = append(matched, profile)
		}
	}
	return matched, nil
}

func (f *fakeProfileStore) FindAll(ctx context.Context) ([]*models.Profile, error) {
	f.allCalls++
	return append([]*models.Profile{}, f.profiles...), nil
}

func (f *fakeProfileStore) FindRecent(ctx context.Context, limit int) ([]*models.Profile, error) {
	f.recentCalls++
	f.recentLimit = limit
	recent := append([]*models.Profile{}, f.profiles...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Metadata.CreatedAt > recent[j].Metadata.CreatedAt
	})
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}

func (f *fakeProfileStore) TextSearch(ctx context.Context, query string) ([]*models.ScoredProfile, error) {
	f.textCalls++
	if f.textErr != nil {
		return nil, f.textErr
	}
	return f.scored, nil
}

func (f *fakeProfileStore) FieldSearch(ctx context.Context, tokens []string, limit int) ([]*models.Profile, error) {
	f.fieldCalls++
	f.fieldLimit = limit
	if f.fieldErr != nil {
		return nil, f.fieldErr
	}

	var matched []*models.Profile
	for _, profile := range f.profiles {
		if profileMatchesAny(profile, tokens) {
			matched = append(matched, profile)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Metadata.UpdatedAt > matched[j].Metadata.UpdatedAt
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func profileMatchesAny(profile *models.Profile, tokens []string) bool {
	fields := []string{profile.Bio, profile.Location}
	fields = append(fields, profile.Skills...)
	for _, exp := range profile.Experience {
		fields = append(fields, exp.Title, exp.Company)
	}
	for _, token := range tokens {
		token = strings.ToLower(token)
		for _, field := range fields {
			if field != "" && strings.Contains(strings.ToLower(field), token) {
				return true
			}
		}
	}
	return false
}

func (f *fakeProfileStore) UpdateByOwnerID(ctx context.Context, ownerID string, profile *models.Profile) (*models.Profile, error) {
	for _, existing := range f.profiles {
		if existing.OwnerID == ownerID {
			existing.Bio = profile.Bio
			existing.Skills = profile.Skills
			existing.Location = profile.Location
			existing.Availability = profile.Availability
			existing.Experience = profile.Experience
			existing.Qualifications = profile.Qualifications
			existing.Contact = profile.Contact
			existing.EmploymentType = profile.EmploymentType
			existing.WorkMode = profile.WorkMode
			existing.Metadata.UpdatedAt = int(time.Now().Unix())
			return existing, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeProfileStore) DeleteByOwnerID(ctx context.Context, ownerID string) error {
	for i, profile := range f.profiles {
		if profile.OwnerID == ownerID {
			f.profiles = append(f.profiles[:i], f.profiles[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type fakeUserStore struct {
	users []*models.User

	searchErr   error
	searchCalls int
	byIDsCalls  int
}

func (f *fakeUserStore) New(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	now := int(time.Now().Unix())
	if user.CreatedAt == 0 {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	for _, user := range f.users {
		if user.ID.Hex() == id {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserStore) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == identifier || user.Email == identifier {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindProfessionalsByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	f.byIDsCalls++
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	byID := make(map[string]*models.User)
	for _, user := range f.users {
		if !user.IsProfessional() {
			continue
		}
		if _, ok := wanted[user.ID.Hex()]; ok {
			byID[user.ID.Hex()] = user
		}
	}
	return byID, nil
}

func (f *fakeUserStore) SearchProfessionals(ctx context.Context, q string) ([]*models.User, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	q = strings.ToLower(q)
	var matched []*models.User
	for _, user := range f.users {
		if !user.IsProfessional() {
			continue
		}
		if strings.Contains(strings.ToLower(user.Username), q) ||
			strings.Contains(strings.ToLower(user.Fullname), q) {
			matched = append(matched, user)
		}
	}
	return matched, nil
}

func (f *fakeUserStore) SetUsername(ctx context.Context, id string, username string) error {
	return f.set(id, func(u *models.User) { u.Username = username })
}

func (f *fakeUserStore) SetEmail(ctx context.Context, id string, email string) error {
	return f.set(id, func(u *models.User) { u.Email = email })
}

func (f *fakeUserStore) SetPasswordHash(ctx context.Context, id string, passwordHash string) error {
	return f.set(id, func(u *models.User) { u.PasswordHash = passwordHash })
}

func (f *fakeUserStore) SetUsertype(ctx context.Context, id string, usertype models.UserType) error {
	return f.set(id, func(u *models.User) { u.Usertype = usertype })
}

func (f *fakeUserStore) set(id string, apply func(*models.User)) error {
	for _, user := range f.users {
		if user.ID.Hex() == id {
			apply(user)
			user.UpdatedAt = int(time.Now().Unix())
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

// Test data helpers.

func newTestUser(username string, usertype models.UserType) *models.User {
	return &models.User{
		ID:       bson.NewObjectID(),
		Username: username,
		Fullname: username + " example",
		Email:    username + "@example.com",
		Usertype: usertype,
	}
}

func newTestProfile(ownerID string, createdAt int) *models.Profile {
	profile := models.NewEmptyProfile(ownerID)
	profile.ID = bson.NewObjectID()
	profile.Metadata.CreatedAt = createdAt
	profile.Metadata.UpdatedAt = createdAt
	return profile
}
