package repository

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"talent-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// regexSearchFields is the field set the fallback substring stage and
// the suggestion extractor match against. Kept aligned with the text
// index minus the name key, which profile documents never carry.
var regexSearchFields = []string{
	"bio",
	"skills",
	"location",
	"experience.title",
	"experience.company",
}

type ProfileRepository struct {
	collection *mongo.Collection
	mu         *sync.Mutex
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		collection: db.Collection("Profile"),
		mu:         &sync.Mutex{},
	}
}

func (r *ProfileRepository) New(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if profile.ID.IsZero() {
		profile.ID = bson.NewObjectID()
	}

	currentTime := int(time.Now().Unix())
	if profile.Metadata.CreatedAt == 0 {
		profile.Metadata.CreatedAt = currentTime
	}
	profile.Metadata.UpdatedAt = currentTime

	_, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}
	return profile, nil
}

func (r *ProfileRepository) FindByOwnerID(ctx context.Context, ownerID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"ownerId": ownerID}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) FindByOwnerIDs(ctx context.Context, ownerIDs []string) ([]*models.Profile, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": bson.M{"$in": ownerIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to find profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*models.Profile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}

	return profiles, nil
}

// FindAll loads the whole collection. Used by the availability filter,
// which computes active days in memory; no pagination on purpose.
func (r *ProfileRepository) FindAll(ctx context.Context) ([]*models.Profile, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*models.Profile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}

	return profiles, nil
}

func (r *ProfileRepository) FindRecent(ctx context.Context, limit int) ([]*models.Profile, error) {
	opts := options.Find()
	opts.SetSort(bson.M{"metadata.createdAt": -1})
	opts.SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find recent profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*models.Profile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}

	return profiles, nil
}

// TextSearch runs the query through the composite text index and
// returns hits ordered by descending relevance score. Ties are left in
// store order.
func (r *ProfileRepository) TextSearch(ctx context.Context, query string) ([]*models.ScoredProfile, error) {
	filter := bson.M{"$text": bson.M{"$search": query}}

	opts := options.Find()
	opts.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
	opts.SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to run text search: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*models.ScoredProfile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode text search results: %w", err)
	}

	return profiles, nil
}

// FieldSearch matches any token as a case-insensitive substring of any
// searchable field, ordered most-recently-updated first. limit <= 0
// means unbounded.
func (r *ProfileRepository) FieldSearch(ctx context.Context, tokens []string, limit int) ([]*models.Profile, error) {
	var ors []bson.M
	for _, token := range tokens {
		pattern := regexp.QuoteMeta(token)
		for _, field := range regexSearchFields {
			ors = append(ors, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
		}
	}
	if len(ors) == 0 {
		return nil, nil
	}

	opts := options.Find()
	opts.SetSort(bson.M{"metadata.updatedAt": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"$or": ors}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to run field search: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*models.Profile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode field search results: %w", err)
	}

	return profiles, nil
}

func (r *ProfileRepository) UpdateByOwnerID(ctx context.Context, ownerID string, profile *models.Profile) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile.Metadata.UpdatedAt = int(time.Now().Unix())

	filter := bson.M{"ownerId": ownerID}
	update := bson.M{"$set": bson.M{
		"bio":                profile.Bio,
		"skills":             profile.Skills,
		"location":           profile.Location,
		"availability":       profile.Availability,
		"experience":         profile.Experience,
		"qualifications":     profile.Qualifications,
		"contact":            profile.Contact,
		"employmentType":     profile.EmploymentType,
		"workMode":           profile.WorkMode,
		"metadata.updatedAt": profile.Metadata.UpdatedAt,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updatedProfile models.Profile
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updatedProfile)
	if err != nil {
		return nil, err
	}

	return &updatedProfile, nil
}

func (r *ProfileRepository) DeleteByOwnerID(ctx context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.collection.DeleteOne(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *ProfileRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "metadata.createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "metadata.updatedAt", Value: -1}},
		},
		{
			// Composite text index behind the ranked search stage. The
			// name key is indexed but never present on documents (the
			// owner's name lives on the User document), so full-name
			// queries only succeed via the identity fallback stage.
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "bio", Value: "text"},
				{Key: "skills", Value: "text"},
				{Key: "location", Value: "text"},
				{Key: "experience.title", Value: "text"},
				{Key: "experience.company", Value: "text"},
			},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
