package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"talent-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type UserRepository struct {
	collection *mongo.Collection
	mu         *sync.Mutex
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("User"),
		mu:         &sync.Mutex{},
	}
}

func (r *UserRepository) New(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}

	currentTime := int(time.Now().Unix())
	if user.CreatedAt == 0 {
		user.CreatedAt = currentTime
	}
	user.UpdatedAt = currentTime

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", err)
	}

	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIdentifier looks a user up by username or email. Returns
// (nil, nil) when no user matches.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	filter := bson.M{"$or": []bson.M{
		{"username": identifier},
		{"email": identifier},
	}}

	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindProfessionalsByIDs loads the professional users among ids and
// keys them by hex id. Non-professional and missing ids are simply
// absent from the map, which is how the join drops them.
func (r *UserRepository) FindProfessionalsByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	objectIDs := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := bson.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, objectID)
	}

	filter := bson.M{
		"_id":      bson.M{"$in": objectIDs},
		"usertype": models.UserTypeProfessional,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	byID := make(map[string]*models.User, len(users))
	for _, user := range users {
		byID[user.ID.Hex()] = user
	}
	return byID, nil
}

// SearchProfessionals matches professional users whose username or
// fullname contains q case-insensitively, in store order.
func (r *UserRepository) SearchProfessionals(ctx context.Context, q string) ([]*models.User, error) {
	pattern := regexp.QuoteMeta(q)
	filter := bson.M{
		"usertype": models.UserTypeProfessional,
		"$or": []bson.M{
			{"username": bson.M{"$regex": pattern, "$options": "i"}},
			{"fullname": bson.M{"$regex": pattern, "$options": "i"}},
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) SetUsername(ctx context.Context, id string, username string) error {
	return r.setField(ctx, id, "username", username)
}

func (r *UserRepository) SetEmail(ctx context.Context, id string, email string) error {
	return r.setField(ctx, id, "email", email)
}

func (r *UserRepository) SetPasswordHash(ctx context.Context, id string, passwordHash string) error {
	return r.setField(ctx, id, "passwordHash", passwordHash)
}

func (r *UserRepository) SetUsertype(ctx context.Context, id string, usertype models.UserType) error {
	return r.setField(ctx, id, "usertype", usertype)
}

func (r *UserRepository) setField(ctx context.Context, id string, field string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}

	update := bson.M{"$set": bson.M{
		field:       value,
		"updatedAt": int(time.Now().Unix()),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *UserRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "usertype", Value: 1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
