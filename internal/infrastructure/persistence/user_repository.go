package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/persistence/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository implements identity.UserRepository on the users collection
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(UsersCollection)}
}

// Create inserts the user. Email uniqueness is enforced by the unique index.
func (r *MongoUserRepository) Create(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	model.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, model); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return identity.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = model.ID.Hex()
	return nil
}

// Update writes profile and password fields if the stored version still
// matches user.Version, then bumps the version
func (r *MongoUserRepository) Update(ctx context.Context, user *identity.User) error {
	oid, err := parseID(user.ID, identity.ErrUserNotFound)
	if err != nil {
		return err
	}
	model := models.UserModelFromDomain(user)

	filter := activeScope(bson.M{"_id": oid, "version": user.Version})
	update := bson.M{
		"$set": model.SetFields(),
		"$inc": bson.M{"version": 1},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return identity.ErrEmailTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, user.ID); err != nil {
			return err
		}
		return shared.ErrConcurrencyConflict
	}
	user.IncrementVersion()
	return nil
}

// Deactivate soft-deletes an active user
func (r *MongoUserRepository) Deactivate(ctx context.Context, id string) error {
	oid, err := parseID(id, identity.ErrUserNotFound)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx,
		activeScope(bson.M{"_id": oid}),
		bson.M{
			"$set": bson.M{"isActive": false, "updatedAt": time.Now()},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	if res.MatchedCount == 0 {
		return identity.ErrUserNotFound
	}
	return nil
}

// FindByID finds an active user by ID
func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*identity.User, error) {
	oid, err := parseID(id, identity.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, activeScope(bson.M{"_id": oid}))
}

// FindByIDUnscoped finds a user by ID including soft-deleted ones
func (r *MongoUserRepository) FindByIDUnscoped(ctx context.Context, id string) (*identity.User, error) {
	oid, err := parseID(id, identity.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByEmail finds an active user by email
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	email = identity.NormalizeEmail(email)
	if email == "" {
		return nil, identity.ErrUserNotFound
	}
	return r.findOne(ctx, activeScope(bson.M{"email": email}))
}

// FindAll returns a page of active users, newest first
func (r *MongoUserRepository) FindAll(ctx context.Context, page shared.PageRequest) ([]*identity.User, int64, error) {
	page = page.Normalize()
	filter := activeScope(bson.M{})

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find users: %w", err)
	}

	var docs []models.UserModel
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode users: %w", err)
	}
	users := make([]*identity.User, len(docs))
	for i := range docs {
		users[i] = docs[i].ToDomain()
	}
	return users, total, nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*identity.User, error) {
	var model models.UserModel
	if err := r.coll.FindOne(ctx, filter).Decode(&model); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, identity.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return model.ToDomain(), nil
}

// Ensure MongoUserRepository implements UserRepository
var _ identity.UserRepository = (*MongoUserRepository)(nil)
