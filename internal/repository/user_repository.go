package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elysian-softech/account-service/internal/model"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists for this email and source")
)

type UserRepository interface {
	Find(ctx context.Context, email string, source model.Source) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, email string, source model.Source, newHash string) error
}

type mongoUserRepository struct {
	users *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{users: db.Collection("users")}
}

// EnsureIndexes creates the unique (email, source) index the create path
// relies on: InsertOne under this index is the atomic insert-if-absent, so
// duplicate registrations race to a duplicate-key error instead of a second
// document.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}, {Key: "source", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *mongoUserRepository) Find(ctx context.Context, email string, source model.Source) (*model.User, error) {
	var user model.User
	err := r.users.FindOne(ctx, bson.M{"email": email, "source": source}).Decode(&user)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := r.users.InsertOne(ctx, user)

	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateUser
	}

	return err
}

// UpdatePassword is a no-op success when no record matches; callers confirm
// existence through Find first.
func (r *mongoUserRepository) UpdatePassword(ctx context.Context, email string, source model.Source, newHash string) error {
	_, err := r.users.UpdateOne(ctx,
		bson.M{"email": email, "source": source},
		bson.M{"$set": bson.M{"password": newHash}},
	)
	return err
}
