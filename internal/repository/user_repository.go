package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/user-account-service/internal/model"
)

// UserStore is the minimal surface the service layer needs from the
// document store.  Keeping it an interface allows tests to substitute an
// in-memory fake for the Mongo-backed implementation.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Insert(ctx context.Context, u *model.User) error
	Replace(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]model.User, error)
}

// UserRepo is the Mongo-backed UserStore.  It owns no state beyond the
// collection handle; every method is a single driver call.
type UserRepo struct {
	coll *mongo.Collection
}

// NewUserRepo constructs a UserRepo over the users collection of the given
// database.  This function allows dependency injection of the database in
// tests and at startup.
func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection("users")}
}

// FindByUsername fetches a user by exact username.  ErrUserNotFound is
// returned when no document matches.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID fetches a user by its hex document id.  A malformed id is
// indistinguishable from an absent one and also yields ErrUserNotFound.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	var u model.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Insert stores a new user and populates its ID field with the id assigned
// by the store.  A unique-index violation on username is mapped to
// ErrUsernameTaken so the losing side of a concurrent registration sees the
// same error as a plain duplicate.
func (r *UserRepo) Insert(ctx context.Context, u *model.User) error {
	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUsernameTaken
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

// Replace overwrites the stored document matching u.ID with u.  It returns
// ErrUserNotFound when no document matched.
func (r *UserRepo) Replace(ctx context.Context, u *model.User) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUsernameTaken
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes the document with the given hex id.  ErrUserNotFound is
// returned when nothing was deleted.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrUserNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// FindAll returns every user document.  The scan is unpaginated; list-all
// is an admin convenience, not a hot path.
func (r *UserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
