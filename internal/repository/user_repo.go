package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"fit1-backend/internal/database"
	"fit1-backend/internal/identity"
	"fit1-backend/internal/models"
)

type UserRepo struct {
	collection
}

func NewUserRepo(pool *database.Pool) *UserRepo {
	return &UserRepo{collection{pool: pool, name: "users"}}
}

func (r *UserRepo) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	coll, err := r.get(ctx)
	if err != nil {
		return nil, err
	}
	var user models.User
	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storageErr("find user", err)
	}
	return &user, nil
}

// UpsertFromProvider finds the user by provider id, creating it on first
// sign-in. The bool reports whether the user was created.
func (r *UserRepo) UpsertFromProvider(ctx context.Context, pu identity.ProviderUser) (*models.User, bool, error) {
	coll, err := r.get(ctx)
	if err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	set := bson.M{
		"email":      pu.Email,
		"last_login": now,
		"updated_at": now,
	}
	if pu.PictureURL != "" {
		set["picture"] = pu.PictureURL
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"name":       pu.DisplayName(),
			"created_at": now,
		},
	}

	res, err := coll.UpdateOne(ctx, bson.M{"provider_id": pu.ProviderID}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return nil, false, storageErr("upsert user", err)
	}

	var user models.User
	if err := coll.FindOne(ctx, bson.M{"provider_id": pu.ProviderID}).Decode(&user); err != nil {
		return nil, false, storageErr("reload user", err)
	}
	return &user, res.UpsertedCount > 0, nil
}

// ReplaceDetails overwrites the whole user_details sub-document. It returns
// nil when the user does not exist.
func (r *UserRepo) ReplaceDetails(ctx context.Context, id bson.ObjectID, details models.UserDetails) (*models.User, error) {
	coll, err := r.get(ctx)
	if err != nil {
		return nil, err
	}
	var user models.User
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"user_details": details, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storageErr("replace user details", err)
	}
	return &user, nil
}

// UpdateCurrentWeight mirrors a new weight entry into an existing profile.
// Users without details are left untouched.
func (r *UserRepo) UpdateCurrentWeight(ctx context.Context, id bson.ObjectID, weight float64) error {
	coll, err := r.get(ctx)
	if err != nil {
		return err
	}
	_, err = coll.UpdateOne(ctx,
		bson.M{"_id": id, "user_details": bson.M{"$exists": true}},
		bson.M{"$set": bson.M{"user_details.weight": weight, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return storageErr("update current weight", err)
	}
	return nil
}

// EnsureIndexes creates necessary indexes for the users collection
func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	coll, err := r.get(ctx)
	if err != nil {
		return err
	}
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
		},
	}
	_, err = coll.Indexes().CreateMany(ctx, indexes)
	return err
}
