package repository

import (
	"context"
	"time"

	"supportdesk/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IUserOrgRepository defines membership-edge persistence
type IUserOrgRepository interface {
	// Upsert inserts the (userID, orgID) edge if missing. Re-selecting
	// an already-joined org is a no-op; created reports whether a new
	// edge was written.
	Upsert(ctx context.Context, userID, orgID primitive.ObjectID) (created bool, err error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.UserOrg, error)
	ListByOrg(ctx context.Context, orgID primitive.ObjectID) ([]*model.UserOrg, error)
	Exists(ctx context.Context, userID, orgID primitive.ObjectID) (bool, error)
	Delete(ctx context.Context, userID, orgID primitive.ObjectID) (bool, error)
}

// UserOrgRepository implements membership persistence over MongoDB
type UserOrgRepository struct {
	collection *mongo.Collection
}

func NewUserOrgRepository(db *mongo.Database) IUserOrgRepository {
	return &UserOrgRepository{collection: db.Collection("userorgs")}
}

func (r *UserOrgRepository) Upsert(ctx context.Context, userID, orgID primitive.ObjectID) (bool, error) {
	filter := bson.M{"userId": userID, "orgId": orgID}
	update := bson.M{"$setOnInsert": bson.M{
		"userId":    userID,
		"orgId":     orgID,
		"createdAt": time.Now(),
	}}
	res, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		// A concurrent upsert can still race into the unique index.
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

func (r *UserOrgRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.UserOrg, error) {
	cur, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var edges []*model.UserOrg
	if err := cur.All(ctx, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}

func (r *UserOrgRepository) ListByOrg(ctx context.Context, orgID primitive.ObjectID) ([]*model.UserOrg, error) {
	cur, err := r.collection.Find(ctx, bson.M{"orgId": orgID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var edges []*model.UserOrg
	if err := cur.All(ctx, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}

func (r *UserOrgRepository) Exists(ctx context.Context, userID, orgID primitive.ObjectID) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "orgId": orgID}).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *UserOrgRepository) Delete(ctx context.Context, userID, orgID primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "orgId": orgID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
