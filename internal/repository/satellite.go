package repository

import (
	"context"
	"time"

	"supportdesk/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// IOrgAdminRepository defines org-admin satellite persistence
type IOrgAdminRepository interface {
	Create(ctx context.Context, a *model.OrgAdmin) (*model.OrgAdmin, error)
	FindByOrg(ctx context.Context, orgID primitive.ObjectID) ([]*model.OrgAdmin, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByEmail(ctx context.Context, email string) error
}

// IStaffRepository defines staff satellite persistence
type IStaffRepository interface {
	Create(ctx context.Context, s *model.Staff) (*model.Staff, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Staff, error)
	FindByOrg(ctx context.Context, orgID primitive.ObjectID) ([]*model.Staff, error)
	UpdateName(ctx context.Context, id primitive.ObjectID, name string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByEmail(ctx context.Context, email string) error
}

// OrgAdminRepository implements org-admin persistence over MongoDB
type OrgAdminRepository struct {
	collection *mongo.Collection
}

func NewOrgAdminRepository(db *mongo.Database) IOrgAdminRepository {
	return &OrgAdminRepository{collection: db.Collection("orgadmins")}
}

func (r *OrgAdminRepository) Create(ctx context.Context, a *model.OrgAdmin) (*model.OrgAdmin, error) {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return a, nil
}

func (r *OrgAdminRepository) FindByOrg(ctx context.Context, orgID primitive.ObjectID) ([]*model.OrgAdmin, error) {
	cur, err := r.collection.Find(ctx, bson.M{"orgId": orgID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var admins []*model.OrgAdmin
	if err := cur.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *OrgAdminRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *OrgAdminRepository) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"email": email})
	return err
}

// StaffRepository implements staff persistence over MongoDB
type StaffRepository struct {
	collection *mongo.Collection
}

func NewStaffRepository(db *mongo.Database) IStaffRepository {
	return &StaffRepository{collection: db.Collection("staff")}
}

func (r *StaffRepository) Create(ctx context.Context, s *model.Staff) (*model.Staff, error) {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return s, nil
}

func (r *StaffRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Staff, error) {
	var s *model.Staff
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (r *StaffRepository) FindByOrg(ctx context.Context, orgID primitive.ObjectID) ([]*model.Staff, error) {
	cur, err := r.collection.Find(ctx, bson.M{"orgId": orgID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var staff []*model.Staff
	if err := cur.All(ctx, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *StaffRepository) UpdateName(ctx context.Context, id primitive.ObjectID, name string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"name": name, "updatedAt": time.Now()},
	})
	return err
}

func (r *StaffRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *StaffRepository) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"email": email})
	return err
}
