package service

import (
	"context"
	"fmt"

	"supportdesk/internal/model"
	"supportdesk/internal/repository"
	"supportdesk/internal/security"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrgRegistration is the outcome of RegisterOrganization.
type OrgRegistration struct {
	Organization *model.Organization
	Admin        *model.User
}

// OrgService implements the platform-admin organization surface.
type OrgService struct {
	orgs      repository.IOrgRepository
	users     repository.IUserRepository
	orgAdmins repository.IOrgAdminRepository
	hasher    *security.Hasher
}

// NewOrgService returns an OrgService.
func NewOrgService(
	orgs repository.IOrgRepository,
	users repository.IUserRepository,
	orgAdmins repository.IOrgAdminRepository,
	hasher *security.Hasher,
) *OrgService {
	return &OrgService{orgs: orgs, users: users, orgAdmins: orgAdmins, hasher: hasher}
}

// RegisterOrganization provisions a tenant: the Organization, an
// organization_admin User, and the OrgAdmin satellite, in that order,
// rolling back prior inserts if a later step fails.
func (s *OrgService) RegisterOrganization(ctx context.Context, req *model.RegisterOrgRequest) (*OrgRegistration, error) {
	if req.OrgName == "" || req.AdminUsername == "" || req.AdminPassword == "" {
		return nil, fmt.Errorf("%w: organization name, admin email, and password are required", ErrValidation)
	}

	existing, err := s.users.FindByEmail(ctx, req.AdminUsername)
	if err != nil {
		return nil, fmt.Errorf("lookup existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(req.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	adminName := req.OrgName + " Admin"

	var comp compensation
	org, err := s.orgs.Create(ctx, &model.Organization{
		Name:       req.OrgName,
		AdminName:  adminName,
		AdminEmail: req.AdminUsername,
		Services:   req.Services,
	})
	if err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}
	comp.add(func(ctx context.Context) error {
		_, err := s.orgs.Delete(ctx, org.ID)
		return err
	})

	user, err := s.users.Create(ctx, &model.User{
		Name:     adminName,
		Email:    req.AdminUsername,
		Password: hash,
		Role:     model.RoleOrgAdmin,
		OrgID:    org.ID,
	})
	if err != nil {
		comp.run(ctx)
		if err == repository.ErrDuplicateKey {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create admin user: %w", err)
	}
	comp.add(func(ctx context.Context) error {
		return s.users.Delete(ctx, user.ID)
	})

	if _, err := s.orgAdmins.Create(ctx, &model.OrgAdmin{
		AdminName: adminName,
		Email:     req.AdminUsername,
		OrgID:     org.ID,
	}); err != nil {
		comp.run(ctx)
		return nil, fmt.Errorf("create org admin record: %w", err)
	}

	return &OrgRegistration{Organization: org, Admin: user}, nil
}

// List returns all organizations, newest first.
func (s *OrgService) List(ctx context.Context) ([]*model.Organization, error) {
	return s.orgs.FindAll(ctx)
}

// Get returns one organization or ErrOrgNotFound.
func (s *OrgService) Get(ctx context.Context, id primitive.ObjectID) (*model.Organization, error) {
	org, err := s.orgs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup organization: %w", err)
	}
	if org == nil {
		return nil, ErrOrgNotFound
	}
	return org, nil
}

// Update patches the provided fields and returns the updated org, or
// ErrOrgNotFound.
func (s *OrgService) Update(ctx context.Context, id primitive.ObjectID, req *model.UpdateOrgRequest) (*model.Organization, error) {
	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.AdminEmail != nil {
		set["adminEmail"] = *req.AdminEmail
	}
	if req.Services != nil {
		set["services"] = *req.Services
	}
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	org, err := s.orgs.Update(ctx, id, set)
	if err != nil {
		return nil, fmt.Errorf("update organization: %w", err)
	}
	if org == nil {
		return nil, ErrOrgNotFound
	}
	return org, nil
}

// Delete removes the organization document only. Memberships and
// users are not cleaned up automatically.
func (s *OrgService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.orgs.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	if !deleted {
		return ErrOrgNotFound
	}
	return nil
}
