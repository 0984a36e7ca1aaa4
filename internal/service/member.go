package service

import (
	"context"
	"errors"
	"fmt"

	"supportdesk/internal/model"
	"supportdesk/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors for the member service.
var (
	ErrStaffNotFound  = errors.New("staff member not found")
	ErrMemberNotFound = errors.New("user is not a member of this organization")
)

// MemberService implements the org-admin surface: end users joined to
// the org and the org's staff roster. All operations are scoped to the
// orgId carried in the caller's token.
type MemberService struct {
	users       repository.IUserRepository
	staff       repository.IStaffRepository
	memberships repository.IUserOrgRepository
	auth        *AuthService
}

// NewMemberService returns a MemberService. Staff creation delegates
// to auth so the User+Staff pair shares the registration compensation
// rules.
func NewMemberService(
	users repository.IUserRepository,
	staff repository.IStaffRepository,
	memberships repository.IUserOrgRepository,
	auth *AuthService,
) *MemberService {
	return &MemberService{users: users, staff: staff, memberships: memberships, auth: auth}
}

// ListOrgUsers returns the end users joined to the organization.
func (s *MemberService) ListOrgUsers(ctx context.Context, orgID primitive.ObjectID) ([]*model.User, error) {
	edges, err := s.memberships.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	ids := make([]primitive.ObjectID, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.UserID)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

// RemoveOrgUser detaches an end user from the organization by deleting
// the membership edge. The User document itself is left alone.
func (s *MemberService) RemoveOrgUser(ctx context.Context, orgID, userID primitive.ObjectID) error {
	deleted, err := s.memberships.Delete(ctx, userID, orgID)
	if err != nil {
		return fmt.Errorf("remove membership: %w", err)
	}
	if !deleted {
		return ErrMemberNotFound
	}
	return nil
}

// ListStaff returns the organization's staff roster.
func (s *MemberService) ListStaff(ctx context.Context, orgID primitive.ObjectID) ([]*model.Staff, error) {
	return s.staff.FindByOrg(ctx, orgID)
}

// CreateStaff registers an organization_staff user for the org. The
// User and Staff documents are created with the same rollback rules as
// self-registration.
func (s *MemberService) CreateStaff(ctx context.Context, orgID primitive.ObjectID, req *model.CreateStaffRequest) (*model.Staff, error) {
	result, err := s.auth.Register(ctx, &model.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.RoleStaff,
		OrgID:    orgID.Hex(),
	})
	if err != nil {
		return nil, err
	}
	return result.Staff, nil
}

// UpdateStaff renames a staff member, keeping the mirrored User
// document in sync. Staff outside the caller's org are not visible.
func (s *MemberService) UpdateStaff(ctx context.Context, orgID, staffID primitive.ObjectID, req *model.UpdateStaffRequest) (*model.Staff, error) {
	member, err := s.staff.FindByID(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("lookup staff: %w", err)
	}
	if member == nil || member.OrgID != orgID {
		return nil, ErrStaffNotFound
	}
	if req.Name == nil {
		return member, nil
	}

	if err := s.staff.UpdateName(ctx, staffID, *req.Name); err != nil {
		return nil, fmt.Errorf("update staff: %w", err)
	}
	if user, err := s.users.FindByEmail(ctx, member.Email); err == nil && user != nil {
		if err := s.users.UpdateName(ctx, user.ID, *req.Name); err != nil {
			return nil, fmt.Errorf("update user name: %w", err)
		}
	}
	member.Name = *req.Name
	return member, nil
}

// DeleteStaff removes a staff member and the matching User record.
func (s *MemberService) DeleteStaff(ctx context.Context, orgID, staffID primitive.ObjectID) error {
	member, err := s.staff.FindByID(ctx, staffID)
	if err != nil {
		return fmt.Errorf("lookup staff: %w", err)
	}
	if member == nil || member.OrgID != orgID {
		return ErrStaffNotFound
	}
	if err := s.staff.Delete(ctx, staffID); err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	if err := s.users.DeleteByEmail(ctx, member.Email); err != nil {
		return fmt.Errorf("delete staff user: %w", err)
	}
	return nil
}
