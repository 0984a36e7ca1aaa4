package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"supportdesk/internal/config"
	"supportdesk/internal/model"
	"supportdesk/internal/repository"
	"supportdesk/internal/security"
	"supportdesk/pkg/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors for the auth service; handlers map them to HTTP
// status codes.
var (
	ErrValidation         = errors.New("invalid request")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrOrgNotFound        = errors.New("organization not found")
	ErrAdminCapReached    = errors.New("platform admin limit reached")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotEndUser         = errors.New("only end users can select an organization")
)

// Post-login redirect paths, computed from role.
const (
	PathAdminDashboard    = "/admin/dashboard"
	PathOrgAdminDashboard = "/org-admin/dashboard"
	PathStaffDashboard    = "/staff/dashboard"
	PathOrgPicker         = "/select-organization"
	PathHome              = "/home"
)

// RegistrationResult is the outcome of Register: the created user plus
// whatever satellite documents the role required.
type RegistrationResult struct {
	User         *model.User
	Organization *model.Organization // non-nil only when a new org was created
	OrgAdmin     *model.OrgAdmin
	Staff        *model.Staff
}

// LoginResult carries everything the client needs after login.
type LoginResult struct {
	Token         string
	ExpiresAt     time.Time
	User          *model.User
	Organizations []*model.Organization
	RedirectPath  string
}

// SessionResult is the decoded user plus their org memberships.
type SessionResult struct {
	User          *model.User
	Organizations []*model.Organization
}

// AuthService implements registration, login, session lookup, and
// org selection.
type AuthService struct {
	users       repository.IUserRepository
	orgs        repository.IOrgRepository
	orgAdmins   repository.IOrgAdminRepository
	staff       repository.IStaffRepository
	memberships repository.IUserOrgRepository
	hasher      *security.Hasher
	tokens      *security.TokenProvider
	adminCap    int
}

// NewAuthService returns an AuthService wired to the given repositories.
func NewAuthService(
	users repository.IUserRepository,
	orgs repository.IOrgRepository,
	orgAdmins repository.IOrgAdminRepository,
	staff repository.IStaffRepository,
	memberships repository.IUserOrgRepository,
	hasher *security.Hasher,
	tokens *security.TokenProvider,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		users:       users,
		orgs:        orgs,
		orgAdmins:   orgAdmins,
		staff:       staff,
		memberships: memberships,
		hasher:      hasher,
		tokens:      tokens,
		adminCap:    cfg.Auth.PlatformAdminCap,
	}
}

// compensation is an explicit LIFO undo log for multi-document writes.
// MongoDB transactions need a replica set, which the deployment target
// does not guarantee, so a failed step rolls back prior inserts
// best-effort. A crash between steps can still leave orphans.
type compensation struct {
	undo []func(context.Context) error
}

func (c *compensation) add(fn func(context.Context) error) {
	c.undo = append(c.undo, fn)
}

func (c *compensation) run(ctx context.Context) {
	for i := len(c.undo) - 1; i >= 0; i-- {
		if err := c.undo[i](ctx); err != nil {
			log.Printf("[auth] compensation step %d failed: %v", i, err)
		}
	}
}

// Register validates the request and dispatches to the role-specific
// registration path. On any mid-sequence failure, documents created so
// far are deleted before the error is returned.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*RegistrationResult, error) {
	email := util.NormalizeEmail(req.Email)
	if err := util.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	name, err := util.ValidateName(req.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	switch role {
	case model.RoleUser:
		return s.registerEndUser(ctx, name, email, hash)
	case model.RolePlatAdmin:
		return s.registerPlatformAdmin(ctx, name, email, hash)
	case model.RoleOrgAdmin:
		return s.registerOrgAdmin(ctx, name, email, hash, req.OrgID, req.OrgName)
	case model.RoleStaff:
		return s.registerStaff(ctx, name, email, hash, req.OrgID)
	}
	return nil, ErrInvalidRole
}

func (s *AuthService) registerEndUser(ctx context.Context, name, email, hash string) (*RegistrationResult, error) {
	user, err := s.createUser(ctx, name, email, hash, model.RoleUser, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	return &RegistrationResult{User: user}, nil
}

func (s *AuthService) registerPlatformAdmin(ctx context.Context, name, email, hash string) (*RegistrationResult, error) {
	count, err := s.users.CountByRole(ctx, model.RolePlatAdmin)
	if err != nil {
		return nil, fmt.Errorf("count platform admins: %w", err)
	}
	if count >= int64(s.adminCap) {
		return nil, ErrAdminCapReached
	}
	user, err := s.createUser(ctx, name, email, hash, model.RolePlatAdmin, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	return &RegistrationResult{User: user}, nil
}

func (s *AuthService) registerOrgAdmin(ctx context.Context, name, email, hash, orgIDHex, orgName string) (*RegistrationResult, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required for organization_admin", ErrValidation)
	}

	var comp compensation
	var createdOrg *model.Organization
	var orgID primitive.ObjectID

	switch {
	case orgIDHex != "":
		existing, err := s.resolveOrg(ctx, orgIDHex)
		if err != nil {
			return nil, err
		}
		orgID = existing.ID
	case orgName != "":
		org, err := s.orgs.Create(ctx, &model.Organization{
			Name:       orgName,
			AdminName:  name,
			AdminEmail: email,
		})
		if err != nil {
			return nil, fmt.Errorf("create organization: %w", err)
		}
		createdOrg = org
		orgID = org.ID
		comp.add(func(ctx context.Context) error {
			_, err := s.orgs.Delete(ctx, org.ID)
			return err
		})
	default:
		return nil, fmt.Errorf("%w: either orgId or orgName is required for organization_admin", ErrValidation)
	}

	user, err := s.createUser(ctx, name, email, hash, model.RoleOrgAdmin, orgID)
	if err != nil {
		comp.run(ctx)
		return nil, err
	}
	comp.add(func(ctx context.Context) error {
		return s.users.Delete(ctx, user.ID)
	})

	admin, err := s.orgAdmins.Create(ctx, &model.OrgAdmin{
		AdminName: name,
		Email:     email,
		OrgID:     orgID,
	})
	if err != nil {
		comp.run(ctx)
		return nil, fmt.Errorf("create org admin record: %w", err)
	}

	return &RegistrationResult{User: user, Organization: createdOrg, OrgAdmin: admin}, nil
}

func (s *AuthService) registerStaff(ctx context.Context, name, email, hash, orgIDHex string) (*RegistrationResult, error) {
	if orgIDHex == "" {
		return nil, fmt.Errorf("%w: orgId is required for organization_staff", ErrValidation)
	}
	org, err := s.resolveOrg(ctx, orgIDHex)
	if err != nil {
		return nil, err
	}

	var comp compensation
	user, err := s.createUser(ctx, name, email, hash, model.RoleStaff, org.ID)
	if err != nil {
		return nil, err
	}
	comp.add(func(ctx context.Context) error {
		return s.users.Delete(ctx, user.ID)
	})

	staff, err := s.staff.Create(ctx, &model.Staff{
		Name:  name,
		Email: email,
		OrgID: org.ID,
	})
	if err != nil {
		comp.run(ctx)
		return nil, fmt.Errorf("create staff record: %w", err)
	}

	return &RegistrationResult{User: user, Staff: staff}, nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, hash, role string, orgID primitive.ObjectID) (*model.User, error) {
	user, err := s.users.Create(ctx, &model.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     role,
		OrgID:    orgID,
	})
	if err != nil {
		// The unique index catches registrations that raced past the
		// application-level existence check.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// resolveOrg parses an org id and confirms the organization exists.
func (s *AuthService) resolveOrg(ctx context.Context, orgIDHex string) (*model.Organization, error) {
	orgID, err := util.ParseObjectID(orgIDHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOrgNotFound, orgIDHex)
	}
	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("lookup organization: %w", err)
	}
	if org == nil {
		return nil, ErrOrgNotFound
	}
	return org, nil
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = util.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	orgs, err := s.membershipOrgs(ctx, user)
	if err != nil {
		return nil, err
	}

	orgClaim := ""
	if !user.OrgID.IsZero() {
		orgClaim = user.OrgID.Hex()
	}
	token, expiresAt, err := s.tokens.Issue(user.ID.Hex(), user.Role, user.Email, orgClaim)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{
		Token:         token,
		ExpiresAt:     expiresAt,
		User:          user,
		Organizations: orgs,
		RedirectPath:  redirectPathFor(user.Role, len(orgs)),
	}, nil
}

// redirectPathFor computes the client-side landing page from role.
// End users with anything other than exactly one membership go to the
// organization picker.
func redirectPathFor(role string, memberships int) string {
	switch role {
	case model.RolePlatAdmin:
		return PathAdminDashboard
	case model.RoleOrgAdmin:
		return PathOrgAdminDashboard
	case model.RoleStaff:
		return PathStaffDashboard
	default:
		if memberships == 1 {
			return PathHome
		}
		return PathOrgPicker
	}
}

// SelectOrg joins the caller to an organization (idempotent) and
// reissues a token with that org embedded. The underlying User
// document is never mutated.
func (s *AuthService) SelectOrg(ctx context.Context, claims *security.Claims, orgIDHex string) (string, time.Time, error) {
	if claims.Role != model.RoleUser {
		return "", time.Time{}, ErrNotEndUser
	}
	userID, err := util.ParseObjectID(claims.UserID())
	if err != nil {
		return "", time.Time{}, ErrUserNotFound
	}
	org, err := s.resolveOrg(ctx, orgIDHex)
	if err != nil {
		return "", time.Time{}, err
	}

	if _, err := s.memberships.Upsert(ctx, userID, org.ID); err != nil {
		return "", time.Time{}, fmt.Errorf("join organization: %w", err)
	}

	token, expiresAt, err := s.tokens.Issue(claims.UserID(), claims.Role, claims.Email, org.ID.Hex())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}
	return token, expiresAt, nil
}

// AvailableOrgs lists organizations the user has not joined yet.
func (s *AuthService) AvailableOrgs(ctx context.Context, claims *security.Claims) ([]*model.Organization, error) {
	userID, err := util.ParseObjectID(claims.UserID())
	if err != nil {
		return nil, ErrUserNotFound
	}
	edges, err := s.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	joined := make(map[primitive.ObjectID]bool, len(edges))
	for _, e := range edges {
		joined[e.OrgID] = true
	}

	all, err := s.orgs.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	available := make([]*model.Organization, 0, len(all))
	for _, org := range all {
		if !joined[org.ID] {
			available = append(available, org)
		}
	}
	return available, nil
}

// Session reloads the token's user from the store along with their
// org memberships. Returns ErrUserNotFound if the user was deleted
// after the token was issued.
func (s *AuthService) Session(ctx context.Context, claims *security.Claims) (*SessionResult, error) {
	userID, err := util.ParseObjectID(claims.UserID())
	if err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	orgs, err := s.membershipOrgs(ctx, user)
	if err != nil {
		return nil, err
	}
	return &SessionResult{User: user, Organizations: orgs}, nil
}

// membershipOrgs resolves the organizations a user belongs to: edge
// documents for end users, the single linked org for org-scoped roles.
func (s *AuthService) membershipOrgs(ctx context.Context, user *model.User) ([]*model.Organization, error) {
	if user.Role == model.RoleUser {
		edges, err := s.memberships.ListByUser(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("list memberships: %w", err)
		}
		orgs := make([]*model.Organization, 0, len(edges))
		for _, e := range edges {
			org, err := s.orgs.FindByID(ctx, e.OrgID)
			if err != nil {
				return nil, fmt.Errorf("lookup organization: %w", err)
			}
			if org != nil {
				orgs = append(orgs, org)
			}
		}
		return orgs, nil
	}

	if user.OrgID.IsZero() {
		return nil, nil
	}
	org, err := s.orgs.FindByID(ctx, user.OrgID)
	if err != nil {
		return nil, fmt.Errorf("lookup organization: %w", err)
	}
	if org == nil {
		return nil, nil
	}
	return []*model.Organization{org}, nil
}
