// Package memory provides in-memory repository implementations for
// tests. Failure injection fields force a specific step to fail so
// rollback behavior can be exercised.
package memory

import (
	"context"
	"sync"

	"supportdesk/internal/model"
	"supportdesk/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ repository.IUserRepository     = (*UserRepo)(nil)
	_ repository.IOrgRepository      = (*OrgRepo)(nil)
	_ repository.IOrgAdminRepository = (*OrgAdminRepo)(nil)
	_ repository.IStaffRepository    = (*StaffRepo)(nil)
	_ repository.IUserOrgRepository  = (*UserOrgRepo)(nil)
)

// UserRepo is an in-memory IUserRepository.
type UserRepo struct {
	mu        sync.Mutex
	users     map[primitive.ObjectID]*model.User
	CreateErr error // returned by Create when set
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[primitive.ObjectID]*model.User)}
}

func (r *UserRepo) Create(_ context.Context, u *model.User) (*model.User, error) {
	if r.CreateErr != nil {
		return nil, r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, repository.ErrDuplicateKey
		}
	}
	u.ID = primitive.NewObjectID()
	cp := *u
	r.users[u.ID] = &cp
	return u, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *UserRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *UserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *UserRepo) UpdateName(_ context.Context, id primitive.ObjectID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.Name = name
	}
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *UserRepo) DeleteByEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if u.Email == email {
			delete(r.users, id)
			return nil
		}
	}
	return nil
}

// Count reports the number of stored users.
func (r *UserRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// OrgRepo is an in-memory IOrgRepository.
type OrgRepo struct {
	mu        sync.Mutex
	orgs      map[primitive.ObjectID]*model.Organization
	order     []primitive.ObjectID
	CreateErr error
}

func NewOrgRepo() *OrgRepo {
	return &OrgRepo{orgs: make(map[primitive.ObjectID]*model.Organization)}
}

func (r *OrgRepo) Create(_ context.Context, org *model.Organization) (*model.Organization, error) {
	if r.CreateErr != nil {
		return nil, r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	org.ID = primitive.NewObjectID()
	cp := *org
	r.orgs[org.ID] = &cp
	r.order = append(r.order, org.ID)
	return org, nil
}

func (r *OrgRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if org, ok := r.orgs[id]; ok {
		cp := *org
		return &cp, nil
	}
	return nil, nil
}

func (r *OrgRepo) FindAll(_ context.Context) ([]*model.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Organization, 0, len(r.orgs))
	// Newest first, matching the mongo sort.
	for i := len(r.order) - 1; i >= 0; i-- {
		if org, ok := r.orgs[r.order[i]]; ok {
			cp := *org
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *OrgRepo) Update(_ context.Context, id primitive.ObjectID, update bson.M) (*model.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	org, ok := r.orgs[id]
	if !ok {
		return nil, nil
	}
	if v, ok := update["name"].(string); ok {
		org.Name = v
	}
	if v, ok := update["adminEmail"].(string); ok {
		org.AdminEmail = v
	}
	if v, ok := update["services"].(model.ServiceFlags); ok {
		org.Services = v
	}
	cp := *org
	return &cp, nil
}

func (r *OrgRepo) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orgs[id]; !ok {
		return false, nil
	}
	delete(r.orgs, id)
	return true, nil
}

// Count reports the number of stored organizations.
func (r *OrgRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orgs)
}

// OrgAdminRepo is an in-memory IOrgAdminRepository.
type OrgAdminRepo struct {
	mu        sync.Mutex
	admins    map[primitive.ObjectID]*model.OrgAdmin
	CreateErr error
}

func NewOrgAdminRepo() *OrgAdminRepo {
	return &OrgAdminRepo{admins: make(map[primitive.ObjectID]*model.OrgAdmin)}
}

func (r *OrgAdminRepo) Create(_ context.Context, a *model.OrgAdmin) (*model.OrgAdmin, error) {
	if r.CreateErr != nil {
		return nil, r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = primitive.NewObjectID()
	cp := *a
	r.admins[a.ID] = &cp
	return a, nil
}

func (r *OrgAdminRepo) FindByOrg(_ context.Context, orgID primitive.ObjectID) ([]*model.OrgAdmin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.OrgAdmin
	for _, a := range r.admins {
		if a.OrgID == orgID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *OrgAdminRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.admins, id)
	return nil
}

func (r *OrgAdminRepo) DeleteByEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.admins {
		if a.Email == email {
			delete(r.admins, id)
			return nil
		}
	}
	return nil
}

// Count reports the number of stored org admins.
func (r *OrgAdminRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.admins)
}

// StaffRepo is an in-memory IStaffRepository.
type StaffRepo struct {
	mu        sync.Mutex
	staff     map[primitive.ObjectID]*model.Staff
	CreateErr error
}

func NewStaffRepo() *StaffRepo {
	return &StaffRepo{staff: make(map[primitive.ObjectID]*model.Staff)}
}

func (r *StaffRepo) Create(_ context.Context, s *model.Staff) (*model.Staff, error) {
	if r.CreateErr != nil {
		return nil, r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = primitive.NewObjectID()
	cp := *s
	r.staff[s.ID] = &cp
	return s, nil
}

func (r *StaffRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.staff[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *StaffRepo) FindByOrg(_ context.Context, orgID primitive.ObjectID) ([]*model.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Staff
	for _, s := range r.staff {
		if s.OrgID == orgID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *StaffRepo) UpdateName(_ context.Context, id primitive.ObjectID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.staff[id]; ok {
		s.Name = name
	}
	return nil
}

func (r *StaffRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.staff, id)
	return nil
}

func (r *StaffRepo) DeleteByEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.staff {
		if s.Email == email {
			delete(r.staff, id)
			return nil
		}
	}
	return nil
}

// Count reports the number of stored staff records.
func (r *StaffRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.staff)
}

// UserOrgRepo is an in-memory IUserOrgRepository.
type UserOrgRepo struct {
	mu    sync.Mutex
	edges map[primitive.ObjectID]*model.UserOrg
}

func NewUserOrgRepo() *UserOrgRepo {
	return &UserOrgRepo{edges: make(map[primitive.ObjectID]*model.UserOrg)}
}

func (r *UserOrgRepo) Upsert(_ context.Context, userID, orgID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.edges {
		if e.UserID == userID && e.OrgID == orgID {
			return false, nil
		}
	}
	id := primitive.NewObjectID()
	r.edges[id] = &model.UserOrg{ID: id, UserID: userID, OrgID: orgID}
	return true, nil
}

func (r *UserOrgRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]*model.UserOrg, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.UserOrg
	for _, e := range r.edges {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *UserOrgRepo) ListByOrg(_ context.Context, orgID primitive.ObjectID) ([]*model.UserOrg, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.UserOrg
	for _, e := range r.edges {
		if e.OrgID == orgID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *UserOrgRepo) Exists(_ context.Context, userID, orgID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.edges {
		if e.UserID == userID && e.OrgID == orgID {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserOrgRepo) Delete(_ context.Context, userID, orgID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.edges {
		if e.UserID == userID && e.OrgID == orgID {
			delete(r.edges, id)
			return true, nil
		}
	}
	return false, nil
}

// Count reports the number of stored membership edges.
func (r *UserOrgRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.edges)
}
