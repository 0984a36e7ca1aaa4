package server

import (
	"time"

	"supportdesk/internal/config"
	"supportdesk/internal/handler"
	"supportdesk/internal/repository"
	"supportdesk/internal/security"
	"supportdesk/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories bundles the persistence layer.
type Repositories struct {
	Users     repository.IUserRepository
	Orgs      repository.IOrgRepository
	OrgAdmins repository.IOrgAdminRepository
	Staff     repository.IStaffRepository
	UserOrgs  repository.IUserOrgRepository
}

// Services bundles the business logic layer.
type Services struct {
	Auth    *service.AuthService
	Orgs    *service.OrgService
	Members *service.MemberService
	Tokens  *security.TokenProvider
}

// Handlers bundles the HTTP layer.
type Handlers struct {
	Auth     *handler.AuthHandler
	Admin    *handler.AdminHandler
	OrgAdmin *handler.OrgAdminHandler
	Staff    *handler.StaffHandler
	Health   *handler.HealthHandler
}

// InitRepositories wires the mongo-backed repositories.
func InitRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:     repository.NewUserRepository(db),
		Orgs:      repository.NewOrgRepository(db),
		OrgAdmins: repository.NewOrgAdminRepository(db),
		Staff:     repository.NewStaffRepository(db),
		UserOrgs:  repository.NewUserOrgRepository(db),
	}
}

// InitServices wires business services onto the repositories.
func InitServices(cfg *config.Config, repos *Repositories) *Services {
	hasher := security.NewHasher(cfg.Auth.BcryptCost)
	tokens := security.NewTokenProvider(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	auth := service.NewAuthService(repos.Users, repos.Orgs, repos.OrgAdmins, repos.Staff, repos.UserOrgs, hasher, tokens, cfg)
	orgs := service.NewOrgService(repos.Orgs, repos.Users, repos.OrgAdmins, hasher)
	members := service.NewMemberService(repos.Users, repos.Staff, repos.UserOrgs, auth)

	return &Services{Auth: auth, Orgs: orgs, Members: members, Tokens: tokens}
}

// InitHandlers wires HTTP handlers onto the services.
func InitHandlers(services *Services, mongoClient *mongo.Client) *Handlers {
	return &Handlers{
		Auth:     handler.NewAuthHandler(services.Auth),
		Admin:    handler.NewAdminHandler(services.Orgs),
		OrgAdmin: handler.NewOrgAdminHandler(services.Members),
		Staff:    handler.NewStaffHandler(),
		Health:   handler.NewHealthHandler(mongoClient),
	}
}
