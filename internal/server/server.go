package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"supportdesk/internal/config"
	"supportdesk/internal/middleware"
	"supportdesk/internal/model"
	"supportdesk/internal/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Server represents the HTTP server
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	mongo    *mongo.Client
	services *Services
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	mongoClient, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	repos := InitRepositories(db)
	services := InitServices(cfg, repos)
	handlers := InitHandlers(services, mongoClient)

	router := setupRouter(handlers, services)

	return &Server{
		cfg:      cfg,
		router:   router,
		mongo:    mongoClient,
		services: services,
	}, nil
}

func Connect(cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Close disconnects MongoDB client
func (s *Server) Close() error {
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.mongo.Disconnect(ctx)
	}
	return nil
}

// Run starts the server
func (s *Server) Run() error {
	log.Printf("[server] listening on %s", s.cfg.Server.Address())
	return s.router.Run(s.cfg.Server.Address())
}

func setupRouter(h *Handlers, s *Services) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	api := r.Group("/api")

	api.GET("/health", h.Health.Health)

	// Auth routes (register/login open, the rest behind the token)
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)

		session := auth.Group("")
		session.Use(middleware.RequireAuth(s.Tokens))
		session.GET("/session", h.Auth.Session)
		session.GET("/organizations", h.Auth.Organizations)
		session.POST("/select-org", h.Auth.SelectOrg)
	}

	// Platform admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(s.Tokens), middleware.AllowRoles(model.RolePlatAdmin))
	{
		admin.GET("/dashboard", h.Admin.Dashboard)
		admin.POST("/register-org", h.Admin.RegisterOrg)
		admin.GET("/organizations", h.Admin.ListOrgs)
		admin.PATCH("/organizations/:id", h.Admin.UpdateOrg)
		admin.DELETE("/organizations/:id", h.Admin.DeleteOrg)
	}

	// Organization admin routes
	orgAdmin := api.Group("/org-admin")
	orgAdmin.Use(middleware.RequireAuth(s.Tokens), middleware.AllowRoles(model.RoleOrgAdmin))
	{
		orgAdmin.GET("/dashboard", h.OrgAdmin.Dashboard)
		orgAdmin.GET("/users", h.OrgAdmin.ListUsers)
		orgAdmin.DELETE("/users/:id", h.OrgAdmin.RemoveUser)
		orgAdmin.GET("/staff", h.OrgAdmin.ListStaff)
		orgAdmin.POST("/staff", h.OrgAdmin.CreateStaff)
		orgAdmin.PATCH("/staff/:id", h.OrgAdmin.UpdateStaff)
		orgAdmin.DELETE("/staff/:id", h.OrgAdmin.DeleteStaff)
	}

	// Staff routes
	staff := api.Group("/staff")
	staff.Use(middleware.RequireAuth(s.Tokens), middleware.AllowRoles(model.RoleStaff))
	{
		staff.GET("/dashboard", h.Staff.Dashboard)
	}

	return r
}
