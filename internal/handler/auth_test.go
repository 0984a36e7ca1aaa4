package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"supportdesk/internal/config"
	"supportdesk/internal/middleware"
	"supportdesk/internal/model"
	"supportdesk/internal/repository/memory"
	"supportdesk/internal/security"
	"supportdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// apiFixture wires real services over in-memory repositories behind
// the same route layout the server uses.
type apiFixture struct {
	users       *memory.UserRepo
	orgs        *memory.OrgRepo
	memberships *memory.UserOrgRepo
	tokens      *security.TokenProvider
	router      *gin.Engine
}

func newAPIFixture() *apiFixture {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Auth.PlatformAdminCap = 2

	f := &apiFixture{
		users:       memory.NewUserRepo(),
		orgs:        memory.NewOrgRepo(),
		memberships: memory.NewUserOrgRepo(),
		tokens:      security.NewTokenProvider("test-secret", time.Hour),
	}
	hasher := security.NewHasher(4)
	authSvc := service.NewAuthService(
		f.users, f.orgs, memory.NewOrgAdminRepo(), memory.NewStaffRepo(), f.memberships,
		hasher, f.tokens, cfg,
	)
	auth := NewAuthHandler(authSvc)

	r := gin.New()
	api := r.Group("/api/auth")
	{
		api.POST("/register", auth.Register)
		api.POST("/login", auth.Login)
		api.POST("/logout", auth.Logout)

		session := api.Group("", middleware.RequireAuth(f.tokens))
		{
			session.GET("/session", auth.Session)
			session.GET("/organizations", auth.Organizations)
			session.POST("/select-org", auth.SelectOrg)
		}
	}
	f.router = r
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var envelope struct {
		Success bool                       `json:"success"`
		Data    map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	if !envelope.Success {
		t.Fatalf("success=false in %s", w.Body.String())
	}
	return envelope.Data
}

func TestRegisterEndpoint(t *testing.T) {
	f := newAPIFixture()

	w := f.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "pw123456",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	data := decodeData(t, w)

	var user model.UserResponse
	if err := json.Unmarshal(data["user"], &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.Email != "alice@example.com" || user.Role != model.RoleUser {
		t.Errorf("user = %+v", user)
	}
	// The password hash never leaves the server.
	if bytes.Contains(w.Body.Bytes(), []byte("password")) {
		t.Errorf("response leaks password field: %s", w.Body.String())
	}
}

func TestRegisterEndpoint_Failures(t *testing.T) {
	f := newAPIFixture()
	if w := f.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "pw123456",
	}); w.Code != http.StatusCreated {
		t.Fatalf("setup register: %d", w.Code)
	}

	cases := []struct {
		name string
		body gin.H
		want int
	}{
		{"duplicate email", gin.H{"name": "B", "email": "alice@example.com", "password": "pw123456"}, http.StatusConflict},
		{"short password", gin.H{"name": "B", "email": "b@x.com", "password": "pw"}, http.StatusBadRequest},
		{"bad email", gin.H{"name": "B", "email": "nope", "password": "pw123456"}, http.StatusBadRequest},
		{"unknown role", gin.H{"name": "B", "email": "b@x.com", "password": "pw123456", "role": "root"}, http.StatusBadRequest},
		{"staff without org", gin.H{"name": "B", "email": "b@x.com", "password": "pw123456", "role": model.RoleStaff}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := f.do(t, http.MethodPost, "/api/auth/register", "", tc.body); w.Code != tc.want {
				t.Errorf("status %d, want %d: %s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	f := newAPIFixture()
	f.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "pw123456",
	})

	w := f.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "pw123456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	data := decodeData(t, w)

	var token string
	if err := json.Unmarshal(data["token"], &token); err != nil || token == "" {
		t.Fatalf("missing token in %s", w.Body.String())
	}
	var redirect string
	if err := json.Unmarshal(data["redirectPath"], &redirect); err != nil || redirect != service.PathOrgPicker {
		t.Errorf("redirectPath %q, want %q", redirect, service.PathOrgPicker)
	}

	// Both failure modes produce the same 401.
	for _, body := range []gin.H{
		{"email": "alice@example.com", "password": "wrong-pass"},
		{"email": "nobody@example.com", "password": "pw123456"},
	} {
		if w := f.do(t, http.MethodPost, "/api/auth/login", "", body); w.Code != http.StatusUnauthorized {
			t.Errorf("login %v: status %d, want 401", body["email"], w.Code)
		}
	}
}

func TestSelectOrgEndpoint(t *testing.T) {
	f := newAPIFixture()
	org, err := f.orgs.Create(context.Background(), &model.Organization{Name: "Acme"})
	if err != nil {
		t.Fatalf("create org: %v", err)
	}

	f.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "pw123456",
	})
	login := f.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "pw123456",
	})
	var token string
	if err := json.Unmarshal(decodeData(t, login)["token"], &token); err != nil {
		t.Fatalf("decode token: %v", err)
	}

	// No body -> 400. Unauthenticated -> 401.
	if w := f.do(t, http.MethodPost, "/api/auth/select-org", token, gin.H{}); w.Code != http.StatusBadRequest {
		t.Errorf("empty orgId: status %d, want 400", w.Code)
	}
	if w := f.do(t, http.MethodPost, "/api/auth/select-org", "", gin.H{"orgId": org.ID.Hex()}); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status %d, want 401", w.Code)
	}

	w := f.do(t, http.MethodPost, "/api/auth/select-org", token, gin.H{"orgId": org.ID.Hex()})
	if w.Code != http.StatusOK {
		t.Fatalf("select-org: status %d: %s", w.Code, w.Body.String())
	}
	var reissued string
	if err := json.Unmarshal(decodeData(t, w)["token"], &reissued); err != nil {
		t.Fatalf("decode reissued token: %v", err)
	}
	claims, err := f.tokens.Validate(reissued)
	if err != nil {
		t.Fatalf("validate reissued token: %v", err)
	}
	if claims.OrgID != org.ID.Hex() {
		t.Errorf("reissued orgId %q, want %q", claims.OrgID, org.ID.Hex())
	}

	// Session now lists the joined org.
	session := f.do(t, http.MethodGet, "/api/auth/session", reissued, nil)
	if session.Code != http.StatusOK {
		t.Fatalf("session: status %d", session.Code)
	}
	var orgs []model.Organization
	if err := json.Unmarshal(decodeData(t, session)["organizations"], &orgs); err != nil {
		t.Fatalf("decode organizations: %v", err)
	}
	if len(orgs) != 1 || orgs[0].Name != "Acme" {
		t.Errorf("session organizations = %+v", orgs)
	}
}

func TestOrganizationsEndpoint_ExcludesJoined(t *testing.T) {
	f := newAPIFixture()
	var ids []string
	for i := 0; i < 3; i++ {
		org, err := f.orgs.Create(context.Background(), &model.Organization{Name: fmt.Sprintf("Org %d", i)})
		if err != nil {
			t.Fatalf("create org: %v", err)
		}
		ids = append(ids, org.ID.Hex())
	}

	f.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "pw123456",
	})
	login := f.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "pw123456",
	})
	var token string
	if err := json.Unmarshal(decodeData(t, login)["token"], &token); err != nil {
		t.Fatalf("decode token: %v", err)
	}

	f.do(t, http.MethodPost, "/api/auth/select-org", token, gin.H{"orgId": ids[0]})

	w := f.do(t, http.MethodGet, "/api/auth/organizations", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("organizations: status %d", w.Code)
	}
	var orgs []model.Organization
	if err := json.Unmarshal(decodeData(t, w)["organizations"], &orgs); err != nil {
		t.Fatalf("decode organizations: %v", err)
	}
	if len(orgs) != 2 {
		t.Errorf("want 2 unjoined orgs, got %d", len(orgs))
	}
	for _, org := range orgs {
		if org.ID.Hex() == ids[0] {
			t.Errorf("joined org still listed as available")
		}
	}
}

func TestLogoutEndpoint(t *testing.T) {
	f := newAPIFixture()
	if w := f.do(t, http.MethodPost, "/api/auth/logout", "", nil); w.Code != http.StatusOK {
		t.Errorf("logout: status %d", w.Code)
	}
}
