package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"supportdesk/internal/model"
	"supportdesk/internal/security"

	"github.com/gin-gonic/gin"
)

func newGatedRouter(tokens *security.TokenProvider, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/protected", RequireAuth(tokens))
	if len(roles) > 0 {
		group.Use(AllowRoles(roles...))
	}
	group.GET("", func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, model.NewErrorResponse("claims missing", ""))
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": claims.Role})
	})
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	tokens := security.NewTokenProvider("test-secret", time.Hour)
	router := newGatedRouter(tokens)

	valid, _, err := tokens.Issue("user-1", model.RoleUser, "a@b.com", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	expired, _, err := security.NewTokenProvider("test-secret", -time.Minute).Issue("user-1", model.RoleUser, "a@b.com", "")
	if err != nil {
		t.Fatalf("Issue expired: %v", err)
	}
	foreign, _, err := security.NewTokenProvider("other-secret", time.Hour).Issue("user-1", model.RoleUser, "a@b.com", "")
	if err != nil {
		t.Fatalf("Issue foreign: %v", err)
	}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"bare bearer", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong signing key", "Bearer " + foreign, http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := doGet(router, tc.header); w.Code != tc.want {
				t.Errorf("status %d, want %d (body %s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestAllowRoles(t *testing.T) {
	tokens := security.NewTokenProvider("test-secret", time.Hour)
	adminOnly := newGatedRouter(tokens, model.RolePlatAdmin)

	adminToken, _, err := tokens.Issue("admin-1", model.RolePlatAdmin, "admin@x.com", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	staffToken, _, err := tokens.Issue("staff-1", model.RoleStaff, "staff@x.com", "org-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if w := doGet(adminOnly, "Bearer "+adminToken); w.Code != http.StatusOK {
		t.Errorf("admin on admin route: status %d", w.Code)
	}
	if w := doGet(adminOnly, "Bearer "+staffToken); w.Code != http.StatusForbidden {
		t.Errorf("staff on admin route: status %d, want 403", w.Code)
	}
	// Role checks never run for unauthenticated requests.
	if w := doGet(adminOnly, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous on admin route: status %d, want 401", w.Code)
	}

	multi := newGatedRouter(tokens, model.RoleOrgAdmin, model.RoleStaff)
	if w := doGet(multi, "Bearer "+staffToken); w.Code != http.StatusOK {
		t.Errorf("staff on shared route: status %d", w.Code)
	}
	if w := doGet(multi, "Bearer "+adminToken); w.Code != http.StatusForbidden {
		t.Errorf("admin on org-scoped route: status %d, want 403", w.Code)
	}
}
