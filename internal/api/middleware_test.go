package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"vitacare/health-app/internal/domain"

	"github.com/gin-gonic/gin"
)

// stubAuth stands in for AuthMiddleware and plants a fixed role in the
// request context.
func stubAuth(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserIDKey, "64f000000000000000000001")
		c.Set(ContextUserRoleKey, role)
		c.Next()
	}
}

func TestRoleMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		role     domain.Role
		wantCode int
	}{
		{"clinician allowed", domain.RoleClinician, http.StatusOK},
		{"patient forbidden", domain.RolePatient, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/patients/:id/plan",
				stubAuth(tt.role),
				RoleMiddleware(domain.RoleClinician),
				func(c *gin.Context) { c.Status(http.StatusOK) },
			)

			req := httptest.NewRequest(http.MethodGet, "/patients/64f000000000000000000002/plan", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestRoleMiddleware_MissingRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/patients/:id/plan",
		RoleMiddleware(domain.RoleClinician),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	req := httptest.NewRequest(http.MethodGet, "/patients/64f000000000000000000002/plan", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
