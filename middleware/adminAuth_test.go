package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sokoni/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newAdminRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if role != "" {
			c.Set("userRole", role)
		}
		c.Next()
	})
	r.Use(RequireAdminMiddleware())
	r.GET("/admin", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireAdminAllowsAdmins(t *testing.T) {
	router := newAdminRouter(models.RoleAdmin)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminRejectsOthers(t *testing.T) {
	for _, role := range []string{models.RoleCustomer, models.RoleSeller, ""} {
		router := newAdminRouter(role)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusForbidden, w.Code, "role %q", role)
	}
}
