// file: controllers/page_controller_test.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"fest-registration/middleware"
)

var testPages = fstest.MapFS{
	"index.html":     {Data: []byte("<html>register</html>")},
	"admin.html":     {Data: []byte("<html>login</html>")},
	"thankyou.html":  {Data: []byte("<html>thanks</html>")},
	"dashboard.html": {Data: []byte("<html>dashboard</html>")},
	"style.css":      {Data: []byte("body{}")},
}

func setupPageRouter(t *testing.T, ready ReadinessCheck) *gin.Engine {
	router := setupTestRouter(t)
	pc := NewPageController(testPages, ready)
	router.GET("/health", Health)
	router.GET("/ready", pc.Readiness)
	router.GET("/", pc.Index)
	router.GET("/admin", pc.AdminPage)
	router.GET("/dashboard.html", middleware.PageAuthRequired(time.Hour), pc.Dashboard)
	router.NoRoute(pc.Static)
	return router
}

func TestHealth(t *testing.T) {
	w := request(setupPageRouter(t, nil), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestReadiness(t *testing.T) {
	var down error
	router := setupPageRouter(t, func(context.Context) error { return down })

	assert.Equal(t, http.StatusOK, request(router, http.MethodGet, "/ready").Code)

	down = errors.New("dial tcp: connection refused")
	w := request(router, http.MethodGet, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPages(t *testing.T) {
	router := setupPageRouter(t, nil)

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/", http.StatusOK, "register"},
		{"/admin", http.StatusOK, "login"},
		{"/thankyou.html", http.StatusOK, "thanks"},
		{"/style.css", http.StatusOK, "body{}"},
		{"/missing.html", http.StatusNotFound, "Not Found"},
		{"/../etc/passwd", http.StatusNotFound, "Not Found"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := request(router, http.MethodGet, tt.path)
			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestDashboard_RequiresSession(t *testing.T) {
	router := setupPageRouter(t, nil)

	w := request(router, http.MethodGet, "/dashboard.html")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))

	w = request(router, http.MethodGet, "/dashboard.html", adminSession(router))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dashboard")
}

func TestStatic_OnlyGET(t *testing.T) {
	w := request(setupPageRouter(t, nil), http.MethodPost, "/style.css")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
