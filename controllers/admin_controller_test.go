// file: controllers/admin_controller_test.go
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fest-registration/metrics"
	"fest-registration/middleware"
	"fest-registration/models"
	"fest-registration/notify"
	"fest-registration/services"
)

type adminFixture struct {
	router   *gin.Engine
	users    *services.MockUserService
	notifier *recordingNotifier
	counts   *countingMetrics
	cookie   *http.Cookie
}

func setupAdminRouter(t *testing.T) adminFixture {
	router := setupTestRouter(t)
	users := new(services.MockUserService)
	notifier := &recordingNotifier{}
	counts := newCountingMetrics()
	ac := NewAdminController(users, Deps{Notifier: notifier, Metrics: counts})

	admin := router.Group("/admin", middleware.AdminRequired(time.Hour))
	admin.GET("/users", ac.ListUsers)
	admin.POST("/delete-user", ac.DeleteUser)
	admin.DELETE("/users/:id", ac.DeleteUserByID)

	return adminFixture{router: router, users: users, notifier: notifier, counts: counts, cookie: adminSession(router)}
}

func TestAdminRoutes_RequireSession(t *testing.T) {
	f := setupAdminRouter(t)

	for _, w := range []interface{ Result() *http.Response }{
		request(f.router, http.MethodGet, "/admin/users"),
		postForm(f.router, "/admin/delete-user", url.Values{"name": {"Ana"}}),
		request(f.router, http.MethodDelete, "/admin/users/1"),
	} {
		res := w.Result()
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
	}
	f.users.AssertNotCalled(t, "List", mock.Anything)
	f.users.AssertNotCalled(t, "DeleteByName", mock.Anything, mock.Anything)
	f.users.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestListUsers(t *testing.T) {
	f := setupAdminRouter(t)
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	f.users.On("List", mock.Anything).Return([]models.User{
		{ID: 1, Name: "Ana", Email: "a@x", Phone: "1", Event: "Fest", RegisteredAt: at},
		{ID: 2, Name: "Ben", Event: "Fest", RegisteredAt: at},
	}, nil)

	w := request(f.router, http.MethodGet, "/admin/users", f.cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Ana", got[0]["name"])
	assert.Equal(t, "2024-05-01T09:00:00Z", got[0]["registered_at"])
	for _, key := range []string{"id", "email", "phone", "event", "event_date", "event_time"} {
		assert.Contains(t, got[0], key)
	}
}

func TestListUsers_Empty(t *testing.T) {
	f := setupAdminRouter(t)
	f.users.On("List", mock.Anything).Return([]models.User{}, nil)

	w := request(f.router, http.MethodGet, "/admin/users", f.cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestListUsers_Error(t *testing.T) {
	f := setupAdminRouter(t)
	f.users.On("List", mock.Anything).Return(nil, errors.New("db down"))

	w := request(f.router, http.MethodGet, "/admin/users", f.cookie)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Error fetching users"}`, w.Body.String())
}

func TestDeleteUser(t *testing.T) {
	tests := []struct {
		name     string
		form     url.Values
		setup    func(m *services.MockUserService)
		status   int
		body     string
		notified bool
	}{
		{
			name:   "missing name",
			form:   url.Values{},
			status: http.StatusBadRequest,
			body:   `{"message":"Name is required"}`,
		},
		{
			name: "no match",
			form: url.Values{"name": {"Nobody"}},
			setup: func(m *services.MockUserService) {
				m.On("DeleteByName", mock.Anything, "Nobody").Return(int64(0), nil)
			},
			status: http.StatusNotFound,
			body:   `{"message":"User not found"}`,
		},
		{
			name: "removes every match",
			form: url.Values{"name": {"Ana"}},
			setup: func(m *services.MockUserService) {
				m.On("DeleteByName", mock.Anything, "Ana").Return(int64(2), nil)
			},
			status:   http.StatusOK,
			body:     `{"message":"User deleted successfully","deleted":2}`,
			notified: true,
		},
		{
			name: "name is trimmed before matching",
			form: url.Values{"name": {"  Ana "}},
			setup: func(m *services.MockUserService) {
				m.On("DeleteByName", mock.Anything, "Ana").Return(int64(2), nil)
			},
			status:   http.StatusOK,
			body:     `{"message":"User deleted successfully","deleted":2}`,
			notified: true,
		},
		{
			name:   "blank name",
			form:   url.Values{"name": {"   "}},
			status: http.StatusBadRequest,
			body:   `{"message":"Name is required"}`,
		},
		{
			name: "store error",
			form: url.Values{"name": {"Ana"}},
			setup: func(m *services.MockUserService) {
				m.On("DeleteByName", mock.Anything, "Ana").Return(int64(0), errors.New("db down"))
			},
			status: http.StatusInternalServerError,
			body:   `{"message":"Error deleting user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupAdminRouter(t)
			if tt.setup != nil {
				tt.setup(f.users)
			}

			w := postForm(f.router, "/admin/delete-user", tt.form, f.cookie)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
			if tt.notified {
				assert.Equal(t, []string{notify.UserDeleted}, f.notifier.actions())
				assert.Equal(t, int64(2), f.counts.deletions[metrics.KindUser])
			} else {
				assert.Empty(t, f.notifier.actions())
			}
			f.users.AssertExpectations(t)
		})
	}
}

func TestDeleteUserByID(t *testing.T) {
	f := setupAdminRouter(t)
	f.users.On("DeleteByID", mock.Anything, int64(7)).Return(nil)
	f.users.On("DeleteByID", mock.Anything, int64(8)).Return(services.ErrNotFound)

	w := request(f.router, http.MethodDelete, "/admin/users/7", f.cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"User deleted successfully","deleted":1}`, w.Body.String())

	w = request(f.router, http.MethodDelete, "/admin/users/8", f.cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = request(f.router, http.MethodDelete, "/admin/users/abc", f.cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid id"}`, w.Body.String())

	assert.Equal(t, []string{notify.UserDeleted}, f.notifier.actions())
}
