// File: controllers/admin_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fest-registration/logger"
	"fest-registration/metrics"
	"fest-registration/middleware"
	"fest-registration/notify"
	"fest-registration/services"
	"fest-registration/websocket"
)

type deleteByNameForm struct {
	Name string `form:"name" json:"name"`
}

// ---------------- Admin Controller ----------------

// AdminController lists and removes registrants.
type AdminController struct {
	Users services.UserServiceInterface
	Deps
}

// NewAdminController initializes an AdminController.
func NewAdminController(users services.UserServiceInterface, deps Deps) *AdminController {
	return &AdminController{Users: users, Deps: deps.withDefaults()}
}

// ListUsers returns every registrant.
func (ac *AdminController) ListUsers(c *gin.Context) {
	users, err := ac.Users.List(c.Request.Context())
	if err != nil {
		logger.Error.Printf("ListUsers: %v", err)
		message(c, http.StatusInternalServerError, "Error fetching users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUser removes every registrant with the given name.
func (ac *AdminController) DeleteUser(c *gin.Context) {
	var form deleteByNameForm
	_ = c.ShouldBind(&form)
	form.Name = strings.TrimSpace(form.Name)
	if form.Name == "" {
		message(c, http.StatusBadRequest, "Name is required")
		return
	}

	n, err := ac.Users.DeleteByName(c.Request.Context(), form.Name)
	if err != nil {
		logger.Error.Printf("DeleteUser %q: %v", form.Name, err)
		message(c, http.StatusInternalServerError, "Error deleting user")
		return
	}
	if n == 0 {
		message(c, http.StatusNotFound, "User not found")
		return
	}

	logger.Info.Printf("Admin %q deleted %d registrant(s) named %q", c.GetString(middleware.ContextAdmin), n, form.Name)
	ac.Metrics.Deletion(metrics.KindUser, n)
	ac.publish(c.Request.Context(), notify.UserDeleted, gin.H{"name": form.Name, "deleted": n})
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully", "deleted": n})
}

// DeleteUserByID removes exactly one registrant.
func (ac *AdminController) DeleteUserByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := ac.Users.DeleteByID(c.Request.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		message(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		logger.Error.Printf("DeleteUserByID %d: %v", id, err)
		message(c, http.StatusInternalServerError, "Error deleting user")
		return
	}

	logger.Info.Printf("Admin %q deleted registrant %d", c.GetString(middleware.ContextAdmin), id)
	ac.Metrics.Deletion(metrics.KindUser, 1)
	ac.publish(c.Request.Context(), notify.UserDeleted, gin.H{"id": id, "deleted": 1})
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully", "deleted": 1})
}

// LiveFeed upgrades to the dashboard websocket.
func LiveFeed(hub *websocket.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		hub.ServeWs(c.Writer, c.Request, c.GetString(middleware.ContextAdmin))
	}
}
