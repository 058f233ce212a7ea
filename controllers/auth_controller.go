// File: controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"fest-registration/logger"
	"fest-registration/metrics"
	"fest-registration/middleware"
	"fest-registration/services"
	"fest-registration/sessionstore"
)

type loginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// now is swapped in tests.
var now = time.Now

// AuthController handles admin login and logout.
type AuthController struct {
	Auth services.AuthServiceInterface
	Deps
}

// NewAuthController initializes an AuthController.
func NewAuthController(auth services.AuthServiceInterface, deps Deps) *AuthController {
	return &AuthController{Auth: auth, Deps: deps.withDefaults()}
}

// ---------------- login / logout ----------------

// Login verifies the credentials and starts an admin session. Every
// credential failure gets the same 401 body.
func (ac *AuthController) Login(c *gin.Context) {
	var form loginForm
	_ = c.ShouldBind(&form)

	if form.Username == "" || form.Password == "" {
		ac.Metrics.Login(metrics.LoginFailure)
		c.String(http.StatusUnauthorized, "Invalid username or password")
		return
	}

	admin, err := ac.Auth.Authenticate(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		ac.Metrics.Login(metrics.LoginFailure)
		c.String(http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		logger.Error.Printf("Login: lookup failed for %q: %v", form.Username, err)
		c.String(http.StatusInternalServerError, "Error logging in")
		return
	}

	// drop whatever the previous session held before marking it as admin
	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionstore.KeyAdmin, admin.Username)
	session.Set(sessionstore.KeyLoggedInAt, now().Unix())
	if err := session.Save(); err != nil {
		logger.Error.Printf("Login: failed to save session: %v", err)
		c.String(http.StatusInternalServerError, "Error logging in")
		return
	}

	logger.Info.Printf("Admin %q logged in", admin.Username)
	ac.Metrics.Login(metrics.LoginSuccess)
	c.Redirect(http.StatusFound, "/dashboard.html")
}

// Logout clears the session whether or not one exists.
func (ac *AuthController) Logout(c *gin.Context) {
	session := sessions.Default(c)
	if admin, ok := session.Get(sessionstore.KeyAdmin).(string); ok {
		logger.Info.Printf("Admin %q logged out", admin)
	}
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		logger.Error.Printf("Logout: Error saving session during logout: %v", err)
	}
	c.Redirect(http.StatusFound, "/admin")
}

// Session reports who is logged in. It sits behind AdminRequired.
func (ac *AuthController) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"admin": c.GetString(middleware.ContextAdmin)})
}
