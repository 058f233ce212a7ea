// File: controllers/registration_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fest-registration/logger"
	"fest-registration/models"
	"fest-registration/notify"
	"fest-registration/services"
)

// registrationForm is posted by the public page, as a form or JSON.
type registrationForm struct {
	Name  string `form:"name" json:"name"`
	Email string `form:"email" json:"email"`
	Phone string `form:"phone" json:"phone"`
	Event string `form:"event" json:"event"`
	Date  string `form:"date" json:"date"`
	Time  string `form:"time" json:"time"`
}

// RegistrationController stores public registrations.
type RegistrationController struct {
	Users services.UserServiceInterface
	Deps
}

// NewRegistrationController initializes a RegistrationController.
func NewRegistrationController(users services.UserServiceInterface, deps Deps) *RegistrationController {
	return &RegistrationController{Users: users, Deps: deps.withDefaults()}
}

// Register inserts one registrant exactly as submitted, apart from
// trimming, and redirects to the thank-you page.
func (rc *RegistrationController) Register(c *gin.Context) {
	var form registrationForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Warn.Printf("Register: unreadable body: %v", err)
		c.String(http.StatusBadRequest, "Invalid registration")
		return
	}

	user := models.User{
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		Event:     form.Event,
		EventDate: form.Date,
		EventTime: form.Time,
	}
	user.Trim()

	if err := rc.Users.Create(c.Request.Context(), &user); err != nil {
		logger.Error.Printf("Error registering user: %v", err)
		c.String(http.StatusInternalServerError, "Error registering user")
		return
	}

	logger.Info.Printf("Registered %q for event %q", user.Name, user.Event)
	rc.Metrics.Registration(user.Event)
	rc.publish(c.Request.Context(), notify.RegistrationCreated, user)
	c.Redirect(http.StatusFound, "/thankyou.html")
}
