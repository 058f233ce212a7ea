// file: controllers/registration_controller_test.go
package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fest-registration/models"
	"fest-registration/notify"
	"fest-registration/services"
)

func setupRegistration(t *testing.T) (*services.MockUserService, *recordingNotifier, *countingMetrics, *RegistrationController) {
	users := new(services.MockUserService)
	notifier := &recordingNotifier{}
	counts := newCountingMetrics()
	return users, notifier, counts, NewRegistrationController(users, Deps{Notifier: notifier, Metrics: counts})
}

func TestRegister_Success(t *testing.T) {
	users, notifier, counts, rc := setupRegistration(t)
	router := setupTestRouter(t)
	router.POST("/register", rc.Register)

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Name == "Ana" && u.Email == "ana@example.com" && u.Phone == "555" &&
			u.Event == "Hackathon" && u.EventDate == "2024-05-02" && u.EventTime == "10:00"
	})).Return(nil)

	w := postForm(router, "/register", url.Values{
		"name": {"  Ana "}, "email": {"ana@example.com"}, "phone": {"555"},
		"event": {"Hackathon"}, "date": {"2024-05-02"}, "time": {"10:00"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/thankyou.html", w.Header().Get("Location"))
	assert.Equal(t, []string{notify.RegistrationCreated}, notifier.actions())
	assert.Equal(t, []string{"Hackathon"}, counts.registrations)
	users.AssertExpectations(t)
}

func TestRegister_NoValidation(t *testing.T) {
	users, _, _, rc := setupRegistration(t)
	router := setupTestRouter(t)
	router.POST("/register", rc.Register)
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	w := postForm(router, "/register", url.Values{})

	assert.Equal(t, http.StatusFound, w.Code, "empty registrations are stored as-is")
	users.AssertNumberOfCalls(t, "Create", 1)
}

func TestRegister_JSONBody(t *testing.T) {
	users, _, _, rc := setupRegistration(t)
	router := setupTestRouter(t)
	router.POST("/register", rc.Register)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Name == "Ben" && u.EventDate == "2024-05-01"
	})).Return(nil)

	w := postJSON(router, "/register", `{"name":"Ben","date":"2024-05-01"}`)
	assert.Equal(t, http.StatusFound, w.Code)
	users.AssertExpectations(t)
}

func TestRegister_StoreFailure(t *testing.T) {
	users, notifier, counts, rc := setupRegistration(t)
	router := setupTestRouter(t)
	router.POST("/register", rc.Register)
	users.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	w := postForm(router, "/register", url.Values{"name": {"Ana"}})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error registering user", w.Body.String())
	assert.Empty(t, notifier.actions(), "nothing is announced on failure")
	assert.Empty(t, counts.registrations)
}
