// File: controllers/event_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fest-registration/logger"
	"fest-registration/metrics"
	"fest-registration/middleware"
	"fest-registration/models"
	"fest-registration/notify"
	"fest-registration/services"
)

type eventForm struct {
	Name        string `form:"name" json:"name"`
	Date        string `form:"date" json:"date"`
	Time        string `form:"time" json:"time"`
	Location    string `form:"location" json:"location"`
	Description string `form:"description" json:"description"`
}

// qrSize is the edge length of generated QR codes in pixels.
const qrSize = 256

// EventController manages the event list and its public views.
type EventController struct {
	Events services.EventServiceInterface
	AppURL string
	// Encode defaults to qrcode.Encode; tests replace it.
	Encode services.QRCodeEncoder
	Deps
}

// NewEventController initializes an EventController. appURL is the public
// base URL used in share links.
func NewEventController(events services.EventServiceInterface, appURL string, deps Deps) *EventController {
	return &EventController{Events: events, AppURL: appURL, Deps: deps.withDefaults()}
}

// ---------------- admin ----------------

// ListEvents returns every event with all columns.
func (ec *EventController) ListEvents(c *gin.Context) {
	events, err := ec.Events.List(c.Request.Context())
	if err != nil {
		logger.Error.Printf("ListEvents: %v", err)
		message(c, http.StatusInternalServerError, "Error fetching events")
		return
	}
	c.JSON(http.StatusOK, events)
}

// AddEvent validates and stores a new event.
func (ec *EventController) AddEvent(c *gin.Context) {
	var form eventForm
	_ = c.ShouldBind(&form)

	event := models.Event{
		Name:        form.Name,
		Date:        form.Date,
		Time:        form.Time,
		Location:    form.Location,
		Description: form.Description,
	}
	switch err := event.Normalize(); {
	case errors.Is(err, models.ErrMissingFields):
		message(c, http.StatusBadRequest, "All fields are required")
		return
	case errors.Is(err, models.ErrInvalidSchedule):
		message(c, http.StatusBadRequest, "Invalid date or time")
		return
	}

	if err := ec.Events.Create(c.Request.Context(), &event); err != nil {
		logger.Error.Printf("Error adding event: %v", err)
		message(c, http.StatusInternalServerError, "Failed to add event")
		return
	}

	logger.Info.Printf("Admin %q added event %q (id=%d)", c.GetString(middleware.ContextAdmin), event.Name, event.ID)
	ec.publish(c.Request.Context(), notify.EventAdded, event)
	c.JSON(http.StatusOK, gin.H{"message": "Event added successfully", "id": event.ID})
}

// DeleteEvent removes every event with the given name. Registrants keep
// their event reference. An empty name simply matches nothing.
func (ec *EventController) DeleteEvent(c *gin.Context) {
	var form deleteByNameForm
	_ = c.ShouldBind(&form)

	n, err := ec.Events.DeleteByName(c.Request.Context(), form.Name)
	if err != nil {
		logger.Error.Printf("DeleteEvent %q: %v", form.Name, err)
		message(c, http.StatusInternalServerError, "Failed to delete event")
		return
	}
	if n == 0 {
		message(c, http.StatusNotFound, "Event not found")
		return
	}

	logger.Info.Printf("Admin %q deleted %d event(s) named %q", c.GetString(middleware.ContextAdmin), n, form.Name)
	ec.Metrics.Deletion(metrics.KindEvent, n)
	ec.publish(c.Request.Context(), notify.EventDeleted, gin.H{"name": form.Name, "deleted": n})
	message(c, http.StatusOK, "Event deleted successfully")
}

// DeleteEventByID removes exactly one event.
func (ec *EventController) DeleteEventByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := ec.Events.DeleteByID(c.Request.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		message(c, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		logger.Error.Printf("DeleteEventByID %d: %v", id, err)
		message(c, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	logger.Info.Printf("Admin %q deleted event %d", c.GetString(middleware.ContextAdmin), id)
	ec.Metrics.Deletion(metrics.KindEvent, 1)
	ec.publish(c.Request.Context(), notify.EventDeleted, gin.H{"id": id, "deleted": 1})
	message(c, http.StatusOK, "Event deleted successfully")
}

// ---------------- public ----------------

// PublicEvents lists events for the registration page.
func (ec *EventController) PublicEvents(c *gin.Context) {
	events, err := ec.Events.List(c.Request.Context())
	if err != nil {
		logger.Error.Printf("Error fetching events: %v", err)
		message(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	out := make([]models.PublicEvent, 0, len(events))
	for _, e := range events {
		out = append(out, e.Public())
	}
	c.JSON(http.StatusOK, out)
}

// QRCode renders a PNG linking to the registration page with the event
// preselected.
func (ec *EventController) QRCode(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	event, err := ec.Events.Get(c.Request.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		message(c, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		logger.Error.Printf("QRCode %d: %v", id, err)
		message(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	png, err := services.GenerateQRCode(services.EventShareURL(ec.AppURL, event.Name), qrSize, ec.Encode)
	if err != nil {
		logger.Error.Printf("QRCode: failed to encode for event %d: %v", id, err)
		message(c, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}
