// Package controllers provides the HTTP handlers for registration, admin
// operations, events and static pages.
// File: controllers/controllers.go
package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fest-registration/logger"
	"fest-registration/metrics"
	"fest-registration/notify"
)

// Deps are the collaborators shared by every controller.
type Deps struct {
	Notifier notify.Publisher
	Metrics  metrics.Recorder
}

func (d Deps) withDefaults() Deps {
	if d.Notifier == nil {
		d.Notifier = notify.Nop{}
	}
	if d.Metrics == nil {
		d.Metrics = metrics.Nop{}
	}
	return d
}

// publish hands e to the notifier. The request never waits on or fails
// because of delivery.
func (d Deps) publish(ctx context.Context, action string, data interface{}) {
	if err := d.Notifier.Publish(ctx, notify.New(action, data)); err != nil {
		logger.Warn.Printf("notify %s: %v", action, err)
	}
}

// message writes the {"message": ...} body used by every JSON endpoint.
func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		message(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
