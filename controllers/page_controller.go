// File: controllers/page_controller.go
package controllers

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"fest-registration/logger"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// PageController serves the static pages and the health endpoints.
type PageController struct {
	Pages fs.FS
	Ready ReadinessCheck

	files http.Handler
}

// NewPageController serves pages from the given filesystem.
func NewPageController(pages fs.FS, ready ReadinessCheck) *PageController {
	return &PageController{
		Pages: pages,
		Ready: ready,
		files: http.FileServer(http.FS(pages)),
	}
}

// Health is the liveness probe.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Readiness returns 503 while the database cannot be reached.
func (pc *PageController) Readiness(c *gin.Context) {
	if pc.Ready != nil {
		if err := pc.Ready(c.Request.Context()); err != nil {
			logger.Warn.Printf("Readiness: %v", err)
			c.String(http.StatusServiceUnavailable, "Database unavailable")
			return
		}
	}
	c.String(http.StatusOK, "OK")
}

// Index serves the registration form.
func (pc *PageController) Index(c *gin.Context) {
	pc.file(c, "index.html")
}

// AdminPage serves the login form.
func (pc *PageController) AdminPage(c *gin.Context) {
	pc.file(c, "admin.html")
}

// Dashboard serves the admin dashboard. It sits behind PageAuthRequired.
func (pc *PageController) Dashboard(c *gin.Context) {
	pc.file(c, "dashboard.html")
}

// Static serves any other GET from the page directory, 404 otherwise.
// It is registered as the NoRoute handler.
func (pc *PageController) Static(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.String(http.StatusNotFound, "Not Found")
		return
	}
	name := strings.TrimPrefix(path.Clean("/"+c.Request.URL.Path), "/")
	if name == "" || name == "." {
		pc.Index(c)
		return
	}
	info, err := fs.Stat(pc.Pages, name)
	if err != nil || info.IsDir() {
		c.String(http.StatusNotFound, "Not Found")
		return
	}
	c.Status(http.StatusOK)
	pc.files.ServeHTTP(c.Writer, c.Request)
}

func (pc *PageController) file(c *gin.Context, name string) {
	data, err := fs.ReadFile(pc.Pages, name)
	if errors.Is(err, fs.ErrNotExist) {
		c.String(http.StatusNotFound, "Not Found")
		return
	}
	if err != nil {
		logger.Error.Printf("Failed to read page %s: %v", name, err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}
