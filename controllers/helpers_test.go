// file: controllers/helpers_test.go
package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"fest-registration/metrics"
	"fest-registration/notify"
	"fest-registration/sessionstore"
)

// setupTestRouter creates a new Gin engine with a cookie session store.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))
	return router
}

// SetSession sets the given key/value pairs in the session using a helper route
// and returns the session cookie that can be attached to subsequent test requests.
func SetSession(router *gin.Engine, route string, data map[string]interface{}) *http.Cookie {
	router.GET(route, func(c *gin.Context) {
		session := sessions.Default(c)
		for key, value := range data {
			session.Set(key, value)
		}
		if err := session.Save(); err != nil {
			c.String(http.StatusInternalServerError, "session save failed")
			return
		}
		c.String(http.StatusOK, "session set")
	})

	req, _ := http.NewRequest("GET", route, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "testsession" {
			return cookie
		}
	}
	return nil
}

// adminSession plants a fresh admin session for "root".
func adminSession(router *gin.Engine) *http.Cookie {
	return SetSession(router, "/test/login-as-root", map[string]interface{}{
		sessionstore.KeyAdmin:      "root",
		sessionstore.KeyLoggedInAt: time.Now().Unix(),
	})
}

func postForm(router *gin.Engine, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return serve(router, req, cookies...)
}

func postJSON(router *gin.Engine, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return serve(router, req, cookies...)
}

func request(router *gin.Engine, method, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return serve(router, httptest.NewRequest(method, path, nil), cookies...)
}

func serve(router *gin.Engine, req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// recordingNotifier remembers published actions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recordingNotifier) Publish(_ context.Context, e notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingNotifier) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

// countingMetrics remembers the domain counters.
type countingMetrics struct {
	metrics.Nop
	mu            sync.Mutex
	registrations []string
	logins        []string
	deletions     map[string]int64
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{deletions: map[string]int64{}}
}

func (m *countingMetrics) Registration(event string) {
	m.mu.Lock()
	m.registrations = append(m.registrations, event)
	m.mu.Unlock()
}

func (m *countingMetrics) Login(result string) {
	m.mu.Lock()
	m.logins = append(m.logins, result)
	m.mu.Unlock()
}

func (m *countingMetrics) Deletion(kind string, n int64) {
	m.mu.Lock()
	m.deletions[kind] += n
	m.mu.Unlock()
}
