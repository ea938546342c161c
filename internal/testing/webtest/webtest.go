// Package webtest wires sessions, CSRF and templates for handler tests.
package webtest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
	"github.com/odyssey-erp/odyssey-pos/internal/view"
	_ "github.com/odyssey-erp/odyssey-pos/testing"
)

// Env holds the collaborators a handler needs plus the session under test.
type Env struct {
	T         *testing.T
	Redis     *miniredis.Miniredis
	Sessions  *shared.SessionManager
	CSRF      *shared.CSRFManager
	Responder view.Responder
	Session   *shared.Session
}

// New starts an in-memory Redis and parses the real templates.
func New(t *testing.T) *Env {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	templates, err := view.NewEngine()
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	csrf := shared.NewCSRFManager("csrfsecret")
	return &Env{
		T:        t,
		Redis:    mr,
		Sessions: shared.NewSessionManager(client, "test_session", "secret", time.Hour, false),
		CSRF:     csrf,
		Responder: view.Responder{
			Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
			Templates: templates,
			CSRF:      csrf,
		},
	}
}

// Login marks the current session as authenticated.
func (e *Env) Login(user string) {
	e.ensureSession()
	e.Session.SetUser(user)
}

// Get serves a GET request through h using the env session.
func (e *Env) Get(h http.Handler, target string) *httptest.ResponseRecorder {
	return e.Do(h, httptest.NewRequest(http.MethodGet, target, nil))
}

// PostForm serves a form POST through h using the env session.
func (e *Env) PostForm(h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.Do(h, req)
}

// Do attaches the session, serves req, commits and reloads the session so the
// next request sees what this one stored.
func (e *Env) Do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	e.T.Helper()
	e.ensureSession()
	ctx := shared.ContextWithSession(req.Context(), e.Session)
	req = req.WithContext(ctx)
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	if err := e.Sessions.Commit(ctx, res, req, e.Session); err != nil {
		e.T.Fatalf("commit session: %v", err)
	}
	e.reload()
	return res
}

// Flash pops the next flash message, if any.
func (e *Env) Flash() *shared.FlashMessage {
	e.ensureSession()
	return e.Session.PopFlash()
}

func (e *Env) ensureSession() {
	if e.Session != nil {
		return
	}
	sess, err := e.Sessions.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		e.T.Fatalf("load session: %v", err)
	}
	e.Session = sess
}

func (e *Env) reload() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: e.Sessions.CookieName(), Value: e.Session.ID})
	sess, err := e.Sessions.Load(context.Background(), req)
	if err != nil {
		e.T.Fatalf("reload session: %v", err)
	}
	e.Session = sess
}
