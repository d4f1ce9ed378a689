package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gameportal/internal/factory"
	"github.com/mcoot/gameportal/internal/testutil"
	"github.com/mcoot/gameportal/internal/web"
	"github.com/mcoot/gameportal/internal/web/middleware"
)

// webTestServer drives the portal pages against an emulated backend
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	backend *factory.TestBackend
	cookies *cookieJar
}

// newWebTestServer wires the portal to a fresh emulated backend listening
// on a real socket, since the portal reaches it over HTTP
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	backend, err := factory.NewTestBackend(t.Context())
	require.NoError(t, err)
	srv := httptest.NewServer(backend.Handler)
	t.Cleanup(srv.Close)

	app, err := factory.NewTestApp(srv.URL)
	require.NoError(t, err)
	require.NoError(t, app.LoadTestDictionary())

	router := web.NewRouter(web.RouterConfig{
		Logger:  testutil.NopLogger(),
		Client:  app.Client,
		Guard:   app.Guard,
		Hangman: app.HangmanService,
		Metrics: app.Metrics,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		backend: backend,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	ts.cookies.extract(rr)

	return rr
}

func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form)
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// login signs in through the login form
func (ts *webTestServer) login(username, password string) {
	ts.t.Helper()
	rr := ts.post("/login", url.Values{"username": {username}, "password": {password}})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, rr.Body.String())
	require.True(ts.t, ts.cookies.hasSession(), "Expected session cookie to be set")
}

func (ts *webTestServer) loginAdmin() {
	ts.login(factory.TestAdminUsername, factory.TestAdminPassword)
}

// registerAndLogin creates a regular account and signs in with it
func (ts *webTestServer) registerAndLogin(username string) {
	ts.t.Helper()
	rr := ts.post("/register", url.Values{
		"username":         {username},
		"email":            {username + "@example.com"},
		"password":         {"secret123"},
		"password_confirm": {"secret123"},
	})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, rr.Body.String())
	ts.login(username, "secret123")
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

func (j *cookieJar) hasSession() bool {
	_, ok := j.cookies[middleware.SessionCookieName]
	return ok
}

// Assertion helpers

func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}
