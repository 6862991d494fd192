package integrationtests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"auction-web/internal/apiclient"
	model "auction-web/internal/models"
	"auction-web/internal/server"
	"auction-web/internal/session"
)

// SetupTestApp wires the full frontend against an in-memory stub of the
// remote auction service.
func SetupTestApp(t *testing.T) (*gin.Engine, *stubAuctionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stub := newStubAuctionService()
	upstream := httptest.NewServer(stub.handler())
	t.Cleanup(upstream.Close)

	api := apiclient.New(upstream.URL)
	sessions := session.NewCookieStore("currentUser")
	router := server.SetupRouter(api, sessions, "../../web/templates/*.tmpl")
	return router, stub
}

// ExecuteGet performs a GET against the frontend and returns the recorder.
func ExecuteGet(t *testing.T, router *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteForm performs a form POST against the frontend.
func ExecuteForm(t *testing.T, router *gin.Engine, path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// SessionCookieFor builds the cookie a logged-in browser would carry.
func SessionCookieFor(t *testing.T, user model.User) *http.Cookie {
	t.Helper()
	data, err := json.Marshal(user)
	require.NoError(t, err)
	return &http.Cookie{Name: "currentUser", Value: url.QueryEscape(string(data))}
}
