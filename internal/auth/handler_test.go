package auth_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"registration-service/internal/auth"
	"registration-service/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPassword = "vertical-limit"
	testSecret   = "test-signing-key"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	service := auth.NewService(testPassword, testSecret, 0)
	handler := auth.NewHandler(service, logger, metrics.NewMock())

	router := gin.New()
	api := router.Group("/api")
	handler.RegisterRoutes(api)

	// Probe route behind the gate, to observe the middleware directly.
	admin := api.Group("", auth.RequireAdmin(service, logger))
	admin.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router
}

func doLogin(t *testing.T, router *gin.Engine, password string) *httptest.ResponseRecorder {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func verifyWith(t *testing.T, router *gin.Engine, cookie *http.Cookie) bool {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/verify", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Authenticated bool `json:"authenticated"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.Authenticated
}

func TestLogin_Success(t *testing.T) {
	router := newTestRouter(t)

	w := doLogin(t, router, testPassword)
	assert.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie, "session cookie should be set")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 7*24*3600, cookie.MaxAge)

	assert.True(t, verifyWith(t, router, cookie))
}

func TestLogin_WrongPassword(t *testing.T) {
	router := newTestRouter(t)

	w := doLogin(t, router, "wrong")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, sessionCookie(w), "no cookie on failed login")

	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "incorrect password", resp["error"])
}

func TestLogin_MissingPassword(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerify_WithoutCookie(t *testing.T) {
	router := newTestRouter(t)

	assert.False(t, verifyWith(t, router, nil))
}

func TestLogout_ClearsCookie(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	cleared := sessionCookie(w)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0, "cookie should expire immediately")

	// The cleared cookie no longer authenticates.
	assert.False(t, verifyWith(t, router, cleared))
}

func TestProbe_RequiresAdmin(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "administrator login required", resp["error"])
}

func TestProbe_WithValidSession(t *testing.T) {
	router := newTestRouter(t)

	cookie := sessionCookie(doLogin(t, router, testPassword))
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProbe_TamperedToken(t *testing.T) {
	router := newTestRouter(t)

	cookie := sessionCookie(doLogin(t, router, testPassword))
	require.NotNil(t, cookie)
	cookie.Value += "x"

	req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
