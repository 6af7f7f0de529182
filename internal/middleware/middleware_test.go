package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yatube/internal/services"
	"yatube/internal/testutil"
)

func newEngine(t *testing.T) (*gin.Engine, *services.UserService) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	users := services.NewUserService(db)
	testutil.CreateUser(t, db, "leo")

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("secret"))))
	r.Use(RequestLogger(zap.NewNop()))
	r.Use(LoadUser(users, zap.NewNop()))

	r.GET("/login/:username", func(c *gin.Context) {
		user, err := users.ByUsername(c.Param("username"))
		require.NoError(t, err)
		require.NoError(t, Login(c, user))
		c.String(http.StatusOK, "ok")
	})
	r.GET("/logout", func(c *gin.Context) {
		require.NoError(t, Logout(c))
		c.String(http.StatusOK, "bye")
	})
	r.GET("/private", AuthRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).Username+" "+Viewer(c))
	})
	return r, users
}

func serve(r http.Handler, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredRedirectsAnonymous(t *testing.T) {
	r, _ := newEngine(t)

	w := serve(r, "/private?page=2", nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/auth/login/?next=/private%3Fpage%3D2", w.Header().Get("Location"))
}

func TestLoginSession(t *testing.T) {
	r, _ := newEngine(t)

	w := serve(r, "/login/leo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = serve(r, "/private", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "leo user:leo", w.Body.String())

	w = serve(r, "/logout", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(r, "/private", w.Result().Cookies())
	require.Equal(t, http.StatusFound, w.Code)
}

func TestLoginRedirect(t *testing.T) {
	require.Equal(t, "/auth/login/?next=/new/", LoginRedirect("/new/"))
	require.Equal(t, "/auth/login/?next=/leo/1/edit/", LoginRedirect("/leo/1/edit/"))
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"/follow/", "/follow/"},
		{"/leo/?page=2", "/leo/?page=2"},
		{"", "/"},
		{"https://evil.example/", "/"},
		{"//evil.example/", "/"},
		{"/\\evil.example", "/"},
		{"follow/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.next, func(t *testing.T) {
			require.Equal(t, tt.want, SafeNext(tt.next, "/"))
		})
	}
}

func TestViewerAnonymous(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	require.Equal(t, "anonymous", Viewer(c))
	require.Nil(t, CurrentUser(c))
}
