package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yatube/internal/models"
	"yatube/internal/services"
)

// CheckUserKey holds the logged in *models.User in the gin context
const CheckUserKey = "user"

// SessionUserKey holds the id of the logged in user in the session
const SessionUserKey = "user_id"

// LoginURL is where anonymous users are sent by AuthRequired
const LoginURL = "/auth/login/"

// LoadUser retrieves user from session and sets to context
func LoadUser(users *services.UserService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, ok := sessionUserID(session.Get(SessionUserKey))
		if !ok {
			c.Next()
			return
		}

		user, err := users.ByID(id)
		switch {
		case err == nil:
			c.Set(CheckUserKey, user)
		case errors.Is(err, services.ErrNotFound):
			// Stale session of a deleted user
			session.Delete(SessionUserKey)
			_ = session.Save()
		default:
			logger.Error("Failed to load session user", zap.Uint("user_id", id), zap.Error(err))
		}
		c.Next()
	}
}

func sessionUserID(v any) (uint, bool) {
	switch id := v.(type) {
	case uint:
		return id, id != 0
	case int:
		return uint(id), id > 0
	case int64:
		return uint(id), id > 0
	default:
		return 0, false
	}
}

// CurrentUser returns the logged in user, or nil for anonymous requests
func CurrentUser(c *gin.Context) *models.User {
	if v, exists := c.Get(CheckUserKey); exists {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// Login stores user in the session
func Login(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(SessionUserKey, user.ID)
	return session.Save()
}

// Logout forgets the session user
func Logout(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}

// AuthRequired redirects anonymous users to the login page, keeping the
// requested URI in the next parameter.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginRedirect(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginRedirect returns the login URL that leads back to next
func LoginRedirect(next string) string {
	return LoginURL + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// SafeNext returns next when it is a path on this site, otherwise fallback
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.ContainsAny(next, "\\\r\n") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}

// Viewer identifies the page variant a visitor gets, for the page cache
func Viewer(c *gin.Context) string {
	if user := CurrentUser(c); user != nil {
		return "user:" + user.Username
	}
	return "anonymous"
}
