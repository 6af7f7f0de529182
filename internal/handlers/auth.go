package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yatube/internal/forms"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/services"
)

// reservedUsernames would be shadowed by site routes
var reservedUsernames = map[string]bool{
	"about": true, "admin": true, "auth": true, "follow": true, "group": true,
	"healthz": true, "media": true, "new": true, "404": true, "500": true,
}

type AuthHandler struct {
	base
}

func NewAuthHandler(svc *services.Services, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{base{svc: svc, logger: logger}}
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	Render(c, http.StatusOK, "auth/signup.html", gin.H{"Form": &forms.SignupForm{Errors: forms.Errors{}}})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	form := forms.BindSignupForm(c)
	if !form.Errors.Has("username") && reservedUsernames[form.Username] {
		form.Errors.Add("username", "This username is not available.")
	}
	if form.Errors.Any() {
		Render(c, http.StatusOK, "auth/signup.html", gin.H{"Form": form})
		return
	}

	user, err := h.svc.Users.Register(form.Username, form.Password, models.RoleUser)
	if errors.Is(err, services.ErrUsernameTaken) {
		form.Errors.Add("username", err.Error())
		Render(c, http.StatusOK, "auth/signup.html", gin.H{"Form": form})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := middleware.Login(c, user); err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("User signed up", zap.String("username", user.Username))
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	form := &forms.LoginForm{Next: c.Query("next"), Errors: forms.Errors{}}
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Form": form})
}

func (h *AuthHandler) Login(c *gin.Context) {
	form := forms.BindLoginForm(c)
	if form.Errors.Any() {
		Render(c, http.StatusOK, "auth/login.html", gin.H{"Form": form})
		return
	}

	user, err := h.svc.Users.Authenticate(form.Username, form.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		form.Errors.Add(forms.NonField, "Please enter a correct username and password. Note that both fields may be case-sensitive.")
		Render(c, http.StatusOK, "auth/login.html", gin.H{"Form": form})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := middleware.Login(c, user); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, middleware.SafeNext(form.Next, "/"))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.Logout(c); err != nil {
		h.fail(c, err)
		return
	}
	c.Set(middleware.CheckUserKey, nil)
	Render(c, http.StatusOK, "auth/logged_out.html", nil)
}
