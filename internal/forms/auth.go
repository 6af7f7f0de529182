package forms

import (
	"github.com/gin-gonic/gin"
)

type SignupForm struct {
	Username string `form:"username" binding:"required,max=150,username"`
	Password string `form:"password1" binding:"required,min=8"`
	Confirm  string `form:"password2" binding:"required,eqfield=Password"`
	Errors   Errors `form:"-"`
}

func BindSignupForm(c *gin.Context) *SignupForm {
	form := &SignupForm{}
	form.Errors = Bind(c, form)
	return form
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
	Errors   Errors `form:"-"`
}

func BindLoginForm(c *gin.Context) *LoginForm {
	form := &LoginForm{}
	form.Errors = Bind(c, form)
	return form
}

// GroupForm creates groups from the admin panel. An empty slug is derived
// from the title.
type GroupForm struct {
	Title       string `form:"title" binding:"required,max=200"`
	Slug        string `form:"slug" binding:"omitempty,max=100,slug"`
	Description string `form:"description"`
	Errors      Errors `form:"-"`
}

func BindGroupForm(c *gin.Context) *GroupForm {
	form := &GroupForm{}
	form.Errors = Bind(c, form)
	return form
}
