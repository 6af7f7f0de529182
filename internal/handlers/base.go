package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yatube/internal/middleware"
	"yatube/internal/services"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
	}
	obj["CurrentPath"] = c.Request.URL.Path
	obj["Template"] = name

	c.HTML(code, name, obj)
}

// RenderNotFound renders the 404 page for the requested path
func RenderNotFound(c *gin.Context) {
	Render(c, http.StatusNotFound, "misc/404.html", gin.H{"Path": c.Request.URL.Path})
}

// RenderServerError renders the 500 page
func RenderServerError(c *gin.Context) {
	Render(c, http.StatusInternalServerError, "misc/500.html", nil)
}

// base is shared by every handler
type base struct {
	svc    *services.Services
	logger *zap.Logger
}

// fail maps err to the 404 page or logs it and renders the 500 page
func (b *base) fail(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotFound) {
		RenderNotFound(c)
		return
	}
	b.logger.Error("Request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	_ = c.Error(err)
	RenderServerError(c)
}
