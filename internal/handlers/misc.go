package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MiscHandler serves the static and error pages
type MiscHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewMiscHandler(db *gorm.DB, logger *zap.Logger) *MiscHandler {
	return &MiscHandler{db: db, logger: logger}
}

func (h *MiscHandler) AboutAuthor(c *gin.Context) {
	Render(c, http.StatusOK, "about/author.html", nil)
}

func (h *MiscHandler) AboutTech(c *gin.Context) {
	Render(c, http.StatusOK, "about/tech.html", nil)
}

// PageNotFound serves unknown routes and /404/
func (h *MiscHandler) PageNotFound(c *gin.Context) {
	RenderNotFound(c)
}

func (h *MiscHandler) ServerError(c *gin.Context) {
	RenderServerError(c)
}

// Recover renders the 500 page for a panicking handler
func (h *MiscHandler) Recover(c *gin.Context, err any) {
	h.logger.Error("Recovered from panic",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Any("panic", err),
		zap.Stack("stack"),
	)
	RenderServerError(c)
	c.Abort()
}

// Health reports whether the database answers
func (h *MiscHandler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.logger.Error("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "yatube"})
}
