package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yatube/internal/middleware"
	"yatube/internal/services"
)

type FollowHandler struct {
	base
}

func NewFollowHandler(svc *services.Services, logger *zap.Logger) *FollowHandler {
	return &FollowHandler{base{svc: svc, logger: logger}}
}

// ProfileFollow subscribes the current user to an author. Following
// yourself or following twice changes nothing.
func (h *FollowHandler) ProfileFollow(c *gin.Context) {
	author, err := h.svc.Users.ByUsername(c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}

	err = h.svc.Follows.Follow(middleware.CurrentUser(c), author)
	if err != nil && !errors.Is(err, services.ErrSelfFollow) {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// ProfileUnfollow removes the subscription, if any
func (h *FollowHandler) ProfileUnfollow(c *gin.Context) {
	author, err := h.svc.Users.ByUsername(c.Param("username"))
	if errors.Is(err, services.ErrNotFound) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.svc.Follows.Unfollow(middleware.CurrentUser(c), author); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}
