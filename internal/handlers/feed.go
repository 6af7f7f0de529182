package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yatube/internal/middleware"
	"yatube/internal/services"
)

// FeedHandler renders the paginated post listings
type FeedHandler struct {
	base
}

func NewFeedHandler(svc *services.Services, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{base{svc: svc, logger: logger}}
}

// Index lists every post
func (h *FeedHandler) Index(c *gin.Context) {
	page, err := h.svc.Posts.Index(c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	Render(c, http.StatusOK, "index.html", gin.H{"Page": page})
}

// GroupPosts lists the posts of one group
func (h *FeedHandler) GroupPosts(c *gin.Context) {
	group, err := h.svc.Groups.BySlug(c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}

	page, err := h.svc.Posts.ByGroup(group, c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	Render(c, http.StatusOK, "group.html", gin.H{
		"Group": group,
		"Page":  page,
	})
}

// Profile lists the posts of one author
func (h *FeedHandler) Profile(c *gin.Context) {
	author, err := h.svc.Users.ByUsername(c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}

	page, err := h.svc.Posts.ByAuthor(author, c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx, err := h.authorContext(c, author)
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx["Page"] = page
	Render(c, http.StatusOK, "profile.html", ctx)
}

// FollowIndex lists the posts of the authors the current user follows
func (h *FeedHandler) FollowIndex(c *gin.Context) {
	page, err := h.svc.Posts.FollowFeed(middleware.CurrentUser(c), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	Render(c, http.StatusOK, "follow.html", gin.H{"Page": page})
}
