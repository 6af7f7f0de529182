package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yatube/internal/forms"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/pagecache"
	"yatube/internal/services"
	"yatube/internal/utils"
)

// AdminHandler is the back office for staff users
type AdminHandler struct {
	base
	cache pagecache.Store
}

func NewAdminHandler(svc *services.Services, cache pagecache.Store, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{base: base{svc: svc, logger: logger}, cache: cache}
}

// checkAdmin returns the current user if they are staff
func (h *AdminHandler) checkAdmin(c *gin.Context) *models.User {
	user := middleware.CurrentUser(c)
	if !user.IsAdmin() {
		return nil
	}
	return user
}

// AdminRequired hides the panel from anybody who is not staff. It runs
// after AuthRequired, so only logged in users reach it.
func (h *AdminHandler) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.checkAdmin(c) == nil {
			RenderNotFound(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// queryID parses an optional id filter; anything invalid means no filter
func queryID(c *gin.Context, name string) uint {
	id, _ := utils.ParseID(c.Query(name))
	return id
}

// Dashboard shows how many rows each table holds
func (h *AdminHandler) Dashboard(c *gin.Context) {
	counts := make(map[string]int64)
	counters := map[string]func() (int64, error){
		"Users":    h.svc.Users.Count,
		"Groups":   h.svc.Groups.Count,
		"Posts":    h.svc.Posts.Count,
		"Comments": h.svc.Comments.Count,
		"Follows":  h.svc.Follows.Count,
	}
	for name, count := range counters {
		n, err := count()
		if err != nil {
			h.fail(c, err)
			return
		}
		counts[name] = n
	}
	Render(c, http.StatusOK, "admin/index.html", gin.H{"Counts": counts})
}

func (h *AdminHandler) Groups(c *gin.Context) {
	h.renderGroups(c, &forms.GroupForm{Errors: forms.Errors{}})
}

func (h *AdminHandler) renderGroups(c *gin.Context, form *forms.GroupForm) {
	q := c.Query("q")
	page, err := h.svc.Groups.Search(q, c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	Render(c, http.StatusOK, "admin/groups.html", gin.H{
		"Page":  page,
		"Query": q,
		"Form":  form,
	})
}

// CreateGroup adds a group. An empty slug is derived from the title.
func (h *AdminHandler) CreateGroup(c *gin.Context) {
	form := forms.BindGroupForm(c)
	if form.Errors.Any() {
		h.renderGroups(c, form)
		return
	}

	group := &models.Group{Title: form.Title, Slug: form.Slug, Description: form.Description}
	err := h.svc.Groups.Create(group)
	if errors.Is(err, services.ErrSlugTaken) {
		form.Errors.Add("slug", err.Error())
		h.renderGroups(c, form)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	h.logger.Info("Group created", zap.String("slug", group.Slug), zap.Uint("admin_id", h.checkAdmin(c).ID))
	c.Redirect(http.StatusFound, "/admin/groups/")
}

func (h *AdminHandler) DeleteGroup(c *gin.Context) {
	h.delete(c, "/admin/groups/", h.svc.Groups.Delete)
}

func (h *AdminHandler) Posts(c *gin.Context) {
	q := c.Query("q")
	groupID := queryID(c, "group")
	page, err := h.svc.Posts.Search(q, groupID, c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	groups, err := h.svc.Groups.All()
	if err != nil {
		h.fail(c, err)
		return
	}
	Render(c, http.StatusOK, "admin/posts.html", gin.H{
		"Page":    page,
		"Query":   q,
		"Groups":  groups,
		"GroupID": groupID,
	})
}

// DeletePost removes a post, its comments and its image
func (h *AdminHandler) DeletePost(c *gin.Context) {
	h.delete(c, "/admin/posts/", func(id uint) error {
		post, err := h.svc.Posts.Delete(id)
		if err != nil {
			return err
		}
		if err := h.svc.Media.Remove(post.Image); err != nil {
			h.logger.Warn("Failed to remove image of deleted post", zap.Uint("post_id", id), zap.Error(err))
		}
		return nil
	})
}

func (h *AdminHandler) Comments(c *gin.Context) {
	q := c.Query("q")
	page, err := h.svc.Comments.Search(q, queryID(c, "post"), queryID(c, "author"), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	Render(c, http.StatusOK, "admin/comments.html", gin.H{
		"Page":  page,
		"Query": q,
	})
}

func (h *AdminHandler) DeleteComment(c *gin.Context) {
	h.delete(c, "/admin/comments/", h.svc.Comments.Delete)
}

func (h *AdminHandler) Follows(c *gin.Context) {
	page, err := h.svc.Follows.Search(queryID(c, "user"), queryID(c, "author"), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	Render(c, http.StatusOK, "admin/follows.html", gin.H{"Page": page})
}

func (h *AdminHandler) DeleteFollow(c *gin.Context) {
	h.delete(c, "/admin/follows/", h.svc.Follows.Delete)
}

func (h *AdminHandler) delete(c *gin.Context, list string, remove func(uint) error) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		RenderNotFound(c)
		return
	}
	if err := remove(id); err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("Admin deleted row",
		zap.String("list", list),
		zap.Uint("id", id),
		zap.Uint("admin_id", h.checkAdmin(c).ID),
	)
	c.Redirect(http.StatusFound, list)
}

// ClearCache drops every cached page
func (h *AdminHandler) ClearCache(c *gin.Context) {
	if err := h.cache.Clear(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("Page cache cleared", zap.Uint("admin_id", h.checkAdmin(c).ID))
	c.Redirect(http.StatusFound, "/admin/")
}
