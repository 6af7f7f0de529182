package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yatube/internal/forms"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/services"
	"yatube/internal/utils"
)

// PostHandler serves the post detail page and the post forms
type PostHandler struct {
	base
}

func NewPostHandler(svc *services.Services, logger *zap.Logger) *PostHandler {
	return &PostHandler{base{svc: svc, logger: logger}}
}

func postURL(post *models.Post) string {
	return fmt.Sprintf("/%s/%d/", post.Author.Username, post.ID)
}

// lookup finds the post addressed by the username and post_id params
func (h *PostHandler) lookup(c *gin.Context) (*models.Post, error) {
	id, ok := utils.ParseID(c.Param("post_id"))
	if !ok {
		return nil, services.ErrNotFound
	}
	return h.svc.Posts.Get(c.Param("username"), id)
}

// PostView shows a post with its comments. POST adds a comment.
func (h *PostHandler) PostView(c *gin.Context) {
	post, err := h.lookup(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	form := forms.NewCommentForm()
	if c.Request.Method == http.MethodPost {
		user := middleware.CurrentUser(c)
		if user == nil {
			c.Redirect(http.StatusFound, middleware.LoginRedirect(c.Request.URL.RequestURI()))
			return
		}

		form = forms.BindCommentForm(c)
		if !form.Errors.Any() {
			if _, err := h.svc.Comments.Create(post, user, form.Text); err != nil {
				h.fail(c, err)
				return
			}
			c.Redirect(http.StatusFound, postURL(post))
			return
		}
	}

	h.renderPost(c, post, form)
}

func (h *PostHandler) renderPost(c *gin.Context, post *models.Post, form *forms.CommentForm) {
	comments, err := h.svc.Comments.ForPost(post)
	if err != nil {
		h.fail(c, err)
		return
	}
	post.CommentCount = len(comments)

	ctx, err := h.authorContext(c, &post.Author)
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx["Post"] = post
	ctx["Comments"] = comments
	ctx["Form"] = form
	Render(c, http.StatusOK, "post.html", ctx)
}

// AddComment stores a valid comment and always returns to the post
func (h *PostHandler) AddComment(c *gin.Context) {
	post, err := h.lookup(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	form := forms.BindCommentForm(c)
	if !form.Errors.Any() {
		if _, err := h.svc.Comments.Create(post, middleware.CurrentUser(c), form.Text); err != nil {
			h.fail(c, err)
			return
		}
	}
	c.Redirect(http.StatusFound, postURL(post))
}

// NewPost creates a post of the current user
func (h *PostHandler) NewPost(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		h.renderForm(c, forms.NewPostForm(nil), nil)
		return
	}

	form := forms.BindPostForm(c)
	post := &models.Post{AuthorID: middleware.CurrentUser(c).ID}
	saved, err := h.apply(post, form)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !saved {
		h.renderForm(c, form, nil)
		return
	}

	if err := h.svc.Posts.Create(post); err != nil {
		h.removeImage(post.Image)
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// PostEdit lets the author change a post. Anybody else is sent back to it.
func (h *PostHandler) PostEdit(c *gin.Context) {
	post, err := h.lookup(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if post.AuthorID != middleware.CurrentUser(c).ID {
		c.Redirect(http.StatusFound, postURL(post))
		return
	}

	if c.Request.Method != http.MethodPost {
		h.renderForm(c, forms.NewPostForm(post), post)
		return
	}

	form := forms.BindPostForm(c)
	oldImage := post.Image
	saved, err := h.apply(post, form)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !saved {
		h.renderForm(c, form, post)
		return
	}

	if err := h.svc.Posts.Update(post); err != nil {
		if post.Image != oldImage {
			h.removeImage(post.Image)
		}
		h.fail(c, err)
		return
	}
	if post.Image != oldImage {
		h.removeImage(oldImage)
	}
	c.Redirect(http.StatusFound, postURL(post))
}

// apply copies a valid form onto post, storing an uploaded image. It
// reports false and leaves post untouched when the form has errors.
func (h *PostHandler) apply(post *models.Post, form *forms.PostForm) (bool, error) {
	var groupID *uint
	if id, ok := form.GroupID(); ok {
		group, err := h.svc.Groups.ByID(id)
		switch {
		case err == nil:
			groupID = &group.ID
		case errors.Is(err, services.ErrNotFound):
			form.Errors.Add("group", forms.InvalidChoice)
		default:
			return false, err
		}
	}
	if form.Errors.Any() {
		return false, nil
	}

	image := post.Image
	if form.Clear() {
		image = ""
	}
	if form.Image != nil {
		name, err := h.svc.Media.SaveImage(form.Image)
		switch {
		case err == nil:
			image = name
		case errors.Is(err, services.ErrNotImage), errors.Is(err, services.ErrImageTooLarge):
			form.Errors.Add("image", err.Error())
			return false, nil
		default:
			return false, err
		}
	}

	post.Text = form.Text
	post.GroupID = groupID
	post.Image = image
	return true, nil
}

// removeImage drops a stored image that no post refers to anymore
func (h *PostHandler) removeImage(name string) {
	if err := h.svc.Media.Remove(name); err != nil {
		h.logger.Warn("Failed to remove image", zap.String("image", name), zap.Error(err))
	}
}

func (h *PostHandler) renderForm(c *gin.Context, form *forms.PostForm, post *models.Post) {
	groups, err := h.svc.Groups.All()
	if err != nil {
		h.fail(c, err)
		return
	}
	Render(c, http.StatusOK, "new.html", gin.H{
		"Form":   form,
		"Groups": groups,
		"Post":   post,
		"IsEdit": post != nil,
	})
}
