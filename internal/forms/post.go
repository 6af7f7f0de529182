package forms

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"yatube/internal/models"
	"yatube/internal/utils"
)

// PostForm is the create and edit form of a post
type PostForm struct {
	Text       string `form:"text" binding:"notblank"`
	Group      string `form:"group"`
	ClearImage string `form:"image-clear"`

	Image  *multipart.FileHeader `form:"-"`
	Errors Errors                `form:"-"`
}

// NewPostForm returns a form prefilled from post, or an empty one
func NewPostForm(post *models.Post) *PostForm {
	form := &PostForm{Errors: Errors{}}
	if post != nil {
		form.Text = post.Text
		if post.GroupID != nil {
			form.Group = utils.FormatID(*post.GroupID)
		}
	}
	return form
}

// BindPostForm reads the post form, including an optional image upload
func BindPostForm(c *gin.Context) *PostForm {
	form := &PostForm{}
	form.Errors = Bind(c, form)
	form.Text = strings.TrimSpace(form.Text)

	header, err := c.FormFile("image")
	switch {
	case err == nil:
		form.Image = header
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		form.Errors.Add("image", "The image could not be read.")
	}

	if form.Group != "" {
		if _, ok := utils.ParseID(form.Group); !ok {
			form.Errors.Add("group", InvalidChoice)
		}
	}
	return form
}

// InvalidChoice is reported for a group that does not exist
const InvalidChoice = "Select a valid choice. That choice is not one of the available choices."

// GroupID returns the selected group, if any
func (f *PostForm) GroupID() (uint, bool) {
	if f.Group == "" {
		return 0, false
	}
	return utils.ParseID(f.Group)
}

// Clear reports whether the image-clear checkbox was ticked
func (f *PostForm) Clear() bool {
	return f.ClearImage != ""
}

// CommentForm is the comment form under a post
type CommentForm struct {
	Text   string `form:"text" binding:"notblank"`
	Errors Errors `form:"-"`
}

func NewCommentForm() *CommentForm {
	return &CommentForm{Errors: Errors{}}
}

func BindCommentForm(c *gin.Context) *CommentForm {
	form := &CommentForm{}
	form.Errors = Bind(c, form)
	form.Text = strings.TrimSpace(form.Text)
	return form
}
