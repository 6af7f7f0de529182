package services

import (
	"errors"

	"gorm.io/gorm"
)

// PostsPerPage is the page size of every feed
const PostsPerPage = 10

// AdminPerPage is the page size of admin lists
const AdminPerPage = 50

var (
	ErrNotFound           = errors.New("not found")
	ErrSelfFollow         = errors.New("users cannot follow themselves")
	ErrUsernameTaken      = errors.New("a user with that username already exists")
	ErrSlugTaken          = errors.New("a group with that slug already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Services bundles the query layer used by handlers
type Services struct {
	Users    *UserService
	Groups   *GroupService
	Posts    *PostService
	Comments *CommentService
	Follows  *FollowService
	Media    *MediaStore
}

func New(db *gorm.DB, media *MediaStore) *Services {
	return &Services{
		Users:    NewUserService(db),
		Groups:   NewGroupService(db),
		Posts:    NewPostService(db),
		Comments: NewCommentService(db),
		Follows:  NewFollowService(db),
		Media:    media,
	}
}

// notFound maps gorm's missing-row error to ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func likePattern(q string) string {
	return "%" + q + "%"
}
