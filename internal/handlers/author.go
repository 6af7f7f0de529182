package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"yatube/internal/middleware"
	"yatube/internal/models"
)

// authorContext is the author card shown on profile and post pages
func (b *base) authorContext(c *gin.Context, author *models.User) (gin.H, error) {
	following, err := b.svc.Follows.IsFollowing(middleware.CurrentUser(c), author)
	if err != nil {
		return nil, fmt.Errorf("check following: %w", err)
	}
	followers, err := b.svc.Follows.FollowersCount(author)
	if err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	follows, err := b.svc.Follows.FollowingCount(author)
	if err != nil {
		return nil, fmt.Errorf("count following: %w", err)
	}
	posts, err := b.svc.Posts.CountByAuthor(author)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	return gin.H{
		"Author":         author,
		"Following":      following,
		"FollowersCount": followers,
		"FollowingCount": follows,
		"PostsCount":     posts,
	}, nil
}
