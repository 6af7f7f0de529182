package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/internal/models"
	"yatube/internal/paginator"
)

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// feedOrder loads what a post card shows, newest first
func feedOrder(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Author").Preload("Group").Order("pub_date DESC, id DESC")
}

// Index pages through every post
func (s *PostService) Index(page string) (*paginator.Page[models.Post], error) {
	return s.paginate(s.db.Model(&models.Post{}), page)
}

// ByGroup pages through the posts of group
func (s *PostService) ByGroup(group *models.Group, page string) (*paginator.Page[models.Post], error) {
	return s.paginate(s.db.Model(&models.Post{}).Where("group_id = ?", group.ID), page)
}

// ByAuthor pages through the posts written by author
func (s *PostService) ByAuthor(author *models.User, page string) (*paginator.Page[models.Post], error) {
	return s.paginate(s.db.Model(&models.Post{}).Where("author_id = ?", author.ID), page)
}

// FollowFeed pages through the posts of every author user follows
func (s *PostService) FollowFeed(user *models.User, page string) (*paginator.Page[models.Post], error) {
	followed := s.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", user.ID)
	return s.paginate(s.db.Model(&models.Post{}).Where("author_id IN (?)", followed), page)
}

func (s *PostService) paginate(q *gorm.DB, page string) (*paginator.Page[models.Post], error) {
	p, err := paginator.Paginate[models.Post](q, page, PostsPerPage, feedOrder)
	if err != nil {
		return nil, fmt.Errorf("load posts page: %w", err)
	}
	if err := s.fillCommentCounts(p.Items); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) fillCommentCounts(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uint, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}

	var rows []struct {
		PostID uint
		Count  int
	}
	err := s.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("count comments: %w", err)
	}

	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	for i := range posts {
		posts[i].CommentCount = counts[posts[i].ID]
	}
	return nil
}

// Get returns post id if it was written by username
func (s *PostService) Get(username string, id uint) (*models.Post, error) {
	author := s.db.Model(&models.User{}).Select("id").Where("username = ?", username)

	var post models.Post
	err := s.db.Preload("Author").Preload("Group").
		Where("id = ? AND author_id IN (?)", id, author).
		First(&post).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

func (s *PostService) Create(post *models.Post) error {
	if err := s.db.Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// Update stores the editable fields of post: text, group and image. A
// preloaded Group that no longer matches GroupID is dropped.
func (s *PostService) Update(post *models.Post) error {
	var group any
	if post.GroupID != nil {
		group = *post.GroupID
	}

	err := s.db.Model(&models.Post{ID: post.ID}).Omit(clause.Associations).Updates(map[string]any{
		"text":     post.Text,
		"group_id": group,
		"image":    post.Image,
	}).Error
	if err != nil {
		return fmt.Errorf("update post %d: %w", post.ID, err)
	}
	if post.Group != nil && (post.GroupID == nil || *post.GroupID != post.Group.ID) {
		post.Group = nil
	}
	return nil
}

// Delete removes a post with its comments and returns it, so the caller
// can drop its image.
func (s *PostService) Delete(id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Search pages through posts whose text contains q, optionally limited to
// one group. Zero groupID means any group.
func (s *PostService) Search(q string, groupID uint, page string) (*paginator.Page[models.Post], error) {
	query := s.db.Model(&models.Post{})
	if q != "" {
		query = query.Where("LOWER(text) LIKE ?", likePattern(strings.ToLower(q)))
	}
	if groupID != 0 {
		query = query.Where("group_id = ?", groupID)
	}
	return paginator.Paginate[models.Post](query, page, AdminPerPage, feedOrder)
}

// CountByAuthor returns how many posts author has written
func (s *PostService) CountByAuthor(author *models.User) (int64, error) {
	var count int64
	err := s.db.Model(&models.Post{}).Where("author_id = ?", author.ID).Count(&count).Error
	return count, err
}

func (s *PostService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}
