package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"yatube/internal/models"
	"yatube/internal/paginator"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// Create attributes a comment on post to author
func (s *CommentService) Create(post *models.Post, author *models.User, text string) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: author.ID,
		Text:     text,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment on post %d: %w", post.ID, err)
	}
	comment.Author = *author
	return comment, nil
}

// ForPost lists the comments of a post, oldest first
func (s *CommentService) ForPost(post *models.Post) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("Author").
		Where("post_id = ?", post.ID).
		Order("created ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

// Search pages through comments for the admin panel. Zero ids disable the
// corresponding filter.
func (s *CommentService) Search(q string, postID, authorID uint, page string) (*paginator.Page[models.Comment], error) {
	query := s.db.Model(&models.Comment{})
	if q != "" {
		query = query.Where("LOWER(text) LIKE ?", likePattern(strings.ToLower(q)))
	}
	if postID != 0 {
		query = query.Where("post_id = ?", postID)
	}
	if authorID != 0 {
		query = query.Where("author_id = ?", authorID)
	}
	return paginator.Paginate[models.Comment](query, page, AdminPerPage, func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("Author").Preload("Post").Order("created DESC, id DESC")
	})
}

func (s *CommentService) Delete(id uint) error {
	res := s.db.Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CommentService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.Comment{}).Count(&count).Error
	return count, err
}
