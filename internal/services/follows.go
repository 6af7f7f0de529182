package services

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/internal/models"
	"yatube/internal/paginator"
)

type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow subscribes user to author. Following twice is a no-op.
func (s *FollowService) Follow(user, author *models.User) error {
	if user.ID == author.ID {
		return ErrSelfFollow
	}

	follow := &models.Follow{UserID: user.ID, AuthorID: author.ID}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error
	if err != nil {
		return fmt.Errorf("follow %s: %w", author.Username, err)
	}
	return nil
}

// Unfollow removes the subscription of user to author, if any
func (s *FollowService) Unfollow(user, author *models.User) error {
	err := s.db.Where("user_id = ? AND author_id = ?", user.ID, author.ID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return fmt.Errorf("unfollow %s: %w", author.Username, err)
	}
	return nil
}

// IsFollowing reports whether user follows author. A nil user follows nobody.
func (s *FollowService) IsFollowing(user, author *models.User) (bool, error) {
	if user == nil {
		return false, nil
	}

	var count int64
	err := s.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", user.ID, author.ID).
		Count(&count).Error
	return count > 0, err
}

// FollowersCount returns how many users follow author
func (s *FollowService) FollowersCount(author *models.User) (int64, error) {
	var count int64
	err := s.db.Model(&models.Follow{}).Where("author_id = ?", author.ID).Count(&count).Error
	return count, err
}

// FollowingCount returns how many authors user follows
func (s *FollowService) FollowingCount(user *models.User) (int64, error) {
	var count int64
	err := s.db.Model(&models.Follow{}).Where("user_id = ?", user.ID).Count(&count).Error
	return count, err
}

// Search pages through follows for the admin panel. Zero ids disable the
// corresponding filter.
func (s *FollowService) Search(userID, authorID uint, page string) (*paginator.Page[models.Follow], error) {
	query := s.db.Model(&models.Follow{})
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	if authorID != 0 {
		query = query.Where("author_id = ?", authorID)
	}
	return paginator.Paginate[models.Follow](query, page, AdminPerPage, func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("User").Preload("Author").Order("id DESC")
	})
}

func (s *FollowService) Delete(id uint) error {
	res := s.db.Delete(&models.Follow{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *FollowService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.Follow{}).Count(&count).Error
	return count, err
}
