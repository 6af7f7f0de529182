package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"yatube/internal/models"
	"yatube/internal/paginator"
)

type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

func (s *GroupService) BySlug(slug string) (*models.Group, error) {
	var group models.Group
	if err := s.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}

func (s *GroupService) ByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := s.db.First(&group, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}

// All lists groups by title, for the post form
func (s *GroupService) All() ([]models.Group, error) {
	var groups []models.Group
	err := s.db.Order("title ASC").Find(&groups).Error
	return groups, err
}

// Create stores a group, deriving the slug from the title when it is empty
func (s *GroupService) Create(group *models.Group) error {
	if group.Slug == "" {
		group.Slug = Slugify(group.Title)
	}
	if group.Slug == "" {
		return fmt.Errorf("cannot derive a slug from title %q", group.Title)
	}
	if _, err := s.BySlug(group.Slug); err == nil {
		return ErrSlugTaken
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	if err := s.db.Create(group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlugTaken
		}
		return fmt.Errorf("create group %s: %w", group.Slug, err)
	}
	return nil
}

// Delete removes a group; its posts stay without a group
func (s *GroupService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("group_id = ?", id).Update("group_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Group{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Search pages through groups whose slug contains q
func (s *GroupService) Search(q, page string) (*paginator.Page[models.Group], error) {
	query := s.db.Model(&models.Group{})
	if q != "" {
		query = query.Where("slug LIKE ?", likePattern(strings.ToLower(q)))
	}
	return paginator.Paginate[models.Group](query, page, AdminPerPage, func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id ASC")
	})
}

func (s *GroupService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.Group{}).Count(&count).Error
	return count, err
}

var (
	slugUnsafe = regexp.MustCompile(`[^a-z0-9_-]+`)
	slugDashes = regexp.MustCompile(`[-\s]+`)
)

var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "i", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch", 'ъ': "",
	'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// Slugify turns a title into a URL slug: lowercase ASCII letters, digits,
// underscores and hyphens. Cyrillic is transliterated.
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if latin, ok := cyrillic[r]; ok {
			b.WriteString(latin)
			continue
		}
		if unicode.IsSpace(r) {
			b.WriteRune('-')
			continue
		}
		b.WriteRune(r)
	}

	slug := slugUnsafe.ReplaceAllString(b.String(), "")
	slug = slugDashes.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-_")
	if len(slug) > 100 {
		slug = strings.TrimRight(slug[:100], "-_")
	}
	return slug
}
