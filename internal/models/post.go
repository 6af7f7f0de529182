package models

import (
	"time"
)

// previewLength is how many characters String keeps of a text body
const previewLength = 15

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	PubDate   time.Time `gorm:"not null;index;autoCreateTime" json:"pub_date"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	GroupID   *uint     `gorm:"index" json:"group_id"` // Optional
	Group     *Group    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group"`
	Image     string    `gorm:"size:255" json:"image"` // Path relative to the media root
	UpdatedAt time.Time `json:"updated_at"`

	// Not stored, filled by list queries
	CommentCount int `gorm:"-" json:"comment_count"`
}

func (p Post) String() string {
	return preview(p.Text)
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) > previewLength {
		return string(runes[:previewLength])
	}
	return text
}
