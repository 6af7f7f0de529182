package models

import (
	"time"
)

// Group is a topic community posts can optionally belong to
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Slug        string    `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName avoids the reserved word GROUP
func (Group) TableName() string {
	return "post_groups"
}

func (g Group) String() string {
	return g.Title
}
