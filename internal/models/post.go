// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is the closed set of blog post categories.
type Category string

const (
	CategoryWebDesign    Category = "Web Design"
	CategoryTechnology   Category = "Technology"
	CategoryHistory      Category = "History"
	CategoryPersonalLife Category = "Personal Life"

	// CategoryAll is a filter sentinel used by listings; it is never stored.
	CategoryAll Category = "All"
)

// Categories lists every storable category in display order.
var Categories = []Category{
	CategoryWebDesign,
	CategoryTechnology,
	CategoryHistory,
	CategoryPersonalLife,
}

// Valid reports whether c is one of the storable categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// DefaultReadTime is used when a draft supplies no usable read time.
const DefaultReadTime = 5

// Post represents a blog post in the portfolio site.
//
// ID and PublishedAt are owned by the store: they are assigned on insert and
// immutable afterwards. Slug uniqueness is enforced by the database index,
// not locally.
type Post struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt     string    `gorm:"type:text;not null" json:"excerpt"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Category    Category  `gorm:"type:varchar(32);not null;index" json:"category"`
	ReadTime    int       `gorm:"not null" json:"read_time"`
	PublishedAt time.Time `gorm:"index" json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns the store-owned fields on insert.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PublishedAt.IsZero() {
		p.PublishedAt = time.Now().UTC()
	}
	return nil
}
