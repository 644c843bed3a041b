package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Listing is a rental property page. Marketing content (rich text, SEO
// metadata) lives in the CMS frontend; only the fields the booking flow
// needs are stored here.
type Listing struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string  `gorm:"size:255" json:"title"`
	Slug        string  `gorm:"uniqueIndex;size:191" json:"slug"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	NightlyRate float64 `gorm:"column:nightly_rate" json:"nightlyRate"`
	MaxGuests   int     `gorm:"column:max_guests;default:2" json:"maxGuests"`
	Published   bool    `gorm:"default:true" json:"published"`

	Photos    datatypes.JSON `gorm:"column:photos" json:"photos,omitempty"`
	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`
}
