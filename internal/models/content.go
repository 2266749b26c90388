// internal/models/content.go
package models

import (
	"time"

	"github.com/lib/pq"
)

type Event struct {
	BaseModel
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Location    string     `json:"location" gorm:"size:255"`
	StartsAt    *time.Time `json:"starts_at" gorm:"index"`
	ImageURL    string     `json:"image_url" gorm:"size:512"`
	IsPublished bool       `json:"is_published" gorm:"default:true;index"`
}

type GalleryImage struct {
	BaseModel
	URL      string `json:"url" gorm:"size:512;not null"`
	Caption  string `json:"caption" gorm:"size:255"`
	Position int    `json:"position" gorm:"default:0;index"`
}

type Partner struct {
	BaseModel
	Name    string `json:"name" gorm:"size:255;not null"`
	LogoURL string `json:"logo_url" gorm:"size:512"`
	Website string `json:"website" gorm:"size:512"`
}

type Subscriber struct {
	BaseModel
	Email        string         `json:"email" gorm:"size:255;uniqueIndex"`
	Phone        string         `json:"phone,omitempty" gorm:"size:32"`
	Unsubscribed bool           `json:"unsubscribed" gorm:"default:false;index"`
	Tags         pq.StringArray `json:"tags,omitempty" gorm:"type:text[]"`
}

type Setting struct {
	BaseModel
	Key   string `json:"key" gorm:"size:100;uniqueIndex;not null"`
	Value JSONB  `json:"value" gorm:"type:jsonb"`
}
