package models

import "time"

const (
	GalleryTypeImage = "image"
	GalleryTypeVideo = "video"
)

type Gallery struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Type         string    `gorm:"type:varchar(10);not null" json:"type"`
	URL          string    `gorm:"column:url;type:text;not null" json:"url"`
	ThumbnailURL *string   `gorm:"column:thumbnail_url;type:text" json:"thumbnailUrl"`
	Description  *string   `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Gallery) TableName() string {
	return "galleries"
}

func IsValidGalleryType(t string) bool {
	return t == GalleryTypeImage || t == GalleryTypeVideo
}
