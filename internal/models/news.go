package models

import "time"

type News struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Excerpt      string    `gorm:"type:text" json:"excerpt"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Date         time.Time `gorm:"not null;index" json:"date"`
	ExternalLink string    `json:"external_link"`
	Image        *string   `json:"image"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (News) TableName() string {
	return "news"
}
