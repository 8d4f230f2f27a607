package models

import "time"

const (
	DefaultHeroTitle   = "RIDE WITH PASSION"
	DefaultHeroTagline = "Bergabunglah dengan komunitas motor terbesar dan terseru di Indonesia"
)

type HomeContent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HeroTitle   string    `json:"hero_title"`
	HeroTagline string    `json:"hero_tagline"`
	BgVideo     *string   `json:"bg_video"`
	AboutImage  *string   `json:"about_image"`
	CTAImage    *string   `gorm:"column:cta_image" json:"cta_image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (HomeContent) TableName() string {
	return "home_content"
}

// DefaultHomeContent is the home page created on first access.
func DefaultHomeContent() HomeContent {
	return HomeContent{
		ID:          SingletonID,
		HeroTitle:   DefaultHeroTitle,
		HeroTagline: DefaultHeroTagline,
	}
}
