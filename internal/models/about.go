package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ManagementMember is one entry of the about page's management list. Entries
// are free-form objects; PhotoKey holds the stored photo path.
type ManagementMember map[string]any

const PhotoKey = "photo_url"

// Photo returns the stored photo path, or "" if none is set.
func (m ManagementMember) Photo() string {
	if s, ok := m[PhotoKey].(string); ok {
		return s
	}
	return ""
}

type About struct {
	ID              uint                                  `gorm:"primaryKey" json:"id"`
	HeroTitle       string                                `json:"hero_title"`
	HeroTagline     string                                `json:"hero_tagline"`
	HistoryTitle    string                                `json:"history_title"`
	HistoryText     string                                `gorm:"type:text" json:"history_text"`
	HistoryImageURL *string                               `gorm:"column:history_image_url" json:"history_image_url"`
	VisionTitle     string                                `json:"vision_title"`
	VisionText      string                                `gorm:"type:text" json:"vision_text"`
	MissionTitle    string                                `json:"mission_title"`
	MissionText     string                                `gorm:"type:text" json:"mission_text"`
	Values          datatypes.JSONSlice[string]           `gorm:"column:values" json:"values"`
	Management      datatypes.JSONSlice[ManagementMember] `json:"management"`
	ContactPhone    string                                `json:"contact_phone"`
	ContactEmail    string                                `json:"contact_email"`
	ContactAddress  string                                `gorm:"type:text" json:"contact_address"`
	CreatedAt       time.Time                             `json:"createdAt"`
	UpdatedAt       time.Time                             `json:"updatedAt"`
}

func (About) TableName() string {
	return "about_content"
}

// DefaultAbout is the about page created on first access: every text field
// empty, no values and no management entries.
func DefaultAbout() About {
	return About{
		ID:         SingletonID,
		Values:     datatypes.JSONSlice[string]{},
		Management: datatypes.JSONSlice[ManagementMember]{},
	}
}

func (about *About) BeforeSave(tx *gorm.DB) (err error) {
	if about.Values == nil {
		about.Values = datatypes.JSONSlice[string]{}
	}
	if about.Management == nil {
		about.Management = datatypes.JSONSlice[ManagementMember]{}
	}
	return
}
