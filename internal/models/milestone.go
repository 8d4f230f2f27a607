package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Milestone struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	Year         string                      `gorm:"not null;index" json:"year"`
	Title        string                      `gorm:"not null" json:"title"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	Achievements datatypes.JSONSlice[string] `json:"achievements"`
	Image        *string                     `json:"image"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

func (Milestone) TableName() string {
	return "milestones"
}

func (milestone *Milestone) BeforeSave(tx *gorm.DB) (err error) {
	if milestone.Achievements == nil {
		milestone.Achievements = datatypes.JSONSlice[string]{}
	}
	return
}
