package models

import "time"

type Product struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Price          float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	CategoryID     *uint     `gorm:"column:category_id;index" json:"categoryId"`
	Category       *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`
	Stock          int       `gorm:"not null;default:0" json:"stock"`
	Image          *string   `json:"image"`
	WhatsAppNumber string    `gorm:"column:whatsapp_number" json:"whatsapp_number"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}
