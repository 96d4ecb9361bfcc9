package models

import "gorm.io/gorm"

const (
	SupportOpen   = "open"
	SupportClosed = "closed"
)

// SupportMessage is a contact-form submission.
type SupportMessage struct {
	gorm.Model
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"not null" json:"email"`
	Subject   string `json:"subject"`
	Message   string `gorm:"type:text;not null" json:"message"`
	Status    string `gorm:"default:'open'" json:"status"`
	IsDeleted bool   `gorm:"default:false" json:"-"`
}
