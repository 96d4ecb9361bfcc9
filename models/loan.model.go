package models

import (
	"gorm.io/gorm"
)

const (
	LoanStatusActive   = "active"
	LoanStatusInactive = "inactive"
)

// LoanProduct is a loan offering published by a manager.
type LoanProduct struct {
	gorm.Model
	Title             string  `gorm:"not null" json:"title"`
	Category          string  `gorm:"index" json:"category"`
	InterestRate      float64 `json:"interestRate"` // percent per annum
	MaxLimit          float64 `json:"maxLimit"`
	Description       string  `gorm:"type:text" json:"description"`
	ImageURL          string  `json:"imageUrl"`
	DocumentsRequired string  `gorm:"type:text" json:"documentsRequired"`
	ShowOnHome        bool    `gorm:"default:false" json:"showOnHome"`
	Status            string  `gorm:"default:'active'" json:"status"`
	IsDeleted         bool    `gorm:"default:false" json:"-"`

	EMIPlans []EMIPlan `gorm:"foreignKey:LoanID" json:"emiPlans"`
}

// EMIPlan is one repayment option of a loan product. Position preserves
// the order managers entered the plans in.
type EMIPlan struct {
	gorm.Model
	LoanID         uint    `gorm:"index;not null" json:"-"`
	Position       int     `gorm:"not null" json:"-"`
	DurationMonths int     `gorm:"not null" json:"duration"`
	Rate           float64 `gorm:"not null" json:"rate"` // percent per annum
}
