package models

import (
	"gorm.io/gorm"
)

const (
	FeePaymentCreated   = "created"   // intent created at the processor
	FeePaymentSucceeded = "succeeded" // processor confirmed the charge
	FeePaymentApplied   = "applied"   // application record marked paid
)

// FeePayment is the ledger of processing-fee payment intents. A row
// stuck in "succeeded" means money moved but the application patch
// failed; the reconciliation job drains those rows.
type FeePayment struct {
	gorm.Model
	ApplicationID uint   `gorm:"index;not null" json:"applicationId"`
	IntentID      string `gorm:"unique;not null" json:"intentId"`
	Amount        int64  `gorm:"not null" json:"amount"` // cents
	Currency      string `gorm:"default:'usd'" json:"currency"`
	Status        string `gorm:"default:'created';index" json:"status"`
}
