package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

const (
	FeeUnpaid = "unpaid"
	FeePaid   = "paid"
)

// TerminalApplicationStatus reports whether no further status transition
// is permitted.
func TerminalApplicationStatus(status string) bool {
	return status == ApplicationApproved || status == ApplicationRejected
}

// LoanApplication is a borrower's submitted application. Status moves
// pending -> approved|rejected one way; the fee moves unpaid -> paid
// exactly once. Cancellation is a soft delete, permitted only while
// pending.
type LoanApplication struct {
	gorm.Model
	Ref            string  `gorm:"unique;not null" json:"ref"`
	ApplicantEmail string  `gorm:"index;not null" json:"applicantEmail"`
	FirstName      string  `gorm:"not null" json:"firstName"`
	LastName       string  `gorm:"not null" json:"lastName"`
	LoanTitle      string  `json:"loanTitle"`
	Category       string  `json:"category"`
	LoanAmount     float64 `gorm:"not null" json:"loanAmount"`
	MonthlyIncome  float64 `gorm:"not null" json:"monthlyIncome"`
	IncomeSource   string  `json:"incomeSource"`
	NationalID     string  `json:"nationalId"`
	ContactNumber  string  `json:"contactNumber"`
	Address        string  `gorm:"type:text" json:"address"`
	LoanReason     string  `gorm:"type:text" json:"loanReason"`
	ExtraNotes     string  `gorm:"type:text" json:"extraNotes"`

	Status               string     `gorm:"default:'pending';index" json:"status"`
	ApplicationFeeStatus string     `gorm:"default:'unpaid'" json:"applicationFeeStatus"`
	TransactionID        *string    `gorm:"uniqueIndex" json:"transactionId"`
	ApprovedAt           *time.Time `json:"approvedAt"`
	IsDeleted            bool       `gorm:"default:false" json:"-"`
}
