package utils

import (
	"fmt"
	"log"
	"time"

	"loanlink/database"
	"loanlink/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializeReconcileScheduler starts the fee-payment reconciliation job.
// A payment can be confirmed by the processor and still fail to reach the
// application record; those ledger rows stay in "succeeded" and must be
// drained here, because money has moved but the record has not.
func InitializeReconcileScheduler() {
	log.Println("[RECONCILER] Initializing fee-payment reconciliation scheduler...")

	c := cron.New()

	c.AddFunc("*/5 * * * *", func() {
		ReconcileFeePayments()
	})

	c.Start()
	log.Println("[RECONCILER] Scheduler started - runs every 5 minutes")
}

// ReconcileFeePayments applies every confirmed-but-unapplied payment
// older than two minutes. Fresh rows are skipped so the job does not
// race the request that is still applying them.
func ReconcileFeePayments() {
	db := database.Database.Db
	cutoff := time.Now().Add(-2 * time.Minute)

	var stuck []models.FeePayment
	if err := db.
		Where("status = ? AND updated_at < ?", models.FeePaymentSucceeded, cutoff).
		Find(&stuck).Error; err != nil {
		log.Printf("[RECONCILER] Error fetching unapplied payments: %v", err)
		return
	}

	if len(stuck) == 0 {
		return
	}
	log.Printf("[RECONCILER] Found %d unapplied fee payments", len(stuck))

	for i := range stuck {
		if err := ApplyFeePayment(db, &stuck[i]); err != nil {
			log.Printf("[RECONCILER] Failed to apply payment %s: %v", stuck[i].IntentID, err)
			continue
		}
		log.Printf("[RECONCILER] Recovered fee payment %s for application %d", stuck[i].IntentID, stuck[i].ApplicationID)
	}
}

// ApplyFeePayment marks the application paid and the ledger row applied
// in one transaction. Replaying an already-applied intent is a no-op.
func ApplyFeePayment(db *gorm.DB, payment *models.FeePayment) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var app models.LoanApplication
		err := tx.Where("id = ? AND is_deleted = false", payment.ApplicationID).First(&app).Error
		if err == gorm.ErrRecordNotFound {
			// The application was cancelled while the charge was in
			// flight. Money moved; the row stays in the ledger for
			// manual review instead of marking a dead record paid.
			return fmt.Errorf("application %d is cancelled or missing, payment %s needs manual review",
				payment.ApplicationID, payment.IntentID)
		}
		if err != nil {
			return err
		}

		if app.ApplicationFeeStatus == models.FeePaid {
			if app.TransactionID != nil && *app.TransactionID != payment.IntentID {
				return fmt.Errorf("application %d already paid with a different transaction", app.ID)
			}
		} else {
			updates := map[string]interface{}{
				"application_fee_status": models.FeePaid,
				"transaction_id":         payment.IntentID,
			}
			if err := tx.Model(&app).Updates(updates).Error; err != nil {
				return err
			}
		}

		return tx.Model(payment).Update("status", models.FeePaymentApplied).Error
	})
}
