package utils

import (
	"testing"
	"time"

	"loanlink/models"
	"loanlink/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFeePayment(t *testing.T) {
	db := testutil.SetupTestDB(t)

	app := testutil.CreateApplication(t, db, "owner@example.com", models.ApplicationPending, models.FeeUnpaid)
	payment := models.FeePayment{
		ApplicationID: app.ID,
		IntentID:      "pi_apply_1",
		Amount:        1000,
		Currency:      "usd",
		Status:        models.FeePaymentSucceeded,
	}
	require.NoError(t, db.Create(&payment).Error)

	require.NoError(t, ApplyFeePayment(db, &payment))

	var saved models.LoanApplication
	require.NoError(t, db.First(&saved, app.ID).Error)
	assert.Equal(t, models.FeePaid, saved.ApplicationFeeStatus)
	require.NotNil(t, saved.TransactionID)
	assert.Equal(t, "pi_apply_1", *saved.TransactionID)

	var ledger models.FeePayment
	require.NoError(t, db.First(&ledger, payment.ID).Error)
	assert.Equal(t, models.FeePaymentApplied, ledger.Status)

	// Applying the same intent twice changes nothing.
	require.NoError(t, ApplyFeePayment(db, &payment))
	require.NoError(t, db.First(&saved, app.ID).Error)
	assert.Equal(t, "pi_apply_1", *saved.TransactionID)
}

func TestApplyFeePaymentRefusesSecondIntent(t *testing.T) {
	db := testutil.SetupTestDB(t)

	app := testutil.CreateApplication(t, db, "owner@example.com", models.ApplicationPending, models.FeeUnpaid)

	first := models.FeePayment{ApplicationID: app.ID, IntentID: "pi_first", Amount: 1000, Currency: "usd", Status: models.FeePaymentSucceeded}
	second := models.FeePayment{ApplicationID: app.ID, IntentID: "pi_second", Amount: 1000, Currency: "usd", Status: models.FeePaymentSucceeded}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	require.NoError(t, ApplyFeePayment(db, &first))
	err := ApplyFeePayment(db, &second)
	require.Error(t, err)

	// The losing row stays in the ledger for a human to look at.
	var ledger models.FeePayment
	require.NoError(t, db.First(&ledger, second.ID).Error)
	assert.Equal(t, models.FeePaymentSucceeded, ledger.Status)

	var saved models.LoanApplication
	require.NoError(t, db.First(&saved, app.ID).Error)
	require.NotNil(t, saved.TransactionID)
	assert.Equal(t, "pi_first", *saved.TransactionID)
}

func TestReconcileFeePaymentsDrainsStuckRows(t *testing.T) {
	db := testutil.SetupTestDB(t)

	stuckApp := testutil.CreateApplication(t, db, "stuck@example.com", models.ApplicationPending, models.FeeUnpaid)
	freshApp := testutil.CreateApplication(t, db, "fresh@example.com", models.ApplicationPending, models.FeeUnpaid)

	stuck := models.FeePayment{ApplicationID: stuckApp.ID, IntentID: "pi_stuck", Amount: 1000, Currency: "usd", Status: models.FeePaymentSucceeded}
	fresh := models.FeePayment{ApplicationID: freshApp.ID, IntentID: "pi_fresh", Amount: 1000, Currency: "usd", Status: models.FeePaymentSucceeded}
	require.NoError(t, db.Create(&stuck).Error)
	require.NoError(t, db.Create(&fresh).Error)

	// Backdate the stuck row past the reconciliation cutoff.
	old := time.Now().Add(-10 * time.Minute)
	require.NoError(t, db.Model(&models.FeePayment{}).
		Where("id = ?", stuck.ID).
		Update("updated_at", old).Error)

	ReconcileFeePayments()

	var stuckSaved models.LoanApplication
	require.NoError(t, db.First(&stuckSaved, stuckApp.ID).Error)
	assert.Equal(t, models.FeePaid, stuckSaved.ApplicationFeeStatus)

	var ledger models.FeePayment
	require.NoError(t, db.First(&ledger, stuck.ID).Error)
	assert.Equal(t, models.FeePaymentApplied, ledger.Status)

	// The fresh row is left for the in-flight request.
	var freshSaved models.LoanApplication
	require.NoError(t, db.First(&freshSaved, freshApp.ID).Error)
	assert.Equal(t, models.FeeUnpaid, freshSaved.ApplicationFeeStatus)

	var freshLedger models.FeePayment
	require.NoError(t, db.First(&freshLedger, fresh.ID).Error)
	assert.Equal(t, models.FeePaymentSucceeded, freshLedger.Status)
}

func TestApplyFeePaymentSkipsCancelledApplication(t *testing.T) {
	db := testutil.SetupTestDB(t)

	app := testutil.CreateApplication(t, db, "owner@example.com", models.ApplicationPending, models.FeeUnpaid)
	payment := models.FeePayment{
		ApplicationID: app.ID,
		IntentID:      "pi_cancelled",
		Amount:        1000,
		Currency:      "usd",
		Status:        models.FeePaymentSucceeded,
	}
	require.NoError(t, db.Create(&payment).Error)

	// Cancelled while the charge was in flight.
	require.NoError(t, db.Model(&models.LoanApplication{}).
		Where("id = ?", app.ID).
		Update("is_deleted", true).Error)

	err := ApplyFeePayment(db, &payment)
	require.Error(t, err)

	var saved models.LoanApplication
	require.NoError(t, db.First(&saved, app.ID).Error)
	assert.Equal(t, models.FeeUnpaid, saved.ApplicationFeeStatus)
	assert.Nil(t, saved.TransactionID)

	// The row stays in the ledger for manual review.
	var ledger models.FeePayment
	require.NoError(t, db.First(&ledger, payment.ID).Error)
	assert.Equal(t, models.FeePaymentSucceeded, ledger.Status)
}
