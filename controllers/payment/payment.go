package paymentController

import (
	"log"
	"strconv"

	"loanlink/config"
	"loanlink/database"
	"loanlink/middleware"
	"loanlink/models"
	"loanlink/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateIntent creates a processor payment intent for the fixed
// processing fee of one application and records it in the ledger.
func CreateIntent(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)

	reqData := new(struct {
		ApplicationID uint `json:"applicationId"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if utils.Stripe == nil {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Payments are not available right now!", nil)
	}

	var application models.LoanApplication
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false", reqData.ApplicationID).
		First(&application).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Application not found!", nil)
	}

	if application.ApplicantEmail != email {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only pay the fee of your own application!", nil)
	}
	if application.ApplicationFeeStatus == models.FeePaid {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Processing fee has already been paid!", nil)
	}
	if application.Status != models.ApplicationPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Application is no longer awaiting payment!", nil)
	}

	amount := int64(config.AppConfig.ApplicationFee)
	currency := config.AppConfig.FeeCurrency

	intent, err := utils.Stripe.CreatePaymentIntent(amount, currency, application.Ref)
	if err != nil {
		log.Printf("Error creating payment intent for application %d: %v", application.ID, err)
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment initialization failed!", nil)
	}

	payment := models.FeePayment{
		ApplicationID: application.ID,
		IntentID:      intent.ID,
		Amount:        amount,
		Currency:      currency,
		Status:        models.FeePaymentCreated,
	}
	if err := database.Database.Db.Create(&payment).Error; err != nil {
		log.Printf("Error recording payment intent %s: %v", intent.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record payment intent!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment intent created.", fiber.Map{
		"clientSecret": intent.ClientSecret,
		"amount":       amount,
		"currency":     currency,
	})
}

// ConfirmFeePayment marks an application's fee paid after the processor
// confirms the charge. Replaying the same transaction id is a no-op; a
// different transaction id against a paid application is rejected. A
// confirmed charge whose record patch fails stays in the ledger for the
// reconciliation job - it is never silently dropped.
func ConfirmFeePayment(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid application id!", nil)
	}

	reqData := new(struct {
		TransactionID string `json:"transactionId"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var application models.LoanApplication
	if err := db.Where("id = ? AND is_deleted = false", id).First(&application).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Application not found!", nil)
	}

	if application.ApplicantEmail != email {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only pay the fee of your own application!", nil)
	}

	// Idempotency: a replay of the recorded transaction succeeds without
	// touching anything; a different transaction is refused.
	if application.ApplicationFeeStatus == models.FeePaid {
		if application.TransactionID != nil && *application.TransactionID == reqData.TransactionID {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Processing fee already recorded.", application)
		}
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Processing fee has already been paid with a different transaction!", nil)
	}

	if utils.Stripe == nil {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Payments are not available right now!", nil)
	}

	// Never trust the client's word that money moved.
	intent, err := utils.Stripe.GetPaymentIntent(reqData.TransactionID)
	if err != nil {
		log.Printf("Error verifying payment intent %s: %v", reqData.TransactionID, err)
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment verification failed!", nil)
	}
	if intent.Status != "succeeded" {
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment has not succeeded!", nil)
	}
	// An intent minted outside CreateIntent carries no ref and can never
	// satisfy confirmation.
	if ref, ok := intent.Metadata["application_ref"]; !ok || ref != application.Ref {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Payment belongs to a different application!", nil)
	}

	// The charge is real: pin it in the ledger before touching the
	// application so a failure past this point is recoverable.
	var payment models.FeePayment
	err = db.Where("intent_id = ?", intent.ID).First(&payment).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		payment = models.FeePayment{
			ApplicationID: application.ID,
			IntentID:      intent.ID,
			Amount:        intent.Amount,
			Currency:      intent.Currency,
			Status:        models.FeePaymentSucceeded,
		}
		if err := db.Create(&payment).Error; err != nil {
			log.Printf("Error recording confirmed payment %s: %v", intent.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record payment!", nil)
		}
	case err != nil:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record payment!", nil)
	default:
		if err := db.Model(&payment).Update("status", models.FeePaymentSucceeded).Error; err != nil {
			log.Printf("Error marking payment %s succeeded: %v", intent.ID, err)
		}
	}

	if err := utils.ApplyFeePayment(db, &payment); err != nil {
		// Money moved but the record did not. The ledger row stays
		// "succeeded" and the reconciler will retry it.
		log.Printf("Confirmed payment %s not applied to application %d, left for reconciliation: %v",
			intent.ID, application.ID, err)
		return middleware.JsonResponse(c, fiber.StatusAccepted, true,
			"Payment received. Your application will reflect it shortly.", nil)
	}

	db.First(&application, application.ID)

	go utils.SendPaymentReceiptEmail(
		application.ApplicantEmail,
		application.FirstName+" "+application.LastName,
		application.LoanTitle,
		intent.ID,
		payment.Amount,
	)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment successful.", application)
}
