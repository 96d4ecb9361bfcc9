package applicationController

import (
	"log"
	"strconv"
	"strings"
	"time"

	"loanlink/database"
	"loanlink/middleware"
	"loanlink/models"
	"loanlink/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type applyRequest struct {
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	LoanTitle     string  `json:"loanTitle"`
	Category      string  `json:"category"`
	LoanAmount    float64 `json:"loanAmount"`
	MonthlyIncome float64 `json:"monthlyIncome"`
	IncomeSource  string  `json:"incomeSource"`
	NationalID    string  `json:"nationalId"`
	ContactNumber string  `json:"contactNumber"`
	Address       string  `json:"address"`
	LoanReason    string  `json:"loanReason"`
	ExtraNotes    string  `json:"extraNotes"`
}

// isReviewer reports whether the requester may act on other people's
// applications.
func isReviewer(email string) bool {
	role, err := middleware.ResolveRole(email)
	if err != nil {
		return false
	}
	return role == models.RoleManager || role == models.RoleAdmin
}

// Apply submits a new loan application for the authenticated borrower.
// The applicant email always comes from the session, never the body.
func Apply(c *fiber.Ctx) error {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var reqData applyRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	application := models.LoanApplication{
		Ref:                  uuid.NewString(),
		ApplicantEmail:       email,
		FirstName:            reqData.FirstName,
		LastName:             reqData.LastName,
		LoanTitle:            reqData.LoanTitle,
		Category:             reqData.Category,
		LoanAmount:           reqData.LoanAmount,
		MonthlyIncome:        reqData.MonthlyIncome,
		IncomeSource:         reqData.IncomeSource,
		NationalID:           reqData.NationalID,
		ContactNumber:        reqData.ContactNumber,
		Address:              reqData.Address,
		LoanReason:           reqData.LoanReason,
		ExtraNotes:           reqData.ExtraNotes,
		Status:               models.ApplicationPending,
		ApplicationFeeStatus: models.FeeUnpaid,
	}

	if err := database.Database.Db.Create(&application).Error; err != nil {
		log.Printf("Error saving loan application: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit application!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Application submitted.", application)
}

// List returns all applications for review, newest first.
func List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db
	query := db.Model(&models.LoanApplication{}).Where("is_deleted = false")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if feeStatus := c.Query("feeStatus"); feeStatus != "" {
		query = query.Where("application_fee_status = ?", feeStatus)
	}

	var total int64
	query.Count(&total)

	var applications []models.LoanApplication
	if err := query.
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&applications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch applications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application list.", fiber.Map{
		"applications": applications,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// Get returns a single application to its owner or a reviewer.
func Get(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid application id!", nil)
	}

	var application models.LoanApplication
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false", id).
		First(&application).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Application not found!", nil)
	}

	if application.ApplicantEmail != email && !isReviewer(email) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application details.", application)
}

// ListByUser returns one borrower's applications. Borrowers may only see
// their own.
func ListByUser(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	target := strings.ToLower(c.Params("email"))

	if email != target && !isReviewer(email) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}

	var applications []models.LoanApplication
	if err := database.Database.Db.
		Where("applicant_email = ? AND is_deleted = false", target).
		Order("created_at desc").
		Find(&applications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch applications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Your applications.", applications)
}

// UpdateStatus approves or rejects a pending application. Terminal
// states never change again; a reviewer who lost the race gets the
// server's current state back.
func UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid application id!", nil)
	}

	reqData := new(struct {
		Status string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var application models.LoanApplication
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false", id).
		First(&application).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Application not found!", nil)
	}

	if models.TerminalApplicationStatus(application.Status) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Application has already been decided!", application)
	}

	updates := map[string]interface{}{"status": reqData.Status}
	if reqData.Status == models.ApplicationApproved {
		now := time.Now()
		updates["approved_at"] = &now
	}

	if err := database.Database.Db.Model(&application).Updates(updates).Error; err != nil {
		log.Printf("Error updating application %d status: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update application!", nil)
	}

	go utils.SendApplicationDecisionEmail(
		application.ApplicantEmail,
		application.FirstName+" "+application.LastName,
		application.LoanTitle,
		reqData.Status,
		application.ApplicationFeeStatus == models.FeePaid,
	)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application "+reqData.Status+".", application)
}

// Cancel lets a borrower withdraw their own application. Only a pending,
// unpaid application can be cancelled, and the step is irreversible.
func Cancel(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid application id!", nil)
	}

	var application models.LoanApplication
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false", id).
		First(&application).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Application not found!", nil)
	}

	if application.ApplicantEmail != email {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only cancel your own application!", nil)
	}
	if application.Status != models.ApplicationPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only pending applications can be cancelled!", nil)
	}
	if application.ApplicationFeeStatus == models.FeePaid {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Applications with a paid processing fee can no longer be cancelled!", nil)
	}

	if err := database.Database.Db.Model(&application).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel application!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application cancelled.", nil)
}
