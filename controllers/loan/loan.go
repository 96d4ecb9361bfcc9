package loanController

import (
	"log"
	"strconv"

	"loanlink/database"
	"loanlink/middleware"
	"loanlink/models"
	"loanlink/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type loanRequest struct {
	Title             string  `json:"title"`
	Category          string  `json:"category"`
	InterestRate      float64 `json:"interestRate"`
	MaxLimit          float64 `json:"maxLimit"`
	Description       string  `json:"description"`
	ImageURL          string  `json:"imageUrl"`
	DocumentsRequired string  `json:"documentsRequired"`
	ShowOnHome        bool    `json:"showOnHome"`
	Status            string  `json:"status"`
	EMIPlans          []struct {
		Duration int     `json:"duration"`
		Rate     float64 `json:"rate"`
	} `json:"emiPlans"`
}

// List returns the loan catalog with optional search/category/status
// filters and pagination.
func List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "12"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 12
	}
	offset := (page - 1) * limit

	db := database.Database.Db
	query := db.Model(&models.LoanProduct{}).Where("is_deleted = false")

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR category LIKE ?", like, like)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if c.Query("showOnHome") == "true" {
		query = query.Where("show_on_home = true")
	}

	var total int64
	query.Count(&total)

	var loans []models.LoanProduct
	if err := query.
		Preload("EMIPlans", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&loans).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch loans!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Loan list.", fiber.Map{
		"loans": loans,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// Stats summarizes the catalog for the home dashboard.
func Stats(c *fiber.Ctx) error {
	db := database.Database.Db

	var total, active int64
	db.Model(&models.LoanProduct{}).Where("is_deleted = false").Count(&total)
	db.Model(&models.LoanProduct{}).Where("is_deleted = false AND status = ?", models.LoanStatusActive).Count(&active)

	var avgInterest float64
	row := db.Model(&models.LoanProduct{}).
		Where("is_deleted = false").
		Select("COALESCE(AVG(interest_rate), 0)").
		Row()
	if err := row.Scan(&avgInterest); err != nil {
		log.Printf("Error computing average interest: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Loan stats.", fiber.Map{
		"total":           total,
		"active":          active,
		"averageInterest": avgInterest,
	})
}

// Get returns one loan product with its EMI plans in entry order.
func Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid loan id!", nil)
	}

	var loan models.LoanProduct
	if err := database.Database.Db.
		Preload("EMIPlans", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("id = ? AND is_deleted = false", id).
		First(&loan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Loan not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Loan details.", loan)
}

// EMISchedule computes the monthly payment per plan for a requested
// principal, defaulting to the product's maximum limit.
func EMISchedule(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid loan id!", nil)
	}

	var loan models.LoanProduct
	if err := database.Database.Db.
		Preload("EMIPlans", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("id = ? AND is_deleted = false", id).
		First(&loan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Loan not found!", nil)
	}

	amount := loan.MaxLimit
	if q := c.Query("amount"); q != "" {
		parsed, err := strconv.ParseFloat(q, 64)
		if err != nil || parsed <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid amount!", nil)
		}
		if parsed > loan.MaxLimit {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Amount exceeds the loan's maximum limit!", nil)
		}
		amount = parsed
	}

	type planPayment struct {
		Duration       int     `json:"duration"`
		Rate           float64 `json:"rate"`
		MonthlyPayment float64 `json:"monthlyPayment"`
		TotalPayable   float64 `json:"totalPayable"`
	}

	schedule := make([]planPayment, 0, len(loan.EMIPlans))
	for _, plan := range loan.EMIPlans {
		schedule = append(schedule, planPayment{
			Duration:       plan.DurationMonths,
			Rate:           plan.Rate,
			MonthlyPayment: utils.MonthlyPayment(amount, plan.Rate, plan.DurationMonths),
			TotalPayable:   utils.TotalPayable(amount, plan.Rate, plan.DurationMonths),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "EMI schedule.", fiber.Map{
		"amount":   amount,
		"schedule": schedule,
	})
}

// Create publishes a new loan product.
func Create(c *fiber.Ctx) error {
	var reqData loanRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	status := reqData.Status
	if status == "" {
		status = models.LoanStatusActive
	}

	loan := models.LoanProduct{
		Title:             reqData.Title,
		Category:          reqData.Category,
		InterestRate:      reqData.InterestRate,
		MaxLimit:          reqData.MaxLimit,
		Description:       reqData.Description,
		ImageURL:          reqData.ImageURL,
		DocumentsRequired: reqData.DocumentsRequired,
		ShowOnHome:        reqData.ShowOnHome,
		Status:            status,
	}
	for i, p := range reqData.EMIPlans {
		loan.EMIPlans = append(loan.EMIPlans, models.EMIPlan{
			Position:       i,
			DurationMonths: p.Duration,
			Rate:           p.Rate,
		})
	}

	if err := database.Database.Db.Create(&loan).Error; err != nil {
		log.Printf("Error saving loan product: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish loan product!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Loan product published.", loan)
}

// Update edits a loan product and replaces its EMI plans atomically.
func Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid loan id!", nil)
	}

	var reqData loanRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var loan models.LoanProduct
	if err := db.Where("id = ? AND is_deleted = false", id).First(&loan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Loan not found!", nil)
	}

	status := reqData.Status
	if status == "" {
		status = loan.Status
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"title":              reqData.Title,
			"category":           reqData.Category,
			"interest_rate":      reqData.InterestRate,
			"max_limit":          reqData.MaxLimit,
			"description":        reqData.Description,
			"image_url":          reqData.ImageURL,
			"documents_required": reqData.DocumentsRequired,
			"show_on_home":       reqData.ShowOnHome,
			"status":             status,
		}
		if err := tx.Model(&loan).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("loan_id = ?", loan.ID).Delete(&models.EMIPlan{}).Error; err != nil {
			return err
		}
		for i, p := range reqData.EMIPlans {
			plan := models.EMIPlan{
				LoanID:         loan.ID,
				Position:       i,
				DurationMonths: p.Duration,
				Rate:           p.Rate,
			}
			if err := tx.Create(&plan).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error updating loan product %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update loan product!", nil)
	}

	db.Preload("EMIPlans", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).First(&loan, loan.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Loan product updated.", loan)
}

// Delete removes a loan product from the catalog.
func Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid loan id!", nil)
	}

	var loan models.LoanProduct
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", id).First(&loan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Loan not found!", nil)
	}

	if err := database.Database.Db.Model(&loan).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete loan product!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Loan product deleted.", nil)
}
