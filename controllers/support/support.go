package supportController

import (
	"log"
	"strconv"

	"loanlink/database"
	"loanlink/middleware"
	"loanlink/models"

	"github.com/gofiber/fiber/v2"
)

// Create stores a contact-form submission.
func Create(c *fiber.Ctx) error {
	reqData := new(struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	message := models.SupportMessage{
		Name:    reqData.Name,
		Email:   reqData.Email,
		Subject: reqData.Subject,
		Message: reqData.Message,
		Status:  models.SupportOpen,
	}

	if err := database.Database.Db.Create(&message).Error; err != nil {
		log.Printf("Error saving support message: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send your message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message received. We will get back to you soon.", nil)
}

// List returns support messages for the admin inbox.
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
	query := db.Model(&models.SupportMessage{}).Where("is_deleted = false")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var messages []models.SupportMessage
	if err := query.
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch messages!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Support messages.", fiber.Map{
		"messages": messages,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// UpdateStatus closes or reopens a support message.
func UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid message id!", nil)
	}

	reqData := new(struct {
		Status string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Status != models.SupportOpen && reqData.Status != models.SupportClosed {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid status!", nil)
	}

	var message models.SupportMessage
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false", id).
		First(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Message not found!", nil)
	}

	if err := database.Database.Db.Model(&message).Update("status", reqData.Status).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Message updated.", nil)
}
