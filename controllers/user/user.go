package userController

import (
	"log"
	"strconv"
	"strings"

	"loanlink/config"
	"loanlink/database"
	"loanlink/middleware"
	"loanlink/models"

	"github.com/gofiber/fiber/v2"
)

// isPrimaryAdmin guards the reserved account whose role can never change
// and whose record can never be suspended or deleted.
func isPrimaryAdmin(email string) bool {
	return strings.EqualFold(email, config.AppConfig.AdminEmail)
}

// List returns all user records for the admin dashboard.
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

	var users []models.User
	var total int64

	if err := db.
		Where("is_deleted = false").
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}

	db.Model(&models.User{}).Where("is_deleted = false").Count(&total)

	type userRow struct {
		models.User
		PrimaryAdmin bool `json:"primaryAdmin"`
	}
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow{User: u, PrimaryAdmin: isPrimaryAdmin(u.Email)})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User list.", fiber.Map{
		"users": rows,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// UpdateRole changes a user's role. The primary admin is immutable.
func UpdateRole(c *fiber.Ctx) error {
	target := strings.ToLower(c.Params("email"))

	reqData := new(struct {
		Role string `json:"role"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if isPrimaryAdmin(target) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "The primary admin account cannot be modified!", nil)
	}

	var user models.User
	if err := database.Database.Db.
		Where("email = ? AND is_deleted = false", target).
		First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("role", reqData.Role).Error; err != nil {
		log.Printf("Error updating role for %s: %v", target, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	middleware.InvalidateRole(target)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated.", fiber.Map{
		"email": user.Email,
		"role":  reqData.Role,
	})
}

// UpdateStatus suspends or reactivates a user account.
func UpdateStatus(c *fiber.Ctx) error {
	target := strings.ToLower(c.Params("email"))

	reqData := new(struct {
		Status string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if isPrimaryAdmin(target) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "The primary admin account cannot be modified!", nil)
	}

	var user models.User
	if err := database.Database.Db.
		Where("email = ? AND is_deleted = false", target).
		First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("status", reqData.Status).Error; err != nil {
		log.Printf("Error updating status for %s: %v", target, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update status!", nil)
	}

	middleware.InvalidateRole(target)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Status updated.", fiber.Map{
		"email":  user.Email,
		"status": reqData.Status,
	})
}

// Delete removes a user record. The primary admin is non-deletable.
func Delete(c *fiber.Ctx) error {
	target := strings.ToLower(c.Params("email"))

	if isPrimaryAdmin(target) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "The primary admin account cannot be deleted!", nil)
	}

	var user models.User
	if err := database.Database.Db.
		Where("email = ? AND is_deleted = false", target).
		First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	middleware.InvalidateRole(target)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted.", nil)
}
