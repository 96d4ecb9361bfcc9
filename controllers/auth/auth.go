package authController

import (
	"log"
	"strings"
	"time"

	"loanlink/database"
	"loanlink/middleware"
	"loanlink/models"
	"loanlink/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// IssueToken exchanges an identity-provider sign-in for a portal session.
// The user record is upserted by email before the token is issued so
// dependent screens never see a missing role.
func IssueToken(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedToken").(*struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		PhotoURL string `json:"photoURL"`
		IDToken  string `json:"idToken"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	email := strings.ToLower(reqData.Email)

	// Verify the provider token when verification is configured. The
	// verified email wins over whatever the body claims.
	if utils.FirebaseAuth != nil {
		verifiedEmail, err := utils.VerifyFirebaseToken(c.Context(), reqData.IDToken)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Identity verification failed!", nil)
		}
		if verifiedEmail != email {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Token does not match the supplied email!", nil)
		}
	} else {
		log.Printf("Issuing unverified session for %s (Firebase verification disabled)", email)
	}

	db := database.Database.Db

	var user models.User
	err := db.Where("email = ? AND is_deleted = false", email).First(&user).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		user = models.User{
			Email:       email,
			Name:        reqData.Name,
			PhotoURL:    reqData.PhotoURL,
			Role:        models.RoleBorrower,
			Status:      models.UserStatusActive,
			LastLoginAt: time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Error saving user to database: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
		}
	case err != nil:
		log.Printf("Error looking up user %s: %v", email, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	default:
		if user.Status == models.UserStatusSuspended {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Your account has been suspended!", nil)
		}
		updates := map[string]interface{}{"last_login_at": time.Now()}
		if reqData.Name != "" {
			updates["name"] = reqData.Name
		}
		if reqData.PhotoURL != "" {
			updates["photo_url"] = reqData.PhotoURL
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			log.Printf("Error refreshing profile for %s: %v", email, err)
		}
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session established.", fiber.Map{
		"token": token,
		"user": fiber.Map{
			"email":    user.Email,
			"name":     user.Name,
			"photoURL": user.PhotoURL,
			"role":     user.Role,
		},
	})
}

// Logout clears the session cookie.
func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged out.", nil)
}

// GetRole resolves the role assigned to an email. Borrowers may only ask
// about themselves; managers and admins may look anyone up.
func GetRole(c *fiber.Ctx) error {
	requester, _ := c.Locals("email").(string)
	target := strings.ToLower(c.Params("email"))

	if requester != target {
		role, err := middleware.ResolveRole(requester)
		if err != nil || (role != models.RoleAdmin && role != models.RoleManager) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}
	}

	role, err := middleware.ResolveRole(target)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		if err == middleware.ErrAccountSuspended {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This account has been suspended!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role resolved.", fiber.Map{"role": role})
}
