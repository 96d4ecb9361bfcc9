package middleware

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"loanlink/config"
	"loanlink/database"
	"loanlink/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ErrAccountSuspended marks a principal whose record exists but whose
// access has been revoked. A suspended account must lose access on its
// next request, not when its token expires.
var ErrAccountSuspended = errors.New("account suspended")

var roleFlight singleflight.Group

// lookupRole resolves a role from the cache, then the database. Swappable
// for tests.
var lookupRole = func(email string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if database.Redis != nil {
		if role, err := database.Redis.Get(ctx, roleCacheKey(email)).Result(); err == nil && role != "" {
			return role, nil
		}
	}

	var user models.User
	if err := database.Database.Db.
		Where("email = ? AND is_deleted = false", email).
		First(&user).Error; err != nil {
		return "", err
	}

	if user.Status == models.UserStatusSuspended {
		return "", ErrAccountSuspended
	}

	// Only active roles are cached; suspension invalidates the entry.
	if database.Redis != nil {
		ttl := time.Duration(config.AppConfig.RoleCacheTTLSecond) * time.Second
		if err := database.Redis.Set(ctx, roleCacheKey(email), user.Role, ttl).Err(); err != nil {
			log.Printf("Failed to cache role for %s: %v", email, err)
		}
	}

	return user.Role, nil
}

func roleCacheKey(email string) string {
	return "role:" + strings.ToLower(email)
}

// ResolveRole returns the role assigned to an email. Concurrent lookups
// for the same email collapse to a single underlying query.
func ResolveRole(email string) (string, error) {
	email = strings.ToLower(email)
	v, err, _ := roleFlight.Do(email, func() (interface{}, error) {
		return lookupRole(email)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// InvalidateRole drops the cached role after a role change, suspension
// or deletion.
func InvalidateRole(email string) {
	if database.Redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := database.Redis.Del(ctx, roleCacheKey(email)).Err(); err != nil {
		log.Printf("Failed to invalidate role cache for %s: %v", email, err)
	}
}

// accountRole resolves the requester's role, reusing an earlier
// resolution on the same request. An empty role means the refusal has
// already been written; the handler returns resp as-is.
func accountRole(c *fiber.Ctx) (role string, resp error) {
	if role, ok := c.Locals("role").(string); ok && role != "" {
		return role, nil
	}

	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return "", JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	role, err := ResolveRole(email)
	switch {
	case err == gorm.ErrRecordNotFound:
		return "", JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	case err == ErrAccountSuspended:
		return "", JsonResponse(c, fiber.StatusForbidden, false, "Your account has been suspended!", nil)
	case err != nil:
		return "", JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
	}

	c.Locals("role", role)
	return role, nil
}

// ActiveAccount admits any signed-in principal whose record still
// resolves to an active user. Routes without a role restriction still
// need this gate so suspension and deletion cut off live tokens instead
// of waiting out the 24h expiry.
func ActiveAccount(c *fiber.Ctx) error {
	role, resp := accountRole(c)
	if role == "" {
		return resp
	}
	return c.Next()
}

// RequireRole returns a middleware that admits only active principals
// whose resolved role is in the allowed set. An unknown role never
// grants access.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, resp := accountRole(c)
		if role == "" {
			return resp
		}

		for _, a := range allowed {
			if role == a {
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}
