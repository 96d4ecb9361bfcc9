package loanValidator

import (
	"strings"

	"loanlink/middleware"
	"loanlink/models"

	"github.com/gofiber/fiber/v2"
)

// SaveLoan validates the create/update payload for a loan product.
func SaveLoan() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string  `json:"title"`
			Category     string  `json:"category"`
			InterestRate float64 `json:"interestRate"`
			MaxLimit     float64 `json:"maxLimit"`
			Description  string  `json:"description"`
			Status       string  `json:"status"`
			EMIPlans     []struct {
				Duration int     `json:"duration"`
				Rate     float64 `json:"rate"`
			} `json:"emiPlans"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if strings.TrimSpace(reqData.Category) == "" {
			errors["category"] = "Category is required!"
		}
		if reqData.InterestRate <= 0 || reqData.InterestRate > 100 {
			errors["interestRate"] = "Interest rate must be between 0 and 100 percent!"
		}
		if reqData.MaxLimit <= 0 {
			errors["maxLimit"] = "Maximum limit must be a positive amount!"
		}
		if reqData.Status != "" && reqData.Status != models.LoanStatusActive && reqData.Status != models.LoanStatusInactive {
			errors["status"] = "Status must be active or inactive!"
		}
		for _, plan := range reqData.EMIPlans {
			if plan.Duration <= 0 || plan.Duration > 360 {
				errors["emiPlans"] = "Plan durations must be between 1 and 360 months!"
				break
			}
			if plan.Rate <= 0 || plan.Rate > 100 {
				errors["emiPlans"] = "Plan rates must be between 0 and 100 percent!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
