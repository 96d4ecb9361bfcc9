package applicationValidator

import (
	"loanlink/middleware"
	"loanlink/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// applyForm mirrors the application form. Numeric fields must parse and
// be positive; everything except extraNotes is required.
type applyForm struct {
	FirstName     string  `json:"firstName" validate:"required,min=1,max=100"`
	LastName      string  `json:"lastName" validate:"required,min=1,max=100"`
	LoanTitle     string  `json:"loanTitle" validate:"required"`
	Category      string  `json:"category" validate:"required"`
	LoanAmount    float64 `json:"loanAmount" validate:"required,gt=0"`
	MonthlyIncome float64 `json:"monthlyIncome" validate:"required,gt=0"`
	IncomeSource  string  `json:"incomeSource" validate:"required"`
	NationalID    string  `json:"nationalId" validate:"required"`
	ContactNumber string  `json:"contactNumber" validate:"required,min=7,max=20"`
	Address       string  `json:"address" validate:"required"`
	LoanReason    string  `json:"loanReason" validate:"required"`
	ExtraNotes    string  `json:"extraNotes" validate:"max=2000"`
}

// jsonNames maps struct fields back to their wire names for per-field
// error reporting.
var jsonNames = map[string]string{
	"FirstName":     "firstName",
	"LastName":      "lastName",
	"LoanTitle":     "loanTitle",
	"Category":      "category",
	"LoanAmount":    "loanAmount",
	"MonthlyIncome": "monthlyIncome",
	"IncomeSource":  "incomeSource",
	"NationalID":    "nationalId",
	"ContactNumber": "contactNumber",
	"Address":       "address",
	"LoanReason":    "loanReason",
	"ExtraNotes":    "extraNotes",
}

// Apply validates a loan-application submission field by field.
func Apply() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form applyForm
		if err := c.BodyParser(&form); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(&form); err != nil {
			errors := make(map[string]string)
			if ve, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range ve {
					name := jsonNames[fe.Field()]
					if name == "" {
						name = fe.Field()
					}
					switch fe.Tag() {
					case "required":
						errors[name] = "This field is required!"
					case "gt":
						errors[name] = "Must be a positive number!"
					case "min":
						errors[name] = "Too short!"
					case "max":
						errors[name] = "Too long!"
					default:
						errors[name] = "Invalid value!"
					}
				}
			} else {
				errors["body"] = "Invalid request body!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// StatusPatch validates a reviewer's decision.
func StatusPatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status string `json:"status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Status != models.ApplicationApproved && reqData.Status != models.ApplicationRejected {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be approved or rejected!",
			})
		}

		return c.Next()
	}
}
