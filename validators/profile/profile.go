package profileValidator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"waypoint/middleware"
)

var validate = validator.New()

type ProfilePayload struct {
	DisplayName         string `json:"display_name" validate:"omitempty,max=120"`
	FirstName           string `json:"first_name" validate:"omitempty,max=80"`
	LastName            string `json:"last_name" validate:"omitempty,max=80"`
	Email               string `json:"email" validate:"omitempty,email"`
	Phone               string `json:"phone" validate:"omitempty,max=30"`
	MailingAddressLine1 string `json:"mailing_address_line1" validate:"omitempty,max=200"`
	MailingAddressLine2 string `json:"mailing_address_line2" validate:"omitempty,max=200"`
	MailingCity         string `json:"mailing_city" validate:"omitempty,max=100"`
	MailingState        string `json:"mailing_state" validate:"omitempty,max=100"`
	MailingPostalCode   string `json:"mailing_postal_code" validate:"omitempty,max=20"`
	MailingCountry      string `json:"mailing_country" validate:"omitempty,max=100"`
	AcademicBio         string `json:"academic_bio" validate:"omitempty,max=5000"`
}

type AccountPayload struct {
	Name     string `json:"name" validate:"omitempty,max=120"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

func SaveProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProfilePayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[strings.ToLower(fieldErr.Field())] = "Invalid value for " + fieldErr.Field() + "!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.Email = strings.TrimSpace(strings.ToLower(reqData.Email))
		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}

func UpdateAccount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AccountPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[strings.ToLower(fieldErr.Field())] = "Invalid value for " + fieldErr.Field() + "!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.Email = strings.TrimSpace(strings.ToLower(reqData.Email))
		c.Locals("validatedAccount", reqData)
		return c.Next()
	}
}
