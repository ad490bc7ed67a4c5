package adminValidator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"waypoint/lms"
	"waypoint/middleware"
)

var validate = validator.New()

type CourseTemplatePayload struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Weeks       int      `json:"weeks" validate:"omitempty,min=1,max=52"`
	Components  []string `json:"components" validate:"omitempty,dive,oneof=overview lesson discussion quiz assignment"`
}

type AssignRolePayload struct {
	UserID uint   `json:"user_id" validate:"required"`
	Role   string `json:"role" validate:"required"`
}

// GradePayload carries no validate tags: the handler clamps the value into
// [0,100], and a range tag here would reject the inputs the clamp exists for.
type GradePayload struct {
	Grade float64 `json:"grade"`
}

func CreateCourseTemplate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseTemplatePayload)

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

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title is required!"})
		}

		c.Locals("validatedTemplate", reqData)
		return c.Next()
	}
}

func AssignRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AssignRolePayload)

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

		slug, ok := lms.NormalizeRole(reqData.Role)
		if !ok {
			return middleware.ValidationErrorResponse(c, map[string]string{"role": "Role must be admin, instructor, student, or applicant!"})
		}
		reqData.Role = string(slug)

		c.Locals("validatedAssignRole", reqData)
		return c.Next()
	}
}

func UpdateGrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(GradePayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedGrade", reqData)
		return c.Next()
	}
}
