package controllers

import (
	"github.com/gofiber/fiber/v2"

	"waypoint/database"
	"waypoint/middleware"
	courseModels "waypoint/models/course"
)

// CertificateWithCourse decorates a certificate with its course title.
type CertificateWithCourse struct {
	courseModels.Certificate
	CourseTitle string `json:"course_title"`
}

// GetUserCertificates gets all certificates for the current user.
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	db := database.Database.Db

	var certificates []courseModels.Certificate
	if err := db.Where("user_id = ?", userID).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		result[i] = CertificateWithCourse{Certificate: cert}
		var course courseModels.Course
		if err := db.Where("id = ?", cert.CourseID).First(&course).Error; err == nil {
			result[i].CourseTitle = course.Title
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}

// VerifyCertificate is the public verification page: anyone holding a code
// can confirm the certificate is valid. The holder's identity stays redacted.
func VerifyCertificate(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Verification code is required!", nil)
	}

	db := database.Database.Db

	var cert courseModels.Certificate
	if err := db.Where("verification_code = ?", code).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found.", nil)
	}

	courseTitle := ""
	var course courseModels.Course
	if err := db.Where("id = ?", cert.CourseID).First(&course).Error; err == nil {
		courseTitle = course.Title
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate is valid.", fiber.Map{
		"verification_code": cert.VerificationCode,
		"course_title":      courseTitle,
		"issued_at":         cert.IssuedAt,
	})
}
