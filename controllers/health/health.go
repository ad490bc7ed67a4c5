package healthController

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"waypoint/cache"
	"waypoint/config"
	"waypoint/database"
	"waypoint/middleware"
	"waypoint/models"
	courseModels "waypoint/models/course"
	"waypoint/utils"
)

// Status reports whether the backend is reachable and configured. It is the
// probe the frontend and uptime checks poll, so it never requires auth.
func Status(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"app":               config.AppConfig.AppName,
		"backendConfigured": config.BackendConfigured(),
		"hasServiceKey":     config.HasServiceKey(),
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
	})
}

// ExportCSV streams an admin data export as a CSV attachment. Supported
// types: enrollments, checkins, attendance.
func ExportCSV(c *fiber.Ctx) error {
	exportType := c.Params("type")

	if !config.BackendConfigured() {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": "Backend not configured"})
	}

	db := database.Database.Db
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	switch exportType {
	case "enrollments":
		w.Write([]string{"enrollment_id", "user_id", "course_id", "status", "grade", "cohort_label", "enrolled_at"})
		var rows []courseModels.Enrollment
		if err := db.Order("id asc").Find(&rows).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Export failed"})
		}
		for _, row := range rows {
			grade := ""
			if row.Grade != nil {
				grade = strconv.FormatFloat(*row.Grade, 'f', 2, 64)
			}
			w.Write([]string{
				strconv.FormatUint(uint64(row.ID), 10),
				strconv.FormatUint(uint64(row.UserID), 10),
				strconv.FormatUint(uint64(row.CourseID), 10),
				row.Status,
				grade,
				row.CohortLabel,
				row.EnrolledAt.UTC().Format(time.RFC3339),
			})
		}
	case "checkins":
		w.Write([]string{"checkin_id", "user_id", "course_id", "week_start_date", "submitted_at"})
		var rows []courseModels.CheckIn
		if err := db.Order("id asc").Find(&rows).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Export failed"})
		}
		for _, row := range rows {
			w.Write([]string{
				strconv.FormatUint(uint64(row.ID), 10),
				strconv.FormatUint(uint64(row.UserID), 10),
				strconv.FormatUint(uint64(row.CourseID), 10),
				row.WeekStartDate,
				row.SubmittedAt.UTC().Format(time.RFC3339),
			})
		}
	case "attendance":
		w.Write([]string{"attendance_id", "session_id", "user_id", "status", "marked_at"})
		var rows []courseModels.Attendance
		if err := db.Order("id asc").Find(&rows).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Export failed"})
		}
		for _, row := range rows {
			markedAt := ""
			if row.MarkedAt != nil {
				markedAt = row.MarkedAt.UTC().Format(time.RFC3339)
			}
			w.Write([]string{
				strconv.FormatUint(uint64(row.ID), 10),
				strconv.FormatUint(uint64(row.SessionID), 10),
				strconv.FormatUint(uint64(row.UserID), 10),
				row.Status,
				markedAt,
			})
		}
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown export type"})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Export failed"})
	}

	filename := fmt.Sprintf("%s-%s.csv", exportType, time.Now().UTC().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

// IssueCertificate mints a certificate for a completed enrollment. The route
// sits behind the service key, not a user role: issuance is triggered by
// trusted automation, and the caller's identity is the key itself.
func IssueCertificate(c *fiber.Ctx) error {
	reqData := new(struct {
		UserID   uint `json:"user_id"`
		CourseID uint `json:"course_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.UserID == 0 || reqData.CourseID == 0 {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"user_id":   "User id is required!",
			"course_id": "Course id is required!",
		})
	}

	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND status = ?",
		reqData.UserID, reqData.CourseID, courseModels.EnrollmentCompleted).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Enrollment is not completed.", nil)
	}

	var existing courseModels.Certificate
	if err := db.Where("user_id = ? AND course_id = ?", reqData.UserID, reqData.CourseID).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued.", existing)
	}

	cert := courseModels.Certificate{
		UserID:           reqData.UserID,
		CourseID:         reqData.CourseID,
		VerificationCode: uuid.NewString(),
		IssuedAt:         time.Now(),
	}
	if err := db.Create(&cert).Error; err != nil {
		log.Printf("Unable to issue certificate for user %d course %d: %v", reqData.UserID, reqData.CourseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not issue the certificate.", nil)
	}

	event := models.AuditEvent{
		Action: "certificate.issued",
		Target: fmt.Sprintf("user:%d course:%d", reqData.UserID, reqData.CourseID),
	}
	if err := db.Create(&event).Error; err != nil {
		log.Printf("Unable to record audit event certificate.issued: %v", err)
	}

	var user models.User
	var course courseModels.Course
	if db.Where("id = ?", reqData.UserID).First(&user).Error == nil &&
		db.Where("id = ?", reqData.CourseID).First(&course).Error == nil {
		go utils.SendCertificateEmail(user.Email, user.Name, course.Title, cert.VerificationCode)
	}

	cache.Invalidate("dashboard", "certificates")

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued.", cert)
}
