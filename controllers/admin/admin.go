package adminController

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"waypoint/cache"
	"waypoint/database"
	"waypoint/lms"
	"waypoint/middleware"
	"waypoint/models"
	courseModels "waypoint/models/course"
	"waypoint/utils"
	adminValidator "waypoint/validators/admin"
)

func recordAudit(db *gorm.DB, actor *uint, action, target string) {
	event := models.AuditEvent{Actor: actor, Action: action, Target: target}
	if err := db.Create(&event).Error; err != nil {
		log.Printf("Unable to record audit event %s: %v", action, err)
	}
}

// CreateCourseTemplate runs the course scaffolding saga and maps each of its
// three outcomes to a distinct response. A partial creation is a success with
// a warning: the course exists and the operator finishes the structure by hand.
func CreateCourseTemplate(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedTemplate").(*adminValidator.CourseTemplatePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	components := make([]lms.TemplateComponent, 0, len(reqData.Components))
	for _, value := range reqData.Components {
		for _, component := range lms.TemplateComponents {
			if component.Value == value {
				components = append(components, component)
				break
			}
		}
	}
	if len(components) == 0 {
		components = lms.TemplateComponents
	}

	db := database.Database.Db
	result := lms.BuildCourseTemplate(db, reqData.Title, reqData.Description, reqData.Weeks, components)

	switch result.Outcome {
	case lms.TemplateCreated:
		recordAudit(db, &userID, "course_template.created", result.Course.Slug)
		cache.Invalidate("courses")
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course template created.", fiber.Map{
			"course":          result.Course,
			"completed_weeks": result.CompletedWeeks,
		})
	case lms.TemplatePartiallyCreated:
		log.Printf("Course template %s stopped after week %d: %v", result.Course.Slug, result.CompletedWeeks, result.Err)
		recordAudit(db, &userID, "course_template.partial", result.Course.Slug)
		cache.Invalidate("courses")
		return middleware.JsonResponse(c, fiber.StatusCreated, true,
			fmt.Sprintf("Course created, but scaffolding stopped after week %d. Finish the remaining weeks manually.", result.CompletedWeeks),
			fiber.Map{
				"course":          result.Course,
				"completed_weeks": result.CompletedWeeks,
				"partial":         true,
			})
	default:
		log.Printf("Course template creation failed: %v", result.Err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not create the course.", nil)
	}
}

// AssignRole grants a role to a user. The legacy single-column role and the
// assignment table are kept in step so both read paths agree.
func AssignRole(c *fiber.Ctx) error {
	actorID, _ := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedAssignRole").(*adminValidator.AssignRolePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", reqData.UserID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var role models.Role
	if err := db.Where("slug = ?", reqData.Role).First(&role).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Role not found!", nil)
	}

	var profile models.Profile
	err := db.Where("user_id = ?", user.ID).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		profile = models.Profile{UserID: user.ID, DisplayName: user.Name, Email: user.Email}
		if err := db.Create(&profile).Error; err != nil {
			log.Printf("Unable to create profile for user %d: %v", user.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not assign the role.", nil)
		}
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not assign the role.", nil)
	}

	now := time.Now()
	assignment := models.ProfileRole{
		ProfileID:  profile.ID,
		RoleID:     role.ID,
		AssignedBy: &actorID,
		AssignedAt: &now,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}, {Name: "role_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"assigned_by", "assigned_at"}),
	}).Create(&assignment).Error
	if err != nil {
		log.Printf("Unable to assign role %s to user %d: %v", role.Slug, user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not assign the role.", nil)
	}

	if err := db.Model(&user).Update("role", role.Slug).Error; err != nil {
		log.Printf("Unable to update legacy role for user %d: %v", user.ID, err)
	}

	recordAudit(db, &actorID, "role.assigned", fmt.Sprintf("user:%d role:%s", user.ID, role.Slug))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role assigned successfully!", fiber.Map{
		"user_id": user.ID,
		"role":    role.Slug,
	})
}

// UpdateEnrollmentGrade sets a learner's grade, clamped to the 0..100 scale.
func UpdateEnrollmentGrade(c *fiber.Ctx) error {
	actorID, _ := c.Locals("userId").(uint)

	enrollmentID, err := c.ParamsInt("id")
	if err != nil || enrollmentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}

	reqData, ok := c.Locals("validatedGrade").(*adminValidator.GradePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	grade := utils.Clamp(reqData.Grade, 0, 100)
	if err := db.Model(&enrollment).Update("grade", grade).Error; err != nil {
		log.Printf("Unable to update grade for enrollment %d: %v", enrollmentID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not update the grade.", nil)
	}

	recordAudit(db, &actorID, "enrollment.graded", fmt.Sprintf("enrollment:%d", enrollmentID))
	cache.Invalidate("dashboard")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grade updated successfully!", fiber.Map{
		"enrollment_id": enrollment.ID,
		"grade":         grade,
	})
}

// ListAuditEvents pages through recent audit events, newest first.
func ListAuditEvents(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var events []models.AuditEvent
	if err := database.Database.Db.Order("created_at desc").Limit(limit).Find(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch audit events!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit events fetched successfully!", fiber.Map{
		"events": events,
		"total":  len(events),
	})
}
