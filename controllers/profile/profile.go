package profileController

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"waypoint/config"
	"waypoint/database"
	"waypoint/lms"
	"waypoint/middleware"
	"waypoint/models"
	profileValidator "waypoint/validators/profile"
)

// GetProfile returns the caller's profile together with their resolved roles.
func GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	session := lms.NewResolver(database.Database.Db).Resolve(userID)
	if session == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
		"user":           session.User,
		"profile":        session.Profile,
		"roles":          session.Roles,
		"effective_role": session.Effective,
	})
}

// SaveProfile upserts the caller's profile on the user id. The first save
// creates the row the identity resolver was synthesizing in memory.
func SaveProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	reqData, ok := c.Locals("validatedProfile").(*profileValidator.ProfilePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	profile := models.Profile{
		UserID:              userID,
		DisplayName:         strings.TrimSpace(reqData.DisplayName),
		FirstName:           strings.TrimSpace(reqData.FirstName),
		LastName:            strings.TrimSpace(reqData.LastName),
		Email:               reqData.Email,
		Phone:               strings.TrimSpace(reqData.Phone),
		MailingAddressLine1: strings.TrimSpace(reqData.MailingAddressLine1),
		MailingAddressLine2: strings.TrimSpace(reqData.MailingAddressLine2),
		MailingCity:         strings.TrimSpace(reqData.MailingCity),
		MailingState:        strings.TrimSpace(reqData.MailingState),
		MailingPostalCode:   strings.TrimSpace(reqData.MailingPostalCode),
		MailingCountry:      strings.TrimSpace(reqData.MailingCountry),
		AcademicBio:         strings.TrimSpace(reqData.AcademicBio),
	}

	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name", "first_name", "last_name", "email", "phone",
			"mailing_address_line1", "mailing_address_line2", "mailing_city",
			"mailing_state", "mailing_postal_code", "mailing_country", "academic_bio",
		}),
	}).Create(&profile).Error
	if err != nil {
		log.Printf("Unable to save profile for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not save your profile.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile saved successfully!", profile)
}

// UpdateAccount changes the caller's account name, email, or password.
func UpdateAccount(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	reqData, ok := c.Locals("validatedAccount").(*profileValidator.AccountPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Account not found!", nil)
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(reqData.Name); name != "" {
		updates["name"] = name
	}
	if reqData.Email != "" && reqData.Email != user.Email {
		var existing models.User
		if err := db.Where("email = ? AND id <> ?", reqData.Email, userID).First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already in use!", nil)
		}
		updates["email"] = reqData.Email
	}
	if reqData.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not update your password.", nil)
		}
		updates["password"] = string(hashed)
	}

	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Nothing to update.", user)
	}

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("Unable to update account for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not update your account.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Account updated successfully!", user)
}
