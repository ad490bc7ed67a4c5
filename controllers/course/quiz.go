package controllers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"waypoint/database"
	"waypoint/middleware"
	courseModels "waypoint/models/course"
)

// SubmitQuizAttempt records the caller's responses for a quiz. Attempts are
// append-only; learners may retry and every attempt is kept.
func SubmitQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	quizID, err := c.ParamsInt("id")
	if err != nil || quizID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	reqData := new(struct {
		Score     *float64               `json:"score"`
		Responses map[string]interface{} `json:"responses"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if len(reqData.Responses) == 0 {
		return middleware.ValidationErrorResponse(c, map[string]string{"responses": "Responses are required!"})
	}

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Where("id = ?", quizID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	raw, err := json.Marshal(reqData.Responses)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid responses payload!", nil)
	}

	attempt := courseModels.QuizAttempt{
		QuizID:      uint(quizID),
		UserID:      userID,
		Score:       reqData.Score,
		Responses:   datatypes.JSON(raw),
		SubmittedAt: time.Now(),
	}
	if err := db.Create(&attempt).Error; err != nil {
		log.Printf("Unable to save quiz attempt for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not save your attempt.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz attempt recorded.", attempt)
}

// GetQuizAttempts lists the caller's attempts for a quiz, newest first.
func GetQuizAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	quizID, err := c.ParamsInt("id")
	if err != nil || quizID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	var attempts []courseModels.QuizAttempt
	if err := database.Database.Db.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("submitted_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
		"total":    len(attempts),
	})
}
