package controllers

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"time"

	"fitflow/middleware"
	"fitflow/models/postgres"
	"fitflow/services/redis"
	"fitflow/services/workout"
	"fitflow/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// @Summary Generate (or regenerate) the user's workout plan
// @Description Builds a BMI-driven 7-day plan from the profile's weight, height
// @Description and goal, upserts it and refreshes the Redis cache.
// @Tags workouts
// @Produce json
// @Success 200 {object} object{bmi=number,bmi_category=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/workout-plan [post]
// @Security ApiKeyAuth
func GenerateWorkoutPlan(db *gorm.DB, redisClient *redis.RedisClient) gin.HandlerFunc {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return func(c *gin.Context) {
		email, err := middleware.JWT_decoder(c)
		if err != nil {
			return
		}

		user, err := utils.FindUserByEmail(db, email)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if user.WeightKg <= 0 || user.HeightCm <= 0 || user.Goal == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Complete your profile (weight, height, goal) first"})
			return
		}

		plan := workout.GeneratePlan(rng, user.Email, user.WeightKg, user.HeightCm, user.Goal)

		weekly, err := json.Marshal(plan.WeeklyPlan)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not serialize plan"})
			return
		}

		record := postgres.WorkoutPlan{
			UserEmail:   user.Email,
			BMI:         plan.BMI,
			BMICategory: plan.BMICategory,
			Goal:        plan.Goal,
			WeeklyPlan:  datatypes.JSON(weekly),
			LastUpdated: time.Now(),
		}
		err = db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_email"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"bmi", "bmi_category", "goal", "weekly_plan", "last_updated"}),
		}).Create(&record).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save plan"})
			return
		}

		if doc, err := json.Marshal(plan); err == nil {
			if err := redisClient.CacheWorkoutPlan(user.Email, doc); err != nil {
				log.Printf("[PLAN-ERROR] Error caching plan for %s: %v", user.Email, err)
			}
		}

		c.JSON(http.StatusOK, plan)
	}
}

// @Summary Get the user's current workout plan
// @Description Serves from the Redis cache when possible, falling back to the
// @Description stored row.
// @Tags workouts
// @Produce json
// @Success 200 {object} object{bmi=number,goal=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/workout-plan [get]
// @Security ApiKeyAuth
func GetWorkoutPlan(db *gorm.DB, redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := middleware.JWT_decoder(c)
		if err != nil {
			return
		}
		normalized := utils.NormalizeEmail(email)

		if cached, err := redisClient.GetCachedWorkoutPlan(normalized); err == nil && cached != nil {
			var plan workout.Plan
			if err := json.Unmarshal(cached, &plan); err == nil {
				c.JSON(http.StatusOK, plan)
				return
			}
		}

		var record postgres.WorkoutPlan
		if err := db.Where("user_email = ?", normalized).First(&record).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No workout plan yet, generate one first"})
			return
		}

		var weekly []workout.DayPlan
		if err := json.Unmarshal(record.WeeklyPlan, &weekly); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored plan is corrupted"})
			return
		}

		c.JSON(http.StatusOK, workout.Plan{
			UserEmail:   record.UserEmail,
			BMI:         record.BMI,
			BMICategory: record.BMICategory,
			Goal:        record.Goal,
			WeeklyPlan:  weekly,
		})
	}
}

// @Summary Log a workout entry
// @Tags workouts
// @Accept json
// @Produce json
// @Success 201 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/workout-log [post]
// @Security ApiKeyAuth
func LogWorkout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := middleware.JWT_decoder(c)
		if err != nil {
			return
		}

		var req struct {
			ExerciseName string `json:"exercise_name"`
			Reps         int    `json:"reps"`
			DurationMin  int    `json:"duration_min"`
			Calories     int    `json:"calories"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.ExerciseName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workout log"})
			return
		}

		entry := postgres.WorkoutLog{
			UserEmail:    utils.NormalizeEmail(email),
			ExerciseName: req.ExerciseName,
			Reps:         req.Reps,
			DurationMin:  req.DurationMin,
			Calories:     req.Calories,
		}
		if err := db.Create(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save workout log"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Workout logged"})
	}
}

// @Summary List workout log entries, newest first
// @Tags workouts
// @Produce json
// @Success 200 {array} object{exercise_name=string,reps=integer}
// @Router /auth/workout-logs [get]
// @Security ApiKeyAuth
func GetWorkoutLogs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := middleware.JWT_decoder(c)
		if err != nil {
			return
		}

		var logs []postgres.WorkoutLog
		result := db.Where("user_email = ?", utils.NormalizeEmail(email)).
			Order("created_at DESC").
			Find(&logs)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching workout logs"})
			return
		}

		response := make([]gin.H, 0, len(logs))
		for _, entry := range logs {
			response = append(response, gin.H{
				"id":            entry.ID,
				"exercise_name": entry.ExerciseName,
				"reps":          entry.Reps,
				"duration_min":  entry.DurationMin,
				"calories":      entry.Calories,
				"created_at":    entry.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, response)
	}
}

// @Summary Save a rep-counter session result
// @Tags workouts
// @Accept json
// @Produce json
// @Success 201 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/exercise-session [post]
// @Security ApiKeyAuth
func SaveExerciseSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := middleware.JWT_decoder(c)
		if err != nil {
			return
		}

		var req struct {
			ExerciseName    string  `json:"exercise_name"`
			Reps            int     `json:"reps"`
			DurationSeconds int     `json:"duration_seconds"`
			CaloriesBurned  float64 `json:"calories_burned"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Reps < 0 || req.DurationSeconds < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exercise session"})
			return
		}
		if req.ExerciseName == "" {
			req.ExerciseName = "Push-up"
		}

		session := postgres.ExerciseSession{
			UserEmail:       utils.NormalizeEmail(email),
			ExerciseName:    req.ExerciseName,
			Reps:            req.Reps,
			DurationSeconds: req.DurationSeconds,
			CaloriesBurned:  req.CaloriesBurned,
		}
		if err := db.Create(&session).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save session"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Session saved"})
	}
}

// @Summary List rep-counter sessions, newest first
// @Description Includes sessions persisted automatically when challenges finish.
// @Tags workouts
// @Produce json
// @Success 200 {array} object{exercise_name=string,reps=integer}
// @Router /auth/exercise-sessions [get]
// @Security ApiKeyAuth
func GetExerciseSessions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := middleware.JWT_decoder(c)
		if err != nil {
			return
		}

		var sessions []postgres.ExerciseSession
		result := db.Where("user_email = ?", utils.NormalizeEmail(email)).
			Order("created_at DESC").
			Find(&sessions)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching sessions"})
			return
		}

		response := make([]gin.H, 0, len(sessions))
		for _, s := range sessions {
			response = append(response, gin.H{
				"id":               s.ID,
				"exercise_name":    s.ExerciseName,
				"reps":             s.Reps,
				"duration_seconds": s.DurationSeconds,
				"calories_burned":  s.CaloriesBurned,
				"challenge_id":     s.ChallengeID,
				"created_at":       s.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, response)
	}
}
