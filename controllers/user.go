package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"fitflow/middleware"
	"fitflow/models/postgres"
	"fitflow/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// @Summary Create a new account
// @Description Registers a user with email, full name and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{email=string,full_name=string,password=string} true "Signup payload"
// @Success 201 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /signup [post]
func SignUp(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email"`
			FullName string `json:"full_name"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		email := utils.NormalizeEmail(req.Email)
		if email == "" || strings.TrimSpace(req.Password) == "" || strings.TrimSpace(req.FullName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		if _, err := utils.FindUserByEmail(db, email); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
			return
		}

		user := postgres.User{
			Email:        email,
			FullName:     strings.TrimSpace(req.FullName),
			PasswordHash: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create account"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Account created successfully"})
	}
}

// @Summary Log in
// @Description Validates credentials, opens a session and returns a JWT
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Account email"
// @Param password formData string true "Account password"
// @Success 200 {object} object{token=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /login [post]
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		email := utils.NormalizeEmail(c.PostForm("email"))
		password := c.PostForm("password")

		// Minimum input sanitizing
		if email == "" || strings.TrimSpace(password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		var user postgres.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}

		token, err := middleware.GenerateToken(user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
			return
		}

		session.Set("Email", user.Email)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No session!"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// Logout from server, deletes the session associated with the Email key
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	user := session.Get("Email")
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session token"})
		return
	}

	session.Delete("Email")
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// @Summary Get a user's public info
// @Description Returns the public profile of a user by email
// @Tags users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} object{email=string,full_name=string,goal=string}
// @Failure 404 {object} object{error=string}
// @Router /users/{email} [get]
func GetUserPublicInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.FindUserByEmail(db, c.Param("email"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"email":         user.Email,
			"full_name":     user.FullName,
			"goal":          user.Goal,
			"place":         user.Place,
			"profile_image": user.ProfileImage,
			"member_since":  user.MemberSince,
		})
	}
}

// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} object{email=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/me [get]
// @Security ApiKeyAuth
func GetUserPrivateInfo(db *gorm.DB) gin.HandlerFunc {
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

		c.JSON(http.StatusOK, gin.H{
			"email":         user.Email,
			"full_name":     user.FullName,
			"gender":        user.Gender,
			"age":           user.Age,
			"height_cm":     user.HeightCm,
			"weight_kg":     user.WeightKg,
			"place":         user.Place,
			"equipment":     user.Equipment,
			"goal":          user.Goal,
			"profile_image": user.ProfileImage,
			"member_since":  user.MemberSince,
		})
	}
}

// @Summary Update profile fields
// @Description Updates the profile fields the workout generator depends on. A
// @Description successful update invalidates the cached workout plan implicitly
// @Description by the next plan request regenerating it.
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/update [patch]
// @Security ApiKeyAuth
func UpdateUserInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := middleware.JWT_decoder(c)
		if err != nil {
			return
		}

		var req struct {
			FullName     *string   `json:"full_name"`
			Gender       *string   `json:"gender"`
			Age          *int      `json:"age"`
			HeightCm     *float64  `json:"height_cm"`
			WeightKg     *float64  `json:"weight_kg"`
			Place        *string   `json:"place"`
			Equipment    *[]string `json:"equipment"`
			Goal         *string   `json:"goal"`
			ProfileImage *string   `json:"profile_image"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		updates := map[string]interface{}{}
		if req.FullName != nil {
			updates["full_name"] = *req.FullName
		}
		if req.Gender != nil {
			updates["gender"] = *req.Gender
		}
		if req.Age != nil {
			updates["age"] = *req.Age
		}
		if req.HeightCm != nil {
			updates["height_cm"] = *req.HeightCm
		}
		if req.WeightKg != nil {
			updates["weight_kg"] = *req.WeightKg
		}
		if req.Place != nil {
			updates["place"] = *req.Place
		}
		if req.Equipment != nil {
			blob, err := json.Marshal(*req.Equipment)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid equipment list"})
				return
			}
			updates["equipment"] = datatypes.JSON(blob)
		}
		if req.Goal != nil {
			updates["goal"] = *req.Goal
		}
		if req.ProfileImage != nil {
			updates["profile_image"] = *req.ProfileImage
		}

		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
			return
		}

		if err := db.Model(&postgres.User{}).Where("email = ?", email).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
	}
}

// @Summary List all users
// @Description Admin listing of all registered accounts
// @Tags users
// @Produce json
// @Success 200 {array} object{email=string,full_name=string}
// @Failure 500 {object} object{error=string}
// @Router /allusers [get]
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []postgres.User
		if err := db.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching users"})
			return
		}

		simplified := make([]gin.H, len(users))
		for i, user := range users {
			simplified[i] = gin.H{
				"email":     user.Email,
				"full_name": user.FullName,
				"goal":      user.Goal,
			}
		}
		c.JSON(http.StatusOK, simplified)
	}
}
