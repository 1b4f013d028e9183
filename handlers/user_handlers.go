package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shopease/jwt"
	"shopease/middleware"
	"shopease/models"
)

// invalidCredentials is answered for unknown email and wrong password alike,
// so a caller cannot enumerate accounts.
const invalidCredentials = "Invalid email or password"

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func SignUpHandler(c *gin.Context, db *gorm.DB) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Please provide all required fields (username, password, email)",
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		storageError(c, err)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"message": "Email is already registered",
			})
			return
		}
		storageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "User created successfully",
		"username": user.Username,
	})
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func SignInHandler(c *gin.Context, db *gorm.DB, jwtSecret []byte) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Please provide email and password",
		})
		return
	}

	var user models.User
	err := db.First(&user, "email = ?", req.Email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": invalidCredentials})
			return
		}
		storageError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": invalidCredentials})
		return
	}

	expiresAt := time.Now().Add(jwt.TokenTTL)
	token, err := jwt.GenerateToken(jwtSecret, user.ID, user.Username, user.Email, expiresAt)
	if err != nil {
		storageError(c, err)
		return
	}

	// The token is also mirrored into an http-only cookie for the frontend.
	c.SetCookie("token", token, int(jwt.TokenTTL.Seconds()), "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"username":    user.Username,
		"email":       user.Email,
		"address":     user.Address,
		"fullname":    user.FullName,
		"phoneNumber": user.PhoneNumber,
	})
}

// SignOutHandler revokes the presented token for the remainder of its
// lifetime. Without Redis a signed-out token stays valid until expiry.
func SignOutHandler(c *gin.Context, rdb *redis.Client) {
	if rdb == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
		return
	}

	tokenID := c.GetString(middleware.ContextTokenID)
	if tokenID == "" {
		c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
		return
	}

	if err := rdb.Set(c, middleware.RevocationKey(tokenID), "1", jwt.TokenTTL).Err(); err != nil {
		logrus.WithError(err).Warn("failed to record token revocation")
		storageError(c, err)
		return
	}

	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

func GetUserInfoHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
		return
	}

	var user models.User
	err := db.First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":       user.Email,
		"username":    user.Username,
		"fullname":    user.FullName,
		"address":     user.Address,
		"phonenumber": user.PhoneNumber,
	})
}

type updateUserInfoRequest struct {
	Username    string `json:"username"`
	FullName    string `json:"fullname"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phonenumber"`
}

// UpdateUserInfoHandler requires all four profile fields; a partial update
// is rejected rather than merged.
func UpdateUserInfoHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
		return
	}

	var req updateUserInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.Username == "" || req.FullName == "" || req.Address == "" || req.PhoneNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Please provide all required fields",
		})
		return
	}

	result := db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"username":     req.Username,
			"full_name":    req.FullName,
			"address":      req.Address,
			"phone_number": req.PhoneNumber,
		})
	if result.Error != nil {
		storageError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found or no changes made"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User information updated successfully"})
}

func ListUsersHandler(c *gin.Context, db *gorm.DB) {
	var users []struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		FullName    string `json:"fullname"`
		Address     string `json:"address"`
		PhoneNumber string `json:"phoneNumber"`
	}
	err := db.Model(&models.User{}).
		Select("username", "email", "full_name", "address", "phone_number").
		Find(&users).
		Error
	if err != nil {
		storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func GetUserHandler(c *gin.Context, db *gorm.DB) {
	var user models.User
	err := db.First(&user, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

type updateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func UpdateUserHandler(c *gin.Context, db *gorm.DB) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Please provide username and email",
		})
		return
	}

	result := db.Model(&models.User{}).
		Where("id = ?", c.Param("id")).
		Updates(map[string]interface{}{
			"username": req.Username,
			"email":    req.Email,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"message": "Email is already registered"})
			return
		}
		storageError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

func DeleteUserHandler(c *gin.Context, db *gorm.DB) {
	result := db.Delete(&models.User{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		storageError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
