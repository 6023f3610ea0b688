package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/medilinkhq/telehealth-api/internal/config"
	"github.com/medilinkhq/telehealth-api/internal/models"
	"github.com/medilinkhq/telehealth-api/internal/timezone"
	"github.com/medilinkhq/telehealth-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	log    *zap.Logger
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, log: log}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Gender    int    `json:"gender" binding:"min=0,max=1"`
	IsDoctor  bool   `json:"is_doctor"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "The email domain does not appear to be valid.",
		})
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_already_registered"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	role := models.RolePatient
	if req.IsDoctor {
		role = models.RoleDoctor
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Gender:       req.Gender,
		Role:         role,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		// each account carries its role profile from day one
		if req.IsDoctor {
			return tx.Create(&models.DoctorProfile{
				UserID:    user.ID,
				FirstName: req.FirstName,
				LastName:  req.LastName,
			}).Error
		}
		return tx.Create(&models.PatientProfile{
			UserID:    user.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Gender:    req.Gender,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_user"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, authResult(true, "registered", token, &user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, authResult(true, "logged_in", token, &user))
}

// ForgotPassword always answers success so the endpoint cannot be
// used to probe which addresses exist.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err == nil {
		token := randomToken()
		reset := models.PasswordResetToken{
			UserID:    user.ID,
			Token:     token,
			ExpiresAt: timezone.Now().Add(1 * time.Hour),
		}
		if err := h.db.Create(&reset).Error; err != nil {
			h.log.Error("failed to store reset token", zap.Error(err))
		} else {
			// mail delivery is handled by an external notifier watching
			// this table; the token never leaves the server in the response
			h.log.Info("password reset requested", zap.String("user_id", user.ID.String()))
		}
	}

	c.JSON(http.StatusOK, authResult(true, "reset_email_sent_if_registered", "", nil))
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_reset_token"})
		return
	}

	var reset models.PasswordResetToken
	if err := h.db.
		Where("user_id = ? AND token = ? AND used_at IS NULL", user.ID, req.Token).
		First(&reset).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_reset_token"})
		return
	}

	now := timezone.Now()
	if reset.ExpiresAt.Before(now) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reset_token_expired"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("password_hash", string(hashed)).Error; err != nil {
			return err
		}
		return tx.Model(&reset).Update("used_at", now).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_reset_password"})
		return
	}

	c.JSON(http.StatusOK, authResult(true, "password_reset", "", nil))
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

func authResult(success bool, message, token string, user *models.User) gin.H {
	res := gin.H{
		"success": success,
		"message": message,
		"token":   token,
	}
	if user != nil {
		res["user"] = gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"full_name":  user.FullName(),
			"gender":     user.Gender,
			"roles":      []string{user.Role},
		}
	}
	return res
}

func randomToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
