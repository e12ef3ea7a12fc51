package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"buildbidz-api/models"
	"buildbidz-api/supabase"
	"buildbidz-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthController bridges the HTTP auth endpoints to the identity provider
// and the local profile table.
type AuthController struct {
	DB   *gorm.DB
	Auth *supabase.Client
}

func NewAuthController(db *gorm.DB, auth *supabase.Client) *AuthController {
	return &AuthController{DB: db, Auth: auth}
}

type RegisterRequest struct {
	Email       string  `json:"email" binding:"required"`
	Password    string  `json:"password" binding:"required"`
	Username    string  `json:"username" binding:"required"`
	Role        string  `json:"role" binding:"required"`
	CompanyName *string `json:"company_name"`
}

type ProfileResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	Role        string  `json:"role"`
	CompanyName *string `json:"company_name,omitempty"`
}

// Register creates an identity-provider account, then the local profile
// row. If the profile insert fails the identity is deleted again so the
// two stores cannot drift apart.
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	req.Email = utils.SanitizeInput(req.Email)
	req.Username = utils.SanitizeInput(req.Username)

	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid email address"})
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": msg})
		return
	}
	if !models.ValidUserRole(models.UserRole(req.Role)) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid role"})
		return
	}

	metadata := map[string]interface{}{
		"username": req.Username,
		"role":     req.Role,
	}
	if req.CompanyName != nil {
		metadata["company_name"] = *req.CompanyName
	}

	identity, err := ac.Auth.SignUp(c.Request.Context(), req.Email, req.Password, metadata)
	if err != nil {
		var regErr *supabase.RegistrationError
		if errors.As(err, &regErr) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": regErr.Message})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Registration failed"})
		return
	}

	profile := models.User{
		ID:          identity.ID,
		Email:       req.Email,
		Username:    req.Username,
		Role:        models.UserRole(req.Role),
		CompanyName: req.CompanyName,
	}

	if err := ac.DB.Create(&profile).Error; err != nil {
		// Compensate: remove the identity so registration can be retried.
		if delErr := ac.Auth.AdminDeleteUser(c.Request.Context(), identity.ID); delErr != nil {
			log.Printf("Warning: failed to clean up identity %s after profile insert error: %v", identity.ID, delErr)
		}
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Registration failed"})
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		ID:          profile.ID,
		Email:       profile.Email,
		Username:    profile.Username,
		Role:        string(profile.Role),
		CompanyName: profile.CompanyName,
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates against the provider. Every failure maps to the same
// 401 so callers cannot tell a wrong password from a provider outage.
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	session, err := ac.Auth.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  session.AccessToken,
		"refresh_token": session.RefreshToken,
		"user": gin.H{
			"id":       session.User.ID,
			"email":    session.User.Email,
			"username": session.User.MetadataString("username"),
			"role":     session.User.MetadataString("role"),
		},
	})
}

// Me validates the bearer token with the provider and returns the matching
// profile row. A valid identity with no profile row is an orphaned account.
func (ac *AuthController) Me(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
		return
	}

	identity, err := ac.Auth.GetUser(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
		return
	}

	var profile models.User
	if err := ac.DB.Where("id = ?", identity.ID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User profile not found"})
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		ID:          profile.ID,
		Email:       profile.Email,
		Username:    profile.Username,
		Role:        string(profile.Role),
		CompanyName: profile.CompanyName,
	})
}

// Logout invalidates the provider session. Idempotent from the caller's
// perspective.
func (ac *AuthController) Logout(c *gin.Context) {
	token, _ := bearerToken(c)

	if err := ac.Auth.SignOut(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if authHeader == "" || token == authHeader {
		return "", false
	}
	return token, true
}
