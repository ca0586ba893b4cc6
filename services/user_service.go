package services

import (
	"errors"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wordle-arena/apperrors"
	"wordle-arena/middleware"
	"wordle-arena/models"
	"wordle-arena/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func accessTokenTTL() time.Duration {
	if v := os.Getenv("ACCESS_TOKEN_EXPIRY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return 15 * time.Minute
}

func refreshTokenTTL() time.Duration {
	if v := os.Getenv("REFRESH_TOKEN_EXPIRY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return 7 * 24 * time.Hour
}

func generateAccessToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(accessTokenTTL()).Unix(),
	})
	return token.SignedString(middleware.AccessSecret())
}

func generateRefreshToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(refreshTokenTTL()).Unix(),
	})
	return token.SignedString(middleware.RefreshSecret())
}

// issueTokens mints a fresh access/refresh pair and persists the refresh
// token, invalidating any previously issued one.
func (s *UserService) issueTokens(user *models.User) (access, refresh string, err error) {
	access, err = generateAccessToken(user)
	if err != nil {
		return "", "", err
	}
	refresh, err = generateRefreshToken(user)
	if err != nil {
		return "", "", err
	}
	if err := s.DB.Model(user).Update("refresh_token", refresh).Error; err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// saveAvatar stores an uploaded profile picture and returns its public URL
// plus the key needed to delete it later. R2 when configured, the local
// uploads dir otherwise.
func saveAvatar(file *multipart.FileHeader, username string) (url, key string, err error) {
	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".png"
	}
	key = "avatars/" + slug.Make(username) + "-" + uuid.NewString() + ext

	if utils.R2Enabled() {
		url, err = utils.UploadFileToR2(file, key)
		return url, key, err
	}

	localPath := utils.GetUploadPath(key)
	if err := utils.SaveFile(file, localPath); err != nil {
		return "", "", err
	}
	return "/" + filepath.ToSlash(localPath), localPath, nil
}

func deleteAvatar(key string) {
	if key == "" {
		return
	}
	if utils.R2Enabled() && strings.HasPrefix(key, "avatars/") {
		if err := utils.DeleteFileFromR2(key); err != nil {
			log.Printf("⚠️  Failed to delete avatar %s: %v", key, err)
		}
		return
	}
	if err := os.Remove(key); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️  Failed to delete avatar %s: %v", key, err)
	}
}

// Register creates an account from a multipart form: fullName, email,
// username, password, and an optional profile_picture file.
func (s *UserService) Register(c *fiber.Ctx) error {
	fullName := strings.TrimSpace(c.FormValue("fullName"))
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	username := strings.ToLower(strings.TrimSpace(c.FormValue("username")))
	password := c.FormValue("password")

	if fullName == "" || email == "" || username == "" || password == "" {
		return apperrors.Respond(c, apperrors.Validation("fullName, email, username and password are all required"))
	}

	var existing models.User
	err := s.DB.Where("username = ? OR email = ?", username, email).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "user with email or username already exists"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to check existing users"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to hash password"})
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
	}

	if file, err := c.FormFile("profile_picture"); err == nil && file.Size > 0 {
		url, key, err := saveAvatar(file, username)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store profile picture"})
		}
		user.ProfilePictureURL = url
		user.ProfilePictureKey = key
	}

	if err := s.DB.Create(user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to register user"})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues an access/refresh token pair. Unknown
// user and wrong password produce the same response, so logins can't be used
// to probe for accounts.
func (s *UserService) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Respond(c, apperrors.Validation("invalid request body"))
	}
	if req.Username == "" && req.Email == "" {
		return apperrors.Respond(c, apperrors.Validation("username or email is required"))
	}

	var user models.User
	err := s.DB.Where("username = ? OR email = ?",
		strings.ToLower(req.Username), strings.ToLower(req.Email)).First(&user).Error
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	access, refresh, err := s.issueTokens(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to issue tokens"})
	}

	return c.JSON(fiber.Map{
		"user":          user,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Logout clears the stored refresh token, ending the session server-side.
func (s *UserService) Logout(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)
	if err := s.DB.Model(&models.User{}).Where("id = ?", callerID).
		Update("refresh_token", "").Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to log out"})
	}
	return c.JSON(fiber.Map{"message": "logged out successfully"})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken rotates the token pair. The presented refresh token must be
// valid and must match the one stored for the user.
func (s *UserService) RefreshToken(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return apperrors.Respond(c, apperrors.Validation("refreshToken is required"))
	}

	token, err := jwt.Parse(req.RefreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return middleware.RefreshSecret(), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid refresh token"})
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid refresh token"})
	}
	userID, _ := claims["user_id"].(string)

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid refresh token"})
	}
	if user.RefreshToken == "" || user.RefreshToken != req.RefreshToken {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "refresh token is expired or was revoked"})
	}

	access, refresh, err := s.issueTokens(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to issue tokens"})
	}

	return c.JSON(fiber.Map{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (s *UserService) ChangePassword(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
		return apperrors.Respond(c, apperrors.Validation("oldPassword and newPassword are required"))
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", callerID).Error; err != nil {
		return apperrors.Respond(c, apperrors.NotFound("user not found"))
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)) != nil {
		return apperrors.Respond(c, apperrors.Validation("invalid old password"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to hash password"})
	}
	if err := s.DB.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to change password"})
	}

	return c.JSON(fiber.Map{"message": "password changed successfully"})
}

func (s *UserService) CurrentUser(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	var user models.User
	if err := s.DB.First(&user, "id = ?", callerID).Error; err != nil {
		return apperrors.Respond(c, apperrors.NotFound("user not found"))
	}
	return c.JSON(user)
}

type updateAccountRequest struct {
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	StatsUsingPrivate *bool  `json:"statsUsingPrivate"`
}

// UpdateAccount updates profile fields. statsUsingPrivate controls whether
// the user's own stats include their private games.
func (s *UserService) UpdateAccount(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	var req updateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Respond(c, apperrors.Validation("invalid request body"))
	}

	updates := map[string]interface{}{}
	if req.FullName != "" {
		updates["full_name"] = strings.TrimSpace(req.FullName)
	}
	if req.Email != "" {
		updates["email"] = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.StatsUsingPrivate != nil {
		updates["stats_using_private"] = *req.StatsUsingPrivate
	}
	if len(updates) == 0 {
		return apperrors.Respond(c, apperrors.Validation("nothing to update"))
	}

	if err := s.DB.Model(&models.User{}).Where("id = ?", callerID).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update account"})
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", callerID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load user"})
	}
	return c.JSON(user)
}

func (s *UserService) UpdateProfilePicture(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	file, err := c.FormFile("profile_picture")
	if err != nil || file.Size == 0 {
		return apperrors.Respond(c, apperrors.Validation("profile_picture file is required"))
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", callerID).Error; err != nil {
		return apperrors.Respond(c, apperrors.NotFound("user not found"))
	}

	url, key, err := saveAvatar(file, user.Username)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store profile picture"})
	}

	oldKey := user.ProfilePictureKey
	if err := s.DB.Model(&user).Updates(map[string]interface{}{
		"profile_picture_url": url,
		"profile_picture_key": key,
	}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update profile picture"})
	}
	deleteAvatar(oldKey)

	return c.JSON(user)
}

func (s *UserService) RemoveProfilePicture(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	var user models.User
	if err := s.DB.First(&user, "id = ?", callerID).Error; err != nil {
		return apperrors.Respond(c, apperrors.NotFound("user not found"))
	}

	oldKey := user.ProfilePictureKey
	if err := s.DB.Model(&user).Updates(map[string]interface{}{
		"profile_picture_url": "",
		"profile_picture_key": "",
	}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to remove profile picture"})
	}
	deleteAvatar(oldKey)

	return c.JSON(fiber.Map{"message": "profile picture removed"})
}

// FindUser looks up a public profile by username.
func (s *UserService) FindUser(c *fiber.Ctx) error {
	username := strings.ToLower(c.Params("username"))
	if username == "" {
		return apperrors.Respond(c, apperrors.Validation("username is required"))
	}

	var user models.User
	if err := s.DB.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Respond(c, apperrors.NotFound("user not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch user"})
	}

	return c.JSON(user.Public())
}
