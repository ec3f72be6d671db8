package user

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"sokoni/models"
	"sokoni/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const authTokenTTL = 24 * time.Hour

// verifyPasswordComplexity checks that the password contains at least one
// lowercase letter, one uppercase letter, one digit, and one symbol.
func verifyPasswordComplexity(pw string) error {
	var (
		hasMinLen = len(pw) >= 8
		hasUpper  = regexp.MustCompile(`[A-Z]`).MatchString(pw)
		hasLower  = regexp.MustCompile(`[a-z]`).MatchString(pw)
		hasNumber = regexp.MustCompile(`[0-9]`).MatchString(pw)
		hasSymbol = regexp.MustCompile(`[\W_]`).MatchString(pw)
	)
	if !hasMinLen {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !hasUpper {
		return fmt.Errorf("password must include at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must include at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must include at least one number")
	}
	if !hasSymbol {
		return fmt.Errorf("password must include at least one symbol")
	}
	return nil
}

// RegisterUser creates a new customer account, generates a token, stores its
// hash, and clears the Redis auth cache entry.
func (s *DefaultUserService) RegisterUser(user models.User) (*AuthResponse, error) {
	if user.Email == "" || user.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if user.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if err := verifyPasswordComplexity(user.Password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(user.Email)
	if err != nil {
		utils.GetLogger().Error("Failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	user.PasswordHash = string(hashedPassword)
	user.Password = ""

	user.ID = uuid.New().String()
	user.Role = models.RoleCustomer
	user.Status = models.UserStatusActive

	if err := s.Repo.Create(&user); err != nil {
		utils.GetLogger().Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return &AuthResponse{
		ID:          user.ID,
		Token:       token,
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
	}, nil
}

// AuthenticateUser verifies credentials, rotates the session token, and
// clears the Redis auth cache entry.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch user for authentication", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return &AuthResponse{
		ID:          user.ID,
		Token:       token,
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
	}, nil
}

// issueToken generates a JWT, persists its hash on the user record and
// invalidates the cached hash.
func (s *DefaultUserService) issueToken(user *models.User) (string, error) {
	token, err := utils.GenerateToken(user.ID, user.Role, authTokenTTL)
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth token", zap.Error(err))
		return "", err
	}

	user.TokenHash = utils.HashToken(token)
	if err := s.Repo.Update(user); err != nil {
		utils.GetLogger().Error("Failed to update user with token hash", zap.Error(err))
		return "", err
	}

	s.clearAuthCache(user.ID)
	return token, nil
}

func (s *DefaultUserService) clearAuthCache(userID string) {
	cacheKey := utils.AuthCachePrefix + userID
	authCache := utils.GetAuthCacheClient()
	if err := authCache.Del(context.Background(), cacheKey).Err(); err != nil {
		utils.GetLogger().Error("Failed to clear auth cache", zap.Error(err))
	}
}

// RevokeUserAuthToken clears the token hash from the database and removes
// the corresponding Redis cache entry.
func (s *DefaultUserService) RevokeUserAuthToken(userID string) error {
	user, err := s.Repo.GetByIDWithProjection(userID, nil)
	if err != nil {
		utils.GetLogger().Error("Failed to retrieve user", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to logout, please try again")
	}
	if user == nil {
		return ErrUserNotFound
	}

	user.TokenHash = ""
	if err := s.Repo.Update(user); err != nil {
		utils.GetLogger().Error("Failed to revoke user auth token", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to logout, please try again")
	}

	s.clearAuthCache(userID)
	return nil
}

// UpdateFCMToken stores the device token used for push notifications.
func (s *DefaultUserService) UpdateFCMToken(userID, token string) error {
	if err := s.Repo.UpdateSetDocument(userID, bson.M{"fcmToken": token}); err != nil {
		utils.GetLogger().Error("Failed to update FCM token", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to update device token")
	}
	return nil
}
