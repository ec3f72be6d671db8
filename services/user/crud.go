package user

import (
	"fmt"

	"sokoni/models"
	"sokoni/utils"

	"go.uber.org/zap"
)

// GetUserByID retrieves a user by their unique ID.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch user", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch user")
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	user.PasswordHash = ""
	user.TokenHash = ""
	return user, nil
}

// GetAllUsers retrieves all users.
func (s *DefaultUserService) GetAllUsers() ([]models.User, error) {
	users, err := s.Repo.GetAll()
	if err != nil {
		utils.GetLogger().Error("Failed to fetch users", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch users")
	}
	for i := range users {
		users[i].PasswordHash = ""
		users[i].TokenHash = ""
	}
	return users, nil
}
