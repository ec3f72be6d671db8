package user

import (
	"errors"

	userRepo "sokoni/database/repository/user"
	"sokoni/models"
)

// Service errors mapped to HTTP statuses at the handler layer.
var (
	// ErrEmailTaken is returned when a user with the email already exists.
	ErrEmailTaken = errors.New("a user with this email already exists")
	// ErrInvalidCredentials is returned for a bad email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when no user matches.
	ErrUserNotFound = errors.New("user not found")
)

// AuthResponse contains the user's ID, token, and profile details.
type AuthResponse struct {
	ID          string `json:"id"`
	Token       string `json:"token"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role"`
}

// UserService manages accounts and session tokens.
type UserService interface {
	RegisterUser(user models.User) (*AuthResponse, error)
	AuthenticateUser(email, password string) (*AuthResponse, error)
	RevokeUserAuthToken(userID string) error
	GetUserByID(userID string) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	UpdateFCMToken(userID, token string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
