package userRepo

import (
	"sokoni/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID, or nil if absent.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address, or nil if absent.
	GetByEmail(email string) (*models.User, error)
	// GetAll retrieves all users.
	GetAll() ([]models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// UpdateSetDocument applies a $set update to the user with the given ID.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// GetByIDWithProjection retrieves a user by its unique ID with a
	// projection, or nil if absent.
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
}
