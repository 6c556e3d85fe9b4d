package interfaces

import (
	"context"

	"carefund/internal/models"
	"carefund/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Authentication operations
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	UpdateEmailVerification(ctx context.Context, id primitive.ObjectID, verified bool) error
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error

	// Search and listing
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error)
	GetByRole(ctx context.Context, role models.UserRole, params *utils.PaginationParams) ([]*models.User, int64, error)

	// Statistics
	GetTotalCount(ctx context.Context) (int64, error)
	GetCountByRole(ctx context.Context, role models.UserRole) (int64, error)
}
