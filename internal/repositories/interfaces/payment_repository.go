package interfaces

import (
	"context"

	"carefund/internal/models"
	"carefund/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// GetByOrderID resolves the gateway correlation id back to the pending
	// payment during verification.
	GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error)

	GetByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Payment, int64, error)
	GetByStatus(ctx context.Context, status models.PaymentStatus, params *utils.PaginationParams) ([]*models.Payment, int64, error)

	GetTotalCount(ctx context.Context) (int64, error)
}
