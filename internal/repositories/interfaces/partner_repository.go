package interfaces

import (
	"context"

	"carefund/internal/models"
	"carefund/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PartnerRepository interface {
	Create(ctx context.Context, partner *models.Partner) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Partner, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Partner, int64, error)

	// GetApproved lists approved, active partners across categories for the
	// public listing.
	GetApproved(ctx context.Context, params *utils.PaginationParams) ([]*models.Partner, int64, error)
	GetByCategory(ctx context.Context, category models.PartnerCategory, params *utils.PaginationParams) ([]*models.Partner, int64, error)
	GetByStatus(ctx context.Context, status models.PartnerStatus, params *utils.PaginationParams) ([]*models.Partner, int64, error)
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Partner, error)

	GetTotalCount(ctx context.Context) (int64, error)
}
