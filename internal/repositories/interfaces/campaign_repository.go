package interfaces

import (
	"context"

	"carefund/internal/models"
	"carefund/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Campaign, int64, error)
	GetByStatus(ctx context.Context, status models.CampaignStatus, params *utils.PaginationParams) ([]*models.Campaign, int64, error)
	GetByCategory(ctx context.Context, category string, params *utils.PaginationParams) ([]*models.Campaign, int64, error)
	GetByCreator(ctx context.Context, creatorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Campaign, int64, error)

	// IncrementRaisedAmount atomically adds amount to raised_amount and bumps
	// donor_count. Runs under the donation-completion transaction.
	IncrementRaisedAmount(ctx context.Context, id primitive.ObjectID, amount float64, newDonor bool) error

	GetTotalCount(ctx context.Context) (int64, error)
	GetTotalRaised(ctx context.Context) (float64, error)
}
