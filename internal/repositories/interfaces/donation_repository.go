package interfaces

import (
	"context"
	"time"

	"carefund/internal/models"
	"carefund/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Donation, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	GetByDonor(ctx context.Context, donorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Donation, int64, error)
	GetByCampaign(ctx context.Context, campaignID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Donation, int64, error)
	GetByStatus(ctx context.Context, status models.DonationStatus, params *utils.PaginationParams) ([]*models.Donation, int64, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Donation, int64, error)

	// GetByDateRange feeds the admin Excel export.
	GetByDateRange(ctx context.Context, from, to time.Time, status models.DonationStatus) ([]*models.Donation, error)

	GetTotalCount(ctx context.Context) (int64, error)
	GetTotalAmount(ctx context.Context, status models.DonationStatus) (float64, error)
	CountDonorDonations(ctx context.Context, donorID, campaignID primitive.ObjectID) (int64, error)
}
