package interfaces

import (
	"context"

	"carefund/internal/models"
	"carefund/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	CreateMany(ctx context.Context, coupons []*models.Coupon) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error)
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// RecordRedemption appends the redemption entry and bumps used_count in
	// one atomic update; it fails if the usage limit is already reached.
	RecordRedemption(ctx context.Context, id primitive.ObjectID, redemption *models.CouponRedemption, markRedeemed bool) error

	GetByPurchaser(ctx context.Context, purchaserID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Coupon, int64, error)
	GetByPartner(ctx context.Context, partnerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Coupon, int64, error)
	GetByStatus(ctx context.Context, status models.CouponStatus, params *utils.PaginationParams) ([]*models.Coupon, int64, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, int64, error)

	CodeExists(ctx context.Context, code string) (bool, error)
	GetTotalCount(ctx context.Context) (int64, error)
	GetCountByStatus(ctx context.Context, status models.CouponStatus) (int64, error)
}

type CouponPackageRepository interface {
	Create(ctx context.Context, pkg *models.CouponPackage) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.CouponPackage, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.CouponPackage, int64, error)
	GetActive(ctx context.Context) ([]*models.CouponPackage, error)
	GetByCategory(ctx context.Context, category string) ([]*models.CouponPackage, error)
}
