package interfaces

import (
	"context"

	"carefund/internal/models"
	"carefund/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WalletRepository interface {
	Create(ctx context.Context, wallet *models.Wallet) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Wallet, error)
	GetByVendor(ctx context.Context, vendorID primitive.ObjectID) (*models.Wallet, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// AddCoupon pushes the coupon entry and atomically moves the balance
	// counters so current_balance stays equal to received minus settled.
	AddCoupon(ctx context.Context, walletID primitive.ObjectID, coupon *models.WalletCoupon, txn *models.WalletTransaction) error

	// SettleCoupon flips the wallet coupon to settled and debits the balance.
	SettleCoupon(ctx context.Context, walletID, couponID primitive.ObjectID, amount float64, txn *models.WalletTransaction) error

	HasCoupon(ctx context.Context, walletID, couponID primitive.ObjectID) (bool, error)

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Wallet, int64, error)
	GetTotalBalance(ctx context.Context) (float64, error)
}
