package mongodb

import (
	"context"
	"fmt"
	"time"

	"carefund/internal/models"
	"carefund/internal/repositories/interfaces"
	"carefund/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type walletRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewWalletRepository(db *mongo.Database, cache CacheService) interfaces.WalletRepository {
	return &walletRepository{
		collection: db.Collection("wallets"),
		cache:      cache,
	}
}

func (r *walletRepository) Create(ctx context.Context, wallet *models.Wallet) error {
	wallet.ID = primitive.NewObjectID()
	wallet.CreatedAt = time.Now()
	wallet.UpdatedAt = time.Now()
	if wallet.Coupons == nil {
		wallet.Coupons = []models.WalletCoupon{}
	}
	if wallet.Transactions == nil {
		wallet.Transactions = []models.WalletTransaction{}
	}

	_, err := r.collection.InsertOne(ctx, wallet)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}

	return nil
}

func (r *walletRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Wallet, error) {
	if wallet := r.getWalletFromCache(ctx, id.Hex()); wallet != nil {
		return wallet, nil
	}

	var wallet models.Wallet
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&wallet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("wallet not found")
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	r.cacheWallet(ctx, &wallet)

	return &wallet, nil
}

func (r *walletRepository) GetByVendor(ctx context.Context, vendorID primitive.ObjectID) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.collection.FindOne(ctx, bson.M{"vendor_id": vendorID}).Decode(&wallet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("wallet not found")
		}
		return nil, fmt.Errorf("failed to get wallet by vendor: %w", err)
	}

	// Cached under the wallet id so the GetByID that follows every balance
	// mutation hits.
	r.cacheWallet(ctx, &wallet)

	return &wallet, nil
}

func (r *walletRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}

	r.invalidate(ctx, id)

	return nil
}

// AddCoupon credits in one update: push entries and $inc both balance and
// total_received by the same amount, preserving the balance identity.
func (r *walletRepository) AddCoupon(ctx context.Context, walletID primitive.ObjectID, coupon *models.WalletCoupon, txn *models.WalletTransaction) error {
	filter := bson.M{
		"_id":            walletID,
		"coupons.coupon": bson.M{"$ne": coupon.Coupon},
	}

	update := bson.M{
		"$push": bson.M{
			"coupons":      coupon,
			"transactions": txn,
		},
		"$inc": bson.M{
			"current_balance": coupon.Amount,
			"total_received":  coupon.Amount,
		},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to add coupon to wallet: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("coupon already credited to wallet")
	}

	r.invalidate(ctx, walletID)

	return nil
}

// SettleCoupon debits in one update: only a pending wallet coupon matches, so
// double settlement is rejected at the database.
func (r *walletRepository) SettleCoupon(ctx context.Context, walletID, couponID primitive.ObjectID, amount float64, txn *models.WalletTransaction) error {
	filter := bson.M{
		"_id": walletID,
		"coupons": bson.M{"$elemMatch": bson.M{
			"coupon": couponID,
			"status": models.WalletCouponPending,
		}},
	}

	update := bson.M{
		"$set": bson.M{
			"coupons.$.status": models.WalletCouponSettled,
			"updated_at":       time.Now(),
		},
		"$inc": bson.M{
			"current_balance": -amount,
			"total_settled":   amount,
		},
		"$push": bson.M{"transactions": txn},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to settle wallet coupon: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("coupon not pending settlement in wallet")
	}

	r.invalidate(ctx, walletID)

	return nil
}

func (r *walletRepository) HasCoupon(ctx context.Context, walletID, couponID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"_id":            walletID,
		"coupons.coupon": couponID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check wallet coupon: %w", err)
	}
	return count > 0, nil
}

func (r *walletRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Wallet, int64, error) {
	filter := bson.M{}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count wallets: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list wallets: %w", err)
	}
	defer cursor.Close(ctx)

	var wallets []*models.Wallet
	if err := cursor.All(ctx, &wallets); err != nil {
		return nil, 0, fmt.Errorf("failed to decode wallets: %w", err)
	}

	return wallets, total, nil
}

func (r *walletRepository) GetTotalBalance(ctx context.Context) (float64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$current_balance"},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate wallet balances: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, fmt.Errorf("failed to decode aggregation: %w", err)
	}

	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Total, nil
}

func (r *walletRepository) cacheWallet(ctx context.Context, wallet *models.Wallet) {
	if r.cache != nil {
		r.cache.Set(ctx, utils.CacheWalletPrefix+wallet.ID.Hex(), wallet, defaultCacheTTL)
	}
}

func (r *walletRepository) getWalletFromCache(ctx context.Context, id string) *models.Wallet {
	if r.cache == nil {
		return nil
	}

	var wallet models.Wallet
	if err := r.cache.Get(ctx, utils.CacheWalletPrefix+id, &wallet); err != nil {
		return nil
	}

	return &wallet
}

func (r *walletRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheWalletPrefix+id.Hex())
	}
}
