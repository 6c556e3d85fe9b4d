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

type couponRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewCouponRepository(db *mongo.Database, cache CacheService) interfaces.CouponRepository {
	return &couponRepository{
		collection: db.Collection("coupons"),
		cache:      cache,
	}
}

func (r *couponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	coupon.ID = primitive.NewObjectID()
	coupon.CreatedAt = time.Now()
	coupon.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, coupon)
	if err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	return nil
}

func (r *couponRepository) CreateMany(ctx context.Context, coupons []*models.Coupon) error {
	now := time.Now()
	docs := make([]interface{}, len(coupons))
	for i, c := range coupons {
		c.ID = primitive.NewObjectID()
		c.CreatedAt = now
		c.UpdatedAt = now
		docs[i] = c
	}

	_, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to create coupons: %w", err)
	}

	return nil
}

func (r *couponRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("coupon not found")
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return &coupon, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	cacheKey := utils.CacheCouponPrefix + code
	if r.cache != nil {
		var cached models.Coupon
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("coupon not found")
		}
		return nil, fmt.Errorf("failed to get coupon by code: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, coupon, defaultCacheTTL)
	}

	return &coupon, nil
}

func (r *couponRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	var coupon models.Coupon
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}).Decode(&coupon)
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}

	r.invalidate(ctx, coupon.Code)

	return nil
}

func (r *couponRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	var coupon models.Coupon
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("coupon not found")
		}
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	r.invalidate(ctx, coupon.Code)

	return nil
}

// RecordRedemption filters on used_count so two concurrent redemptions of a
// single-use coupon cannot both succeed.
func (r *couponRepository) RecordRedemption(ctx context.Context, id primitive.ObjectID, redemption *models.CouponRedemption, markRedeemed bool) error {
	filter := bson.M{
		"_id":    id,
		"status": models.CouponStatusActive,
		"$or": []bson.M{
			{"usage.is_unlimited": true},
			{"$expr": bson.M{"$lt": []string{"$usage.used_count", "$usage.max_uses"}}},
		},
	}

	update := bson.M{
		"$push": bson.M{"redemptions": redemption},
		"$inc":  bson.M{"usage.used_count": 1},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	if markRedeemed {
		update["$set"] = bson.M{
			"updated_at": time.Now(),
			"status":     models.CouponStatusRedeemed,
		}
	}

	var coupon models.Coupon
	err := r.collection.FindOneAndUpdate(ctx, filter, update).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("coupon is not redeemable")
		}
		return fmt.Errorf("failed to record redemption: %w", err)
	}

	r.invalidate(ctx, coupon.Code)

	return nil
}

func (r *couponRepository) GetByPurchaser(ctx context.Context, purchaserID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	return r.findCoupons(ctx, bson.M{"purchased_by": purchaserID}, params)
}

func (r *couponRepository) GetByPartner(ctx context.Context, partnerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	return r.findCoupons(ctx, bson.M{"partner": partnerID}, params)
}

func (r *couponRepository) GetByStatus(ctx context.Context, status models.CouponStatus, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	return r.findCoupons(ctx, bson.M{"status": status}, params)
}

func (r *couponRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	filter := params.GetSearchFilter([]string{"code", "title", "category", "beneficiary.phone"})
	return r.findCoupons(ctx, filter, params)
}

func (r *couponRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"code": code})
	if err != nil {
		return false, fmt.Errorf("failed to check coupon code: %w", err)
	}
	return count > 0, nil
}

func (r *couponRepository) GetTotalCount(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *couponRepository) GetCountByStatus(ctx context.Context, status models.CouponStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

func (r *couponRepository) findCoupons(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []*models.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, 0, fmt.Errorf("failed to decode coupons: %w", err)
	}

	return coupons, total, nil
}

func (r *couponRepository) invalidate(ctx context.Context, code string) {
	if r.cache != nil && code != "" {
		r.cache.Delete(ctx, utils.CacheCouponPrefix+code)
	}
}
