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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type couponPackageRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewCouponPackageRepository(db *mongo.Database, cache CacheService) interfaces.CouponPackageRepository {
	return &couponPackageRepository{
		collection: db.Collection("coupon_packages"),
		cache:      cache,
	}
}

func (r *couponPackageRepository) Create(ctx context.Context, pkg *models.CouponPackage) error {
	pkg.ID = primitive.NewObjectID()
	pkg.CreatedAt = time.Now()
	pkg.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, pkg)
	if err != nil {
		return fmt.Errorf("failed to create coupon package: %w", err)
	}

	r.invalidateCatalog(ctx)

	return nil
}

func (r *couponPackageRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.CouponPackage, error) {
	var pkg models.CouponPackage
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pkg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("coupon package not found")
		}
		return nil, fmt.Errorf("failed to get coupon package: %w", err)
	}

	return &pkg, nil
}

func (r *couponPackageRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update coupon package: %w", err)
	}

	r.invalidateCatalog(ctx)

	return nil
}

func (r *couponPackageRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	// Packages are retired, not removed: issued coupons keep referencing them.
	return r.Update(ctx, id, map[string]interface{}{"is_active": false})
}

func (r *couponPackageRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.CouponPackage, int64, error) {
	filter := params.GetSearchFilter([]string{"title", "category"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count coupon packages: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list coupon packages: %w", err)
	}
	defer cursor.Close(ctx)

	var packages []*models.CouponPackage
	if err := cursor.All(ctx, &packages); err != nil {
		return nil, 0, fmt.Errorf("failed to decode coupon packages: %w", err)
	}

	return packages, total, nil
}

func (r *couponPackageRepository) GetActive(ctx context.Context) ([]*models.CouponPackage, error) {
	cacheKey := utils.CachePackagePrefix + "active"
	if r.cache != nil {
		var cached []*models.CouponPackage
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	packages, err := r.findPackages(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, packages, defaultCacheTTL)
	}

	return packages, nil
}

func (r *couponPackageRepository) GetByCategory(ctx context.Context, category string) ([]*models.CouponPackage, error) {
	return r.findPackages(ctx, bson.M{"category": category, "is_active": true})
}

func (r *couponPackageRepository) findPackages(ctx context.Context, filter bson.M) ([]*models.CouponPackage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "amount", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query coupon packages: %w", err)
	}
	defer cursor.Close(ctx)

	var packages []*models.CouponPackage
	if err := cursor.All(ctx, &packages); err != nil {
		return nil, fmt.Errorf("failed to decode coupon packages: %w", err)
	}

	return packages, nil
}

func (r *couponPackageRepository) invalidateCatalog(ctx context.Context) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CachePackagePrefix+"active")
	}
}
