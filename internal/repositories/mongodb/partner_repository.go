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

type partnerRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewPartnerRepository(db *mongo.Database, cache CacheService) interfaces.PartnerRepository {
	return &partnerRepository{
		collection: db.Collection("partners"),
		cache:      cache,
	}
}

func (r *partnerRepository) Create(ctx context.Context, partner *models.Partner) error {
	partner.ID = primitive.NewObjectID()
	partner.CreatedAt = time.Now()
	partner.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, partner)
	if err != nil {
		return fmt.Errorf("failed to create partner: %w", err)
	}

	return nil
}

func (r *partnerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Partner, error) {
	cacheKey := utils.CachePartnerPrefix + id.Hex()
	if r.cache != nil {
		var cached models.Partner
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var partner models.Partner
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&partner)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("partner not found")
		}
		return nil, fmt.Errorf("failed to get partner: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, partner, defaultCacheTTL)
	}

	return &partner, nil
}

func (r *partnerRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update partner: %w", err)
	}

	if r.cache != nil {
		r.cache.Delete(ctx, utils.CachePartnerPrefix+id.Hex())
	}

	return nil
}

func (r *partnerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.Update(ctx, id, map[string]interface{}{"is_active": false})
}

func (r *partnerRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Partner, int64, error) {
	filter := params.GetSearchFilter([]string{"name", "business_type", "address.city"})
	return r.findPartners(ctx, filter, params)
}

func (r *partnerRepository) GetApproved(ctx context.Context, params *utils.PaginationParams) ([]*models.Partner, int64, error) {
	filter := params.GetSearchFilter([]string{"name", "business_type", "address.city"})
	filter["status"] = models.PartnerStatusApproved
	filter["is_active"] = true
	return r.findPartners(ctx, filter, params)
}

func (r *partnerRepository) GetByCategory(ctx context.Context, category models.PartnerCategory, params *utils.PaginationParams) ([]*models.Partner, int64, error) {
	filter := params.GetSearchFilter([]string{"name", "address.city"})
	filter["category"] = category
	filter["status"] = models.PartnerStatusApproved
	filter["is_active"] = true
	return r.findPartners(ctx, filter, params)
}

func (r *partnerRepository) GetByStatus(ctx context.Context, status models.PartnerStatus, params *utils.PaginationParams) ([]*models.Partner, int64, error) {
	return r.findPartners(ctx, bson.M{"status": status}, params)
}

func (r *partnerRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Partner, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to query partners by owner: %w", err)
	}
	defer cursor.Close(ctx)

	var partners []*models.Partner
	if err := cursor.All(ctx, &partners); err != nil {
		return nil, fmt.Errorf("failed to decode partners: %w", err)
	}

	return partners, nil
}

func (r *partnerRepository) GetTotalCount(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *partnerRepository) findPartners(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Partner, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count partners: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list partners: %w", err)
	}
	defer cursor.Close(ctx)

	var partners []*models.Partner
	if err := cursor.All(ctx, &partners); err != nil {
		return nil, 0, fmt.Errorf("failed to decode partners: %w", err)
	}

	return partners, total, nil
}
