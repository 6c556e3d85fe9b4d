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

type campaignRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewCampaignRepository(db *mongo.Database, cache CacheService) interfaces.CampaignRepository {
	return &campaignRepository{
		collection: db.Collection("campaigns"),
		cache:      cache,
	}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	campaign.ID = primitive.NewObjectID()
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, campaign)
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	cacheKey := utils.CacheCampaignPrefix + id.Hex()
	if r.cache != nil {
		var cached models.Campaign
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var campaign models.Campaign
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&campaign)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("campaign not found")
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, campaign, defaultCacheTTL)
	}

	return &campaign, nil
}

func (r *campaignRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *campaignRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *campaignRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Campaign, int64, error) {
	filter := params.GetSearchFilter([]string{"title", "description", "category"})
	return r.findCampaigns(ctx, filter, params)
}

func (r *campaignRepository) GetByStatus(ctx context.Context, status models.CampaignStatus, params *utils.PaginationParams) ([]*models.Campaign, int64, error) {
	filter := params.GetSearchFilter([]string{"title", "description"})
	filter["status"] = status
	return r.findCampaigns(ctx, filter, params)
}

func (r *campaignRepository) GetByCategory(ctx context.Context, category string, params *utils.PaginationParams) ([]*models.Campaign, int64, error) {
	return r.findCampaigns(ctx, bson.M{"category": category, "status": models.CampaignStatusActive}, params)
}

func (r *campaignRepository) GetByCreator(ctx context.Context, creatorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Campaign, int64, error) {
	return r.findCampaigns(ctx, bson.M{"created_by": creatorID}, params)
}

// IncrementRaisedAmount uses $inc so concurrent donation completions never
// lose updates.
func (r *campaignRepository) IncrementRaisedAmount(ctx context.Context, id primitive.ObjectID, amount float64, newDonor bool) error {
	inc := bson.M{"raised_amount": amount}
	if newDonor {
		inc["donor_count"] = 1
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": inc,
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to increment raised amount: %w", err)
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *campaignRepository) GetTotalCount(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *campaignRepository) GetTotalRaised(ctx context.Context) (float64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$raised_amount"},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate raised amounts: %w", err)
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

func (r *campaignRepository) findCampaigns(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Campaign, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer cursor.Close(ctx)

	var campaigns []*models.Campaign
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, 0, fmt.Errorf("failed to decode campaigns: %w", err)
	}

	return campaigns, total, nil
}

func (r *campaignRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheCampaignPrefix+id.Hex())
	}
}
