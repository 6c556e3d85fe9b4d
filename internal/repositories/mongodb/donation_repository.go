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

type donationRepository struct {
	collection *mongo.Collection
}

func NewDonationRepository(db *mongo.Database) interfaces.DonationRepository {
	return &donationRepository{
		collection: db.Collection("donations"),
	}
}

func (r *donationRepository) Create(ctx context.Context, donation *models.Donation) error {
	donation.ID = primitive.NewObjectID()
	donation.CreatedAt = time.Now()
	donation.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, donation)
	if err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}

	return nil
}

func (r *donationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	var donation models.Donation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&donation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("donation not found")
		}
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}

	return &donation, nil
}

func (r *donationRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update donation: %w", err)
	}

	return nil
}

func (r *donationRepository) GetByDonor(ctx context.Context, donorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Donation, int64, error) {
	return r.findDonations(ctx, bson.M{"donor": donorID}, params)
}

func (r *donationRepository) GetByCampaign(ctx context.Context, campaignID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Donation, int64, error) {
	return r.findDonations(ctx, bson.M{"campaign": campaignID}, params)
}

func (r *donationRepository) GetByStatus(ctx context.Context, status models.DonationStatus, params *utils.PaginationParams) ([]*models.Donation, int64, error) {
	return r.findDonations(ctx, bson.M{"status": status}, params)
}

func (r *donationRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Donation, int64, error) {
	filter := params.GetSearchFilter([]string{"receipt_number", "donor_details.name", "donor_details.email"})
	return r.findDonations(ctx, filter, params)
}

func (r *donationRepository) GetByDateRange(ctx context.Context, from, to time.Time, status models.DonationStatus) ([]*models.Donation, error) {
	filter := bson.M{
		"created_at": bson.M{"$gte": from, "$lte": to},
	}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query donations by date range: %w", err)
	}
	defer cursor.Close(ctx)

	var donations []*models.Donation
	if err := cursor.All(ctx, &donations); err != nil {
		return nil, fmt.Errorf("failed to decode donations: %w", err)
	}

	return donations, nil
}

func (r *donationRepository) GetTotalCount(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *donationRepository) GetTotalAmount(ctx context.Context, status models.DonationStatus) (float64, error) {
	match := bson.M{}
	if status != "" {
		match["status"] = status
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate donation amounts: %w", err)
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

// CountDonorDonations tells the campaign updater whether this donor already
// counted toward donor_count.
func (r *donationRepository) CountDonorDonations(ctx context.Context, donorID, campaignID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"donor":    donorID,
		"campaign": campaignID,
		"status":   models.DonationStatusCompleted,
	})
}

func (r *donationRepository) findDonations(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Donation, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count donations: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list donations: %w", err)
	}
	defer cursor.Close(ctx)

	var donations []*models.Donation
	if err := cursor.All(ctx, &donations); err != nil {
		return nil, 0, fmt.Errorf("failed to decode donations: %w", err)
	}

	return donations, total, nil
}
