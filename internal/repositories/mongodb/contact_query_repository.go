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

type contactQueryRepository struct {
	collection *mongo.Collection
}

func NewContactQueryRepository(db *mongo.Database) interfaces.ContactQueryRepository {
	return &contactQueryRepository{
		collection: db.Collection("contact_queries"),
	}
}

func (r *contactQueryRepository) Create(ctx context.Context, query *models.ContactQuery) error {
	query.ID = primitive.NewObjectID()
	query.CreatedAt = time.Now()
	query.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create contact query: %w", err)
	}

	return nil
}

func (r *contactQueryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ContactQuery, error) {
	var query models.ContactQuery
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&query)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("contact query not found")
		}
		return nil, fmt.Errorf("failed to get contact query: %w", err)
	}

	return &query, nil
}

func (r *contactQueryRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update contact query: %w", err)
	}

	return nil
}

func (r *contactQueryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete contact query: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("contact query not found")
	}

	return nil
}

func (r *contactQueryRepository) AddResponse(ctx context.Context, id primitive.ObjectID, response *models.QueryResponse) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"responses": response},
		"$set": bson.M{
			"status":     models.QueryStatusResolved,
			"updated_at": time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to add query response: %w", err)
	}

	return nil
}

func (r *contactQueryRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.ContactQuery, int64, error) {
	filter := params.GetSearchFilter([]string{"name", "email", "subject"})
	return r.findQueries(ctx, filter, params)
}

func (r *contactQueryRepository) GetByStatus(ctx context.Context, status models.QueryStatus, params *utils.PaginationParams) ([]*models.ContactQuery, int64, error) {
	return r.findQueries(ctx, bson.M{"status": status}, params)
}

func (r *contactQueryRepository) findQueries(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.ContactQuery, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count contact queries: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contact queries: %w", err)
	}
	defer cursor.Close(ctx)

	var queries []*models.ContactQuery
	if err := cursor.All(ctx, &queries); err != nil {
		return nil, 0, fmt.Errorf("failed to decode contact queries: %w", err)
	}

	return queries, total, nil
}
