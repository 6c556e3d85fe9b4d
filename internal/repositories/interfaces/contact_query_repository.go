package interfaces

import (
	"context"

	"carefund/internal/models"
	"carefund/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactQueryRepository interface {
	Create(ctx context.Context, query *models.ContactQuery) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ContactQuery, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	AddResponse(ctx context.Context, id primitive.ObjectID, response *models.QueryResponse) error

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.ContactQuery, int64, error)
	GetByStatus(ctx context.Context, status models.QueryStatus, params *utils.PaginationParams) ([]*models.ContactQuery, int64, error)
}
