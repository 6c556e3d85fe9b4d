package services

import (
	"context"
	"fmt"
	"time"

	"carefund/internal/models"
	"carefund/internal/repositories/interfaces"
	"carefund/internal/utils"
	"carefund/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactService interface {
	// Submit records a public website enquiry.
	Submit(ctx context.Context, req *SubmitQueryRequest) (*models.ContactQuery, error)

	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ContactQuery, error)
	List(ctx context.Context, status models.QueryStatus, params *utils.PaginationParams) ([]*models.ContactQuery, *utils.PaginationMeta, error)

	Respond(ctx context.Context, id, adminID primitive.ObjectID, message string) (*models.ContactQuery, error)
	Close(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type SubmitQueryRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,indian_phone"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type contactService struct {
	queryRepo interfaces.ContactQueryRepository
	logger    *logger.Logger
}

func NewContactService(queryRepo interfaces.ContactQueryRepository, log *logger.Logger) ContactService {
	return &contactService{queryRepo: queryRepo, logger: log}
}

func (s *contactService) Submit(ctx context.Context, req *SubmitQueryRequest) (*models.ContactQuery, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	query := &models.ContactQuery{
		Name:    utils.SanitizeString(req.Name),
		Email:   utils.NormalizeEmail(req.Email),
		Phone:   req.Phone,
		Subject: utils.SanitizeString(req.Subject),
		Message: utils.SanitizeString(req.Message),
		Status:  models.QueryStatusOpen,
	}

	if err := s.queryRepo.Create(ctx, query); err != nil {
		return nil, err
	}

	s.logger.WithField("query_id", query.ID.Hex()).
		WithField("email", utils.MaskEmail(query.Email)).
		Info("Contact query submitted")

	return query, nil
}

func (s *contactService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ContactQuery, error) {
	return s.queryRepo.GetByID(ctx, id)
}

func (s *contactService) List(ctx context.Context, status models.QueryStatus, params *utils.PaginationParams) ([]*models.ContactQuery, *utils.PaginationMeta, error) {
	var (
		queries []*models.ContactQuery
		total   int64
		err     error
	)
	if status == "" {
		queries, total, err = s.queryRepo.List(ctx, params)
	} else {
		queries, total, err = s.queryRepo.GetByStatus(ctx, status, params)
	}
	if err != nil {
		return nil, nil, err
	}
	return queries, utils.CreatePaginationMeta(params, total), nil
}

func (s *contactService) Respond(ctx context.Context, id, adminID primitive.ObjectID, message string) (*models.ContactQuery, error) {
	if message == "" {
		return nil, fmt.Errorf("response message is required")
	}

	query, err := s.queryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if query.Status == models.QueryStatusClosed {
		return nil, fmt.Errorf("query is closed")
	}

	response := &models.QueryResponse{
		Message:     utils.SanitizeString(message),
		RespondedBy: adminID,
		RespondedAt: time.Now(),
	}

	if err := s.queryRepo.AddResponse(ctx, id, response); err != nil {
		return nil, err
	}

	s.logger.WithField("query_id", id.Hex()).WithUserID(adminID).Info("Contact query answered")

	return s.queryRepo.GetByID(ctx, id)
}

func (s *contactService) Close(ctx context.Context, id primitive.ObjectID) error {
	return s.queryRepo.Update(ctx, id, map[string]interface{}{
		"status": models.QueryStatusClosed,
	})
}

func (s *contactService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.queryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.WithField("query_id", id.Hex()).Info("Contact query deleted")
	return nil
}
