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

type CampaignService interface {
	Create(ctx context.Context, creatorID primitive.ObjectID, req *CreateCampaignRequest) (*models.Campaign, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error)
	Update(ctx context.Context, id, actorID primitive.ObjectID, isAdmin bool, req *UpdateCampaignRequest) (*models.Campaign, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Campaign, *utils.PaginationMeta, error)
	ListActive(ctx context.Context, category string, params *utils.PaginationParams) ([]*models.Campaign, *utils.PaginationMeta, error)
	ListMine(ctx context.Context, creatorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Campaign, *utils.PaginationMeta, error)

	Approve(ctx context.Context, id primitive.ObjectID, notes string) error
	Reject(ctx context.Context, id primitive.ObjectID, reason string) error
	Pause(ctx context.Context, id primitive.ObjectID) error
	Resume(ctx context.Context, id primitive.ObjectID) error
}

type CreateCampaignRequest struct {
	Title       string     `json:"title" validate:"required,min=5,max=200"`
	Description string     `json:"description" validate:"required"`
	Category    string     `json:"category"`
	Image       string     `json:"image"`
	GoalAmount  float64    `json:"goalAmount" validate:"required,gt=0"`
	Beneficiary string     `json:"beneficiary"`
	EndsAt      *time.Time `json:"endsAt"`
}

type UpdateCampaignRequest struct {
	Title       string     `json:"title" validate:"omitempty,min=5,max=200"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Image       string     `json:"image"`
	GoalAmount  float64    `json:"goalAmount" validate:"omitempty,gt=0"`
	EndsAt      *time.Time `json:"endsAt"`
}

type campaignService struct {
	campaignRepo interfaces.CampaignRepository
	logger       *logger.Logger
}

func NewCampaignService(campaignRepo interfaces.CampaignRepository, log *logger.Logger) CampaignService {
	return &campaignService{
		campaignRepo: campaignRepo,
		logger:       log,
	}
}

func (s *campaignService) Create(ctx context.Context, creatorID primitive.ObjectID, req *CreateCampaignRequest) (*models.Campaign, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		Title:       utils.SanitizeString(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		GoalAmount:  req.GoalAmount,
		Status:      models.CampaignStatusPending,
		CreatedBy:   creatorID,
		EndsAt:      req.EndsAt,
	}

	if req.Beneficiary != "" {
		beneficiaryID, err := primitive.ObjectIDFromHex(req.Beneficiary)
		if err != nil {
			return nil, fmt.Errorf("invalid beneficiary id")
		}
		campaign.Beneficiary = &beneficiaryID
	}

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, err
	}

	s.logger.WithField("campaign_id", campaign.ID.Hex()).WithUserID(creatorID).Info("Campaign created")

	return campaign, nil
}

func (s *campaignService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	return s.campaignRepo.GetByID(ctx, id)
}

func (s *campaignService) Update(ctx context.Context, id, actorID primitive.ObjectID, isAdmin bool, req *UpdateCampaignRequest) (*models.Campaign, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && campaign.CreatedBy != actorID {
		return nil, fmt.Errorf(utils.ErrForbidden)
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = utils.SanitizeString(req.Title)
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Image != "" {
		updates["image"] = req.Image
	}
	if req.GoalAmount > 0 {
		updates["goal_amount"] = req.GoalAmount
	}
	if req.EndsAt != nil {
		updates["ends_at"] = req.EndsAt
	}

	if len(updates) > 0 {
		if err := s.campaignRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.campaignRepo.GetByID(ctx, id)
}

func (s *campaignService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Campaign, *utils.PaginationMeta, error) {
	campaigns, total, err := s.campaignRepo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	return campaigns, utils.CreatePaginationMeta(params, total), nil
}

func (s *campaignService) ListActive(ctx context.Context, category string, params *utils.PaginationParams) ([]*models.Campaign, *utils.PaginationMeta, error) {
	var (
		campaigns []*models.Campaign
		total     int64
		err       error
	)

	if category != "" {
		campaigns, total, err = s.campaignRepo.GetByCategory(ctx, category, params)
	} else {
		campaigns, total, err = s.campaignRepo.GetByStatus(ctx, models.CampaignStatusActive, params)
	}
	if err != nil {
		return nil, nil, err
	}

	return campaigns, utils.CreatePaginationMeta(params, total), nil
}

func (s *campaignService) ListMine(ctx context.Context, creatorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Campaign, *utils.PaginationMeta, error) {
	campaigns, total, err := s.campaignRepo.GetByCreator(ctx, creatorID, params)
	if err != nil {
		return nil, nil, err
	}
	return campaigns, utils.CreatePaginationMeta(params, total), nil
}

func (s *campaignService) Approve(ctx context.Context, id primitive.ObjectID, notes string) error {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if campaign.Status != models.CampaignStatusPending && campaign.Status != models.CampaignStatusDraft {
		return fmt.Errorf("campaign is not awaiting review")
	}

	if err := s.campaignRepo.Update(ctx, id, map[string]interface{}{
		"status":             models.CampaignStatusActive,
		"verification_notes": notes,
		"rejection_reason":   "",
	}); err != nil {
		return err
	}

	s.logger.WithField("campaign_id", id.Hex()).Info("Campaign approved")
	return nil
}

func (s *campaignService) Reject(ctx context.Context, id primitive.ObjectID, reason string) error {
	if reason == "" {
		return fmt.Errorf("rejection reason is required")
	}

	if err := s.campaignRepo.Update(ctx, id, map[string]interface{}{
		"status":           models.CampaignStatusRejected,
		"rejection_reason": reason,
	}); err != nil {
		return err
	}

	s.logger.WithField("campaign_id", id.Hex()).WithField("reason", reason).Info("Campaign rejected")
	return nil
}

func (s *campaignService) Pause(ctx context.Context, id primitive.ObjectID) error {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if campaign.Status != models.CampaignStatusActive {
		return fmt.Errorf("only active campaigns can be paused")
	}

	return s.campaignRepo.Update(ctx, id, map[string]interface{}{
		"status": models.CampaignStatusPaused,
	})
}

func (s *campaignService) Resume(ctx context.Context, id primitive.ObjectID) error {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if campaign.Status != models.CampaignStatusPaused {
		return fmt.Errorf("only paused campaigns can be resumed")
	}

	return s.campaignRepo.Update(ctx, id, map[string]interface{}{
		"status": models.CampaignStatusActive,
	})
}
