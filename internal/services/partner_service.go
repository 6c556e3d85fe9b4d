package services

import (
	"bytes"
	"context"
	"fmt"

	"carefund/internal/models"
	"carefund/internal/repositories/interfaces"
	"carefund/internal/utils"
	"carefund/pkg/logger"
	"carefund/pkg/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PartnerService interface {
	Register(ctx context.Context, ownerID primitive.ObjectID, req *RegisterPartnerRequest) (*models.Partner, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Partner, error)
	Update(ctx context.Context, id, actorID primitive.ObjectID, isAdmin bool, req *UpdatePartnerRequest) (*models.Partner, error)

	// ListDirectory serves the public medical/food partner directories;
	// only approved, active partners appear.
	ListDirectory(ctx context.Context, category models.PartnerCategory, params *utils.PaginationParams) ([]*models.Partner, *utils.PaginationMeta, error)

	// ListPublic is the cross-category public listing, same visibility rules
	// as the directories.
	ListPublic(ctx context.Context, params *utils.PaginationParams) ([]*models.Partner, *utils.PaginationMeta, error)
	ListMine(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Partner, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Partner, *utils.PaginationMeta, error)

	UploadImage(ctx context.Context, id, actorID primitive.ObjectID, isAdmin bool, filename string, data []byte) (string, error)

	Approve(ctx context.Context, id primitive.ObjectID, notes string) error
	Reject(ctx context.Context, id primitive.ObjectID, reason string) error
}

type RegisterPartnerRequest struct {
	Name           string                 `json:"name" validate:"required,min=2,max=150"`
	BusinessType   string                 `json:"businessType"`
	Category       models.PartnerCategory `json:"category" validate:"required"`
	Description    string                 `json:"description"`
	ContactPerson  models.ContactPerson   `json:"contactPerson"`
	Address        models.PartnerAddress  `json:"address"`
	OperatingHours models.OperatingHours  `json:"operatingHours"`
}

type UpdatePartnerRequest struct {
	Name           string                 `json:"name" validate:"omitempty,min=2,max=150"`
	BusinessType   string                 `json:"businessType"`
	Description    string                 `json:"description"`
	ContactPerson  *models.ContactPerson  `json:"contactPerson"`
	Address        *models.PartnerAddress `json:"address"`
	OperatingHours *models.OperatingHours `json:"operatingHours"`
}

type partnerService struct {
	partnerRepo interfaces.PartnerRepository
	storage     storage.StorageProvider
	logger      *logger.Logger
}

func NewPartnerService(partnerRepo interfaces.PartnerRepository, store storage.StorageProvider, log *logger.Logger) PartnerService {
	return &partnerService{
		partnerRepo: partnerRepo,
		storage:     store,
		logger:      log,
	}
}

func (s *partnerService) Register(ctx context.Context, ownerID primitive.ObjectID, req *RegisterPartnerRequest) (*models.Partner, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !models.ValidPartnerCategory(req.Category) {
		return nil, fmt.Errorf("unknown partner category %q", req.Category)
	}

	partner := &models.Partner{
		Name:           utils.SanitizeString(req.Name),
		BusinessType:   req.BusinessType,
		Category:       req.Category,
		Description:    req.Description,
		ContactPerson:  req.ContactPerson,
		Address:        req.Address,
		OperatingHours: req.OperatingHours,
		Status:         models.PartnerStatusPending,
		IsActive:       true,
		Owner:          &ownerID,
	}

	if err := s.partnerRepo.Create(ctx, partner); err != nil {
		return nil, err
	}

	s.logger.WithField("partner_id", partner.ID.Hex()).WithUserID(ownerID).Info("Partner registered")

	return partner, nil
}

func (s *partnerService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Partner, error) {
	return s.partnerRepo.GetByID(ctx, id)
}

func (s *partnerService) Update(ctx context.Context, id, actorID primitive.ObjectID, isAdmin bool, req *UpdatePartnerRequest) (*models.Partner, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	partner, err := s.partnerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && (partner.Owner == nil || *partner.Owner != actorID) {
		return nil, fmt.Errorf(utils.ErrForbidden)
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = utils.SanitizeString(req.Name)
	}
	if req.BusinessType != "" {
		updates["business_type"] = req.BusinessType
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.ContactPerson != nil {
		updates["contact_person"] = req.ContactPerson
	}
	if req.Address != nil {
		updates["address"] = req.Address
	}
	if req.OperatingHours != nil {
		updates["operating_hours"] = req.OperatingHours
	}

	if len(updates) > 0 {
		if err := s.partnerRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.partnerRepo.GetByID(ctx, id)
}

func (s *partnerService) ListDirectory(ctx context.Context, category models.PartnerCategory, params *utils.PaginationParams) ([]*models.Partner, *utils.PaginationMeta, error) {
	if !models.ValidPartnerCategory(category) {
		return nil, nil, fmt.Errorf("unknown partner category %q", category)
	}

	partners, total, err := s.partnerRepo.GetByCategory(ctx, category, params)
	if err != nil {
		return nil, nil, err
	}
	return partners, utils.CreatePaginationMeta(params, total), nil
}

func (s *partnerService) ListPublic(ctx context.Context, params *utils.PaginationParams) ([]*models.Partner, *utils.PaginationMeta, error) {
	partners, total, err := s.partnerRepo.GetApproved(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	return partners, utils.CreatePaginationMeta(params, total), nil
}

func (s *partnerService) ListMine(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Partner, error) {
	return s.partnerRepo.GetByOwner(ctx, ownerID)
}

func (s *partnerService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Partner, *utils.PaginationMeta, error) {
	partners, total, err := s.partnerRepo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	return partners, utils.CreatePaginationMeta(params, total), nil
}

// UploadImage resizes the image to the thumbnail budget and appends its URL
// to the partner's gallery. Only the partner's owner or an admin may add to
// the public gallery.
func (s *partnerService) UploadImage(ctx context.Context, id, actorID primitive.ObjectID, isAdmin bool, filename string, data []byte) (string, error) {
	if !utils.IsAllowedImage(filename) {
		return "", fmt.Errorf("unsupported image format")
	}
	if int64(len(data)) > utils.MaxImageSize {
		return "", fmt.Errorf("image exceeds the size limit")
	}

	partner, err := s.partnerRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !isAdmin && (partner.Owner == nil || *partner.Owner != actorID) {
		return "", fmt.Errorf(utils.ErrForbidden)
	}

	resized, err := utils.ResizeImageBytes(data, filename, utils.PartnerThumbSize)
	if err != nil {
		return "", fmt.Errorf("failed to process image: %w", err)
	}

	key := fmt.Sprintf("partners/%s/%s-%s", id.Hex(), uuid.NewString()[:8], filename)
	upload, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      bytes.NewReader(resized),
		ContentType: "image/" + imageFormat(filename),
		Size:        int64(len(resized)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store partner image: %w", err)
	}

	images := append(partner.Images, upload.URL)
	if err := s.partnerRepo.Update(ctx, id, map[string]interface{}{
		"images": images,
	}); err != nil {
		return "", err
	}

	return upload.URL, nil
}

func (s *partnerService) Approve(ctx context.Context, id primitive.ObjectID, notes string) error {
	partner, err := s.partnerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if partner.Status == models.PartnerStatusApproved {
		return nil
	}

	if err := s.partnerRepo.Update(ctx, id, map[string]interface{}{
		"status":             models.PartnerStatusApproved,
		"verification_notes": notes,
		"rejection_reason":   "",
	}); err != nil {
		return err
	}

	s.logger.WithField("partner_id", id.Hex()).Info("Partner approved")
	return nil
}

func (s *partnerService) Reject(ctx context.Context, id primitive.ObjectID, reason string) error {
	if reason == "" {
		return fmt.Errorf("rejection reason is required")
	}

	if err := s.partnerRepo.Update(ctx, id, map[string]interface{}{
		"status":           models.PartnerStatusRejected,
		"rejection_reason": reason,
	}); err != nil {
		return err
	}

	s.logger.WithField("partner_id", id.Hex()).WithField("reason", reason).Info("Partner rejected")
	return nil
}

func imageFormat(filename string) string {
	if len(filename) > 4 && filename[len(filename)-4:] == ".png" {
		return "png"
	}
	return "jpeg"
}
