package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusPending   CampaignStatus = "pending"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusRejected  CampaignStatus = "rejected"
)

type Campaign struct {
	ID                primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Title             string              `json:"title" bson:"title" validate:"required,min=5,max=200"`
	Description       string              `json:"description" bson:"description" validate:"required"`
	Category          string              `json:"category" bson:"category"`
	Image             string              `json:"image" bson:"image"`
	GoalAmount        float64             `json:"goalAmount" bson:"goal_amount" validate:"required,gt=0"`
	RaisedAmount      float64             `json:"raisedAmount" bson:"raised_amount" default:"0"`
	DonorCount        int64               `json:"donorCount" bson:"donor_count" default:"0"`
	Status            CampaignStatus      `json:"status" bson:"status" default:"pending"`
	CreatedBy         primitive.ObjectID  `json:"createdBy" bson:"created_by"`
	Beneficiary       *primitive.ObjectID `json:"beneficiary" bson:"beneficiary"`
	EndsAt            *time.Time          `json:"endsAt" bson:"ends_at"`
	VerificationNotes string              `json:"verificationNotes,omitempty" bson:"verification_notes"`
	RejectionReason   string              `json:"rejectionReason,omitempty" bson:"rejection_reason"`
	CreatedAt         time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt         time.Time           `json:"updatedAt" bson:"updated_at"`
}

// AcceptsDonations reports whether the campaign can receive a new donation.
func (c *Campaign) AcceptsDonations() bool {
	if c.Status != CampaignStatusActive {
		return false
	}
	if c.EndsAt != nil && time.Now().After(*c.EndsAt) {
		return false
	}
	return true
}
