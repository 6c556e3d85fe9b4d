package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QueryStatus string

const (
	QueryStatusOpen     QueryStatus = "open"
	QueryStatusPending  QueryStatus = "pending"
	QueryStatusResolved QueryStatus = "resolved"
	QueryStatusClosed   QueryStatus = "closed"
)

type QueryResponse struct {
	Message     string             `json:"message" bson:"message"`
	RespondedBy primitive.ObjectID `json:"respondedBy" bson:"responded_by"`
	RespondedAt time.Time          `json:"respondedAt" bson:"responded_at"`
}

// ContactQuery is a website enquiry managed from the admin console.
type ContactQuery struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required"`
	Email     string             `json:"email" bson:"email" validate:"required,email"`
	Phone     string             `json:"phone" bson:"phone" validate:"omitempty,indian_phone"`
	Subject   string             `json:"subject" bson:"subject"`
	Message   string             `json:"message" bson:"message" validate:"required"`
	Status    QueryStatus        `json:"status" bson:"status" default:"open"`
	Responses []QueryResponse    `json:"responses,omitempty" bson:"responses"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}
