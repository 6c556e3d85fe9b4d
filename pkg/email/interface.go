package email

import "context"

// EmailProvider delivers transactional mail: password resets, verification
// links and coupon copies.
type EmailProvider interface {
	SendEmail(ctx context.Context, request *EmailRequest) error
}

type EmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	HTML    bool   `json:"html"`
}
