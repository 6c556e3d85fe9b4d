package payment

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
)

var utrPattern = regexp.MustCompile(`^[A-Za-z0-9]{10,22}$`)

// UPIProvider handles direct VPA transfers. There is no gateway API behind it:
// the donor pays the organisation's UPI handle and submits the UTR number,
// which stays pending until reconciled against the bank statement.
type UPIProvider struct {
	vpaHandle string
	payeeName string
}

func NewUPIProvider(vpaHandle, payeeName string) *UPIProvider {
	return &UPIProvider{
		vpaHandle: vpaHandle,
		payeeName: payeeName,
	}
}

func (u *UPIProvider) Name() string {
	return GatewayUPI
}

func (u *UPIProvider) CreateCharge(ctx context.Context, request *ChargeRequest) (*ChargeResult, error) {
	reference, err := newUPIReference()
	if err != nil {
		return nil, fmt.Errorf("failed to generate upi reference: %w", err)
	}

	return &ChargeResult{
		OrderID:   reference,
		Status:    ChargeStatusPending,
		Amount:    request.Amount,
		Currency:  request.Currency,
		UPIHandle: u.vpaHandle,
		CreatedAt: time.Now().Unix(),
	}, nil
}

// VerifyCharge records the donor-submitted UTR. The result stays pending:
// settlement is confirmed manually, not by this call.
func (u *UPIProvider) VerifyCharge(ctx context.Context, request *VerificationRequest) (*VerificationResult, error) {
	utr := strings.TrimSpace(request.PaymentID)
	if !utrPattern.MatchString(utr) {
		return nil, fmt.Errorf("invalid utr number: %q", request.PaymentID)
	}

	return &VerificationResult{
		Verified:  true,
		PaymentID: utr,
		Status:    ChargeStatusPending,
	}, nil
}

func (u *UPIProvider) Refund(ctx context.Context, request *RefundRequest) (*RefundResult, error) {
	return nil, ErrUnsupported
}

func newUPIReference() (string, error) {
	const digits = "0123456789"
	var sb strings.Builder
	sb.WriteString("UPI")
	for i := 0; i < 12; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		sb.WriteByte(digits[n.Int64()])
	}
	return sb.String(), nil
}
