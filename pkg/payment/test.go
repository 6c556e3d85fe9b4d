package payment

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"
)

// TestProvider settles every charge instantly without touching a gateway.
// It remembers the charges it created so verification rejects unknown ids.
type TestProvider struct {
	mu      sync.Mutex
	charges map[string]*ChargeResult
}

func NewTestProvider() *TestProvider {
	return &TestProvider{
		charges: make(map[string]*ChargeResult),
	}
}

func (t *TestProvider) Name() string {
	return GatewayTest
}

func (t *TestProvider) CreateCharge(ctx context.Context, request *ChargeRequest) (*ChargeResult, error) {
	id, err := testTransactionID()
	if err != nil {
		return nil, err
	}

	result := &ChargeResult{
		OrderID:   id,
		Status:    ChargeStatusSucceeded,
		Amount:    request.Amount,
		Currency:  request.Currency,
		CreatedAt: time.Now().Unix(),
	}

	t.mu.Lock()
	t.charges[id] = result
	t.mu.Unlock()

	return result, nil
}

func (t *TestProvider) VerifyCharge(ctx context.Context, request *VerificationRequest) (*VerificationResult, error) {
	t.mu.Lock()
	charge, ok := t.charges[request.OrderID]
	t.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("unknown test charge: %s", request.OrderID)
	}

	return &VerificationResult{
		Verified:  true,
		PaymentID: charge.OrderID,
		Status:    ChargeStatusSucceeded,
		Amount:    charge.Amount,
		Currency:  charge.Currency,
	}, nil
}

func (t *TestProvider) Refund(ctx context.Context, request *RefundRequest) (*RefundResult, error) {
	id, err := testTransactionID()
	if err != nil {
		return nil, err
	}

	return &RefundResult{
		RefundID:  "RF-" + id,
		Status:    "processed",
		Amount:    request.Amount,
		Currency:  "INR",
		CreatedAt: time.Now().Unix(),
	}, nil
}

func testTransactionID() (string, error) {
	const charset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	var sb strings.Builder
	sb.WriteString("TEST-")
	for i := 0; i < 16; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		sb.WriteByte(charset[n.Int64()])
	}
	return sb.String(), nil
}
