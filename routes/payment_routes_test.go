package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"carefund/internal/handlers"
	"carefund/internal/models"
	"carefund/internal/services"
	"carefund/internal/utils"
	"carefund/pkg/payment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testJWTSecret = "route-test-secret"

// stubPaymentService records which gateway each order was opened for, so the
// tests can check the per-gateway routes pin the processor server-side.
type stubPaymentService struct {
	orders   []models.PaymentGateway
	verified []string
	refunded []primitive.ObjectID
}

func (s *stubPaymentService) CreateOrder(ctx context.Context, userID primitive.ObjectID, req *services.CreateOrderRequest) (*payment.ChargeResult, error) {
	s.orders = append(s.orders, req.Gateway)
	return &payment.ChargeResult{OrderID: "order_test", Status: payment.ChargeStatusPending}, nil
}

func (s *stubPaymentService) Verify(ctx context.Context, req *services.VerifyPaymentRequest) (*models.Donation, error) {
	s.verified = append(s.verified, req.OrderID)
	return &models.Donation{Status: models.DonationStatusCompleted}, nil
}

func (s *stubPaymentService) Refund(ctx context.Context, donationID primitive.ObjectID, reason string) error {
	return nil
}

func (s *stubPaymentService) RefundPayment(ctx context.Context, paymentID primitive.ObjectID, reason string) error {
	s.refunded = append(s.refunded, paymentID)
	return nil
}

func (s *stubPaymentService) GetByID(ctx context.Context, id, actorID primitive.ObjectID, isAdmin bool) (*models.Payment, error) {
	return &models.Payment{ID: id, UserID: actorID}, nil
}

func (s *stubPaymentService) ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Payment, *utils.PaginationMeta, error) {
	return nil, utils.CreatePaginationMeta(params, 0), nil
}

func (s *stubPaymentService) Methods() []string {
	return []string{"test"}
}

func paymentTestRouter(t *testing.T) (*gin.Engine, *stubPaymentService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stub := &stubPaymentService{}
	router := gin.New()
	api := router.Group("/api/v1")
	SetupPaymentRoutes(api, handlers.NewPaymentHandler(stub), testJWTSecret)
	return router, stub
}

func bearerToken(t *testing.T, role models.UserRole) string {
	t.Helper()
	pair, err := utils.GenerateTokenPair(primitive.NewObjectID(), string(role), "user@example.com", testJWTSecret)
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func jsonRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPerGatewayOrderRoutesPinGateway(t *testing.T) {
	router, stub := paymentTestRouter(t)
	token := bearerToken(t, models.UserRoleDonor)
	donationID := primitive.NewObjectID().Hex()

	cases := []struct {
		path string
		want models.PaymentGateway
	}{
		{"/api/v1/payments/razorpay/create-order", models.GatewayRazorpay},
		{"/api/v1/payments/stripe/create-intent", models.GatewayStripe},
		{"/api/v1/payments/upi/process", models.GatewayUPI},
	}
	for i, tc := range cases {
		// The body names a different gateway; the route must win.
		rec := jsonRequest(t, router, http.MethodPost, tc.path, token, gin.H{
			"donationId": donationID,
			"gateway":    "test",
		})
		require.Equal(t, http.StatusCreated, rec.Code, tc.path)
		require.Len(t, stub.orders, i+1)
		assert.Equal(t, tc.want, stub.orders[i], tc.path)
	}
}

func TestGenericOrderAliases(t *testing.T) {
	router, stub := paymentTestRouter(t)
	token := bearerToken(t, models.UserRoleDonor)
	donationID := primitive.NewObjectID().Hex()

	for _, path := range []string{
		"/api/v1/payments/create-order",
		"/api/v1/payments/create-intent",
		"/api/v1/payments/process",
	} {
		rec := jsonRequest(t, router, http.MethodPost, path, token, gin.H{
			"donationId": donationID,
			"gateway":    "test",
		})
		assert.Equal(t, http.StatusCreated, rec.Code, path)
	}
	require.Len(t, stub.orders, 3)
	for _, gateway := range stub.orders {
		assert.Equal(t, models.GatewayTest, gateway)
	}
}

func TestOrderRoutesRequireAuth(t *testing.T) {
	router, _ := paymentTestRouter(t)

	for _, path := range []string{
		"/api/v1/payments/create-order",
		"/api/v1/payments/create-intent",
		"/api/v1/payments/process",
		"/api/v1/payments/razorpay/create-order",
		"/api/v1/payments/stripe/create-intent",
		"/api/v1/payments/upi/process",
	} {
		rec := jsonRequest(t, router, http.MethodPost, path, "", gin.H{})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestGatewayVerifyCallbacks(t *testing.T) {
	router, stub := paymentTestRouter(t)

	// The redirect callbacks carry no bearer token.
	rec := jsonRequest(t, router, http.MethodPost, "/api/v1/payments/razorpay/verify", "", gin.H{
		"razorpay_order_id":   "order_rzp1",
		"razorpay_payment_id": "pay_rzp1",
		"razorpay_signature":  "sig",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = jsonRequest(t, router, http.MethodPost, "/api/v1/payments/stripe/confirm", "", gin.H{
		"paymentIntentId": "pi_stripe1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = jsonRequest(t, router, http.MethodPost, "/api/v1/payments/verify/UPI12345", "", gin.H{
		"paymentId": "UTR123456789012",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []string{"order_rzp1", "pi_stripe1", "UPI12345"}, stub.verified)
}

func TestRazorpayVerifyRequiresOrderID(t *testing.T) {
	router, stub := paymentTestRouter(t)

	rec := jsonRequest(t, router, http.MethodPost, "/api/v1/payments/razorpay/verify", "", gin.H{
		"razorpay_payment_id": "pay_rzp1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, stub.verified)
}

func TestGetPaymentRoute(t *testing.T) {
	router, _ := paymentTestRouter(t)
	id := primitive.NewObjectID().Hex()

	rec := jsonRequest(t, router, http.MethodGet, "/api/v1/payments/"+id, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = jsonRequest(t, router, http.MethodGet, "/api/v1/payments/"+id, bearerToken(t, models.UserRoleDonor), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRefundByPaymentRouteIsAdminOnly(t *testing.T) {
	router, stub := paymentTestRouter(t)
	id := primitive.NewObjectID()
	path := "/api/v1/payments/" + id.Hex() + "/refund"
	body := gin.H{"reason": "duplicate payment"}

	rec := jsonRequest(t, router, http.MethodPost, path, bearerToken(t, models.UserRoleDonor), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, stub.refunded)

	rec = jsonRequest(t, router, http.MethodPost, path, bearerToken(t, models.UserRoleAdmin), body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, stub.refunded, 1)
	assert.Equal(t, id, stub.refunded[0])
}
