package services

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"carefund/internal/models"
	"carefund/internal/utils"
	"carefund/pkg/email"
	"carefund/pkg/logger"
	"carefund/pkg/sms"
	"carefund/pkg/storage"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes backing the service tests. Updates only apply
// the document keys the services actually write.

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: "panic", Format: "text"})
	require.NoError(t, err)
	log.SetOutput(io.Discard)
	return log
}

// --- cache ---

type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	v, ok := f.data[key]
	if !ok {
		return fmt.Errorf("cache key not found")
	}
	s, ok := dest.(*string)
	if !ok {
		return fmt.Errorf("unsupported destination type")
	}
	*s = v
	return nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.data[key] = fmt.Sprintf("%v", value)
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.data[key]
	return ok, nil
}

func (f *fakeCache) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = fmt.Sprintf("%v", value)
	return true, nil
}

func (f *fakeCache) CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error) {
	return &RateLimitResult{Allowed: true, Count: 1, Remaining: limit - 1}, nil
}

// --- messaging ---

type fakeMailer struct {
	sent []*email.EmailRequest
}

func (f *fakeMailer) SendEmail(ctx context.Context, request *email.EmailRequest) error {
	f.sent = append(f.sent, request)
	return nil
}

type fakeSMS struct {
	sent []*sms.SMSRequest
	bulk [][]*sms.SMSRequest
}

func (f *fakeSMS) SendSMS(ctx context.Context, request *sms.SMSRequest) (*sms.SMSResponse, error) {
	f.sent = append(f.sent, request)
	return &sms.SMSResponse{MessageID: "test", Status: "sent"}, nil
}

func (f *fakeSMS) SendBulkSMS(ctx context.Context, requests []*sms.SMSRequest) ([]*sms.SMSResponse, error) {
	f.bulk = append(f.bulk, requests)
	out := make([]*sms.SMSResponse, len(requests))
	for i := range requests {
		out[i] = &sms.SMSResponse{MessageID: "test", Status: "sent"}
	}
	return out, nil
}

// --- storage ---

type fakeStorage struct {
	uploads map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(ctx context.Context, request *storage.UploadRequest) (*storage.UploadResponse, error) {
	data, err := io.ReadAll(request.Reader)
	if err != nil {
		return nil, err
	}
	f.uploads[request.Key] = data
	return &storage.UploadResponse{
		Key:  request.Key,
		URL:  "https://cdn.test/" + request.Key,
		Size: int64(len(data)),
	}, nil
}

func (f *fakeStorage) Download(ctx context.Context, key string) (*storage.DownloadResponse, error) {
	return nil, fmt.Errorf("file not found")
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	delete(f.uploads, key)
	return nil
}

func (f *fakeStorage) GetURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return "https://cdn.test/" + key, nil
}

func (f *fakeStorage) FileExists(ctx context.Context, key string) (bool, error) {
	_, ok := f.uploads[key]
	return ok, nil
}

// --- users ---

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	for k, v := range updates {
		switch k {
		case "name":
			u.Name = v.(string)
		case "phone":
			u.Phone = v.(string)
		case "address":
			u.Address = v.(string)
		case "profile_picture":
			u.ProfilePicture = v.(string)
		case "password":
			u.Password = v.(string)
		case "is_active":
			u.IsActive = v.(bool)
		case "status":
			u.Status = v.(models.UserStatus)
		case "role":
			u.Role = v.(models.UserRole)
		}
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("user not found")
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserRepo) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	for _, u := range f.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserRepo) UpdateEmailVerification(ctx context.Context, id primitive.ObjectID, verified bool) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	u.IsVerified = verified
	now := time.Now()
	u.EmailVerifiedAt = &now
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	now := time.Now()
	u.LastLoginAt = &now
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) GetByRole(ctx context.Context, role models.UserRole, params *utils.PaginationParams) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) GetTotalCount(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) GetCountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// --- campaigns ---

type fakeCampaignRepo struct {
	campaigns map[primitive.ObjectID]*models.Campaign
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{campaigns: make(map[primitive.ObjectID]*models.Campaign)}
}

func (f *fakeCampaignRepo) Create(ctx context.Context, campaign *models.Campaign) error {
	campaign.ID = primitive.NewObjectID()
	campaign.CreatedAt = time.Now()
	f.campaigns[campaign.ID] = campaign
	return nil
}

func (f *fakeCampaignRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign not found")
	}
	return c, nil
}

func (f *fakeCampaignRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	c, ok := f.campaigns[id]
	if !ok {
		return fmt.Errorf("campaign not found")
	}
	for k, v := range updates {
		switch k {
		case "status":
			c.Status = v.(models.CampaignStatus)
		case "title":
			c.Title = v.(string)
		case "description":
			c.Description = v.(string)
		case "category":
			c.Category = v.(string)
		case "image":
			c.Image = v.(string)
		case "goal_amount":
			c.GoalAmount = v.(float64)
		case "ends_at":
			c.EndsAt = v.(*time.Time)
		case "verification_notes":
			c.VerificationNotes = v.(string)
		case "rejection_reason":
			c.RejectionReason = v.(string)
		}
	}
	return nil
}

func (f *fakeCampaignRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.campaigns, id)
	return nil
}

func (f *fakeCampaignRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Campaign, int64, error) {
	var out []*models.Campaign
	for _, c := range f.campaigns {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCampaignRepo) GetByStatus(ctx context.Context, status models.CampaignStatus, params *utils.PaginationParams) ([]*models.Campaign, int64, error) {
	var out []*models.Campaign
	for _, c := range f.campaigns {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCampaignRepo) GetByCategory(ctx context.Context, category string, params *utils.PaginationParams) ([]*models.Campaign, int64, error) {
	var out []*models.Campaign
	for _, c := range f.campaigns {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCampaignRepo) GetByCreator(ctx context.Context, creatorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Campaign, int64, error) {
	var out []*models.Campaign
	for _, c := range f.campaigns {
		if c.CreatedBy == creatorID {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCampaignRepo) IncrementRaisedAmount(ctx context.Context, id primitive.ObjectID, amount float64, newDonor bool) error {
	c, ok := f.campaigns[id]
	if !ok {
		return fmt.Errorf("campaign not found")
	}
	c.RaisedAmount += amount
	if newDonor {
		c.DonorCount++
	}
	return nil
}

func (f *fakeCampaignRepo) GetTotalCount(ctx context.Context) (int64, error) {
	return int64(len(f.campaigns)), nil
}

func (f *fakeCampaignRepo) GetTotalRaised(ctx context.Context) (float64, error) {
	var total float64
	for _, c := range f.campaigns {
		total += c.RaisedAmount
	}
	return total, nil
}

// --- donations ---

type fakeDonationRepo struct {
	donations map[primitive.ObjectID]*models.Donation
}

func newFakeDonationRepo() *fakeDonationRepo {
	return &fakeDonationRepo{donations: make(map[primitive.ObjectID]*models.Donation)}
}

func (f *fakeDonationRepo) Create(ctx context.Context, donation *models.Donation) error {
	donation.ID = primitive.NewObjectID()
	donation.CreatedAt = time.Now()
	f.donations[donation.ID] = donation
	return nil
}

func (f *fakeDonationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	d, ok := f.donations[id]
	if !ok {
		return nil, fmt.Errorf("donation not found")
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDonationRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	d, ok := f.donations[id]
	if !ok {
		return fmt.Errorf("donation not found")
	}
	for k, v := range updates {
		switch k {
		case "status":
			d.Status = v.(models.DonationStatus)
		case "payment_details":
			d.PaymentDetails = v.(*models.PaymentDetails)
		case "receipt_number":
			d.ReceiptNumber = v.(string)
		case "completed_at":
			t := v.(time.Time)
			d.CompletedAt = &t
		case "refund_reason":
			d.RefundReason = v.(string)
		case "refunded_at":
			t := v.(time.Time)
			d.RefundedAt = &t
		}
	}
	return nil
}

func (f *fakeDonationRepo) GetByDonor(ctx context.Context, donorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Donation, int64, error) {
	var out []*models.Donation
	for _, d := range f.donations {
		if d.Donor != nil && *d.Donor == donorID {
			out = append(out, d)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeDonationRepo) GetByCampaign(ctx context.Context, campaignID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Donation, int64, error) {
	var out []*models.Donation
	for _, d := range f.donations {
		if d.Campaign == campaignID {
			out = append(out, d)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeDonationRepo) GetByStatus(ctx context.Context, status models.DonationStatus, params *utils.PaginationParams) ([]*models.Donation, int64, error) {
	var out []*models.Donation
	for _, d := range f.donations {
		if d.Status == status {
			out = append(out, d)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeDonationRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Donation, int64, error) {
	var out []*models.Donation
	for _, d := range f.donations {
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

func (f *fakeDonationRepo) GetByDateRange(ctx context.Context, from, to time.Time, status models.DonationStatus) ([]*models.Donation, error) {
	var out []*models.Donation
	for _, d := range f.donations {
		if d.CreatedAt.Before(from) || d.CreatedAt.After(to) {
			continue
		}
		if status != "" && d.Status != status {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDonationRepo) GetTotalCount(ctx context.Context) (int64, error) {
	return int64(len(f.donations)), nil
}

func (f *fakeDonationRepo) GetTotalAmount(ctx context.Context, status models.DonationStatus) (float64, error) {
	var total float64
	for _, d := range f.donations {
		if d.Status == status {
			total += d.Amount
		}
	}
	return total, nil
}

func (f *fakeDonationRepo) CountDonorDonations(ctx context.Context, donorID, campaignID primitive.ObjectID) (int64, error) {
	var n int64
	for _, d := range f.donations {
		if d.Donor != nil && *d.Donor == donorID && d.Campaign == campaignID && d.Status == models.DonationStatusCompleted {
			n++
		}
	}
	return n, nil
}

// --- coupons ---

type fakeCouponRepo struct {
	coupons map[primitive.ObjectID]*models.Coupon
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{coupons: make(map[primitive.ObjectID]*models.Coupon)}
}

func (f *fakeCouponRepo) Create(ctx context.Context, coupon *models.Coupon) error {
	coupon.ID = primitive.NewObjectID()
	coupon.CreatedAt = time.Now()
	f.coupons[coupon.ID] = coupon
	return nil
}

func (f *fakeCouponRepo) CreateMany(ctx context.Context, coupons []*models.Coupon) error {
	for _, c := range coupons {
		if err := f.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeCouponRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	c, ok := f.coupons[id]
	if !ok {
		return nil, fmt.Errorf("coupon not found")
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	for _, c := range f.coupons {
		if c.Code == code {
			copied := *c
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("coupon not found")
}

func (f *fakeCouponRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	c, ok := f.coupons[id]
	if !ok {
		return fmt.Errorf("coupon not found")
	}
	for k, v := range updates {
		switch k {
		case "status":
			c.Status = v.(models.CouponStatus)
		case "title":
			c.Title = v.(string)
		case "rejected_for":
			c.RejectedFor = v.(string)
		case "beneficiary":
			c.Beneficiary = v.(*models.CouponBeneficiary)
		case "partner":
			pid := v.(primitive.ObjectID)
			c.Partner = &pid
		case "validity.end_date":
			c.Validity.EndDate = v.(time.Time)
		case "validity.is_active":
			c.Validity.IsActive = v.(bool)
		case "usage.max_uses":
			c.Usage.MaxUses = v.(int)
		}
	}
	return nil
}

func (f *fakeCouponRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.coupons[id]; !ok {
		return fmt.Errorf("coupon not found")
	}
	delete(f.coupons, id)
	return nil
}

func (f *fakeCouponRepo) RecordRedemption(ctx context.Context, id primitive.ObjectID, redemption *models.CouponRedemption, markRedeemed bool) error {
	c, ok := f.coupons[id]
	if !ok {
		return fmt.Errorf("coupon not found")
	}
	if !c.Usage.IsUnlimited && c.Usage.UsedCount >= c.Usage.MaxUses {
		return fmt.Errorf("coupon usage limit reached")
	}
	c.Redemptions = append(c.Redemptions, *redemption)
	c.Usage.UsedCount++
	if markRedeemed {
		c.Status = models.CouponStatusRedeemed
	}
	return nil
}

func (f *fakeCouponRepo) GetByPurchaser(ctx context.Context, purchaserID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	var out []*models.Coupon
	for _, c := range f.coupons {
		if c.PurchasedBy != nil && *c.PurchasedBy == purchaserID {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCouponRepo) GetByPartner(ctx context.Context, partnerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	var out []*models.Coupon
	for _, c := range f.coupons {
		if c.Partner != nil && *c.Partner == partnerID {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCouponRepo) GetByStatus(ctx context.Context, status models.CouponStatus, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	var out []*models.Coupon
	for _, c := range f.coupons {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCouponRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	var out []*models.Coupon
	for _, c := range f.coupons {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCouponRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	for _, c := range f.coupons {
		if c.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCouponRepo) GetTotalCount(ctx context.Context) (int64, error) {
	return int64(len(f.coupons)), nil
}

func (f *fakeCouponRepo) GetCountByStatus(ctx context.Context, status models.CouponStatus) (int64, error) {
	var n int64
	for _, c := range f.coupons {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

// --- coupon packages ---

type fakePackageRepo struct {
	packages map[primitive.ObjectID]*models.CouponPackage
}

func newFakePackageRepo() *fakePackageRepo {
	return &fakePackageRepo{packages: make(map[primitive.ObjectID]*models.CouponPackage)}
}

func (f *fakePackageRepo) Create(ctx context.Context, pkg *models.CouponPackage) error {
	pkg.ID = primitive.NewObjectID()
	pkg.CreatedAt = time.Now()
	f.packages[pkg.ID] = pkg
	return nil
}

func (f *fakePackageRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.CouponPackage, error) {
	p, ok := f.packages[id]
	if !ok {
		return nil, fmt.Errorf("coupon package not found")
	}
	return p, nil
}

func (f *fakePackageRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (f *fakePackageRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.packages, id)
	return nil
}

func (f *fakePackageRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.CouponPackage, int64, error) {
	var out []*models.CouponPackage
	for _, p := range f.packages {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePackageRepo) GetActive(ctx context.Context) ([]*models.CouponPackage, error) {
	var out []*models.CouponPackage
	for _, p := range f.packages {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePackageRepo) GetByCategory(ctx context.Context, category string) ([]*models.CouponPackage, error) {
	var out []*models.CouponPackage
	for _, p := range f.packages {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- contact queries ---

type fakeContactRepo struct {
	queries map[primitive.ObjectID]*models.ContactQuery
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{queries: make(map[primitive.ObjectID]*models.ContactQuery)}
}

func (f *fakeContactRepo) Create(ctx context.Context, query *models.ContactQuery) error {
	query.ID = primitive.NewObjectID()
	query.CreatedAt = time.Now()
	f.queries[query.ID] = query
	return nil
}

func (f *fakeContactRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ContactQuery, error) {
	q, ok := f.queries[id]
	if !ok {
		return nil, fmt.Errorf("contact query not found")
	}
	copied := *q
	return &copied, nil
}

func (f *fakeContactRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	q, ok := f.queries[id]
	if !ok {
		return fmt.Errorf("contact query not found")
	}
	for k, v := range updates {
		if k == "status" {
			q.Status = v.(models.QueryStatus)
		}
	}
	return nil
}

func (f *fakeContactRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.queries[id]; !ok {
		return fmt.Errorf("contact query not found")
	}
	delete(f.queries, id)
	return nil
}

func (f *fakeContactRepo) AddResponse(ctx context.Context, id primitive.ObjectID, response *models.QueryResponse) error {
	q, ok := f.queries[id]
	if !ok {
		return fmt.Errorf("contact query not found")
	}
	q.Responses = append(q.Responses, *response)
	q.Status = models.QueryStatusResolved
	return nil
}

func (f *fakeContactRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.ContactQuery, int64, error) {
	var out []*models.ContactQuery
	for _, q := range f.queries {
		out = append(out, q)
	}
	return out, int64(len(out)), nil
}

func (f *fakeContactRepo) GetByStatus(ctx context.Context, status models.QueryStatus, params *utils.PaginationParams) ([]*models.ContactQuery, int64, error) {
	var out []*models.ContactQuery
	for _, q := range f.queries {
		if q.Status == status {
			out = append(out, q)
		}
	}
	return out, int64(len(out)), nil
}

// --- partners ---

type fakePartnerRepo struct {
	partners map[primitive.ObjectID]*models.Partner
}

func newFakePartnerRepo() *fakePartnerRepo {
	return &fakePartnerRepo{partners: make(map[primitive.ObjectID]*models.Partner)}
}

func (f *fakePartnerRepo) Create(ctx context.Context, partner *models.Partner) error {
	partner.ID = primitive.NewObjectID()
	partner.CreatedAt = time.Now()
	f.partners[partner.ID] = partner
	return nil
}

func (f *fakePartnerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Partner, error) {
	p, ok := f.partners[id]
	if !ok {
		return nil, fmt.Errorf("partner not found")
	}
	return p, nil
}

func (f *fakePartnerRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	p, ok := f.partners[id]
	if !ok {
		return fmt.Errorf("partner not found")
	}
	for k, v := range updates {
		switch k {
		case "status":
			p.Status = v.(models.PartnerStatus)
		case "is_active":
			p.IsActive = v.(bool)
		case "images":
			p.Images = v.([]string)
		case "name":
			p.Name = v.(string)
		case "business_type":
			p.BusinessType = v.(string)
		case "description":
			p.Description = v.(string)
		case "contact_person":
			p.ContactPerson = *v.(*models.ContactPerson)
		case "address":
			p.Address = *v.(*models.PartnerAddress)
		case "operating_hours":
			p.OperatingHours = *v.(*models.OperatingHours)
		case "verification_notes":
			p.VerificationNotes = v.(string)
		case "rejection_reason":
			p.RejectionReason = v.(string)
		}
	}
	return nil
}

func (f *fakePartnerRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.partners, id)
	return nil
}

func (f *fakePartnerRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Partner, int64, error) {
	var out []*models.Partner
	for _, p := range f.partners {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePartnerRepo) GetApproved(ctx context.Context, params *utils.PaginationParams) ([]*models.Partner, int64, error) {
	var out []*models.Partner
	for _, p := range f.partners {
		if p.Status == models.PartnerStatusApproved && p.IsActive {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePartnerRepo) GetByCategory(ctx context.Context, category models.PartnerCategory, params *utils.PaginationParams) ([]*models.Partner, int64, error) {
	var out []*models.Partner
	for _, p := range f.partners {
		if p.Category == category && p.Status == models.PartnerStatusApproved && p.IsActive {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePartnerRepo) GetByStatus(ctx context.Context, status models.PartnerStatus, params *utils.PaginationParams) ([]*models.Partner, int64, error) {
	var out []*models.Partner
	for _, p := range f.partners {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePartnerRepo) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Partner, error) {
	var out []*models.Partner
	for _, p := range f.partners {
		if p.Owner != nil && *p.Owner == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePartnerRepo) GetTotalCount(ctx context.Context) (int64, error) {
	return int64(len(f.partners)), nil
}

// --- payments ---

type fakePaymentRepo struct {
	payments map[primitive.ObjectID]*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[primitive.ObjectID]*models.Payment)}
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = time.Now()
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, fmt.Errorf("payment not found")
	}
	return p, nil
}

func (f *fakePaymentRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	p, ok := f.payments[id]
	if !ok {
		return fmt.Errorf("payment not found")
	}
	for k, v := range updates {
		switch k {
		case "status":
			p.Status = v.(models.PaymentStatus)
		case "gateway_transaction_id":
			p.GatewayTxnID = v.(string)
		case "failure_reason":
			p.FailureReason = v.(string)
		case "refund_id":
			p.RefundID = v.(string)
		case "refund_amount":
			p.RefundAmount = v.(float64)
		case "donation_id":
			did := v.(primitive.ObjectID)
			p.DonationID = &did
		case "processed_at":
			t := v.(time.Time)
			p.ProcessedAt = &t
		case "refunded_at":
			t := v.(time.Time)
			p.RefundedAt = &t
		}
	}
	return nil
}

func (f *fakePaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.OrderID == orderID {
			return p, nil
		}
	}
	return nil, fmt.Errorf("payment not found")
}

func (f *fakePaymentRepo) GetByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Payment, int64, error) {
	var out []*models.Payment
	for _, p := range f.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePaymentRepo) GetByStatus(ctx context.Context, status models.PaymentStatus, params *utils.PaginationParams) ([]*models.Payment, int64, error) {
	var out []*models.Payment
	for _, p := range f.payments {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePaymentRepo) GetTotalCount(ctx context.Context) (int64, error) {
	return int64(len(f.payments)), nil
}

// --- wallets ---

type fakeWalletRepo struct {
	wallets map[primitive.ObjectID]*models.Wallet
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{wallets: make(map[primitive.ObjectID]*models.Wallet)}
}

func (f *fakeWalletRepo) Create(ctx context.Context, wallet *models.Wallet) error {
	wallet.ID = primitive.NewObjectID()
	wallet.CreatedAt = time.Now()
	f.wallets[wallet.ID] = wallet
	return nil
}

func (f *fakeWalletRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Wallet, error) {
	w, ok := f.wallets[id]
	if !ok {
		return nil, fmt.Errorf("wallet not found")
	}
	copied := *w
	return &copied, nil
}

func (f *fakeWalletRepo) GetByVendor(ctx context.Context, vendorID primitive.ObjectID) (*models.Wallet, error) {
	for _, w := range f.wallets {
		if w.VendorID == vendorID {
			copied := *w
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("wallet not found")
}

func (f *fakeWalletRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	w, ok := f.wallets[id]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	for k, v := range updates {
		switch k {
		case "is_active":
			w.IsActive = v.(bool)
		}
	}
	return nil
}

func (f *fakeWalletRepo) AddCoupon(ctx context.Context, walletID primitive.ObjectID, coupon *models.WalletCoupon, txn *models.WalletTransaction) error {
	w, ok := f.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	for _, c := range w.Coupons {
		if c.Coupon == coupon.Coupon {
			return fmt.Errorf("coupon already credited")
		}
	}
	w.Coupons = append(w.Coupons, *coupon)
	w.Transactions = append(w.Transactions, *txn)
	w.TotalReceived += coupon.Amount
	w.CurrentBalance += coupon.Amount
	return nil
}

func (f *fakeWalletRepo) SettleCoupon(ctx context.Context, walletID, couponID primitive.ObjectID, amount float64, txn *models.WalletTransaction) error {
	w, ok := f.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	for i, c := range w.Coupons {
		if c.Coupon == couponID && c.Status == models.WalletCouponPending {
			w.Coupons[i].Status = models.WalletCouponSettled
			w.Transactions = append(w.Transactions, *txn)
			w.TotalSettled += amount
			w.CurrentBalance -= amount
			return nil
		}
	}
	return fmt.Errorf("pending coupon not found in wallet")
}

func (f *fakeWalletRepo) HasCoupon(ctx context.Context, walletID, couponID primitive.ObjectID) (bool, error) {
	w, ok := f.wallets[walletID]
	if !ok {
		return false, fmt.Errorf("wallet not found")
	}
	for _, c := range w.Coupons {
		if c.Coupon == couponID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWalletRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Wallet, int64, error) {
	var out []*models.Wallet
	for _, w := range f.wallets {
		out = append(out, w)
	}
	return out, int64(len(out)), nil
}

func (f *fakeWalletRepo) GetTotalBalance(ctx context.Context) (float64, error) {
	var total float64
	for _, w := range f.wallets {
		total += w.CurrentBalance
	}
	return total, nil
}
