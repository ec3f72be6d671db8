package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	subscriptionRepo "sokoni/database/repository/subscription"
	"sokoni/models"
	"sokoni/services/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// fakeSubRepo is an in-memory SubscriptionRepository that mimics the
// transactional semantics of the Mongo implementation.
type fakeSubRepo struct {
	subs        map[string]*models.Subscription
	profiles    map[string]*models.SellerProfile
	initiateErr error
	activateErr error
}

func newFakeSubRepo() *fakeSubRepo {
	return &fakeSubRepo{
		subs:     make(map[string]*models.Subscription),
		profiles: make(map[string]*models.SellerProfile),
	}
}

func (f *fakeSubRepo) GetByID(id string) (*models.Subscription, error) {
	s, ok := f.subs[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubRepo) GetCurrentByUserID(userID string) (*models.Subscription, error) {
	for _, s := range f.subs {
		if s.UserID == userID && (s.Status == models.SubscriptionPending || s.Status == models.SubscriptionActive) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSubRepo) InitiateTransactionally(
	ctx context.Context,
	sub *models.Subscription,
	createTransaction func(ctx context.Context) (string, string, error),
) error {
	if f.initiateErr != nil {
		return f.initiateErr
	}
	transactionID, paymentURL, err := createTransaction(ctx)
	if err != nil {
		// Gateway failure aborts: the inserted row is rolled back.
		return err
	}
	sub.TransactionID = transactionID
	sub.PaymentURL = paymentURL
	cp := *sub
	f.subs[sub.ID] = &cp
	return nil
}

func (f *fakeSubRepo) ActivateTransactionally(
	ctx context.Context,
	subscriptionID string,
	profile *models.SellerProfile,
) (bool, error) {
	if f.activateErr != nil {
		return false, f.activateErr
	}
	s, ok := f.subs[subscriptionID]
	if !ok {
		return false, subscriptionRepo.ErrNotFound
	}
	if s.Status == models.SubscriptionActive {
		return false, nil
	}
	if s.Status != models.SubscriptionPending {
		return false, errors.New("subscription is not pending")
	}
	s.Status = models.SubscriptionActive
	now := time.Now()
	s.ActivatedAt = &now
	if _, exists := f.profiles[s.UserID]; !exists {
		f.profiles[s.UserID] = profile
	}
	return true, nil
}

func (f *fakeSubRepo) MarkFailedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for _, s := range f.subs {
		if s.Status == models.SubscriptionPending && s.CreatedAt.Before(cutoff) {
			s.Status = models.SubscriptionFailed
			n++
		}
	}
	return n, nil
}

func (f *fakeSubRepo) MarkExpired(ctx context.Context) (int64, error) {
	var n int64
	for _, s := range f.subs {
		if s.Status == models.SubscriptionActive && s.ExpiresAt.Before(time.Now()) {
			s.Status = models.SubscriptionExpired
			n++
		}
	}
	return n, nil
}

// fakeGateway is a scriptable payment.Gateway.
type fakeGateway struct {
	createErr    error
	verifyStatus payment.TransactionStatus
	verifyErr    error
	createCalls  int
	verifyCalls  int
	lastRequest  payment.TransactionRequest
}

func (f *fakeGateway) CreateTransaction(ctx context.Context, req payment.TransactionRequest) (*payment.Transaction, error) {
	f.createCalls++
	f.lastRequest = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &payment.Transaction{
		ID:         "txn-1",
		PaymentURL: "https://pay.example.com/txn-1",
	}, nil
}

func (f *fakeGateway) VerifyTransaction(ctx context.Context, transactionID string) (payment.TransactionStatus, error) {
	f.verifyCalls++
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return f.verifyStatus, nil
}

func (f *fakeGateway) CreateTransfer(ctx context.Context, amount float64, bank models.BankInfo, description, currency string) (*payment.Transfer, error) {
	return &payment.Transfer{ID: "tr-1"}, nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) { return nil, nil }
func (f *fakeUserRepo) GetAll() ([]models.User, error)                { return nil, nil }
func (f *fakeUserRepo) Create(user *models.User) error                { f.users[user.ID] = user; return nil }
func (f *fakeUserRepo) Update(user *models.User) error                { f.users[user.ID] = user; return nil }
func (f *fakeUserRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	return nil
}
func (f *fakeUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return f.GetByID(id)
}

// fakeEnqueuer records enqueued messages.
type fakeEnqueuer struct {
	emails []models.EmailMessage
	pushes []models.PushMessage
	err    error
}

func (f *fakeEnqueuer) EnqueueEmail(msg models.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.emails = append(f.emails, msg)
	return nil
}

func (f *fakeEnqueuer) EnqueuePush(msg models.PushMessage) error {
	if f.err != nil {
		return f.err
	}
	f.pushes = append(f.pushes, msg)
	return nil
}

func newTestService() (*DefaultSubscriptionService, *fakeSubRepo, *fakeGateway, *fakeEnqueuer) {
	subs := newFakeSubRepo()
	gateway := &fakeGateway{verifyStatus: payment.StatusApproved}
	enqueuer := &fakeEnqueuer{}
	users := &fakeUserRepo{users: map[string]*models.User{
		"user-1": {ID: "user-1", Email: "awa@example.com", Name: "Awa Diop", Role: models.RoleCustomer},
	}}
	svc := &DefaultSubscriptionService{
		Subs:    subs,
		Users:   users,
		Gateway: gateway,
		Tasks:   enqueuer,
		Cfg: Config{
			PublicBaseURL: "https://api.sokoni.example.com",
			Currency:      "usd",
			MonthlyAmount: 15,
			AnnualAmount:  150,
		},
		Logger: zap.NewNop(),
	}
	return svc, subs, gateway, enqueuer
}

func TestInitiate(t *testing.T) {
	svc, subs, gateway, _ := newTestService()

	sub, err := svc.Initiate(context.Background(), "user-1", "plan-basic", models.BillingMonthly)
	require.NoError(t, err)

	assert.Equal(t, models.SubscriptionPending, sub.Status)
	assert.Equal(t, 15.0, sub.Amount)
	assert.Equal(t, "txn-1", sub.TransactionID)
	assert.Equal(t, "https://pay.example.com/txn-1", sub.PaymentURL)
	assert.Contains(t, gateway.lastRequest.CallbackURL, "/api/subscriptions/callback/"+sub.ID)
	assert.Equal(t, "awa@example.com", gateway.lastRequest.CustomerEmail)

	stored, err := subs.GetByID(sub.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestInitiateAnnualAmount(t *testing.T) {
	svc, _, _, _ := newTestService()

	sub, err := svc.Initiate(context.Background(), "user-1", "plan-basic", models.BillingAnnual)
	require.NoError(t, err)
	assert.Equal(t, 150.0, sub.Amount)
	assert.WithinDuration(t, time.Now().Add(365*24*time.Hour), sub.ExpiresAt, time.Minute)
}

func TestInitiateInvalidBillingCycle(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Initiate(context.Background(), "user-1", "plan-basic", "weekly")
	assert.ErrorIs(t, err, ErrInvalidBillingCycle)
}

func TestInitiateConflict(t *testing.T) {
	svc, _, gateway, _ := newTestService()

	_, err := svc.Initiate(context.Background(), "user-1", "plan-basic", models.BillingMonthly)
	require.NoError(t, err)

	_, err = svc.Initiate(context.Background(), "user-1", "plan-basic", models.BillingMonthly)
	assert.ErrorIs(t, err, ErrSubscriptionConflict)
	assert.Equal(t, 1, gateway.createCalls)
}

func TestInitiateGatewayFailureRollsBack(t *testing.T) {
	svc, subs, gateway, _ := newTestService()
	gateway.createErr = errors.New("gateway unavailable")

	_, err := svc.Initiate(context.Background(), "user-1", "plan-basic", models.BillingMonthly)

	var initFailed *PaymentInitiationFailedError
	require.ErrorAs(t, err, &initFailed)
	assert.Empty(t, subs.subs)

	// A retry is possible: nothing pending blocks it.
	gateway.createErr = nil
	_, err = svc.Initiate(context.Background(), "user-1", "plan-basic", models.BillingMonthly)
	assert.NoError(t, err)
}

func TestHandleCallbackActivates(t *testing.T) {
	svc, subs, gateway, enqueuer := newTestService()

	sub, err := svc.Initiate(context.Background(), "user-1", "plan-basic", models.BillingMonthly)
	require.NoError(t, err)

	err = svc.HandleCallback(context.Background(), sub.ID, "txn-1")
	require.NoError(t, err)
	assert.Equal(t, 1, gateway.verifyCalls)

	stored, err := subs.GetByID(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, stored.Status)
	require.NotNil(t, stored.ActivatedAt)

	require.NotNil(t, subs.profiles["user-1"])
	assert.Equal(t, models.VerificationPending, subs.profiles["user-1"].VerificationStatus)

	require.Len(t, enqueuer.emails, 1)
	assert.Equal(t, models.EmailTemplateSubscriptionActive, enqueuer.emails[0].Template)
}

func TestHandleCallbackDuplicateIsNoOp(t *testing.T) {
	svc, _, _, enqueuer := newTestService()

	sub, err := svc.Initiate(context.Background(), "user-1", "plan-basic", models.BillingMonthly)
	require.NoError(t, err)

	require.NoError(t, svc.HandleCallback(context.Background(), sub.ID, "txn-1"))
	require.NoError(t, svc.HandleCallback(context.Background(), sub.ID, "txn-1"))

	// Only the first callback sent an email.
	assert.Len(t, enqueuer.emails, 1)
}

func TestHandleCallbackNotApprovedLeavesPending(t *testing.T) {
	svc, subs, gateway, enqueuer := newTestService()
	gateway.verifyStatus = payment.StatusDeclined

	sub, err := svc.Initiate(context.Background(), "user-1", "plan-basic", models.BillingMonthly)
	require.NoError(t, err)

	err = svc.HandleCallback(context.Background(), sub.ID, "txn-1")
	require.NoError(t, err)

	stored, err := subs.GetByID(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionPending, stored.Status)
	assert.Empty(t, subs.profiles)
	assert.Empty(t, enqueuer.emails)
}

func TestHandleCallbackUnknownSubscription(t *testing.T) {
	svc, _, gateway, _ := newTestService()

	err := svc.HandleCallback(context.Background(), "missing", "txn-1")
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
	assert.Zero(t, gateway.verifyCalls)
}

func TestHandleCallbackIgnoresBodyTransactionID(t *testing.T) {
	svc, subs, gateway, _ := newTestService()

	sub, err := svc.Initiate(context.Background(), "user-1", "plan-basic", models.BillingMonthly)
	require.NoError(t, err)

	// A forged body id changes nothing: the stored transaction is what gets
	// verified against the gateway.
	gateway.verifyStatus = payment.StatusDeclined
	require.NoError(t, svc.HandleCallback(context.Background(), sub.ID, "txn-forged"))

	stored, err := subs.GetByID(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionPending, stored.Status)
}

func TestSweep(t *testing.T) {
	svc, subs, _, _ := newTestService()

	stale := &models.Subscription{
		ID:        "sub-stale",
		UserID:    "user-2",
		Status:    models.SubscriptionPending,
		CreatedAt: time.Now().Add(-72 * time.Hour),
	}
	lapsed := &models.Subscription{
		ID:        "sub-lapsed",
		UserID:    "user-3",
		Status:    models.SubscriptionActive,
		CreatedAt: time.Now().Add(-40 * 24 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	fresh := &models.Subscription{
		ID:        "sub-fresh",
		UserID:    "user-4",
		Status:    models.SubscriptionPending,
		CreatedAt: time.Now().Add(-time.Hour),
	}
	subs.subs[stale.ID] = stale
	subs.subs[lapsed.ID] = lapsed
	subs.subs[fresh.ID] = fresh

	failed, expired, err := svc.Sweep(context.Background(), 48*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, int64(1), failed)
	assert.Equal(t, int64(1), expired)
	assert.Equal(t, models.SubscriptionFailed, subs.subs["sub-stale"].Status)
	assert.Equal(t, models.SubscriptionExpired, subs.subs["sub-lapsed"].Status)
	assert.Equal(t, models.SubscriptionPending, subs.subs["sub-fresh"].Status)
}
