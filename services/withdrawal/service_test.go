package withdrawal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	withdrawalRepo "sokoni/database/repository/withdrawal"
	"sokoni/models"
	"sokoni/services/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// fakeWithdrawalRepo mimics the conditional status transition and the
// claim-before-transfer processing transaction of the Mongo implementation.
type fakeWithdrawalRepo struct {
	mu          sync.Mutex
	withdrawals map[string]*models.Withdrawal
}

func newFakeWithdrawalRepo() *fakeWithdrawalRepo {
	return &fakeWithdrawalRepo{withdrawals: make(map[string]*models.Withdrawal)}
}

func (f *fakeWithdrawalRepo) Create(w *models.Withdrawal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *w
	f.withdrawals[w.ID] = &cp
	return nil
}

func (f *fakeWithdrawalRepo) GetByID(id string) (*models.Withdrawal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.withdrawals[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWithdrawalRepo) GetAllBySellerID(sellerID string) ([]models.Withdrawal, error) {
	var out []models.Withdrawal
	for _, w := range f.withdrawals {
		if w.SellerID == sellerID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (f *fakeWithdrawalRepo) GetAll() ([]models.Withdrawal, error) {
	var out []models.Withdrawal
	for _, w := range f.withdrawals {
		out = append(out, *w)
	}
	return out, nil
}

func (f *fakeWithdrawalRepo) TransitionStatus(id, fromStatus, toStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.withdrawals[id]
	if !ok {
		return withdrawalRepo.ErrNotFound
	}
	if w.Status != fromStatus {
		return withdrawalRepo.ErrStatusChanged
	}
	w.Status = toStatus
	return nil
}

func (f *fakeWithdrawalRepo) ProcessTransactionally(ctx context.Context, id string, createTransfer func(ctx context.Context) (string, error)) error {
	f.mu.Lock()
	w, ok := f.withdrawals[id]
	if !ok {
		f.mu.Unlock()
		return withdrawalRepo.ErrNotFound
	}
	if w.Status != models.WithdrawalPending {
		f.mu.Unlock()
		return withdrawalRepo.ErrStatusChanged
	}
	// Claim before the transfer runs, like the Mongo transaction does.
	w.Status = models.WithdrawalProcessing
	f.mu.Unlock()

	transferID, err := createTransfer(ctx)
	if err != nil {
		f.mu.Lock()
		w.Status = models.WithdrawalPending
		f.mu.Unlock()
		return fmt.Errorf("gateway transfer creation failed: %w", err)
	}

	f.mu.Lock()
	w.TransferID = transferID
	f.mu.Unlock()
	return nil
}

// fakeSellerRepo answers profile lookups from a fixed set.
type fakeSellerRepo struct {
	profiles map[string]*models.SellerProfile
}

func (f *fakeSellerRepo) GetByID(id string) (*models.SellerProfile, error) {
	return f.profiles[id], nil
}

func (f *fakeSellerRepo) GetByUserID(userID string) (*models.SellerProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeSellerRepo) GetShopBySellerID(sellerID string) (*models.Shop, error) {
	return nil, nil
}

func (f *fakeSellerRepo) UpdateStatus(sellerID, status string) error { return nil }

func (f *fakeSellerRepo) ApproveRequestTransactionally(
	ctx context.Context,
	requestID, reviewerID string,
	profile *models.SellerProfile,
	shop *models.Shop,
	notification *models.Notification,
) error {
	return nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error)       { return f.users[id], nil }
func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) { return nil, nil }
func (f *fakeUserRepo) GetAll() ([]models.User, error)                { return nil, nil }
func (f *fakeUserRepo) Create(user *models.User) error                { return nil }
func (f *fakeUserRepo) Update(user *models.User) error                { return nil }
func (f *fakeUserRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	return nil
}
func (f *fakeUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return f.users[id], nil
}

// fakeNotificationRepo records created notifications.
type fakeNotificationRepo struct {
	created []*models.Notification
}

func (f *fakeNotificationRepo) Create(notification *models.Notification) error {
	f.created = append(f.created, notification)
	return nil
}

func (f *fakeNotificationRepo) GetAllByUserID(userID string) ([]models.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) MarkRead(id, userID string) error { return nil }

// fakeGateway counts transfers and can be forced to fail. onTransfer,
// when set, runs inside CreateTransfer so tests can hold a transfer in
// flight.
type fakeGateway struct {
	mu            sync.Mutex
	transferErr   error
	transferCalls int
	lastBank      models.BankInfo
	onTransfer    func()
}

func (f *fakeGateway) CreateTransaction(ctx context.Context, req payment.TransactionRequest) (*payment.Transaction, error) {
	return nil, errors.New("not used")
}

func (f *fakeGateway) VerifyTransaction(ctx context.Context, transactionID string) (payment.TransactionStatus, error) {
	return payment.StatusPending, nil
}

func (f *fakeGateway) CreateTransfer(ctx context.Context, amount float64, bank models.BankInfo, description, currency string) (*payment.Transfer, error) {
	f.mu.Lock()
	f.transferCalls++
	f.lastBank = bank
	err := f.transferErr
	f.mu.Unlock()
	if f.onTransfer != nil {
		f.onTransfer()
	}
	if err != nil {
		return nil, err
	}
	return &payment.Transfer{ID: "tr-1"}, nil
}

func (f *fakeGateway) transfers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.transferCalls
}

// fakeEnqueuer records enqueued messages.
type fakeEnqueuer struct {
	emails []models.EmailMessage
	pushes []models.PushMessage
}

func (f *fakeEnqueuer) EnqueueEmail(msg models.EmailMessage) error {
	f.emails = append(f.emails, msg)
	return nil
}

func (f *fakeEnqueuer) EnqueuePush(msg models.PushMessage) error {
	f.pushes = append(f.pushes, msg)
	return nil
}

func testBankInfo() models.BankInfo {
	return models.BankInfo{
		AccountName:   "Awa Diop",
		AccountNumber: "0011223344",
		BankName:      "Banque Atlantique",
		Country:       "SN",
	}
}

func newTestService() (*DefaultWithdrawalService, *fakeWithdrawalRepo, *fakeGateway, *fakeNotificationRepo, *fakeEnqueuer) {
	withdrawals := newFakeWithdrawalRepo()
	gateway := &fakeGateway{}
	notifications := &fakeNotificationRepo{}
	enqueuer := &fakeEnqueuer{}
	svc := &DefaultWithdrawalService{
		Withdrawals: withdrawals,
		Sellers: &fakeSellerRepo{profiles: map[string]*models.SellerProfile{
			"seller-1": {ID: "seller-1", UserID: "user-1", Status: models.SellerStatusActive},
		}},
		Users: &fakeUserRepo{users: map[string]*models.User{
			"user-1": {ID: "user-1", Email: "awa@example.com", Name: "Awa Diop"},
		}},
		Notifications: notifications,
		Gateway:       gateway,
		Tasks:         enqueuer,
		Logger:        zap.NewNop(),
	}
	return svc, withdrawals, gateway, notifications, enqueuer
}

func TestRequestWithdrawal(t *testing.T) {
	svc, withdrawals, _, _, _ := newTestService()

	w, err := svc.Request(context.Background(), "user-1", 120, "usd", testBankInfo())
	require.NoError(t, err)

	assert.Equal(t, models.WithdrawalPending, w.Status)
	assert.Equal(t, "seller-1", w.SellerID)
	assert.NotEmpty(t, w.ID)

	stored, err := withdrawals.GetByID(w.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestRequestWithdrawalValidation(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Request(context.Background(), "user-1", 0, "usd", testBankInfo())
	assert.ErrorIs(t, err, ErrInvalidAmount)

	bank := testBankInfo()
	bank.AccountNumber = ""
	_, err = svc.Request(context.Background(), "user-1", 50, "usd", bank)
	assert.ErrorIs(t, err, ErrBankInfoIncomplete)

	_, err = svc.Request(context.Background(), "user-without-profile", 50, "usd", testBankInfo())
	assert.ErrorIs(t, err, ErrSellerNotFound)
}

func TestUpdateStatusProcessingIssuesOneTransfer(t *testing.T) {
	svc, _, gateway, _, _ := newTestService()

	w, err := svc.Request(context.Background(), "user-1", 120, "usd", testBankInfo())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), w.ID, models.WithdrawalProcessing)
	require.NoError(t, err)

	assert.Equal(t, models.WithdrawalProcessing, updated.Status)
	assert.Equal(t, "tr-1", updated.TransferID)
	assert.Equal(t, 1, gateway.transferCalls)
	assert.Equal(t, "0011223344", gateway.lastBank.AccountNumber)

	// Completing afterwards does not create a second transfer.
	_, err = svc.UpdateStatus(context.Background(), w.ID, models.WithdrawalCompleted)
	require.NoError(t, err)
	assert.Equal(t, 1, gateway.transferCalls)
}

func TestUpdateStatusConcurrentProcessingSingleTransfer(t *testing.T) {
	svc, withdrawals, gateway, _, _ := newTestService()

	w, err := svc.Request(context.Background(), "user-1", 120, "usd", testBankInfo())
	require.NoError(t, err)

	inTransfer := make(chan struct{})
	release := make(chan struct{})
	gateway.onTransfer = func() {
		close(inTransfer)
		<-release
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.UpdateStatus(context.Background(), w.ID, models.WithdrawalProcessing)
		done <- err
	}()
	<-inTransfer

	// A second admin moves the same withdrawal while the first transfer is
	// still in flight at the gateway. The status was claimed before the
	// gateway call, so this must not issue another transfer.
	_, err = svc.UpdateStatus(context.Background(), w.ID, models.WithdrawalProcessing)
	require.NoError(t, err)
	assert.Equal(t, 1, gateway.transfers())

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, gateway.transfers())
	stored, err := withdrawals.GetByID(w.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalProcessing, stored.Status)
	assert.Equal(t, "tr-1", stored.TransferID)
}

func TestUpdateStatusTransferFailureKeepsState(t *testing.T) {
	svc, withdrawals, gateway, _, _ := newTestService()
	gateway.transferErr = errors.New("transfer rejected")

	w, err := svc.Request(context.Background(), "user-1", 120, "usd", testBankInfo())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), w.ID, models.WithdrawalProcessing)

	var transferFailed *TransferFailedError
	require.ErrorAs(t, err, &transferFailed)

	stored, err := withdrawals.GetByID(w.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalPending, stored.Status)
	assert.Empty(t, stored.TransferID)
}

func TestUpdateStatusTerminalIsImmutable(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	w, err := svc.Request(context.Background(), "user-1", 120, "usd", testBankInfo())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), w.ID, models.WithdrawalCancelled)
	require.NoError(t, err)

	for _, next := range []string{
		models.WithdrawalPending,
		models.WithdrawalProcessing,
		models.WithdrawalCompleted,
	} {
		_, err = svc.UpdateStatus(context.Background(), w.ID, next)
		assert.ErrorIs(t, err, ErrAlreadyFinalized, "transition to %s", next)
	}
}

func TestUpdateStatusInvalid(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	w, err := svc.Request(context.Background(), "user-1", 120, "usd", testBankInfo())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), w.ID, "vanished")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.UpdateStatus(context.Background(), "missing", models.WithdrawalProcessing)
	assert.ErrorIs(t, err, ErrWithdrawalNotFound)
}

func TestUpdateStatusNotifies(t *testing.T) {
	svc, _, _, notifications, enqueuer := newTestService()

	w, err := svc.Request(context.Background(), "user-1", 120, "usd", testBankInfo())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), w.ID, models.WithdrawalProcessing)
	require.NoError(t, err)

	require.Len(t, notifications.created, 1)
	assert.Equal(t, models.NotificationWithdrawalStatus, notifications.created[0].Type)
	assert.Equal(t, "user-1", notifications.created[0].UserID)

	require.Len(t, enqueuer.pushes, 1)
	require.Len(t, enqueuer.emails, 1)
	assert.Equal(t, models.EmailTemplateWithdrawalStatus, enqueuer.emails[0].Template)
}
