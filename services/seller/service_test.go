package seller

import (
	"context"
	"errors"
	"testing"

	sellerRepo "sokoni/database/repository/seller"
	sellerRequestRepo "sokoni/database/repository/sellerrequest"
	"sokoni/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// fakeRequestRepo is an in-memory SellerRequestRepository.
type fakeRequestRepo struct {
	requests  map[string]*models.SellerRequest
	created   []*models.SellerRequest
	rejectErr error
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*models.SellerRequest)}
}

func (f *fakeRequestRepo) Create(request *models.SellerRequest) error {
	cp := *request
	f.requests[request.ID] = &cp
	f.created = append(f.created, &cp)
	return nil
}

func (f *fakeRequestRepo) GetByID(id string) (*models.SellerRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRequestRepo) GetActiveByUserID(userID string) (*models.SellerRequest, error) {
	for _, r := range f.requests {
		if r.UserID == userID && (r.Status == models.RequestStatusPending || r.Status == models.RequestStatusApproved) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRequestRepo) GetLatestByUserID(userID string) (*models.SellerRequest, error) {
	var latest *models.SellerRequest
	for _, r := range f.requests {
		if r.UserID == userID {
			latest = r
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeRequestRepo) GetAllByStatus(status string) ([]models.SellerRequest, error) {
	var out []models.SellerRequest
	for _, r := range f.requests {
		if r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) Reject(id, reviewerID, reason string) error {
	if f.rejectErr != nil {
		return f.rejectErr
	}
	r, ok := f.requests[id]
	if !ok {
		return sellerRequestRepo.ErrNotFound
	}
	if r.Status != models.RequestStatusPending {
		return sellerRequestRepo.ErrNotPending
	}
	r.Status = models.RequestStatusRejected
	r.RejectionReason = reason
	r.ReviewedBy = reviewerID
	return nil
}

// fakeSellerRepo records approval transactions and can be forced to fail.
type fakeSellerRepo struct {
	approveErr    error
	approvedWith  *models.SellerProfile
	approvedShop  *models.Shop
	approvedNotif *models.Notification
	approveCalls  int
	requests      *fakeRequestRepo
	profiles      map[string]*models.SellerProfile
	shops         map[string]*models.Shop
}

func newFakeSellerRepo(requests *fakeRequestRepo) *fakeSellerRepo {
	return &fakeSellerRepo{
		requests: requests,
		profiles: make(map[string]*models.SellerProfile),
		shops:    make(map[string]*models.Shop),
	}
}

func (f *fakeSellerRepo) GetByID(id string) (*models.SellerProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	return p, nil
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
	for _, s := range f.shops {
		if s.SellerID == sellerID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSellerRepo) UpdateStatus(sellerID, status string) error {
	if p, ok := f.profiles[sellerID]; ok {
		p.Status = status
	}
	return nil
}

func (f *fakeSellerRepo) ApproveRequestTransactionally(
	ctx context.Context,
	requestID, reviewerID string,
	profile *models.SellerProfile,
	shop *models.Shop,
	notification *models.Notification,
) error {
	f.approveCalls++
	if f.approveErr != nil {
		return f.approveErr
	}
	r, ok := f.requests.requests[requestID]
	if !ok || r.Status != models.RequestStatusPending {
		return sellerRepo.ErrRequestNotPending
	}
	r.Status = models.RequestStatusApproved
	r.ReviewedBy = reviewerID
	f.profiles[profile.ID] = profile
	f.shops[shop.ID] = shop
	f.approvedWith = profile
	f.approvedShop = shop
	f.approvedNotif = notification
	return nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetAll() ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	return nil
}

func (f *fakeUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return f.GetByID(id)
}

// fakeCategoryRepo answers existence checks from a fixed set.
type fakeCategoryRepo struct {
	known map[string]bool
}

func (f *fakeCategoryRepo) Create(category *models.Category) error { return nil }

func (f *fakeCategoryRepo) GetByID(id string) (*models.Category, error) {
	if f.known[id] {
		return &models.Category{ID: id}, nil
	}
	return nil, nil
}

func (f *fakeCategoryRepo) GetAll() ([]models.Category, error) { return nil, nil }

func (f *fakeCategoryRepo) Exists(id string) (bool, error) { return f.known[id], nil }

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

// fakeEnqueuer records enqueued messages and can be forced to fail.
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

func validIndividualRequest() models.SellerRequest {
	return models.SellerRequest{
		UserID: "user-1",
		Type:   models.SellerTypeIndividual,
		IndividualInfo: &models.IndividualInfo{
			FullName: "Awa Diop",
			Email:    "awa@example.com",
		},
		BusinessInfo: models.BusinessInfo{
			ShopName:   "Awa Crafts",
			CategoryID: "cat-1",
			Country:    "SN",
		},
		Documents: models.RequestDocuments{
			IDCard:         "https://files.example.com/id.pdf",
			ProofOfAddress: "https://files.example.com/addr.pdf",
			TaxCertificate: "https://files.example.com/tax.pdf",
			Photos:         []string{"https://files.example.com/p1.jpg"},
		},
		Compliance: models.Compliance{
			TermsAccepted:              true,
			QualityStandardsAccepted:   true,
			AntiCounterfeitingAccepted: true,
		},
	}
}

func validCompanyRequest() models.SellerRequest {
	req := validIndividualRequest()
	req.Type = models.SellerTypeCompany
	req.IndividualInfo = nil
	req.CompanyInfo = &models.CompanyInfo{
		CompanyName: "Sokoni Traders Ltd",
		Email:       "legal@sokonitraders.example.com",
	}
	req.Documents.RCCM = "https://files.example.com/rccm.pdf"
	req.Documents.CompanyStatutes = "https://files.example.com/statutes.pdf"
	return req
}

func newTestService() (*DefaultSellerService, *fakeRequestRepo, *fakeSellerRepo, *fakeEnqueuer) {
	requests := newFakeRequestRepo()
	sellers := newFakeSellerRepo(requests)
	enqueuer := &fakeEnqueuer{}
	svc := &DefaultSellerService{
		Requests:      requests,
		Sellers:       sellers,
		Users:         newFakeUserRepo(),
		Categories:    &fakeCategoryRepo{known: map[string]bool{"cat-1": true}},
		Notifications: &fakeNotificationRepo{},
		Tasks:         enqueuer,
		Logger:        zap.NewNop(),
	}
	return svc, requests, sellers, enqueuer
}

func TestSubmitRequestIndividual(t *testing.T) {
	svc, requests, _, enqueuer := newTestService()

	created, err := svc.SubmitRequest(context.Background(), validIndividualRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.RequestStatusPending, created.Status)
	assert.Len(t, requests.created, 1)

	require.Len(t, enqueuer.emails, 1)
	assert.Equal(t, "awa@example.com", enqueuer.emails[0].To)
	assert.Equal(t, models.EmailTemplateRequestReceived, enqueuer.emails[0].Template)
}

func TestSubmitRequestCompanyMissingDocuments(t *testing.T) {
	svc, requests, _, _ := newTestService()

	req := validCompanyRequest()
	req.Documents.RCCM = ""
	req.Documents.CompanyStatutes = ""

	_, err := svc.SubmitRequest(context.Background(), req)

	var missing *MissingDocumentsError
	require.ErrorAs(t, err, &missing)
	assert.ElementsMatch(t, []string{"rccm", "companyStatutes"}, missing.Fields)
	assert.Empty(t, requests.created)
}

func TestSubmitRequestMissingDocumentsNamesAllFields(t *testing.T) {
	svc, _, _, _ := newTestService()

	req := validIndividualRequest()
	req.Documents = models.RequestDocuments{}

	_, err := svc.SubmitRequest(context.Background(), req)

	var missing *MissingDocumentsError
	require.ErrorAs(t, err, &missing)
	assert.ElementsMatch(t, []string{"idCard", "proofOfAddress", "taxCertificate", "photos"}, missing.Fields)
}

func TestSubmitRequestComplianceIncomplete(t *testing.T) {
	svc, _, _, _ := newTestService()

	req := validIndividualRequest()
	req.Compliance.AntiCounterfeitingAccepted = false

	_, err := svc.SubmitRequest(context.Background(), req)
	assert.ErrorIs(t, err, ErrComplianceIncomplete)
}

func TestSubmitRequestUnknownCategory(t *testing.T) {
	svc, _, _, _ := newTestService()

	req := validIndividualRequest()
	req.BusinessInfo.CategoryID = "cat-unknown"

	_, err := svc.SubmitRequest(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestSubmitRequestTypeInfoMismatch(t *testing.T) {
	svc, _, _, _ := newTestService()

	req := validIndividualRequest()
	req.CompanyInfo = &models.CompanyInfo{CompanyName: "Both Set Ltd"}

	_, err := svc.SubmitRequest(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRequestType)
}

func TestSubmitRequestDuplicate(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.SubmitRequest(context.Background(), validIndividualRequest())
	require.NoError(t, err)

	_, err = svc.SubmitRequest(context.Background(), validIndividualRequest())
	assert.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestSubmitRequestAllowedAfterRejection(t *testing.T) {
	svc, requests, _, _ := newTestService()

	created, err := svc.SubmitRequest(context.Background(), validIndividualRequest())
	require.NoError(t, err)
	require.NoError(t, requests.Reject(created.ID, "admin-1", "illegible documents"))

	_, err = svc.SubmitRequest(context.Background(), validIndividualRequest())
	assert.NoError(t, err)
}

func TestSubmitRequestEmailFailureDoesNotFailSubmission(t *testing.T) {
	svc, requests, _, enqueuer := newTestService()
	enqueuer.err = errors.New("queue down")

	created, err := svc.SubmitRequest(context.Background(), validIndividualRequest())
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, created.Status)
	assert.Len(t, requests.created, 1)
}

func TestApproveRequest(t *testing.T) {
	svc, _, sellers, enqueuer := newTestService()

	created, err := svc.SubmitRequest(context.Background(), validIndividualRequest())
	require.NoError(t, err)
	enqueuer.emails = nil

	result, err := svc.ApproveRequest(context.Background(), created.ID, "admin-1")
	require.NoError(t, err)

	assert.Equal(t, "user-1", result.UserID)
	assert.NotEmpty(t, result.SellerID)
	assert.NotEmpty(t, result.ShopID)

	require.NotNil(t, sellers.approvedWith)
	assert.Equal(t, models.VerificationVerified, sellers.approvedWith.VerificationStatus)
	assert.Equal(t, models.SellerStatusActive, sellers.approvedWith.Status)

	require.NotNil(t, sellers.approvedShop)
	assert.Equal(t, "Awa Crafts", sellers.approvedShop.Name)
	assert.Equal(t, result.SellerID, sellers.approvedShop.SellerID)

	require.NotNil(t, sellers.approvedNotif)
	assert.Equal(t, models.NotificationSellerApproved, sellers.approvedNotif.Type)

	require.Len(t, enqueuer.emails, 1)
	assert.Equal(t, models.EmailTemplateRequestApproved, enqueuer.emails[0].Template)
}

func TestApproveRequestNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.ApproveRequest(context.Background(), "missing", "admin-1")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestApproveRequestAlreadyFinalized(t *testing.T) {
	svc, _, _, _ := newTestService()

	created, err := svc.SubmitRequest(context.Background(), validIndividualRequest())
	require.NoError(t, err)

	_, err = svc.ApproveRequest(context.Background(), created.ID, "admin-1")
	require.NoError(t, err)

	_, err = svc.ApproveRequest(context.Background(), created.ID, "admin-1")
	assert.ErrorIs(t, err, ErrRequestAlreadyFinalized)
}

func TestApproveRequestConcurrentFinalization(t *testing.T) {
	svc, _, sellers, _ := newTestService()

	created, err := svc.SubmitRequest(context.Background(), validIndividualRequest())
	require.NoError(t, err)

	// The conditional update inside the transaction lost the race.
	sellers.approveErr = sellerRepo.ErrRequestNotPending

	_, err = svc.ApproveRequest(context.Background(), created.ID, "admin-1")
	assert.ErrorIs(t, err, ErrRequestAlreadyFinalized)
}

func TestApproveRequestTransactionFailureIsRetryable(t *testing.T) {
	svc, requests, sellers, enqueuer := newTestService()

	created, err := svc.SubmitRequest(context.Background(), validIndividualRequest())
	require.NoError(t, err)
	enqueuer.emails = nil

	sellers.approveErr = errors.New("transient write conflict")
	_, err = svc.ApproveRequest(context.Background(), created.ID, "admin-1")

	var activation *ActivationFailedError
	require.ErrorAs(t, err, &activation)

	// The request is untouched and no approval email went out.
	stored, err := requests.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, stored.Status)
	assert.Empty(t, enqueuer.emails)

	// A retry succeeds once the failure clears.
	sellers.approveErr = nil
	_, err = svc.ApproveRequest(context.Background(), created.ID, "admin-1")
	assert.NoError(t, err)
	assert.Equal(t, 2, sellers.approveCalls)
}

func TestRejectRequest(t *testing.T) {
	svc, requests, _, enqueuer := newTestService()

	created, err := svc.SubmitRequest(context.Background(), validIndividualRequest())
	require.NoError(t, err)
	enqueuer.emails = nil

	err = svc.RejectRequest(context.Background(), created.ID, "admin-1", "documents illegible")
	require.NoError(t, err)

	stored, err := requests.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusRejected, stored.Status)
	assert.Equal(t, "documents illegible", stored.RejectionReason)

	require.Len(t, enqueuer.emails, 1)
	assert.Equal(t, models.EmailTemplateRequestRejected, enqueuer.emails[0].Template)
}

func TestRejectRequestRequiresReason(t *testing.T) {
	svc, _, _, _ := newTestService()

	created, err := svc.SubmitRequest(context.Background(), validIndividualRequest())
	require.NoError(t, err)

	err = svc.RejectRequest(context.Background(), created.ID, "admin-1", "")
	assert.Error(t, err)
}

func TestRejectRequestAlreadyFinalized(t *testing.T) {
	svc, _, _, _ := newTestService()

	created, err := svc.SubmitRequest(context.Background(), validIndividualRequest())
	require.NoError(t, err)
	require.NoError(t, svc.RejectRequest(context.Background(), created.ID, "admin-1", "incomplete"))

	err = svc.RejectRequest(context.Background(), created.ID, "admin-1", "incomplete")
	assert.ErrorIs(t, err, ErrRequestAlreadyFinalized)
}
