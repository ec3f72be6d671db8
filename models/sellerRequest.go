package models

import "time"

// Seller request types.
const (
	SellerTypeIndividual = "individual"
	SellerTypeCompany    = "company"
)

// Seller request statuses.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// IndividualInfo carries the personal details required for an individual
// seller application.
type IndividualInfo struct {
	FullName        string `bson:"fullName" json:"fullName"`
	Address         string `bson:"address" json:"address"`
	PhoneNumber     string `bson:"phoneNumber" json:"phoneNumber"`
	Email           string `bson:"email" json:"email"`
	TaxID           string `bson:"taxId" json:"taxId"`
	IdentityDocType string `bson:"identityDocType" json:"identityDocType"`
	IdentityDocNo   string `bson:"identityDocNo" json:"identityDocNo"`
}

// CompanyInfo carries the business details required for a company
// seller application.
type CompanyInfo struct {
	CompanyName        string `bson:"companyName" json:"companyName"`
	Address            string `bson:"address" json:"address"`
	PhoneNumber        string `bson:"phoneNumber" json:"phoneNumber"`
	Email              string `bson:"email" json:"email"`
	TaxID              string `bson:"taxId" json:"taxId"`
	RegistrationNo     string `bson:"registrationNo" json:"registrationNo"`
	RepresentativeName string `bson:"representativeName" json:"representativeName"`
}

// BusinessInfo describes the shop the applicant wants to open. It is
// snapshotted onto the SellerProfile and Shop at approval time.
type BusinessInfo struct {
	ShopName           string `bson:"shopName" json:"shopName"`
	CategoryID         string `bson:"categoryId" json:"categoryId"`
	Description        string `bson:"description" json:"description"`
	PaymentMethod      string `bson:"paymentMethod" json:"paymentMethod"`
	PaymentDestination string `bson:"paymentDestination" json:"paymentDestination"`
	Country            string `bson:"country" json:"country"`
	ShopImageURL       string `bson:"shopImageUrl,omitempty" json:"shopImageUrl,omitempty"`
	ShopVideoURL       string `bson:"shopVideoUrl,omitempty" json:"shopVideoUrl,omitempty"`
}

// RequestDocuments maps each document kind to its uploaded file URL.
// Which fields are mandatory depends on the request type.
type RequestDocuments struct {
	IDCard          string   `bson:"idCard,omitempty" json:"idCard,omitempty"`
	ProofOfAddress  string   `bson:"proofOfAddress,omitempty" json:"proofOfAddress,omitempty"`
	TaxCertificate  string   `bson:"taxCertificate,omitempty" json:"taxCertificate,omitempty"`
	Photos          []string `bson:"photos,omitempty" json:"photos,omitempty"`
	RCCM            string   `bson:"rccm,omitempty" json:"rccm,omitempty"`
	CompanyStatutes string   `bson:"companyStatutes,omitempty" json:"companyStatutes,omitempty"`
}

// Compliance holds the acknowledgments every applicant must accept before
// a request is taken.
type Compliance struct {
	TermsAccepted              bool `bson:"termsAccepted" json:"termsAccepted"`
	QualityStandardsAccepted   bool `bson:"qualityStandardsAccepted" json:"qualityStandardsAccepted"`
	AntiCounterfeitingAccepted bool `bson:"antiCounterfeitingAccepted" json:"antiCounterfeitingAccepted"`
}

// Contract references the signed seller contract.
type Contract struct {
	Signed      bool   `bson:"signed" json:"signed"`
	DocumentURL string `bson:"documentUrl,omitempty" json:"documentUrl,omitempty"`
}

// SellerRequest is a pending seller application. Exactly one of
// IndividualInfo / CompanyInfo is set, selected by Type. Requests are an
// audit record and are never deleted.
type SellerRequest struct {
	ID              string           `bson:"id" json:"id"`
	UserID          string           `bson:"userId" json:"userId"`
	Type            string           `bson:"type" json:"type"`
	IndividualInfo  *IndividualInfo  `bson:"individualInfo,omitempty" json:"individualInfo,omitempty"`
	CompanyInfo     *CompanyInfo     `bson:"companyInfo,omitempty" json:"companyInfo,omitempty"`
	BusinessInfo    BusinessInfo     `bson:"businessInfo" json:"businessInfo"`
	Documents       RequestDocuments `bson:"documents" json:"documents"`
	Compliance      Compliance       `bson:"compliance" json:"compliance"`
	Contract        Contract         `bson:"contract" json:"contract"`
	Status          string           `bson:"status" json:"status"`
	RejectionReason string           `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	ReviewedBy      string           `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time       `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	CreatedAt       time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// ContactEmail returns the applicant's email regardless of request type.
func (r *SellerRequest) ContactEmail() string {
	switch r.Type {
	case SellerTypeCompany:
		if r.CompanyInfo != nil {
			return r.CompanyInfo.Email
		}
	default:
		if r.IndividualInfo != nil {
			return r.IndividualInfo.Email
		}
	}
	return ""
}

// DisplayName returns the applicant's name regardless of request type.
func (r *SellerRequest) DisplayName() string {
	switch r.Type {
	case SellerTypeCompany:
		if r.CompanyInfo != nil {
			return r.CompanyInfo.CompanyName
		}
	default:
		if r.IndividualInfo != nil {
			return r.IndividualInfo.FullName
		}
	}
	return ""
}
