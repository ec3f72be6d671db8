package seller

import "sokoni/models"

// missingDocuments returns the names of every required document absent from
// the submission. The required set depends on the seller type: individuals
// need idCard, proofOfAddress, taxCertificate and at least one photo;
// companies additionally need rccm and companyStatutes.
func missingDocuments(sellerType string, docs models.RequestDocuments) []string {
	var missing []string

	if docs.IDCard == "" {
		missing = append(missing, "idCard")
	}
	if docs.ProofOfAddress == "" {
		missing = append(missing, "proofOfAddress")
	}
	if docs.TaxCertificate == "" {
		missing = append(missing, "taxCertificate")
	}
	if len(docs.Photos) == 0 {
		missing = append(missing, "photos")
	}

	if sellerType == models.SellerTypeCompany {
		if docs.RCCM == "" {
			missing = append(missing, "rccm")
		}
		if docs.CompanyStatutes == "" {
			missing = append(missing, "companyStatutes")
		}
	}

	return missing
}

// personalInfoMatchesType reports whether exactly the personal info record
// matching the declared type is populated.
func personalInfoMatchesType(req *models.SellerRequest) bool {
	switch req.Type {
	case models.SellerTypeIndividual:
		return req.IndividualInfo != nil && req.CompanyInfo == nil
	case models.SellerTypeCompany:
		return req.CompanyInfo != nil && req.IndividualInfo == nil
	}
	return false
}

// complianceComplete reports whether all three acknowledgments were accepted.
func complianceComplete(c models.Compliance) bool {
	return c.TermsAccepted && c.QualityStandardsAccepted && c.AntiCounterfeitingAccepted
}
