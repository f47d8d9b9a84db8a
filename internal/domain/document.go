package domain

// Canonical document labels. The label is the key in a loan's DocumentMap
// and the only vocabulary the upload endpoints accept.
const (
	DocAadharImage     = "Aadhar Image"
	DocPANCard         = "PAN Card"
	DocBankStatement   = "Bank Statement"
	DocSalarySlip      = "Salary Slip"
	DocIncomeTaxReturn = "Income Tax Return"
	DocAddressProof    = "Address Proof"
	DocPassportPhoto   = "Passport Photo"
	DocShopLicense     = "Shop License"
	DocGSTCertificate  = "GST Certificate"
	DocCancelledCheque = "Cancelled Cheque"
)

var documentLabels = map[string]struct{}{
	DocAadharImage:     {},
	DocPANCard:         {},
	DocBankStatement:   {},
	DocSalarySlip:      {},
	DocIncomeTaxReturn: {},
	DocAddressProof:    {},
	DocPassportPhoto:   {},
	DocShopLicense:     {},
	DocGSTCertificate:  {},
	DocCancelledCheque: {},
}

func ValidDocumentLabel(label string) bool {
	_, ok := documentLabels[label]
	return ok
}

// DocumentLabels returns the canonical label set in a fixed order.
func DocumentLabels() []string {
	return []string{
		DocAadharImage,
		DocPANCard,
		DocBankStatement,
		DocSalarySlip,
		DocIncomeTaxReturn,
		DocAddressProof,
		DocPassportPhoto,
		DocShopLicense,
		DocGSTCertificate,
		DocCancelledCheque,
	}
}
