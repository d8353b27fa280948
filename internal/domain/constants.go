package domain

const (
	RoleDonor     = "donor"
	RoleOrphanage = "orphanage"
	RoleAdmin     = "admin"
)

const (
	OrphanagePending   = "pending"
	OrphanageVerified  = "verified"
	OrphanageRejected  = "rejected"
	OrphanageSuspended = "suspended"
)

const (
	CampaignPendingApproval = "pending_approval"
	CampaignApproved        = "approved"
	CampaignActive          = "active"
	CampaignCompleted       = "completed"
	CampaignRejected        = "rejected"
)

const (
	DonationInitiated = "initiated"
	DonationCompleted = "completed"
	DonationFailed    = "failed"
)

const (
	ReportSubmitted = "submitted"
	ReportVerified  = "verified"
	ReportRejected  = "rejected"
)

const (
	ReportTypeUtilization = "utilization"
	ReportTypeProgress    = "progress"
	ReportTypeCompletion  = "completion"
	ReportTypeQuarterly   = "quarterly"
)

const (
	TxnDonation     = "donation"
	TxnDisbursement = "disbursement"
)

const (
	TxnPending   = "pending"
	TxnCompleted = "completed"
	TxnFailed    = "failed"
)

// CampaignCategories is the fixed set a campaign may be filed under.
var CampaignCategories = []string{
	"education", "food", "medical", "infrastructure", "clothing", "emergency", "other",
}

func ValidCampaignCategory(c string) bool {
	for _, v := range CampaignCategories {
		if v == c {
			return true
		}
	}
	return false
}

func ValidReportType(t string) bool {
	switch t {
	case ReportTypeUtilization, ReportTypeProgress, ReportTypeCompletion, ReportTypeQuarterly:
		return true
	}
	return false
}
