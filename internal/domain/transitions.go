package domain

// Admin-driven verification transitions for an orphanage. A rejected or
// suspended orphanage can be re-verified, so no state is formally terminal.
var orphanageTransitions = map[string][]string{
	OrphanagePending:   {OrphanageVerified, OrphanageRejected},
	OrphanageVerified:  {OrphanageSuspended},
	OrphanageRejected:  {OrphanageVerified},
	OrphanageSuspended: {OrphanageVerified},
}

// Campaigns require explicit admin approval before going live; approval moves
// pending_approval straight to active. completed is reached only through the
// donation ledger when the target is met.
var campaignTransitions = map[string][]string{
	CampaignPendingApproval: {CampaignActive, CampaignRejected},
	CampaignActive:          {CampaignCompleted},
}

// Report verification is one-way.
var reportTransitions = map[string][]string{
	ReportSubmitted: {ReportVerified, ReportRejected},
}

func CanTransitionOrphanage(from, to string) bool {
	return contains(orphanageTransitions[from], to)
}

func CanTransitionCampaign(from, to string) bool {
	return contains(campaignTransitions[from], to)
}

func CanTransitionReport(from, to string) bool {
	return contains(reportTransitions[from], to)
}

// CampaignOpenForDonations reports whether a campaign status accepts new
// donations. Only live campaigns qualify; pending_approval is displayable in
// some older clients but never open for money.
func CampaignOpenForDonations(status string) bool {
	return status == CampaignActive
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
