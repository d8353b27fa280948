package domain

import "testing"

func TestOrphanageTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{OrphanagePending, OrphanageVerified, true},
		{OrphanagePending, OrphanageRejected, true},
		{OrphanagePending, OrphanageSuspended, false},
		{OrphanageVerified, OrphanageSuspended, true},
		{OrphanageVerified, OrphanageRejected, false},
		{OrphanageVerified, OrphanagePending, false},
		{OrphanageRejected, OrphanageVerified, true},
		{OrphanageRejected, OrphanageSuspended, false},
		{OrphanageSuspended, OrphanageVerified, true},
		{OrphanageSuspended, OrphanageRejected, false},
		{OrphanagePending, OrphanagePending, false},
	}
	for _, c := range cases {
		if got := CanTransitionOrphanage(c.from, c.to); got != c.ok {
			t.Errorf("orphanage %s -> %s: got %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestCampaignTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{CampaignPendingApproval, CampaignActive, true},
		{CampaignPendingApproval, CampaignRejected, true},
		{CampaignPendingApproval, CampaignCompleted, false},
		{CampaignActive, CampaignCompleted, true},
		{CampaignActive, CampaignRejected, false},
		{CampaignCompleted, CampaignActive, false},
		{CampaignRejected, CampaignActive, false},
	}
	for _, c := range cases {
		if got := CanTransitionCampaign(c.from, c.to); got != c.ok {
			t.Errorf("campaign %s -> %s: got %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestReportTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{ReportSubmitted, ReportVerified, true},
		{ReportSubmitted, ReportRejected, true},
		{ReportVerified, ReportRejected, false},
		{ReportVerified, ReportSubmitted, false},
		{ReportRejected, ReportVerified, false},
	}
	for _, c := range cases {
		if got := CanTransitionReport(c.from, c.to); got != c.ok {
			t.Errorf("report %s -> %s: got %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestCampaignOpenForDonations(t *testing.T) {
	if !CampaignOpenForDonations(CampaignActive) {
		t.Error("active campaigns must accept donations")
	}
	for _, s := range []string{CampaignPendingApproval, CampaignCompleted, CampaignRejected, CampaignApproved} {
		if CampaignOpenForDonations(s) {
			t.Errorf("%s campaigns must not accept donations", s)
		}
	}
}
