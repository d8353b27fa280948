package service

import (
	"context"
	"errors"
	"testing"

	"heartchain/internal/domain"
	"heartchain/internal/models"

	"gorm.io/gorm"
)

func newSummaryService(db *gorm.DB) *SummaryService {
	_, orphRepo, campaignRepo, donationRepo, reportRepo, _ := newRepos(db)
	balances := NewBalanceService(db, nil, 0)
	return NewSummaryService(orphRepo, campaignRepo, donationRepo, reportRepo, balances)
}

func TestOrphanageSummary(t *testing.T) {
	db := newTestDB(t)
	svc := newSummaryService(db)
	owner := seedUser(t, db, "owner@example.com", domain.RoleOrphanage)
	o := seedOrphanage(t, db, owner, domain.OrphanageVerified)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)

	// Two campaigns: 1500/5000 (30%) and 1000/2000 (50%).
	c1 := seedCampaign(t, db, o, domain.CampaignActive, 5000)
	c2 := seedCampaign(t, db, o, domain.CampaignActive, 2000)
	fundCampaign(t, db, c1.ID, 1500)
	fundCampaign(t, db, c2.ID, 1000)

	// 600 of the 2500 raised is covered by reports.
	rsvc := newReportService(db)
	r, err := rsvc.Submit(owner.ID, validReportInput(c1.ID, 600))
	if err != nil {
		t.Fatalf("submit report: %v", err)
	}
	if _, err := rsvc.Verify(admin.ID, r.ID, domain.ReportVerified, "", ""); err != nil {
		t.Fatalf("verify report: %v", err)
	}

	s, err := svc.ForOwner(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.Orphanage.ID != o.ID {
		t.Fatal("summary for the wrong orphanage")
	}
	if s.Stats.AvailableBalance != 2500 {
		t.Fatalf("available balance = %v, want 2500", s.Stats.AvailableBalance)
	}
	if s.Stats.AverageProgress != 40 {
		t.Fatalf("average progress = %v, want 40 (mean of 30 and 50)", s.Stats.AverageProgress)
	}
	if s.Stats.UnreportedFunds != 1900 {
		t.Fatalf("unreported funds = %v, want 1900 (2500 raised - 600 reported)", s.Stats.UnreportedFunds)
	}
	if len(s.Projects) != 2 {
		t.Fatalf("projects = %d, want 2", len(s.Projects))
	}
}

func TestSummaryRequiresOrphanage(t *testing.T) {
	db := newTestDB(t)
	svc := newSummaryService(db)
	donor := seedUser(t, db, "donor@example.com", domain.RoleDonor)

	if _, err := svc.ForOwner(context.Background(), donor.ID); !errors.Is(err, ErrOrphanageMissing) {
		t.Fatalf("no orphanage: got %v, want ErrOrphanageMissing", err)
	}
}

func TestSummaryUnreportedFundsFloor(t *testing.T) {
	db := newTestDB(t)
	svc := newSummaryService(db)
	owner := seedUser(t, db, "owner@example.com", domain.RoleOrphanage)
	o := seedOrphanage(t, db, owner, domain.OrphanageVerified)
	c := seedCampaign(t, db, o, domain.CampaignActive, 1000)
	fundCampaign(t, db, c.ID, 100)

	// Reports beyond raised funds (submitted, unverified) floor the stat at
	// zero instead of going negative.
	if err := db.Create(&models.Report{
		CampaignID:           c.ID,
		OrphanageID:          o.ID,
		Title:                "Overstated",
		ReportType:           domain.ReportTypeUtilization,
		AmountUtilized:       500,
		Status:               domain.ReportSubmitted,
		ReportingPeriodStart: c.StartDate,
		ReportingPeriodEnd:   c.StartDate,
	}).Error; err != nil {
		t.Fatalf("seed report: %v", err)
	}

	s, err := svc.ForOwner(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.Stats.UnreportedFunds != 0 {
		t.Fatalf("unreported funds = %v, want 0", s.Stats.UnreportedFunds)
	}
}
