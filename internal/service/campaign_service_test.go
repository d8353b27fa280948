package service

import (
	"errors"
	"testing"

	"heartchain/internal/domain"
	"heartchain/internal/models"
	"heartchain/internal/repository"

	"gorm.io/gorm"
)

func newCampaignService(db *gorm.DB) *CampaignService {
	_, orphRepo, campaignRepo, _, _, _ := newRepos(db)
	return NewCampaignService(campaignRepo, orphRepo)
}

func validCampaignInput() CampaignInput {
	return CampaignInput{
		Title:        "School Supplies",
		Description:  "Books and stationery for the new term",
		Category:     "education",
		TargetAmount: 25000,
	}
}

func TestCreateCampaignRequiresVerifiedOrphanage(t *testing.T) {
	db := newTestDB(t)
	svc := newCampaignService(db)

	for i, status := range []string{domain.OrphanagePending, domain.OrphanageRejected, domain.OrphanageSuspended} {
		owner := seedUser(t, db, status+"@example.com", domain.RoleOrphanage)
		seedOrphanage(t, db, owner, status)
		if _, err := svc.Create(owner.ID, validCampaignInput()); !errors.Is(err, ErrOrphanageNotVerified) {
			t.Errorf("case %d (%s): got %v, want ErrOrphanageNotVerified", i, status, err)
		}
	}

	owner := seedUser(t, db, "verified@example.com", domain.RoleOrphanage)
	seedOrphanage(t, db, owner, domain.OrphanageVerified)
	c, err := svc.Create(owner.ID, validCampaignInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Status != domain.CampaignPendingApproval {
		t.Fatalf("status = %q, want pending_approval", c.Status)
	}

	donor := seedUser(t, db, "donor@example.com", domain.RoleDonor)
	if _, err := svc.Create(donor.ID, validCampaignInput()); !errors.Is(err, ErrOrphanageMissing) {
		t.Fatalf("user without orphanage: got %v, want ErrOrphanageMissing", err)
	}
}

func TestCreateCampaignValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newCampaignService(db)
	owner := seedUser(t, db, "owner@example.com", domain.RoleOrphanage)
	seedOrphanage(t, db, owner, domain.OrphanageVerified)

	in := validCampaignInput()
	in.Category = "yachts"
	if _, err := svc.Create(owner.ID, in); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown category: got %v", err)
	}
	in = validCampaignInput()
	in.TargetAmount = 0
	if _, err := svc.Create(owner.ID, in); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero target: got %v", err)
	}
	in = validCampaignInput()
	in.Title = "   "
	if _, err := svc.Create(owner.ID, in); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank title: got %v", err)
	}
}

func TestApproveCampaign(t *testing.T) {
	db := newTestDB(t)
	svc := newCampaignService(db)
	owner := seedUser(t, db, "owner@example.com", domain.RoleOrphanage)
	o := seedOrphanage(t, db, owner, domain.OrphanageVerified)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)

	c := seedCampaign(t, db, o, domain.CampaignPendingApproval, 1000)
	got, err := svc.Approve(admin.ID, c.ID, true, "")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if got.Status != domain.CampaignActive {
		t.Fatalf("status = %q, want active", got.Status)
	}
	if got.ApprovedByID == nil || *got.ApprovedByID != admin.ID || got.ApprovedAt == nil {
		t.Fatal("approval audit fields not set")
	}

	// Approving twice is refused; the transition is one-way.
	if _, err := svc.Approve(admin.ID, c.ID, true, ""); !errors.Is(err, ErrCampaignNotPending) {
		t.Fatalf("double approve: got %v, want ErrCampaignNotPending", err)
	}

	r := seedCampaign(t, db, o, domain.CampaignPendingApproval, 1000)
	if _, err := svc.Approve(admin.ID, r.ID, false, ""); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("reject without reason: got %v, want ErrReasonRequired", err)
	}
	rejected, err := svc.Approve(admin.ID, r.ID, false, "incomplete documentation")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != domain.CampaignRejected || rejected.RejectionReason == "" {
		t.Fatalf("rejection not recorded: %+v", rejected)
	}
}

func TestUpdateCampaignOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newCampaignService(db)
	owner := seedUser(t, db, "owner@example.com", domain.RoleOrphanage)
	o := seedOrphanage(t, db, owner, domain.OrphanageVerified)
	other := seedUser(t, db, "other@example.com", domain.RoleOrphanage)
	seedOrphanage(t, db, other, domain.OrphanageVerified)
	c := seedCampaign(t, db, o, domain.CampaignActive, 1000)

	title := "Renamed Drive"
	if _, err := svc.Update(other.ID, c.ID, CampaignUpdate{Title: &title}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("non-owner update: got %v, want ErrNotOwner", err)
	}
	got, err := svc.Update(owner.ID, c.ID, CampaignUpdate{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != title {
		t.Fatalf("title = %q", got.Title)
	}
}

func TestDeleteCampaignWithFundsRefused(t *testing.T) {
	db := newTestDB(t)
	svc := newCampaignService(db)
	owner := seedUser(t, db, "owner@example.com", domain.RoleOrphanage)
	o := seedOrphanage(t, db, owner, domain.OrphanageVerified)

	funded := seedCampaign(t, db, o, domain.CampaignActive, 1000)
	if err := db.Model(&models.Campaign{}).Where("id = ?", funded.ID).Update("raised_amount", 500).Error; err != nil {
		t.Fatalf("fund: %v", err)
	}
	if err := svc.Delete(owner.ID, funded.ID, false); !errors.Is(err, ErrCampaignHasFunds) {
		t.Fatalf("delete funded: got %v, want ErrCampaignHasFunds", err)
	}

	empty := seedCampaign(t, db, o, domain.CampaignPendingApproval, 1000)
	if err := svc.Delete(owner.ID, empty.ID, false); err != nil {
		t.Fatalf("delete empty: %v", err)
	}
	var n int64
	if err := db.Model(&models.Campaign{}).Where("id = ?", empty.ID).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatal("campaign still visible after delete")
	}
}

func TestPublicListingHidesUnverifiedOrphanages(t *testing.T) {
	db := newTestDB(t)
	_, _, campaignRepo, _, _, _ := newRepos(db)

	verifiedOwner := seedUser(t, db, "verified@example.com", domain.RoleOrphanage)
	verified := seedOrphanage(t, db, verifiedOwner, domain.OrphanageVerified)
	seedCampaign(t, db, verified, domain.CampaignActive, 1000)
	seedCampaign(t, db, verified, domain.CampaignPendingApproval, 1000)

	suspendedOwner := seedUser(t, db, "suspended@example.com", domain.RoleOrphanage)
	suspended := seedOrphanage(t, db, suspendedOwner, domain.OrphanageSuspended)
	seedCampaign(t, db, suspended, domain.CampaignActive, 1000)

	rejectedOwner := seedUser(t, db, "rejected@example.com", domain.RoleOrphanage)
	rejected := seedOrphanage(t, db, rejectedOwner, domain.OrphanageRejected)
	seedCampaign(t, db, rejected, domain.CampaignActive, 1000)

	out, err := campaignRepo.ListPublicActive(20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("public listing has %d campaigns, want 1", len(out))
	}
	if out[0].OrphanageID != verified.ID {
		t.Fatal("listing shows a campaign of an unverified orphanage")
	}
	// The filtered listing that backs GET /campaigns for donors must apply
	// the same visibility rule.
	filtered, err := campaignRepo.List(repository.CampaignFilter{
		Status:            domain.CampaignActive,
		VerifiedOwnerOnly: true,
	})
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(filtered) != 1 || filtered[0].OrphanageID != verified.ID {
		t.Fatalf("filtered listing leaks unverified orphanages: got %d campaigns", len(filtered))
	}

	// Admin queries see everything.
	all, err := campaignRepo.List(repository.CampaignFilter{Status: domain.CampaignActive})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("admin listing has %d active campaigns, want 3", len(all))
	}

	// Campaign rows of the rejected org still exist; they are just not public.
	var n int64
	if err := db.Model(&models.Campaign{}).Where("orphanage_id = ?", rejected.ID).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatal("rejected org's campaign was removed instead of hidden")
	}
}
