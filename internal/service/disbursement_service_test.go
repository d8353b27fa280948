package service

import (
	"context"
	"errors"
	"testing"

	"heartchain/internal/domain"
	"heartchain/internal/models"

	"gorm.io/gorm"
)

func newDisbursementService(db *gorm.DB) (*DisbursementService, *BalanceService) {
	_, _, campaignRepo, _, reportRepo, txnRepo := newRepos(db)
	balances := NewBalanceService(db, nil, 0)
	return NewDisbursementService(db, campaignRepo, reportRepo, txnRepo, balances), balances
}

func fundCampaign(t *testing.T, db *gorm.DB, id uint, raised float64) {
	t.Helper()
	if err := db.Model(&models.Campaign{}).Where("id = ?", id).Update("raised_amount", raised).Error; err != nil {
		t.Fatalf("fund campaign: %v", err)
	}
}

func verifyReportFor(t *testing.T, db *gorm.DB, owner *models.User, admin *models.User, campaignID uint, utilized float64) {
	t.Helper()
	svc := newReportService(db)
	r, err := svc.Submit(owner.ID, validReportInput(campaignID, utilized))
	if err != nil {
		t.Fatalf("submit report: %v", err)
	}
	if _, err := svc.Verify(admin.ID, r.ID, domain.ReportVerified, "", ""); err != nil {
		t.Fatalf("verify report: %v", err)
	}
}

func TestDisburseRequiresVerifiedReport(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newDisbursementService(db)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)
	owner := seedUser(t, db, "owner@example.com", domain.RoleOrphanage)
	o := seedOrphanage(t, db, owner, domain.OrphanageVerified)
	c := seedCampaign(t, db, o, domain.CampaignActive, 10000)
	fundCampaign(t, db, c.ID, 5000)

	if _, err := svc.Disburse(context.Background(), admin.ID, c.ID, 1000, "", ""); !errors.Is(err, ErrNoVerifiedReports) {
		t.Fatalf("no verified report: got %v, want ErrNoVerifiedReports", err)
	}

	verifyReportFor(t, db, owner, admin, c.ID, 1000)
	txn, err := svc.Disburse(context.Background(), admin.ID, c.ID, 1000, "bank_transfer", "UTR123")
	if err != nil {
		t.Fatalf("disburse: %v", err)
	}
	if txn.Type != domain.TxnDisbursement || txn.Status != domain.TxnCompleted {
		t.Fatalf("unexpected transaction: %+v", txn)
	}
	if txn.TransactionID == "" {
		t.Fatal("no transaction id issued")
	}
	if cc := campaignByID(t, db, c.ID); cc.DisbursedAmount != 1000 {
		t.Fatalf("disbursed = %v, want 1000", cc.DisbursedAmount)
	}
}

func TestDisburseBoundedByRaisedFunds(t *testing.T) {
	db := newTestDB(t)
	svc, balances := newDisbursementService(db)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)
	owner := seedUser(t, db, "owner@example.com", domain.RoleOrphanage)
	o := seedOrphanage(t, db, owner, domain.OrphanageVerified)
	c := seedCampaign(t, db, o, domain.CampaignActive, 10000)
	fundCampaign(t, db, c.ID, 3000)
	verifyReportFor(t, db, owner, admin, c.ID, 3000)

	if _, err := svc.Disburse(context.Background(), admin.ID, c.ID, 0, "", ""); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount: got %v, want ErrInvalidAmount", err)
	}
	if _, err := svc.Disburse(context.Background(), admin.ID, c.ID, 3001, "", ""); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("overdraw: got %v, want ErrInsufficientFunds", err)
	}

	if _, err := svc.Disburse(context.Background(), admin.ID, c.ID, 2000, "", ""); err != nil {
		t.Fatalf("first payout: %v", err)
	}
	// Only 1000 left; a second 2000 payout must be refused.
	if _, err := svc.Disburse(context.Background(), admin.ID, c.ID, 2000, "", ""); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("second payout: got %v, want ErrInsufficientFunds", err)
	}
	if _, err := svc.Disburse(context.Background(), admin.ID, c.ID, 1000, "", ""); err != nil {
		t.Fatalf("exact remainder payout: %v", err)
	}

	balance, err := balances.AvailableBalance(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 0 {
		t.Fatalf("balance = %v after full payout, want 0", balance)
	}

	if _, err := svc.Disburse(context.Background(), admin.ID, 9999, 100, "", ""); !errors.Is(err, ErrCampaignNotFound) {
		t.Fatalf("unknown campaign: got %v, want ErrCampaignNotFound", err)
	}
}

func TestPayoutHistory(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newDisbursementService(db)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)
	owner := seedUser(t, db, "owner@example.com", domain.RoleOrphanage)
	o := seedOrphanage(t, db, owner, domain.OrphanageVerified)
	c := seedCampaign(t, db, o, domain.CampaignActive, 10000)
	fundCampaign(t, db, c.ID, 5000)
	verifyReportFor(t, db, owner, admin, c.ID, 5000)

	first, err := svc.Disburse(context.Background(), admin.ID, c.ID, 1500, "upi", "ref-1")
	if err != nil {
		t.Fatalf("payout 1: %v", err)
	}
	if _, err := svc.Disburse(context.Background(), admin.ID, c.ID, 500, "bank_transfer", "ref-2"); err != nil {
		t.Fatalf("payout 2: %v", err)
	}

	payouts, total, err := svc.Payouts(o.ID)
	if err != nil {
		t.Fatalf("payouts: %v", err)
	}
	if len(payouts) != 2 {
		t.Fatalf("payouts = %d, want 2", len(payouts))
	}
	for _, p := range payouts {
		if p.Type != domain.TxnDisbursement {
			t.Fatalf("non-disbursement in payout history: %+v", p)
		}
	}
	if total != 2000 {
		t.Fatalf("payout total = %v, want 2000", total)
	}

	// The ledger row is retrievable by its external transaction id.
	_, _, _, _, _, txnRepo := newRepos(db)
	got, err := txnRepo.GetByTransactionID(first.TransactionID)
	if err != nil {
		t.Fatalf("get by transaction id: %v", err)
	}
	if got.Amount != 1500 || got.DisbursementReference != "ref-1" {
		t.Fatalf("ledger row mismatch: %+v", got)
	}
}

func TestAvailableBalanceDerived(t *testing.T) {
	db := newTestDB(t)
	balances := NewBalanceService(db, nil, 0)
	owner := seedUser(t, db, "owner@example.com", domain.RoleOrphanage)
	o := seedOrphanage(t, db, owner, domain.OrphanageVerified)

	c1 := seedCampaign(t, db, o, domain.CampaignActive, 10000)
	c2 := seedCampaign(t, db, o, domain.CampaignCompleted, 2000)
	fundCampaign(t, db, c1.ID, 4000)
	fundCampaign(t, db, c2.ID, 2500)
	if err := db.Model(&models.Campaign{}).Where("id = ?", c1.ID).Update("disbursed_amount", 1500).Error; err != nil {
		t.Fatalf("disburse: %v", err)
	}

	balance, err := balances.AvailableBalance(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 5000 {
		t.Fatalf("balance = %v, want 5000 (6500 raised - 1500 disbursed)", balance)
	}

	// An orphanage with no campaigns has a zero balance, not an error.
	other := seedUser(t, db, "other@example.com", domain.RoleOrphanage)
	oo := seedOrphanage(t, db, other, domain.OrphanageVerified)
	balance, err = balances.AvailableBalance(context.Background(), oo.ID)
	if err != nil || balance != 0 {
		t.Fatalf("empty balance = %v, %v; want 0, nil", balance, err)
	}
}
