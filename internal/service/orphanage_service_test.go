package service

import (
	"errors"
	"testing"

	"heartchain/internal/domain"
)

func TestVerifyOrphanageTransitions(t *testing.T) {
	db := newTestDB(t)
	_, orphRepo, _, _, _, _ := newRepos(db)
	svc := NewOrphanageService(orphRepo)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)
	owner := seedUser(t, db, "owner@example.com", domain.RoleOrphanage)
	o := seedOrphanage(t, db, owner, domain.OrphanagePending)

	got, err := svc.Verify(admin.ID, o.ID, domain.OrphanageVerified, "")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.Status != domain.OrphanageVerified {
		t.Fatalf("status = %q, want verified", got.Status)
	}
	if got.VerifiedByID == nil || *got.VerifiedByID != admin.ID || got.VerifiedAt == nil {
		t.Fatal("verification audit fields not set")
	}

	// verified -> rejected is not a legal move; verified -> suspended is.
	if _, err := svc.Verify(admin.ID, o.ID, domain.OrphanageRejected, "reason"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("verified->rejected: got %v, want ErrInvalidTransition", err)
	}
	if _, err := svc.Verify(admin.ID, o.ID, domain.OrphanageSuspended, ""); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	// A suspended org can be reinstated.
	if _, err := svc.Verify(admin.ID, o.ID, domain.OrphanageVerified, ""); err != nil {
		t.Fatalf("reinstate: %v", err)
	}

	if _, err := svc.Verify(admin.ID, o.ID, "sideways", ""); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("unknown status: got %v, want ErrUnknownStatus", err)
	}
}

func TestRejectOrphanageRequiresReason(t *testing.T) {
	db := newTestDB(t)
	_, orphRepo, _, _, _, _ := newRepos(db)
	svc := NewOrphanageService(orphRepo)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)
	owner := seedUser(t, db, "owner@example.com", domain.RoleOrphanage)
	o := seedOrphanage(t, db, owner, domain.OrphanagePending)

	if _, err := svc.Verify(admin.ID, o.ID, domain.OrphanageRejected, ""); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("reject without reason: got %v, want ErrReasonRequired", err)
	}
	got, err := svc.Verify(admin.ID, o.ID, domain.OrphanageRejected, "documents do not match registry")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got.RejectionReason == "" {
		t.Fatal("rejection reason not stored")
	}

	// Rejected orgs can re-apply and be verified; the reason is cleared.
	got, err = svc.Verify(admin.ID, o.ID, domain.OrphanageVerified, "")
	if err != nil {
		t.Fatalf("verify after reject: %v", err)
	}
	if got.RejectionReason != "" {
		t.Fatal("stale rejection reason kept after verification")
	}
}

func TestUpdateOrphanageProfile(t *testing.T) {
	db := newTestDB(t)
	_, orphRepo, _, _, _, _ := newRepos(db)
	svc := NewOrphanageService(orphRepo)
	owner := seedUser(t, db, "owner@example.com", domain.RoleOrphanage)
	o := seedOrphanage(t, db, owner, domain.OrphanageVerified)
	other := seedUser(t, db, "other@example.com", domain.RoleOrphanage)

	name := "Sunrise Children's Home"
	if _, err := svc.UpdateProfile(other.ID, o.ID, OrphanageUpdate{Name: &name}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("non-owner edit: got %v, want ErrNotOwner", err)
	}

	badCap := 0
	if _, err := svc.UpdateProfile(owner.ID, o.ID, OrphanageUpdate{Capacity: &badCap}); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero capacity: got %v, want validation error", err)
	}

	occupancy := 32
	got, err := svc.UpdateProfile(owner.ID, o.ID, OrphanageUpdate{Name: &name, CurrentOccupancy: &occupancy})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != name || got.CurrentOccupancy != 32 {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.Status != domain.OrphanageVerified {
		t.Fatal("profile edit must not touch verification status")
	}
}
