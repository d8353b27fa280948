package service

import (
	"errors"
	"time"

	"heartchain/internal/domain"
	"heartchain/internal/models"
	"heartchain/internal/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrReasonRequired    = errors.New("rejection reason required")
	ErrNotOwner          = errors.New("not the owner")
	ErrUnknownStatus     = errors.New("unknown status")
)

type OrphanageService struct {
	orphRepo *repository.OrphanageRepository
}

func NewOrphanageService(orphRepo *repository.OrphanageRepository) *OrphanageService {
	return &OrphanageService{orphRepo: orphRepo}
}

// Verify applies an admin verification decision. Transitions outside the
// state machine are refused; rejection requires a reason. Campaigns of a
// non-verified orphanage drop out of public listings automatically because
// visibility is derived at query time.
func (s *OrphanageService) Verify(adminID, orphanageID uint, newStatus, rejectionReason string) (*models.Orphanage, error) {
	switch newStatus {
	case domain.OrphanagePending, domain.OrphanageVerified, domain.OrphanageRejected, domain.OrphanageSuspended:
	default:
		return nil, ErrUnknownStatus
	}
	o, err := s.orphRepo.GetByID(orphanageID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionOrphanage(o.Status, newStatus) {
		return nil, ErrInvalidTransition
	}
	if newStatus == domain.OrphanageRejected && rejectionReason == "" {
		return nil, ErrReasonRequired
	}
	now := time.Now()
	o.Status = newStatus
	o.VerifiedByID = &adminID
	o.VerifiedAt = &now
	if newStatus == domain.OrphanageRejected {
		o.RejectionReason = rejectionReason
	} else {
		o.RejectionReason = ""
	}
	if err := s.orphRepo.Update(o); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"orphanage_id": o.ID,
		"status":       newStatus,
		"admin_id":     adminID,
	}).Info("orphanage verification updated")
	return o, nil
}

// UpdateProfile applies owner edits. Status and verification fields are
// admin-only and never touched here.
type OrphanageUpdate struct {
	Name             *string
	Description      *string
	Email            *string
	Phone            *string
	Website          *string
	Address          *string
	City             *string
	State            *string
	Pincode          *string
	Capacity         *int
	CurrentOccupancy *int
	Logo             *string
	Images           []string
}

func (s *OrphanageService) UpdateProfile(ownerID, orphanageID uint, upd OrphanageUpdate) (*models.Orphanage, error) {
	o, err := s.orphRepo.GetByID(orphanageID)
	if err != nil {
		return nil, err
	}
	if o.UserID != ownerID {
		return nil, ErrNotOwner
	}
	if upd.Capacity != nil && *upd.Capacity <= 0 {
		return nil, &ValidationError{Field: "capacity", Message: "must be greater than zero"}
	}
	if upd.CurrentOccupancy != nil && *upd.CurrentOccupancy < 0 {
		return nil, &ValidationError{Field: "current_occupancy", Message: "must not be negative"}
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&o.Name, upd.Name)
	apply(&o.Description, upd.Description)
	apply(&o.Email, upd.Email)
	apply(&o.Phone, upd.Phone)
	apply(&o.Website, upd.Website)
	apply(&o.Address, upd.Address)
	apply(&o.City, upd.City)
	apply(&o.State, upd.State)
	apply(&o.Pincode, upd.Pincode)
	apply(&o.Logo, upd.Logo)
	if upd.Capacity != nil {
		o.Capacity = *upd.Capacity
	}
	if upd.CurrentOccupancy != nil {
		o.CurrentOccupancy = *upd.CurrentOccupancy
	}
	if upd.Images != nil {
		o.Images = upd.Images
	}
	if err := s.orphRepo.Update(o); err != nil {
		return nil, err
	}
	return o, nil
}
