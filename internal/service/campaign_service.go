package service

import (
	"errors"
	"strings"
	"time"

	"heartchain/internal/domain"
	"heartchain/internal/models"
	"heartchain/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrOrphanageNotVerified = errors.New("orphanage must be verified")
	ErrOrphanageMissing     = errors.New("orphanage not found")
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrCampaignNotPending   = errors.New("campaign is not awaiting approval")
	ErrCampaignHasFunds     = errors.New("campaign with donations cannot be deleted")
)

type CampaignService struct {
	campaignRepo *repository.CampaignRepository
	orphRepo     *repository.OrphanageRepository
}

func NewCampaignService(campaignRepo *repository.CampaignRepository, orphRepo *repository.OrphanageRepository) *CampaignService {
	return &CampaignService{campaignRepo: campaignRepo, orphRepo: orphRepo}
}

type CampaignInput struct {
	Title        string
	Description  string
	Category     string
	TargetAmount float64
	EndDate      *time.Time
	Images       []string
}

func (in *CampaignInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Message: "required"}
	}
	if !domain.ValidCampaignCategory(in.Category) {
		return &ValidationError{Field: "category", Message: "unknown category"}
	}
	if in.TargetAmount <= 0 {
		return &ValidationError{Field: "target_amount", Message: "must be greater than zero"}
	}
	if in.EndDate != nil && in.EndDate.Before(time.Now()) {
		return &ValidationError{Field: "end_date", Message: "must be in the future"}
	}
	return nil
}

// Create files a campaign for the caller's orphanage. The orphanage must be
// verified; the campaign starts in pending_approval and goes live only
// through admin approval.
func (s *CampaignService) Create(ownerID uint, in CampaignInput) (*models.Campaign, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	o, err := s.orphRepo.GetByUserID(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrphanageMissing
		}
		return nil, err
	}
	if o.Status != domain.OrphanageVerified {
		return nil, ErrOrphanageNotVerified
	}
	c := &models.Campaign{
		OrphanageID:  o.ID,
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		TargetAmount: in.TargetAmount,
		StartDate:    time.Now(),
		EndDate:      in.EndDate,
		Images:       in.Images,
		Status:       domain.CampaignPendingApproval,
	}
	if err := s.campaignRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Approve moves a pending campaign to active, or rejects it with a reason.
func (s *CampaignService) Approve(adminID, campaignID uint, approved bool, rejectionReason string) (*models.Campaign, error) {
	c, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	target := domain.CampaignActive
	if !approved {
		target = domain.CampaignRejected
		if rejectionReason == "" {
			return nil, ErrReasonRequired
		}
	}
	if !domain.CanTransitionCampaign(c.Status, target) {
		return nil, ErrCampaignNotPending
	}
	now := time.Now()
	c.Status = target
	if approved {
		c.ApprovedByID = &adminID
		c.ApprovedAt = &now
	} else {
		c.RejectionReason = rejectionReason
	}
	if err := s.campaignRepo.Update(c); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"campaign_id": c.ID,
		"status":      c.Status,
		"admin_id":    adminID,
	}).Info("campaign approval decided")
	return c, nil
}

type CampaignUpdate struct {
	Title        *string
	Description  *string
	TargetAmount *float64
	EndDate      *time.Time
	Images       []string
}

func (s *CampaignService) Update(ownerID, campaignID uint, upd CampaignUpdate) (*models.Campaign, error) {
	c, err := s.ownedCampaign(ownerID, campaignID)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}
	if upd.TargetAmount != nil {
		if *upd.TargetAmount <= 0 {
			return nil, &ValidationError{Field: "target_amount", Message: "must be greater than zero"}
		}
		c.TargetAmount = *upd.TargetAmount
	}
	if upd.EndDate != nil {
		c.EndDate = upd.EndDate
	}
	if upd.Images != nil {
		c.Images = upd.Images
	}
	if err := s.campaignRepo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a campaign that has taken no money. Once donations exist the
// ledger must stay reconstructible, so deletion is refused.
func (s *CampaignService) Delete(ownerID, campaignID uint, isAdmin bool) error {
	c, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	if !isAdmin {
		o, err := s.orphRepo.GetByID(c.OrphanageID)
		if err != nil {
			return err
		}
		if o.UserID != ownerID {
			return ErrNotOwner
		}
	}
	if c.RaisedAmount > 0 {
		return ErrCampaignHasFunds
	}
	return s.campaignRepo.Delete(campaignID)
}

func (s *CampaignService) ListMine(ownerID uint) ([]models.Campaign, error) {
	o, err := s.orphRepo.GetByUserID(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrphanageMissing
		}
		return nil, err
	}
	return s.campaignRepo.ListByOrphanage(o.ID)
}

func (s *CampaignService) ownedCampaign(ownerID, campaignID uint) (*models.Campaign, error) {
	c, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	o, err := s.orphRepo.GetByID(c.OrphanageID)
	if err != nil {
		return nil, err
	}
	if o.UserID != ownerID {
		return nil, ErrNotOwner
	}
	return c, nil
}
