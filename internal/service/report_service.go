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
	ErrReportNotFound     = errors.New("report not found")
	ErrReportDecided      = errors.New("report already verified or rejected")
	ErrUtilizationExceeds = errors.New("verified utilization would exceed raised funds")
)

type ReportService struct {
	reportRepo   *repository.ReportRepository
	campaignRepo *repository.CampaignRepository
	orphRepo     *repository.OrphanageRepository
}

func NewReportService(reportRepo *repository.ReportRepository, campaignRepo *repository.CampaignRepository, orphRepo *repository.OrphanageRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo, campaignRepo: campaignRepo, orphRepo: orphRepo}
}

type ReportInput struct {
	CampaignID           uint
	Title                string
	Description          string
	ReportType           string
	AmountUtilized       float64
	BeneficiariesCount   int
	ActivitiesConducted  []string
	Images               []string
	Receipts             []string
	Documents            []string
	ReportingPeriodStart time.Time
	ReportingPeriodEnd   time.Time
}

func (in *ReportInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Message: "required"}
	}
	if !domain.ValidReportType(in.ReportType) {
		return &ValidationError{Field: "report_type", Message: "unknown report type"}
	}
	if in.AmountUtilized < 0 {
		return &ValidationError{Field: "amount_utilized", Message: "must not be negative"}
	}
	if in.BeneficiariesCount < 0 {
		return &ValidationError{Field: "beneficiaries_count", Message: "must not be negative"}
	}
	if in.ReportingPeriodEnd.Before(in.ReportingPeriodStart) {
		return &ValidationError{Field: "reporting_period_end", Message: "must not precede period start"}
	}
	return nil
}

// Submit files a utilization report against one of the caller's own
// campaigns. amount_utilized is deliberately not checked against raised
// funds here; the gate sits at verification, where it matters for
// disbursement.
func (s *ReportService) Submit(ownerID uint, in ReportInput) (*models.Report, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	c, err := s.campaignRepo.GetByID(in.CampaignID)
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
	r := &models.Report{
		CampaignID:           c.ID,
		OrphanageID:          c.OrphanageID,
		Title:                in.Title,
		Description:          in.Description,
		ReportType:           in.ReportType,
		AmountUtilized:       in.AmountUtilized,
		BeneficiariesCount:   in.BeneficiariesCount,
		ActivitiesConducted:  in.ActivitiesConducted,
		Images:               in.Images,
		Receipts:             in.Receipts,
		Documents:            in.Documents,
		Status:               domain.ReportSubmitted,
		ReportingPeriodStart: in.ReportingPeriodStart,
		ReportingPeriodEnd:   in.ReportingPeriodEnd,
		SubmittedAt:          time.Now(),
	}
	if err := s.reportRepo.Create(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Verify applies the admin decision. One-way: a decided report stays decided.
// Verification is refused when the campaign's cumulative verified utilization
// would exceed what was actually raised, since verified reports unlock
// disbursement.
func (s *ReportService) Verify(adminID, reportID uint, newStatus, notes, rejectionReason string) (*models.Report, error) {
	if newStatus != domain.ReportVerified && newStatus != domain.ReportRejected {
		return nil, ErrUnknownStatus
	}
	r, err := s.reportRepo.GetByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if !domain.CanTransitionReport(r.Status, newStatus) {
		return nil, ErrReportDecided
	}
	if newStatus == domain.ReportRejected && rejectionReason == "" {
		return nil, ErrReasonRequired
	}
	if newStatus == domain.ReportVerified {
		c, err := s.campaignRepo.GetByID(r.CampaignID)
		if err != nil {
			return nil, err
		}
		verified, err := s.reportRepo.SumVerifiedUtilizedByCampaign(r.CampaignID, r.ID)
		if err != nil {
			return nil, err
		}
		if verified+r.AmountUtilized > c.RaisedAmount {
			return nil, ErrUtilizationExceeds
		}
	}
	now := time.Now()
	r.Status = newStatus
	r.VerifiedByID = &adminID
	r.VerifiedAt = &now
	r.VerificationNotes = notes
	r.RejectionReason = rejectionReason
	if err := s.reportRepo.Update(r); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"report_id": r.ID,
		"status":    newStatus,
		"admin_id":  adminID,
	}).Info("report verification decided")
	return r, nil
}

// List applies role-based scoping: admins see everything, orphanages only
// their own reports.
func (s *ReportService) List(requesterID uint, requesterRole, status string) ([]models.Report, error) {
	f := repository.ReportFilter{Status: status}
	if requesterRole == domain.RoleOrphanage {
		o, err := s.orphRepo.GetByUserID(requesterID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOrphanageMissing
			}
			return nil, err
		}
		f.OrphanageID = o.ID
	}
	return s.reportRepo.List(f)
}
