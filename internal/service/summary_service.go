package service

import (
	"context"
	"errors"
	"math"

	"heartchain/internal/models"
	"heartchain/internal/repository"

	"gorm.io/gorm"
)

// SummaryService assembles the orphanage dashboard. Every figure is derived
// from the ledgers at read time; the only cache involved is the
// BalanceService's.
type SummaryService struct {
	orphRepo     *repository.OrphanageRepository
	campaignRepo *repository.CampaignRepository
	donationRepo *repository.DonationRepository
	reportRepo   *repository.ReportRepository
	balances     *BalanceService
}

func NewSummaryService(
	orphRepo *repository.OrphanageRepository,
	campaignRepo *repository.CampaignRepository,
	donationRepo *repository.DonationRepository,
	reportRepo *repository.ReportRepository,
	balances *BalanceService,
) *SummaryService {
	return &SummaryService{
		orphRepo:     orphRepo,
		campaignRepo: campaignRepo,
		donationRepo: donationRepo,
		reportRepo:   reportRepo,
		balances:     balances,
	}
}

type OrphanageSummary struct {
	Orphanage       *models.Orphanage `json:"orphanage"`
	Stats           SummaryStats      `json:"stats"`
	Projects        []models.Campaign `json:"projects"`
	RecentDonations []models.Donation `json:"recent_donations"`
	RecentReports   []models.Report   `json:"recent_reports"`
}

type SummaryStats struct {
	AvailableBalance float64 `json:"available_balance"`
	AverageProgress  float64 `json:"average_progress"`
	UnreportedFunds  float64 `json:"unreported_funds"`
}

func (s *SummaryService) ForOwner(ctx context.Context, ownerID uint) (*OrphanageSummary, error) {
	o, err := s.orphRepo.GetByUserID(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrphanageMissing
		}
		return nil, err
	}
	campaigns, err := s.campaignRepo.ListByOrphanage(o.ID)
	if err != nil {
		return nil, err
	}
	balance, err := s.balances.AvailableBalance(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	var totalRaised, progressSum float64
	var withTarget int
	for _, c := range campaigns {
		totalRaised += c.RaisedAmount
		if c.TargetAmount > 0 {
			progressSum += c.Progress()
			withTarget++
		}
	}
	avgProgress := 0.0
	if withTarget > 0 {
		avgProgress = math.Round(progressSum/float64(withTarget)*100) / 100
	}
	utilized, err := s.reportRepo.SumUtilizedByOrphanage(o.ID)
	if err != nil {
		return nil, err
	}
	unreported := totalRaised - utilized
	if unreported < 0 {
		unreported = 0
	}
	donations, err := s.donationRepo.ListRecentByOrphanage(o.ID, 5)
	if err != nil {
		return nil, err
	}
	reports, err := s.reportRepo.List(repository.ReportFilter{OrphanageID: o.ID})
	if err != nil {
		return nil, err
	}
	if len(reports) > 5 {
		reports = reports[:5]
	}
	return &OrphanageSummary{
		Orphanage: o,
		Stats: SummaryStats{
			AvailableBalance: balance,
			AverageProgress:  avgProgress,
			UnreportedFunds:  unreported,
		},
		Projects:        campaigns,
		RecentDonations: donations,
		RecentReports:   reports,
	}, nil
}
