package service

import (
	"context"
	"errors"
	"time"

	"heartchain/internal/domain"
	"heartchain/internal/models"
	"heartchain/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNoVerifiedReports = errors.New("campaign has no verified report")
	ErrInsufficientFunds = errors.New("amount exceeds available funds")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
)

// DisbursementService moves raised funds to orphanages. A payout is always a
// ledger Transaction row; the only stored counter it touches is the
// campaign's disbursed_amount, incremented atomically inside the same
// database transaction.
type DisbursementService struct {
	db           *gorm.DB
	campaignRepo *repository.CampaignRepository
	reportRepo   *repository.ReportRepository
	txnRepo      *repository.TransactionRepository
	balances     *BalanceService
}

func NewDisbursementService(
	db *gorm.DB,
	campaignRepo *repository.CampaignRepository,
	reportRepo *repository.ReportRepository,
	txnRepo *repository.TransactionRepository,
	balances *BalanceService,
) *DisbursementService {
	return &DisbursementService{
		db:           db,
		campaignRepo: campaignRepo,
		reportRepo:   reportRepo,
		txnRepo:      txnRepo,
		balances:     balances,
	}
}

// Disburse pays out against a campaign. Requirements: a verified utilization
// report exists for the campaign (verified reports gate payouts), and the
// amount fits within raised minus already-disbursed. The bound is enforced in
// SQL by a guarded UPDATE so concurrent disbursements cannot overdraw.
func (s *DisbursementService) Disburse(ctx context.Context, adminID, campaignID uint, amount float64, method, reference string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	c, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	verified, err := s.reportRepo.List(repository.ReportFilter{
		Status:     domain.ReportVerified,
		CampaignID: campaignID,
	})
	if err != nil {
		return nil, err
	}
	if len(verified) == 0 {
		return nil, ErrNoVerifiedReports
	}
	if method == "" {
		method = "bank_transfer"
	}
	now := time.Now()
	txn := &models.Transaction{
		TransactionID:         newTransactionID(),
		Type:                  domain.TxnDisbursement,
		Amount:                amount,
		Currency:              "INR",
		Status:                domain.TxnCompleted,
		CampaignID:            &c.ID,
		OrphanageID:           &c.OrphanageID,
		DisbursedByID:         &adminID,
		DisbursementMethod:    method,
		DisbursementReference: reference,
		Description:           "Fund disbursement for campaign",
		TransactionDate:       now,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Campaign{}).
			Where("id = ? AND raised_amount - disbursed_amount >= ?", campaignID, amount).
			Update("disbursed_amount", gorm.Expr("disbursed_amount + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientFunds
		}
		return tx.Create(txn).Error
	})
	if err != nil {
		return nil, err
	}
	s.balances.Invalidate(ctx, c.OrphanageID)
	logrus.WithFields(logrus.Fields{
		"campaign_id":    campaignID,
		"orphanage_id":   c.OrphanageID,
		"amount":         amount,
		"transaction_id": txn.TransactionID,
		"admin_id":       adminID,
	}).Info("funds disbursed")
	return txn, nil
}

// Payouts lists an orphanage's disbursement history with its completed
// payout total.
func (s *DisbursementService) Payouts(orphanageID uint) ([]models.Transaction, float64, error) {
	payouts, err := s.txnRepo.ListPayouts(orphanageID)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.txnRepo.SumCompletedPayouts(orphanageID)
	if err != nil {
		return nil, 0, err
	}
	return payouts, total, nil
}
