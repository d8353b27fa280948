package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"heartchain/internal/domain"
	"heartchain/internal/models"
	"heartchain/internal/queue"
	"heartchain/internal/repository"
	"heartchain/pkg/payment"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDonationNotFound  = errors.New("donation not found")
	ErrCampaignNotOpen   = errors.New("campaign is not open for donations")
	ErrOrderMismatch     = errors.New("order does not match donation")
	ErrSignatureInvalid  = errors.New("payment verification failed")
	ErrNotDonationViewer = errors.New("not authorized to view this donation")
)

type DonationService struct {
	db           *gorm.DB
	donationRepo *repository.DonationRepository
	campaignRepo *repository.CampaignRepository
	orphRepo     *repository.OrphanageRepository
	gateway      payment.Gateway
	balances     *BalanceService
	publisher    *queue.Publisher
}

func NewDonationService(
	db *gorm.DB,
	donationRepo *repository.DonationRepository,
	campaignRepo *repository.CampaignRepository,
	orphRepo *repository.OrphanageRepository,
	gateway payment.Gateway,
	balances *BalanceService,
	publisher *queue.Publisher,
) *DonationService {
	return &DonationService{
		db:           db,
		donationRepo: donationRepo,
		campaignRepo: campaignRepo,
		orphRepo:     orphRepo,
		gateway:      gateway,
		balances:     balances,
		publisher:    publisher,
	}
}

// CreateOrder opens a donation: a gateway order plus a ledger row in
// `initiated`. Only active campaigns take money; the same check guards the
// confirm path so a client-side bypass achieves nothing.
func (s *DonationService) CreateOrder(ctx context.Context, donor *models.User, campaignID uint, amount float64, isAnonymous bool, message string) (*models.Donation, *payment.Order, error) {
	if amount <= 0 {
		return nil, nil, &ValidationError{Field: "amount", Message: "must be greater than zero"}
	}
	c, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCampaignNotFound
		}
		return nil, nil, err
	}
	if !domain.CampaignOpenForDonations(c.Status) {
		return nil, nil, ErrCampaignNotOpen
	}
	notes := map[string]string{
		"campaign_id": fmt.Sprintf("%d", c.ID),
		"donor_email": donor.Email,
	}
	order, err := s.gateway.CreateOrder(ctx, amount, "INR", notes)
	if err != nil {
		return nil, nil, err
	}
	donorID := donor.ID
	d := &models.Donation{
		DonorID:         &donorID,
		CampaignID:      c.ID,
		OrphanageID:     c.OrphanageID,
		DonorName:       donor.FullName,
		DonorEmail:      donor.Email,
		DonorPhone:      donor.Phone,
		Amount:          amount,
		Currency:        order.Currency,
		RazorpayOrderID: order.ID,
		Status:          domain.DonationInitiated,
		IsAnonymous:     isAnonymous,
		Message:         message,
	}
	if err := s.donationRepo.Create(d); err != nil {
		return nil, nil, err
	}
	return d, order, nil
}

// ConfirmPayment settles a donation after checkout. The flip from initiated
// to completed is a guarded UPDATE, so a second confirmation of the same
// donation matches zero rows and never double-counts; the raised_amount
// increment is a SQL expression, so concurrent confirmations of different
// donations serialize at the database. Reaching the target flips the campaign
// to completed after the confirming donation is credited in full.
func (s *DonationService) ConfirmPayment(ctx context.Context, donationID uint, orderID, paymentID, signature string) (*models.Donation, error) {
	d, err := s.donationRepo.GetByID(donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}
	if d.RazorpayOrderID != orderID {
		return nil, ErrOrderMismatch
	}
	if !s.gateway.VerifySignature(orderID, paymentID, signature) {
		_ = s.db.Model(&models.Donation{}).
			Where("id = ? AND status = ?", d.ID, domain.DonationInitiated).
			Update("status", domain.DonationFailed).Error
		logrus.WithField("donation_id", d.ID).Warn("donation signature rejected")
		return nil, ErrSignatureInvalid
	}
	return s.settle(ctx, d, paymentID, signature)
}

// ConfirmCaptured settles a donation from a gateway webhook. The webhook
// body signature is checked at the HTTP layer; here the order id is the
// lookup key and the settle path is shared with ConfirmPayment, so a
// webhook arriving after checkout verification (or vice versa) is a no-op.
func (s *DonationService) ConfirmCaptured(ctx context.Context, orderID, paymentID string) (*models.Donation, error) {
	d, err := s.donationRepo.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}
	return s.settle(ctx, d, paymentID, "")
}

func (s *DonationService) settle(ctx context.Context, d *models.Donation, paymentID, signature string) (*models.Donation, error) {
	now := time.Now()
	txnID := newTransactionID()
	receipt := "RCPT" + strings.ToUpper(uuid.New().String()[:8])
	confirmed := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Donation{}).
			Where("id = ? AND status = ?", d.ID, domain.DonationInitiated).
			Updates(map[string]interface{}{
				"status":              domain.DonationCompleted,
				"razorpay_payment_id": paymentID,
				"razorpay_signature":  signature,
				"receipt_number":      receipt,
				"transaction_date":    now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already settled by a concurrent or duplicate confirmation.
			return nil
		}
		confirmed = true
		if err := tx.Model(&models.Campaign{}).
			Where("id = ?", d.CampaignID).
			Updates(map[string]interface{}{
				"raised_amount": gorm.Expr("raised_amount + ?", d.Amount),
				"total_donors":  gorm.Expr("total_donors + 1"),
			}).Error; err != nil {
			return err
		}
		// Close out funded campaigns; over-funding stays in the ledger.
		if err := tx.Model(&models.Campaign{}).
			Where("id = ? AND status = ? AND raised_amount >= target_amount",
				d.CampaignID, domain.CampaignActive).
			Update("status", domain.CampaignCompleted).Error; err != nil {
			return err
		}
		donationID := d.ID
		campaignID := d.CampaignID
		orphanageID := d.OrphanageID
		return tx.Create(&models.Transaction{
			TransactionID:        txnID,
			Type:                 domain.TxnDonation,
			Amount:               d.Amount,
			Currency:             d.Currency,
			Status:               domain.TxnCompleted,
			CampaignID:           &campaignID,
			OrphanageID:          &orphanageID,
			DonorID:              d.DonorID,
			DonationID:           &donationID,
			PaymentGateway:       "razorpay",
			GatewayTransactionID: paymentID,
			GatewayOrderID:       d.RazorpayOrderID,
			Description:          "Donation to campaign",
			TransactionDate:      now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	d, err = s.donationRepo.GetByID(d.ID)
	if err != nil {
		return nil, err
	}
	if confirmed {
		s.balances.Invalidate(ctx, d.OrphanageID)
		s.publishConfirmed(ctx, d, txnID)
		logrus.WithFields(logrus.Fields{
			"donation_id":    d.ID,
			"campaign_id":    d.CampaignID,
			"amount":         d.Amount,
			"transaction_id": txnID,
		}).Info("donation confirmed")
	}
	return d, nil
}

func (s *DonationService) publishConfirmed(ctx context.Context, d *models.Donation, txnID string) {
	c, err := s.campaignRepo.GetByID(d.CampaignID)
	title := ""
	if err == nil {
		title = c.Title
	}
	confirmedAt := ""
	if d.TransactionDate != nil {
		confirmedAt = d.TransactionDate.Format(time.RFC3339)
	}
	_ = s.publisher.PublishDonationConfirmed(ctx, queue.DonationConfirmedEvent{
		DonationID:    d.ID,
		TransactionID: txnID,
		CampaignID:    d.CampaignID,
		CampaignTitle: title,
		OrphanageID:   d.OrphanageID,
		DonorName:     d.DonorName,
		DonorEmail:    d.DonorEmail,
		Amount:        d.Amount,
		Currency:      d.Currency,
		IsAnonymous:   d.IsAnonymous,
		ConfirmedAt:   confirmedAt,
	})
}

func (s *DonationService) MyDonations(donorID uint) ([]models.Donation, error) {
	return s.donationRepo.ListByDonor(donorID)
}

// Get enforces authorization by relationship: the donor, the owning
// orphanage's user, or an admin.
func (s *DonationService) Get(requesterID uint, requesterRole string, donationID uint) (*models.Donation, error) {
	d, err := s.donationRepo.GetByID(donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}
	if requesterRole == domain.RoleAdmin {
		return d, nil
	}
	if d.DonorID != nil && *d.DonorID == requesterID {
		return d, nil
	}
	if requesterRole == domain.RoleOrphanage {
		o, err := s.orphRepo.GetByUserID(requesterID)
		if err == nil && o.ID == d.OrphanageID {
			return d, nil
		}
	}
	return nil, ErrNotDonationViewer
}

func newTransactionID() string {
	return "TXN" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}
