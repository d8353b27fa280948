package repository

import (
	"heartchain/internal/domain"
	"heartchain/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(t *models.Transaction) error {
	return r.db.Create(t).Error
}

func (r *TransactionRepository) GetByTransactionID(txnID string) (*models.Transaction, error) {
	var t models.Transaction
	if err := r.db.Where("transaction_id = ?", txnID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListPayouts returns an orphanage's disbursements, newest first.
func (r *TransactionRepository) ListPayouts(orphanageID uint) ([]models.Transaction, error) {
	var out []models.Transaction
	err := r.db.Where("orphanage_id = ? AND type = ?", orphanageID, domain.TxnDisbursement).
		Order("transaction_date DESC").
		Find(&out).Error
	return out, err
}

// SumCompletedPayouts totals funds already paid out to an orphanage.
func (r *TransactionRepository) SumCompletedPayouts(orphanageID uint) (float64, error) {
	var total float64
	err := r.db.Model(&models.Transaction{}).
		Where("orphanage_id = ? AND type = ? AND status = ?",
			orphanageID, domain.TxnDisbursement, domain.TxnCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
