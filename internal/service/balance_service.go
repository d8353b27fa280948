package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"heartchain/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BalanceService computes the derived money aggregates for an orphanage.
// Nothing here is a stored balance: available funds are always a query over
// the campaign ledger, cached in Redis and invalidated on every donation
// confirm and payout so the cache can never drift past one event.
type BalanceService struct {
	db  *gorm.DB
	rdb *redis.Client
	ttl time.Duration
}

func NewBalanceService(db *gorm.DB, rdb *redis.Client, ttl time.Duration) *BalanceService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &BalanceService{db: db, rdb: rdb, ttl: ttl}
}

// AvailableBalance is raised minus disbursed across the orphanage's
// campaigns, floored at zero.
func (s *BalanceService) AvailableBalance(ctx context.Context, orphanageID uint) (float64, error) {
	key := balanceKey(orphanageID)
	if s.rdb != nil {
		if v, err := s.rdb.Get(ctx, key).Result(); err == nil {
			if f, perr := strconv.ParseFloat(v, 64); perr == nil {
				return f, nil
			}
		}
	}
	var row struct {
		Raised    float64
		Disbursed float64
	}
	err := s.db.Model(&models.Campaign{}).
		Where("orphanage_id = ?", orphanageID).
		Select("COALESCE(SUM(raised_amount), 0) AS raised, COALESCE(SUM(disbursed_amount), 0) AS disbursed").
		Scan(&row).Error
	if err != nil {
		return 0, err
	}
	balance := row.Raised - row.Disbursed
	if balance < 0 {
		balance = 0
	}
	if s.rdb != nil {
		if err := s.rdb.Set(ctx, key, strconv.FormatFloat(balance, 'f', -1, 64), s.ttl).Err(); err != nil {
			logrus.WithError(err).Debug("balance cache set failed")
		}
	}
	return balance, nil
}

// Invalidate drops the cached balance after a ledger event.
func (s *BalanceService) Invalidate(ctx context.Context, orphanageID uint) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, balanceKey(orphanageID)).Err(); err != nil {
		logrus.WithError(err).Debug("balance cache invalidate failed")
	}
}

func balanceKey(orphanageID uint) string {
	return fmt.Sprintf("balance:orphanage:%d", orphanageID)
}
