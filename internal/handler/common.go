package handler

import (
	"errors"
	"net/http"
	"strconv"

	"heartchain/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func queryUint(c *gin.Context, name string) (uint, bool) {
	v := c.Query(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

func parsePagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// serviceError translates service sentinels into HTTP responses so each
// handler doesn't repeat the same switch.
func serviceError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrRegNumberExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCreds):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAccountInactive),
		errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrNotDonationViewer):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCampaignNotFound),
		errors.Is(err, service.ErrOrphanageMissing),
		errors.Is(err, service.ErrDonationNotFound),
		errors.Is(err, service.ErrReportNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrReasonRequired),
		errors.Is(err, service.ErrUnknownStatus),
		errors.Is(err, service.ErrOrphanageNotVerified),
		errors.Is(err, service.ErrCampaignNotPending),
		errors.Is(err, service.ErrCampaignHasFunds),
		errors.Is(err, service.ErrCampaignNotOpen),
		errors.Is(err, service.ErrOrderMismatch),
		errors.Is(err, service.ErrSignatureInvalid),
		errors.Is(err, service.ErrReportDecided),
		errors.Is(err, service.ErrUtilizationExceeds),
		errors.Is(err, service.ErrNoVerifiedReports),
		errors.Is(err, service.ErrInsufficientFunds),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
