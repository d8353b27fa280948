package handler

import (
	"net/http"

	"heartchain/internal/middleware"
	"heartchain/internal/service"

	"github.com/gin-gonic/gin"
)

type DonationHandler struct {
	donationSvc *service.DonationService
	authSvc     *service.AuthService
}

func NewDonationHandler(donationSvc *service.DonationService, authSvc *service.AuthService) *DonationHandler {
	return &DonationHandler{donationSvc: donationSvc, authSvc: authSvc}
}

// CreateOrder handles POST /donations/create-order. A pending donation
// row is recorded alongside the gateway order; nothing counts toward the
// campaign until the payment is verified.
func (h *DonationHandler) CreateOrder(c *gin.Context) {
	var req struct {
		CampaignID  uint    `json:"campaign_id" binding:"required"`
		Amount      float64 `json:"amount" binding:"required"`
		IsAnonymous bool    `json:"is_anonymous"`
		Message     string  `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	donor, err := h.authSvc.CurrentUser(middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	d, order, err := h.donationSvc.CreateOrder(c.Request.Context(), donor, req.CampaignID, req.Amount, req.IsAnonymous, req.Message)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"donation_id": d.ID,
		"order_id":    order.ID,
		"amount":      order.Amount,
		"currency":    order.Currency,
	})
}

// VerifyPayment handles POST /donations/verify-payment. The signature
// check and the ledger update are the single point where money becomes
// real; replays of an already-confirmed payment are a no-op.
func (h *DonationHandler) VerifyPayment(c *gin.Context) {
	var req struct {
		DonationID        uint   `json:"donation_id" binding:"required"`
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := h.donationSvc.ConfirmPayment(c.Request.Context(), req.DonationID, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"donation": d, "receipt_number": d.ReceiptNumber})
}

// MyDonations handles GET /donations/my-donations.
func (h *DonationHandler) MyDonations(c *gin.Context) {
	donations, err := h.donationSvc.MyDonations(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list donations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": donations})
}

// Get handles GET /donations/:id. Visible to the donor, the receiving
// orphanage's owner, and admins.
func (h *DonationHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	d, err := h.donationSvc.Get(middleware.GetUserID(c), middleware.GetRole(c), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
