package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"heartchain/config"
	"heartchain/internal/service"
	"heartchain/pkg/payment"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PaymentWebhookHandler is the server-to-server confirmation path. Razorpay
// signs the raw body with the webhook secret; a valid payment.captured event
// settles the donation through the same guarded path as checkout
// verification, so checkout and webhook can both fire without double
// counting.
type PaymentWebhookHandler struct {
	donationSvc *service.DonationService
	cfg         *config.RazorpayConfig
}

func NewPaymentWebhookHandler(donationSvc *service.DonationService, cfg *config.RazorpayConfig) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{donationSvc: donationSvc, cfg: cfg}
}

// Handle processes POST /donations/webhook.
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	if h.cfg.WebhookSecret == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "webhooks are not configured"})
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if !payment.VerifyWebhookSignature(h.cfg.WebhookSecret, body, c.GetHeader("X-Razorpay-Signature")) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}
	var payload struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					ID      string `json:"id"`
					OrderID string `json:"order_id"`
				} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if payload.Event != "payment.captured" {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	entity := payload.Payload.Payment.Entity
	if entity.OrderID == "" || entity.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id and payment id required"})
		return
	}
	if _, err := h.donationSvc.ConfirmCaptured(c.Request.Context(), entity.OrderID, entity.ID); err != nil {
		// Unknown orders are acknowledged so the gateway stops retrying.
		if errors.Is(err, service.ErrDonationNotFound) {
			logrus.WithField("order_id", entity.OrderID).Warn("webhook for unknown order")
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process webhook"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
