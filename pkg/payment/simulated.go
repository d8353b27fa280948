package payment

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// SimulatedGateway mints order ids locally and verifies signatures with the
// same HMAC scheme as Razorpay. Used when no gateway keys are configured: the
// donation flow is a demo flow, so orders never leave the process.
type SimulatedGateway struct {
	KeySecret string
}

func NewSimulatedGateway(keySecret string) *SimulatedGateway {
	return &SimulatedGateway{KeySecret: keySecret}
}

func (g *SimulatedGateway) CreateOrder(_ context.Context, amount float64, currency string, _ map[string]string) (*Order, error) {
	if currency == "" {
		currency = "INR"
	}
	id := "order_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:14]
	return &Order{ID: id, Amount: int64(amount * 100), Currency: currency}, nil
}

func (g *SimulatedGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return verifySignature(g.KeySecret, orderID, paymentID, signature)
}
