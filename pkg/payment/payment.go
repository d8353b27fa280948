package payment

import "context"

// Order is the gateway-side handle for a pending donation payment. Amount is
// in paise, the gateway's smallest currency unit.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Gateway abstracts the payment provider. The donation service only needs an
// order handle at create time and a signature check at confirm time.
type Gateway interface {
	CreateOrder(ctx context.Context, amount float64, currency string, notes map[string]string) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}
