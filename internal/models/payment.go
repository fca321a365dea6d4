package models

import "encoding/json"

// OrderRequest is the JSON body for POST /order.
type OrderRequest struct {
	OrderID      string          `json:"order_id"`
	Price        float64         `json:"price"`
	OrderDetails json.RawMessage `json:"order_details,omitempty"`
}

// OrderResponse wraps the provider's order object together with the public
// key id the browser checkout needs.
type OrderResponse struct {
	Success bool            `json:"success"`
	Key     string          `json:"key"`
	Data    json.RawMessage `json:"data"`
}

// PaymentConfirmation is the JSON body for POST /payment, as posted back by
// the hosted checkout after the user pays.
type PaymentConfirmation struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}
