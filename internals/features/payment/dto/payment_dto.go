// file: internals/features/payment/dto/payment_dto.go
package dto

type CreateCheckoutRequest struct {
	BookSanityID string `json:"book_sanity_id" validate:"required"`
	PurchaseType string `json:"purchase_type" validate:"required,oneof=single_book subscription"`
	Plan         string `json:"plan" validate:"omitempty,oneof=monthly quarterly annual lifetime"`
	CouponCode   string `json:"coupon_code,omitempty"`
}

// MidtransNotification — payload webhook (field yang dipakai saja)
type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}
