package models

import "gorm.io/gorm"

// Transaction statuses. COMPLETED and CANCELLED are set by the M-Pesa
// reconciliation job outside this service; we only ever write PENDING and
// FAILED.
const (
	StatusPending = "PENDING"
	StatusFailed  = "FAILED"
)

type Transaction struct {
	gorm.Model
	PayerPhone          string  `gorm:"not null"`
	RecipientPhone      string
	Amount              float64 `gorm:"not null"`
	Type                string
	OfferName           string
	Status              string `gorm:"not null"`
	AccountRef          string `gorm:"unique;not null"`
	CheckoutRequestID   string
	MerchantRequestID   string
	ResponseCode        string
	ResponseDescription string
	CustomerMessage     string
}
