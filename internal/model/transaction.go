package model

import "time"

// PaymentMethod is how a transaction was settled.
type PaymentMethod string

const (
	// PaymentCard is settlement by corporate card.
	PaymentCard PaymentMethod = "card"
	// PaymentInvoice is settlement against a tax invoice.
	PaymentInvoice PaymentMethod = "invoice"
	// PaymentCash is settlement in cash.
	PaymentCash PaymentMethod = "cash"
)

// Valid reports whether the payment method is one of the known values.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentInvoice, PaymentCash:
		return true
	}
	return false
}

// ReceiptType is the kind of evidence attached to a transaction.
type ReceiptType string

const (
	// ReceiptCardSlip is a card payment slip.
	ReceiptCardSlip ReceiptType = "card_slip"
	// ReceiptTaxInvoice is a formal tax invoice.
	ReceiptTaxInvoice ReceiptType = "tax_invoice"
	// ReceiptNone means no receipt is attached.
	ReceiptNone ReceiptType = "none"
)

// Valid reports whether the receipt type is one of the known values.
func (r ReceiptType) Valid() bool {
	switch r {
	case ReceiptCardSlip, ReceiptTaxInvoice, ReceiptNone:
		return true
	}
	return false
}

// Transaction is a single spend recorded against a budget line. Immutable
// once created except for the IsValid flag, which supports soft
// invalidation without deletion.
type Transaction struct {
	Date          time.Time     `json:"date"`
	CreatedAt     time.Time     `json:"created_at"`
	VendorName    string        `json:"vendor_name"`
	Memo          string        `json:"memo,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	ReceiptType   ReceiptType   `json:"receipt_type"`
	ID            int64         `json:"id"`
	BudgetLineID  int64         `json:"budget_line_id"`
	Amount        int64         `json:"amount"`
	IsValid       bool          `json:"is_valid"`
}
