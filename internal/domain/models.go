package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// StatusCompleted транзакция завершена и оплачена.
	StatusCompleted string = "COMPLETED"
	// StatusRefunded по транзакции оформлен возврат.
	StatusRefunded string = "REFUNDED"
	// StatusVoided транзакция отменена до списания средств.
	StatusVoided string = "VOIDED"
	// StatusOther любой нераспознанный статус источника.
	StatusOther string = "OTHER"
)

const (
	// ProvenanceBooking staff resolved from the booking attribution.
	ProvenanceBooking string = "from_booking"
	// ProvenancePayment staff resolved from the payment record itself.
	ProvenancePayment string = "from_payment"
	// ProvenanceOrderLegacy staff resolved from the legacy order field.
	ProvenanceOrderLegacy string = "from_order_legacy"
	// ProvenanceMissing no chain step produced a staff id.
	ProvenanceMissing string = "STAFF_MISSING"
)

const (
	CategoryService string = "SERVICE"
	CategoryProduct string = "PRODUCT"
)

// Transaction is one payment event from the ledger.
// Monetary fields are integer minor units (cents).
type Transaction struct {
	ID            string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	AmountPaid    int64
	Tip           int64
	Refunded      int64
	ProcessingFee int64
	Status        string
	OrderID       string
	StaffID       string
	CustomerID    string
	Cardholder    string
	Email         string
	BillingName   string
	ShippingName  string
}

// LineItem is one purchased position inside an order.
type LineItem struct {
	CatalogID  string
	Name       string
	GrossSales int64
	Discount   int64
	Tax        int64
}

type Order struct {
	ID            string
	Items         []LineItem
	TotalDiscount int64
	ServiceCharge int64
	BookingID     string
	LegacyStaffID string
	CustomerID    string
}

// CatalogEntry maps a sellable variation to its item name and category.
type CatalogEntry struct {
	VariationID string
	ItemName    string
	Category    string
}

type Booking struct {
	ID      string
	StaffID string
	StartAt time.Time
}

// ProcessedRow is the output unit: one row per transaction id.
// All monetary values are already rounded to 2 decimal places.
type ProcessedRow struct {
	TransactionID     string
	OccurredAt        time.Time
	ServiceLabel      string
	StaffName         string
	HasFee            bool
	AmountPaid        decimal.Decimal
	ProcessingFee     decimal.Decimal
	StaffFeeShare     decimal.Decimal
	ServiceSales      decimal.Decimal
	ServiceRate       float64
	ServiceCommission decimal.Decimal
	Tips              decimal.Decimal
	ProductLabel      string
	ProductSales      decimal.Decimal
	ProductRate       float64
	ProductCommission decimal.Decimal
	ProductTax        decimal.Decimal
	Discounts         decimal.Decimal
	OtherAdjustments  decimal.Decimal
	TotalCommission   decimal.Decimal
	NetTake           decimal.Decimal
	Status            string
	CustomerName      string
	Provenance        string
}

// MinorToDecimal converts integer minor units to a two-decimal amount.
func MinorToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
