package ledger

import (
	"fmt"
	"time"

	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/domain"
)

// RemoteError is returned for any non-2xx ledger response.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("ledger responded with status %d: %s", e.StatusCode, e.Body)
}

// money is the ledger wire representation of an amount in minor units.
type money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type cardDetails struct {
	CardholderName string `json:"cardholder_name"`
}

type address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type wirePayment struct {
	ID            string      `json:"id"`
	CreatedAt     string      `json:"created_at"`
	UpdatedAt     string      `json:"updated_at"`
	AmountMoney   money       `json:"amount_money"`
	TipMoney      money       `json:"tip_money"`
	RefundedMoney money       `json:"refunded_money"`
	FeeMoney      money       `json:"processing_fee_money"`
	Status        string      `json:"status"`
	OrderID       string      `json:"order_id"`
	TeamMemberID  string      `json:"team_member_id"`
	CustomerID    string      `json:"customer_id"`
	BuyerEmail    string      `json:"buyer_email_address"`
	CardDetails   cardDetails `json:"card_details"`
	Billing       address     `json:"billing_address"`
	Shipping      address     `json:"shipping_address"`
}

type searchRequest struct {
	BeginTime string `json:"begin_time"`
	EndTime   string `json:"end_time"`
	SortOrder string `json:"sort_order"`
	Limit     int    `json:"limit"`
	Cursor    string `json:"cursor,omitempty"`
}

type searchResponse struct {
	Payments []wirePayment `json:"payments"`
	Cursor   string        `json:"cursor"`
}

type wireLineItem struct {
	CatalogObjectID  string `json:"catalog_object_id"`
	Name             string `json:"name"`
	GrossSalesMoney  money  `json:"gross_sales_money"`
	TotalDiscount    money  `json:"total_discount_money"`
	TotalTax         money  `json:"total_tax_money"`
}

type wireFulfillment struct {
	BookingID string `json:"booking_id"`
}

type wireOrder struct {
	ID                 string            `json:"id"`
	LineItems          []wireLineItem    `json:"line_items"`
	TotalDiscountMoney money             `json:"total_discount_money"`
	ServiceChargeMoney money             `json:"total_service_charge_money"`
	Fulfillments       []wireFulfillment `json:"fulfillments"`
	EmployeeID         string            `json:"employee_id"`
	CustomerID         string            `json:"customer_id"`
}

type ordersRequest struct {
	OrderIDs []string `json:"order_ids"`
}

type ordersResponse struct {
	Orders []wireOrder `json:"orders"`
}

type catalogRequest struct {
	ObjectIDs             []string `json:"object_ids"`
	IncludeRelatedObjects bool     `json:"include_related_objects"`
}

type wireCatalogObject struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	ItemData struct {
		Name        string `json:"name"`
		ProductType string `json:"product_type"`
	} `json:"item_data"`
	VariationData struct {
		ItemID string `json:"item_id"`
	} `json:"item_variation_data"`
}

type catalogResponse struct {
	Objects        []wireCatalogObject `json:"objects"`
	RelatedObjects []wireCatalogObject `json:"related_objects"`
}

type customersRequest struct {
	CustomerIDs []string `json:"customer_ids"`
}

type wireCustomer struct {
	ID         string `json:"id"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

type customersResponse struct {
	Customers []wireCustomer `json:"customers"`
}

type teamMemberResponse struct {
	TeamMember struct {
		ID          string `json:"id"`
		GivenName   string `json:"given_name"`
		FamilyName  string `json:"family_name"`
		DisplayName string `json:"display_name"`
	} `json:"team_member"`
}

type bookingResponse struct {
	Booking struct {
		ID           string `json:"id"`
		TeamMemberID string `json:"team_member_id"`
		StartAt      string `json:"start_at"`
	} `json:"booking"`
}

const appointmentsServiceType = "APPOINTMENTS_SERVICE"

func (p wirePayment) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:            p.ID,
		CreatedAt:     parseTime(p.CreatedAt),
		UpdatedAt:     parseTime(p.UpdatedAt),
		AmountPaid:    p.AmountMoney.Amount,
		Tip:           p.TipMoney.Amount,
		Refunded:      p.RefundedMoney.Amount,
		ProcessingFee: p.FeeMoney.Amount,
		Status:        normalizeStatus(p.Status),
		OrderID:       p.OrderID,
		StaffID:       p.TeamMemberID,
		CustomerID:    p.CustomerID,
		Cardholder:    p.CardDetails.CardholderName,
		Email:         p.BuyerEmail,
		BillingName:   joinName(p.Billing.FirstName, p.Billing.LastName),
		ShippingName:  joinName(p.Shipping.FirstName, p.Shipping.LastName),
	}
}

func (o wireOrder) toDomain() domain.Order {
	order := domain.Order{
		ID:            o.ID,
		TotalDiscount: o.TotalDiscountMoney.Amount,
		ServiceCharge: o.ServiceChargeMoney.Amount,
		LegacyStaffID: o.EmployeeID,
		CustomerID:    o.CustomerID,
	}
	for _, li := range o.LineItems {
		order.Items = append(order.Items, domain.LineItem{
			CatalogID:  li.CatalogObjectID,
			Name:       li.Name,
			GrossSales: li.GrossSalesMoney.Amount,
			Discount:   li.TotalDiscount.Amount,
			Tax:        li.TotalTax.Amount,
		})
	}
	for _, f := range o.Fulfillments {
		if f.BookingID != "" {
			order.BookingID = f.BookingID
			break
		}
	}
	return order
}

func normalizeStatus(s string) string {
	switch s {
	case "COMPLETED", "APPROVED":
		return domain.StatusCompleted
	case "REFUNDED":
		return domain.StatusRefunded
	case "CANCELED", "FAILED", "VOIDED":
		return domain.StatusVoided
	default:
		return domain.StatusOther
	}
}

// parseTime defaults malformed timestamps to zero time instead of failing the
// whole page.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func joinName(first, last string) string {
	switch {
	case first == "" && last == "":
		return ""
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
