package attribution

import (
	"context"

	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/domain"
	"go.uber.org/zap"
)

// BookingLookup answers "which staff id performed this booking", empty string
// meaning unknown.
type BookingLookup func(bookingID string) (string, bool)

// CustomerLookup resolves a customer id to a display name.
type CustomerLookup func(customerID string) (string, bool)

// staffStrategy is one step of the attribution chain.
type staffStrategy func(tx domain.Transaction, order domain.Order, bookings BookingLookup) (string, string, bool)

func fromBooking(_ domain.Transaction, order domain.Order, bookings BookingLookup) (string, string, bool) {
	if order.BookingID == "" || bookings == nil {
		return "", "", false
	}
	staffID, ok := bookings(order.BookingID)
	if !ok || staffID == "" {
		return "", "", false
	}
	return staffID, domain.ProvenanceBooking, true
}

func fromPayment(tx domain.Transaction, _ domain.Order, _ BookingLookup) (string, string, bool) {
	if tx.StaffID == "" {
		return "", "", false
	}
	return tx.StaffID, domain.ProvenancePayment, true
}

func fromOrderLegacy(_ domain.Transaction, order domain.Order, _ BookingLookup) (string, string, bool) {
	if order.LegacyStaffID == "" {
		return "", "", false
	}
	return order.LegacyStaffID, domain.ProvenanceOrderLegacy, true
}

// staffChain is the fixed priority order: booking attribution beats the
// payment record, which beats the legacy order field.
var staffChain = []staffStrategy{
	fromBooking,
	fromPayment,
	fromOrderLegacy,
}

// ResolveStaff walks the attribution chain and returns the staff id plus the
// provenance tag recorded on the output row.
func ResolveStaff(tx domain.Transaction, order domain.Order, bookings BookingLookup) (string, string) {
	for _, step := range staffChain {
		if staffID, provenance, ok := step(tx, order, bookings); ok {
			return staffID, provenance
		}
	}
	return "", domain.ProvenanceMissing
}

// DiagnoseMissing logs the context of an unattributable transaction. When the
// order carried a booking reference with no known attribution, the booking is
// fetched on demand; failure of that fetch is itself swallowed.
func DiagnoseMissing(ctx context.Context, tx domain.Transaction, order domain.Order, fetchBooking func(ctx context.Context, id string) (*domain.Booking, error)) {
	fields := []zap.Field{
		zap.String("transactionID", tx.ID),
		zap.String("orderID", order.ID),
		zap.String("status", tx.Status),
	}

	if order.BookingID != "" && fetchBooking != nil {
		booking, err := fetchBooking(ctx, order.BookingID)
		if err != nil {
			fields = append(fields, zap.String("bookingID", order.BookingID), zap.NamedError("bookingFetchError", err))
		} else {
			fields = append(fields, zap.String("bookingID", booking.ID), zap.String("bookingStaffID", booking.StaffID))
		}
	}

	zap.L().Warn("staff attribution missing", fields...)
}

// ResolveCustomerName picks the best available customer identity: a resolved
// customer profile (transaction reference preferred over the order's), then a
// billing or shipping address name, then the cardholder, then the email.
func ResolveCustomerName(tx domain.Transaction, order domain.Order, customers CustomerLookup) string {
	if customers != nil {
		for _, id := range []string{tx.CustomerID, order.CustomerID} {
			if id == "" {
				continue
			}
			if name, ok := customers(id); ok && name != "" {
				return name
			}
		}
	}

	if tx.BillingName != "" {
		return tx.BillingName
	}
	if tx.ShippingName != "" {
		return tx.ShippingName
	}
	if tx.Cardholder != "" {
		return tx.Cardholder
	}
	if tx.Email != "" {
		return tx.Email
	}
	return ""
}
