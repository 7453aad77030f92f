package attribution

import (
	"context"
	"errors"
	"testing"

	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/domain"
	"github.com/stretchr/testify/assert"
)

func bookingMap(m map[string]string) BookingLookup {
	return func(id string) (string, bool) {
		v, ok := m[id]
		return v, ok
	}
}

func customerMap(m map[string]string) CustomerLookup {
	return func(id string) (string, bool) {
		v, ok := m[id]
		return v, ok
	}
}

func TestResolveStaff(t *testing.T) {
	tests := []struct {
		name               string
		tx                 domain.Transaction
		order              domain.Order
		bookings           map[string]string
		expectedStaff      string
		expectedProvenance string
	}{
		{
			name:               "booking attribution wins over payment staff",
			tx:                 domain.Transaction{StaffID: "tm-payment"},
			order:              domain.Order{BookingID: "b1"},
			bookings:           map[string]string{"b1": "tm-booking"},
			expectedStaff:      "tm-booking",
			expectedProvenance: domain.ProvenanceBooking,
		},
		{
			name:               "payment staff when booking unknown",
			tx:                 domain.Transaction{StaffID: "tm-payment"},
			order:              domain.Order{BookingID: "b1"},
			bookings:           map[string]string{},
			expectedStaff:      "tm-payment",
			expectedProvenance: domain.ProvenancePayment,
		},
		{
			name:               "booking sentinel falls through to payment",
			tx:                 domain.Transaction{StaffID: "tm-payment"},
			order:              domain.Order{BookingID: "b1"},
			bookings:           map[string]string{"b1": ""},
			expectedStaff:      "tm-payment",
			expectedProvenance: domain.ProvenancePayment,
		},
		{
			name:               "legacy order field is last resort",
			tx:                 domain.Transaction{},
			order:              domain.Order{LegacyStaffID: "tm-legacy"},
			expectedStaff:      "tm-legacy",
			expectedProvenance: domain.ProvenanceOrderLegacy,
		},
		{
			name:               "nothing resolves",
			tx:                 domain.Transaction{},
			order:              domain.Order{},
			expectedStaff:      "",
			expectedProvenance: domain.ProvenanceMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			staffID, provenance := ResolveStaff(tt.tx, tt.order, bookingMap(tt.bookings))
			assert.Equal(t, tt.expectedStaff, staffID)
			assert.Equal(t, tt.expectedProvenance, provenance)
		})
	}
}

func TestResolveCustomerName(t *testing.T) {
	customers := customerMap(map[string]string{"c1": "Jane Doe", "c2": "Bob Ray", "c3": ""})

	tests := []struct {
		name     string
		tx       domain.Transaction
		order    domain.Order
		expected string
	}{
		{
			name:     "transaction customer wins over order customer",
			tx:       domain.Transaction{CustomerID: "c1"},
			order:    domain.Order{CustomerID: "c2"},
			expected: "Jane Doe",
		},
		{
			name:     "order customer when transaction has none",
			tx:       domain.Transaction{},
			order:    domain.Order{CustomerID: "c2"},
			expected: "Bob Ray",
		},
		{
			name:     "sentinel profile falls back to billing name",
			tx:       domain.Transaction{CustomerID: "c3", BillingName: "Billy Bill"},
			expected: "Billy Bill",
		},
		{
			name:     "shipping name after billing",
			tx:       domain.Transaction{ShippingName: "Shelly Ship"},
			expected: "Shelly Ship",
		},
		{
			name:     "cardholder after addresses",
			tx:       domain.Transaction{Cardholder: "CARD HOLDER"},
			expected: "CARD HOLDER",
		},
		{
			name:     "email is last resort",
			tx:       domain.Transaction{Email: "x@y.test"},
			expected: "x@y.test",
		},
		{
			name:     "empty when nothing known",
			tx:       domain.Transaction{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveCustomerName(tt.tx, tt.order, customers))
		})
	}
}

func TestDiagnoseMissingSwallowsFetchError(t *testing.T) {
	tx := domain.Transaction{ID: "tx1"}
	order := domain.Order{ID: "o1", BookingID: "b1"}

	// must not panic or propagate
	DiagnoseMissing(context.Background(), tx, order, func(_ context.Context, _ string) (*domain.Booking, error) {
		return nil, errors.New("booking fetch failed")
	})
	DiagnoseMissing(context.Background(), tx, domain.Order{}, nil)
}
