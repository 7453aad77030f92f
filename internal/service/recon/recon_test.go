package recon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/domain"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/ingest"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/rates"
	staterepo "github.com/kaimrdth/Barbershop-Transactions-Automation/internal/repo/state-repo"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/service/commission"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testRatesYAML = `
default_rate: 0
staff:
  - name: "Alex Petrov"
    external_id: "tm-booking"
    service_rate: "40%"
    product_rate: 0.10
`

type mocks struct {
	source    *ingest.MockSource
	ledger    *MockLedger
	rowRepo   *MockRowRepo
	stateRepo *MockStateRepo
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := &mocks{
		source:    ingest.NewMockSource(ctrl),
		ledger:    NewMockLedger(ctrl),
		rowRepo:   NewMockRowRepo(ctrl),
		stateRepo: NewMockStateRepo(ctrl),
	}

	loader := func() (*rates.Table, error) {
		return rates.Parse([]byte(testRatesYAML))
	}
	service := New(m.source, m.ledger, m.rowRepo, m.stateRepo, commission.New(0, nil), loader, 0, 720*time.Hour, time.Minute)
	service.now = func() time.Time {
		return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	}
	return service, m
}

func expectEmptyCaches(m *mocks) {
	m.stateRepo.EXPECT().LoadCache(gomock.Any(), staterepo.KindBookingStaff).Return(map[string]string{}, nil)
	m.stateRepo.EXPECT().LoadCache(gomock.Any(), staterepo.KindStaffName).Return(map[string]string{}, nil)
	m.stateRepo.EXPECT().LoadCache(gomock.Any(), staterepo.KindCustomerName).Return(map[string]string{}, nil)
	m.stateRepo.EXPECT().SaveCache(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func testBundle() ingest.Bundle {
	return ingest.Bundle{Tx: domain.Transaction{
		ID:            "tx1",
		CreatedAt:     time.Date(2026, 7, 30, 10, 0, 0, 0, time.UTC),
		AmountPaid:    16500,
		Tip:           1000,
		ProcessingFee: 430,
		Status:        domain.StatusCompleted,
		OrderID:       "o1",
		StaffID:       "tm-pay",
		CustomerID:    "c1",
	}}
}

func expectEnrichment(m *mocks) {
	m.ledger.EXPECT().BatchOrders(gomock.Any(), []string{"o1"}).Return(map[string]domain.Order{
		"o1": {
			ID:        "o1",
			BookingID: "b1",
			Items: []domain.LineItem{
				{CatalogID: "svc1", GrossSales: 10000},
				{CatalogID: "prod1", GrossSales: 5000},
			},
		},
	}, nil)
	m.ledger.EXPECT().BatchCatalog(gomock.Any(), gomock.Any()).Return(map[string]domain.CatalogEntry{
		"svc1":  {VariationID: "svc1", ItemName: "Haircut", Category: domain.CategoryService},
		"prod1": {VariationID: "prod1", ItemName: "Pomade", Category: domain.CategoryProduct},
	}, nil)
	m.ledger.EXPECT().GetBooking(gomock.Any(), "b1").Return(&domain.Booking{ID: "b1", StaffID: "tm-booking"}, nil)
	// tm-booking is covered by the alias table, only tm-pay needs a lookup
	m.ledger.EXPECT().GetTeamMember(gomock.Any(), "tm-pay").Return("Pay Person", nil)
	m.ledger.EXPECT().BatchCustomers(gomock.Any(), []string{"c1"}).Return(map[string]string{"c1": "Jane Doe"}, nil)
}

func TestRun_FullPass(t *testing.T) {
	service, m := NewMock(t)
	end := service.now()

	m.stateRepo.EXPECT().GetCursor(gomock.Any()).Return(time.Time{}, nil)
	m.source.EXPECT().Fetch(gomock.Any(), end.Add(-720*time.Hour), end).Return([]ingest.Bundle{testBundle()}, nil)
	expectEmptyCaches(m)
	expectEnrichment(m)

	var merged []domain.ProcessedRow
	m.rowRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rows []domain.ProcessedRow) error {
			merged = rows
			return nil
		})
	m.stateRepo.EXPECT().SetCursor(gomock.Any(), end).Return(nil)

	result, err := service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Fetched)
	assert.Equal(t, 1, result.Merged)

	require.Len(t, merged, 1)
	row := merged[0]
	assert.Equal(t, "tx1", row.TransactionID)
	// booking attribution wins over the payment-level staff reference
	assert.Equal(t, domain.ProvenanceBooking, row.Provenance)
	assert.Equal(t, "Alex Petrov", row.StaffName)
	assert.Equal(t, "Jane Doe", row.CustomerName)
	assert.True(t, row.ServiceCommission.Equal(decimal.RequireFromString("40.00")), "service commission: %s", row.ServiceCommission)
	assert.True(t, row.ProductCommission.Equal(decimal.RequireFromString("5.00")), "product commission: %s", row.ProductCommission)
	assert.True(t, row.TotalCommission.Equal(decimal.RequireFromString("55.00")), "total commission: %s", row.TotalCommission)
}

func TestRun_EmptyBatchAdvancesCursor(t *testing.T) {
	service, m := NewMock(t)
	end := service.now()
	cursor := end.Add(-time.Hour)

	m.stateRepo.EXPECT().GetCursor(gomock.Any()).Return(cursor, nil)
	m.source.EXPECT().Fetch(gomock.Any(), cursor, end).Return(nil, nil)
	// no Upsert, no cache traffic: the cursor is the only mutation
	m.stateRepo.EXPECT().SetCursor(gomock.Any(), end).Return(nil)

	result, err := service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Fetched)
	assert.Equal(t, 0, result.Merged)
}

func TestRun_FetchErrorLeavesCursor(t *testing.T) {
	service, m := NewMock(t)

	m.stateRepo.EXPECT().GetCursor(gomock.Any()).Return(time.Time{}, nil)
	m.source.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("ledger down"))
	// SetCursor must not be called

	_, err := service.Run(context.Background())
	assert.Error(t, err)
}

func TestRun_MergeErrorLeavesCursor(t *testing.T) {
	service, m := NewMock(t)

	m.stateRepo.EXPECT().GetCursor(gomock.Any()).Return(time.Time{}, nil)
	m.source.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return([]ingest.Bundle{testBundle()}, nil)
	expectEmptyCaches(m)
	expectEnrichment(m)
	m.rowRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("sink unreachable"))

	_, err := service.Run(context.Background())
	assert.Error(t, err)
}

func TestRun_IdempotentSecondPass(t *testing.T) {
	service, m := NewMock(t)
	end := service.now()

	// persistent state shared by both runs
	cursor := time.Time{}
	caches := map[string]map[string]string{
		staterepo.KindBookingStaff: {},
		staterepo.KindStaffName:    {},
		staterepo.KindCustomerName: {},
	}

	m.stateRepo.EXPECT().GetCursor(gomock.Any()).DoAndReturn(
		func(_ context.Context) (time.Time, error) { return cursor, nil }).Times(2)
	m.stateRepo.EXPECT().SetCursor(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c time.Time) error {
			cursor = c
			return nil
		}).Times(2)
	m.stateRepo.EXPECT().LoadCache(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, kind string) (map[string]string, error) {
			out := map[string]string{}
			for k, v := range caches[kind] {
				out[k] = v
			}
			return out, nil
		}).Times(6)
	m.stateRepo.EXPECT().SaveCache(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, kind string, entries map[string]string) error {
			for k, v := range entries {
				caches[kind][k] = v
			}
			return nil
		}).AnyTimes()

	// the ledger reports the same transaction in both windows
	m.source.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return([]ingest.Bundle{testBundle()}, nil).Times(2)
	m.ledger.EXPECT().BatchOrders(gomock.Any(), gomock.Any()).Return(map[string]domain.Order{
		"o1": {ID: "o1", BookingID: "b1", Items: []domain.LineItem{{CatalogID: "svc1", GrossSales: 10000}}},
	}, nil).Times(2)
	m.ledger.EXPECT().BatchCatalog(gomock.Any(), gomock.Any()).Return(map[string]domain.CatalogEntry{
		"svc1": {VariationID: "svc1", ItemName: "Haircut", Category: domain.CategoryService},
	}, nil).Times(2)
	// booking, staff and customer lookups happen exactly once: the second run
	// is served from the persisted caches
	m.ledger.EXPECT().GetBooking(gomock.Any(), "b1").Return(&domain.Booking{ID: "b1", StaffID: "tm-booking"}, nil).Times(1)
	m.ledger.EXPECT().GetTeamMember(gomock.Any(), "tm-pay").Return("Pay Person", nil).Times(1)
	m.ledger.EXPECT().BatchCustomers(gomock.Any(), []string{"c1"}).Return(map[string]string{"c1": "Jane Doe"}, nil).Times(1)

	var firstRows, secondRows []domain.ProcessedRow
	gomock.InOrder(
		m.rowRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, rows []domain.ProcessedRow) error {
				firstRows = rows
				return nil
			}),
		m.rowRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, rows []domain.ProcessedRow) error {
				secondRows = rows
				return nil
			}),
	)

	_, err := service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, end, cursor)

	_, err = service.Run(context.Background())
	require.NoError(t, err)

	// same window content → byte-for-byte identical rows, merged by id
	assert.Equal(t, firstRows, secondRows)
}

func TestRun_InProgressGuard(t *testing.T) {
	service, _ := NewMock(t)

	service.runMu.Lock()
	defer service.runMu.Unlock()

	_, err := service.Run(context.Background())
	assert.ErrorIs(t, err, ErrRunInProgress)
}

func TestCurrentStatus(t *testing.T) {
	service, m := NewMock(t)
	cursor := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)

	m.stateRepo.EXPECT().GetCursor(gomock.Any()).Return(cursor, nil)

	status := service.CurrentStatus(context.Background())
	assert.Equal(t, StateIdle, status.State)
	require.NotNil(t, status.Cursor)
	assert.Equal(t, cursor, *status.Cursor)
}

func TestReset(t *testing.T) {
	service, m := NewMock(t)

	m.stateRepo.EXPECT().Reset(gomock.Any()).Return(nil)
	assert.NoError(t, service.Reset(context.Background()))
}
