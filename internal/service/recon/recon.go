package recon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/domain"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/ingest"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/rates"
	staterepo "github.com/kaimrdth/Barbershop-Transactions-Automation/internal/repo/state-repo"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/service/attribution"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/service/commission"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/service/entitycache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Run states, logged on every transition.
const (
	StateIdle           = "IDLE"
	StateFetching       = "FETCHING"
	StateEnriching      = "ENRICHING"
	StateComputing      = "COMPUTING"
	StateMerging        = "MERGING"
	StateCursorAdvanced = "CURSOR_ADVANCED"
)

var ErrRunInProgress = errors.New("reconciliation run already in progress")

// Ledger is the enrichment surface of the remote ledger client.
type Ledger interface {
	BatchOrders(ctx context.Context, ids []string) (map[string]domain.Order, error)
	BatchCatalog(ctx context.Context, ids []string) (map[string]domain.CatalogEntry, error)
	BatchCustomers(ctx context.Context, ids []string) (map[string]string, error)
	GetTeamMember(ctx context.Context, id string) (string, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
}

type RowRepo interface {
	Upsert(ctx context.Context, rows []domain.ProcessedRow) error
}

type StateRepo interface {
	GetCursor(ctx context.Context) (time.Time, error)
	SetCursor(ctx context.Context, cursor time.Time) error
	LoadCache(ctx context.Context, kind string) (map[string]string, error)
	SaveCache(ctx context.Context, kind string, entries map[string]string) error
	Reset(ctx context.Context) error
}

// RateLoader produces the rate table for one run.
type RateLoader func() (*rates.Table, error)

type RunResult struct {
	RunID   string    `json:"run_id"`
	Begin   time.Time `json:"begin"`
	End     time.Time `json:"end"`
	Fetched int       `json:"fetched"`
	Merged  int       `json:"merged"`
}

type Status struct {
	State    string     `json:"state"`
	Cursor   *time.Time `json:"cursor,omitempty"`
	LastRun  *RunResult `json:"last_run,omitempty"`
	LastErr  string     `json:"last_error,omitempty"`
	Interval string     `json:"interval"`
}

type Service struct {
	source      ingest.Source
	ledger      Ledger
	rowRepo     RowRepo
	stateRepo   StateRepo
	engine      *commission.Engine
	loadRates   RateLoader
	defaultRate float64
	lookback    time.Duration
	interval    time.Duration
	now         func() time.Time

	runMu sync.Mutex

	statusMu sync.Mutex
	state    string
	lastRun  *RunResult
	lastErr  string
}

func New(source ingest.Source, ledger Ledger, rowRepo RowRepo, stateRepo StateRepo, engine *commission.Engine, loadRates RateLoader, defaultRate float64, lookback, interval time.Duration) *Service {
	return &Service{
		source:      source,
		ledger:      ledger,
		rowRepo:     rowRepo,
		stateRepo:   stateRepo,
		engine:      engine,
		loadRates:   loadRates,
		defaultRate: defaultRate,
		lookback:    lookback,
		interval:    interval,
		now:         time.Now,
		state:       StateIdle,
	}
}

// Start launches the ticker loop. One run per tick; ticks that land while a
// manual run holds the lock are skipped.
func (s *Service) Start(ctx context.Context) {
	zap.L().Info("reconciliation service started", zap.Duration("interval", s.interval))
	go s.loop(ctx)
}

func (s *Service) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping reconciliation service")
			return
		case <-ticker.C:
			if _, err := s.Run(ctx); err != nil && !errors.Is(err, ErrRunInProgress) {
				zap.L().Error("reconciliation run failed", zap.Error(err))
			}
		}
	}
}

// Run executes one full reconciliation pass. The cursor advances only after
// every row of the window has been merged; any fatal error before that leaves
// it untouched so the next run retries the same window.
func (s *Service) Run(ctx context.Context) (*RunResult, error) {
	if !s.runMu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.runMu.Unlock()
	defer s.setState(StateIdle)

	result, err := s.run(ctx)

	s.statusMu.Lock()
	if err != nil {
		s.lastErr = err.Error()
	} else {
		s.lastErr = ""
		s.lastRun = result
	}
	s.statusMu.Unlock()

	return result, err
}

func (s *Service) run(ctx context.Context) (*RunResult, error) {
	runID := uuid.NewString()
	log := zap.L().With(zap.String("runID", runID))

	cursor, err := s.stateRepo.GetCursor(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't read sync cursor: %w", err)
	}

	end := s.now().UTC()
	begin := cursor
	if begin.IsZero() {
		begin = end.Add(-s.lookback)
	}
	result := &RunResult{RunID: runID, Begin: begin, End: end}

	table := s.rateTable(log)

	s.setState(StateFetching)
	log.Info("fetching updated transactions", zap.Time("begin", begin), zap.Time("end", end))
	bundles, err := s.source.Fetch(ctx, begin, end)
	if err != nil {
		return nil, fmt.Errorf("transaction fetch failed: %w", err)
	}
	result.Fetched = len(bundles)

	if len(bundles) == 0 {
		// an empty batch is a successful no-op; only the cursor moves
		if err := s.stateRepo.SetCursor(ctx, end); err != nil {
			return nil, fmt.Errorf("can't advance cursor: %w", err)
		}
		s.setState(StateCursorAdvanced)
		log.Info("no updated transactions in window")
		return result, nil
	}

	s.setState(StateEnriching)
	enriched, err := s.enrich(ctx, log, bundles, table)
	if err != nil {
		return nil, err
	}

	s.setState(StateComputing)
	rows := make([]domain.ProcessedRow, 0, len(bundles))
	for _, b := range bundles {
		rows = append(rows, s.computeRow(ctx, b, enriched, table))
	}

	s.setState(StateMerging)
	if err := s.rowRepo.Upsert(ctx, rows); err != nil {
		return nil, fmt.Errorf("can't merge rows: %w", err)
	}
	result.Merged = len(rows)

	enriched.flush(ctx, s.stateRepo)

	if err := s.stateRepo.SetCursor(ctx, end); err != nil {
		return nil, fmt.Errorf("can't advance cursor: %w", err)
	}
	s.setState(StateCursorAdvanced)
	log.Info("run complete", zap.Int("fetched", result.Fetched), zap.Int("merged", result.Merged))

	return result, nil
}

// enrichment holds everything the compute phase needs besides the bundles.
type enrichment struct {
	orders    map[string]domain.Order
	catalog   map[string]domain.CatalogEntry
	bookings  *entitycache.Cache
	staff     *entitycache.Cache
	customers *entitycache.Cache
}

func (e *enrichment) flush(ctx context.Context, store entitycache.Store) {
	for _, c := range []*entitycache.Cache{e.bookings, e.staff, e.customers} {
		if err := c.Flush(ctx, store); err != nil {
			zap.L().Warn("can't flush entity cache", zap.Error(err))
		}
	}
}

func (s *Service) enrich(ctx context.Context, log *zap.Logger, bundles []ingest.Bundle, table *rates.Table) (*enrichment, error) {
	e := &enrichment{
		orders:  make(map[string]domain.Order),
		catalog: make(map[string]domain.CatalogEntry),
	}

	// orders supplied by the source are taken as-is; the rest come in batches
	var missingOrders []string
	for _, b := range bundles {
		if b.Order != nil {
			e.orders[b.Order.ID] = *b.Order
		} else if b.Tx.OrderID != "" {
			missingOrders = append(missingOrders, b.Tx.OrderID)
		}
		for id, entry := range b.Catalog {
			e.catalog[id] = entry
		}
	}
	if len(missingOrders) > 0 {
		fetched, err := s.ledger.BatchOrders(ctx, dedupe(missingOrders))
		if err != nil {
			return nil, fmt.Errorf("order fetch failed: %w", err)
		}
		for id, order := range fetched {
			e.orders[id] = order
		}
	}

	var missingCatalog []string
	for _, order := range e.orders {
		for _, item := range order.Items {
			if item.CatalogID == "" {
				continue
			}
			if _, ok := e.catalog[item.CatalogID]; !ok {
				missingCatalog = append(missingCatalog, item.CatalogID)
			}
		}
	}
	if len(missingCatalog) > 0 {
		fetched, err := s.ledger.BatchCatalog(ctx, dedupe(missingCatalog))
		if err != nil {
			return nil, fmt.Errorf("catalog fetch failed: %w", err)
		}
		for id, entry := range fetched {
			e.catalog[id] = entry
		}
	}

	var g errgroup.Group
	g.Go(func() error {
		var err error
		if e.bookings, err = entitycache.Load(ctx, s.stateRepo, staterepo.KindBookingStaff); err != nil {
			return fmt.Errorf("can't load booking cache: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if e.staff, err = entitycache.Load(ctx, s.stateRepo, staterepo.KindStaffName); err != nil {
			return fmt.Errorf("can't load staff cache: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if e.customers, err = entitycache.Load(ctx, s.stateRepo, staterepo.KindCustomerName); err != nil {
			return fmt.Errorf("can't load customer cache: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var bookingIDs []string
	for _, order := range e.orders {
		if order.BookingID != "" {
			bookingIDs = append(bookingIDs, order.BookingID)
		}
	}
	e.bookings.Fill(ctx, dedupe(bookingIDs), func(ctx context.Context, id string) (string, error) {
		booking, err := s.ledger.GetBooking(ctx, id)
		if err != nil {
			return "", err
		}
		return booking.StaffID, nil
	})

	// staff ids referenced by payments and bookings; the alias table wins
	// over the cache and over remote lookups
	var staffIDs []string
	for _, b := range bundles {
		if b.Tx.StaffID != "" {
			staffIDs = append(staffIDs, b.Tx.StaffID)
		}
	}
	for _, id := range bookingIDs {
		if staffID, ok := e.bookings.Get(id); ok && staffID != "" {
			staffIDs = append(staffIDs, staffID)
		}
	}
	var unaliased []string
	for _, id := range dedupe(staffIDs) {
		if _, ok := table.AliasName(id); !ok {
			unaliased = append(unaliased, id)
		}
	}
	e.staff.Fill(ctx, unaliased, func(ctx context.Context, id string) (string, error) {
		return s.ledger.GetTeamMember(ctx, id)
	})

	var customerIDs []string
	for _, b := range bundles {
		if b.Tx.CustomerID != "" {
			customerIDs = append(customerIDs, b.Tx.CustomerID)
		}
	}
	for _, order := range e.orders {
		if order.CustomerID != "" {
			customerIDs = append(customerIDs, order.CustomerID)
		}
	}
	e.customers.FillBatch(ctx, dedupe(customerIDs), s.ledger.BatchCustomers)

	log.Info("enrichment complete",
		zap.Int("orders", len(e.orders)),
		zap.Int("catalogEntries", len(e.catalog)),
	)
	return e, nil
}

func (s *Service) computeRow(ctx context.Context, b ingest.Bundle, e *enrichment, table *rates.Table) domain.ProcessedRow {
	order := domain.Order{}
	if b.Order != nil {
		order = *b.Order
	} else if o, ok := e.orders[b.Tx.OrderID]; ok {
		order = o
	}

	staffID, provenance := attribution.ResolveStaff(b.Tx, order, e.bookings.Get)
	if provenance == domain.ProvenanceMissing {
		attribution.DiagnoseMissing(ctx, b.Tx, order, s.ledger.GetBooking)
	}

	return s.engine.ComputeRow(
		b.Tx, order, e.catalog,
		s.staffName(table, e.staff, staffID),
		attribution.ResolveCustomerName(b.Tx, order, func(id string) (string, bool) {
			name, ok := e.customers.Get(id)
			return name, ok && name != ""
		}),
		provenance, table,
	)
}

// staffName resolves a staff id to a display name: the alias table first, the
// persistent cache second, the raw id as a last resort so legacy inputs that
// already carry names pass through.
func (s *Service) staffName(table *rates.Table, cache *entitycache.Cache, staffID string) string {
	if staffID == "" {
		return ""
	}
	if name, ok := table.AliasName(staffID); ok {
		return name
	}
	if name, ok := cache.Get(staffID); ok && name != "" {
		return name
	}
	return staffID
}

func (s *Service) rateTable(log *zap.Logger) *rates.Table {
	table, err := s.loadRates()
	if err != nil {
		log.Warn("can't load rate table, using defaults", zap.Error(err))
		return rates.Empty(s.defaultRate)
	}
	return table
}

// CurrentStatus reports the loop state for the admin API.
func (s *Service) CurrentStatus(ctx context.Context) Status {
	s.statusMu.Lock()
	status := Status{
		State:    s.state,
		LastRun:  s.lastRun,
		LastErr:  s.lastErr,
		Interval: s.interval.String(),
	}
	s.statusMu.Unlock()

	if cursor, err := s.stateRepo.GetCursor(ctx); err == nil && !cursor.IsZero() {
		status.Cursor = &cursor
	}
	return status
}

// Reset clears the cursor and every cache; the next run re-scans the full
// lookback window.
func (s *Service) Reset(ctx context.Context) error {
	return s.stateRepo.Reset(ctx)
}

func (s *Service) setState(state string) {
	s.statusMu.Lock()
	s.state = state
	s.statusMu.Unlock()
	zap.L().Debug("reconciliation state", zap.String("state", state))
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
