package ingest

import (
	"context"
	"time"

	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/domain"
)

// Bundle is one transaction plus, for file-shaped inputs, the order that came
// pre-parsed with it. Order is nil when the reconciliation loop must fetch it
// from the ledger.
type Bundle struct {
	Tx    domain.Transaction
	Order *domain.Order
	// Catalog carries pre-shaped catalog entries for inputs that never touch
	// the remote catalog, keyed by the line items' catalog ids.
	Catalog map[string]domain.CatalogEntry
}

// Source shapes raw input into bundles. The ledger API adapter and the legacy
// file adapters all satisfy it, so the reconciliation loop stays ignorant of
// where its input came from.
type Source interface {
	Fetch(ctx context.Context, begin, end time.Time) ([]Bundle, error)
}
