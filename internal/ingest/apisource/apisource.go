package apisource

import (
	"context"
	"time"

	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/domain"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/ingest"
)

// Lister is the transaction-list slice of the ledger client.
type Lister interface {
	ListTransactions(ctx context.Context, begin, end time.Time) ([]domain.Transaction, error)
}

// Source adapts the ledger API to the ingest capability. Orders are left nil
// for the reconciliation loop to batch-fetch.
type Source struct {
	ledger Lister
}

func New(ledger Lister) *Source {
	return &Source{ledger: ledger}
}

func (s *Source) Fetch(ctx context.Context, begin, end time.Time) ([]ingest.Bundle, error) {
	txs, err := s.ledger.ListTransactions(ctx, begin, end)
	if err != nil {
		return nil, err
	}

	bundles := make([]ingest.Bundle, 0, len(txs))
	for _, tx := range txs {
		bundles = append(bundles, ingest.Bundle{Tx: tx})
	}
	return bundles, nil
}
