// Package csvsource is the legacy positional-column input adapter. Exports
// from the old register land as CSV files; the columns are fixed by position,
// tips are reconstructed from the residual formula, and refunded rows are
// zeroed. It exists to replay historical files through the same
// reconciliation loop, not as a maintained ingestion path.
package csvsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/domain"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/ingest"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/service/commission"
	"go.uber.org/zap"
)

// Fixed column positions of the legacy export.
const (
	colID = iota
	colDate
	colStaff
	colCustomer
	colService
	colServicePrice
	colProduct
	colProductPrice
	colTax
	colDiscount
	colAmountPaid
	colFee
	colStatus
	colCount
)

const refundedStatus = "refunded"

type Source struct {
	path string
}

func New(path string) *Source {
	return &Source{path: path}
}

func (s *Source) Fetch(ctx context.Context, begin, end time.Time) ([]ingest.Bundle, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("can't open legacy export: %w", err)
	}
	defer f.Close()

	return Parse(ctx, f, begin, end)
}

func Parse(ctx context.Context, r io.Reader, begin, end time.Time) ([]ingest.Bundle, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var bundles []ingest.Bundle
	line := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			return bundles, nil
		}
		if err != nil {
			return nil, fmt.Errorf("can't read legacy export: %w", err)
		}
		line++

		if line == 1 && looksLikeHeader(record) {
			continue
		}
		if len(record) < colCount || strings.TrimSpace(record[colID]) == "" {
			zap.L().Warn("skipping malformed legacy row", zap.Int("line", line))
			continue
		}

		bundle, ok := parseRow(record)
		if !ok {
			zap.L().Warn("skipping legacy row without a parseable date", zap.Int("line", line))
			continue
		}
		if bundle.Tx.CreatedAt.Before(begin) || !bundle.Tx.CreatedAt.Before(end) {
			continue
		}
		bundles = append(bundles, bundle)
	}
}

func parseRow(record []string) (ingest.Bundle, bool) {
	occurredAt, ok := parseDate(record[colDate])
	if !ok {
		return ingest.Bundle{}, false
	}

	status := strings.TrimSpace(record[colStatus])
	refunded := strings.EqualFold(status, refundedStatus)

	servicePrice := parseMoney(record[colServicePrice])
	productPrice := parseMoney(record[colProductPrice])
	tax := parseMoney(record[colTax])
	discount := parseMoney(record[colDiscount])
	amountPaid := parseMoney(record[colAmountPaid])
	fee := parseMoney(record[colFee])

	// refunded rows keep their status text but zero every monetary field
	if refunded {
		servicePrice, productPrice, tax, discount, amountPaid, fee = 0, 0, 0, 0, 0, 0
	}

	tx := domain.Transaction{
		ID:            strings.TrimSpace(record[colID]),
		CreatedAt:     occurredAt,
		UpdatedAt:     occurredAt,
		AmountPaid:    amountPaid,
		ProcessingFee: fee,
		Status:        status,
		BillingName:   strings.TrimSpace(record[colCustomer]),
	}

	order := &domain.Order{
		ID:            "legacy-" + tx.ID,
		TotalDiscount: discount,
		LegacyStaffID: strings.TrimSpace(record[colStaff]),
	}
	catalog := map[string]domain.CatalogEntry{}

	if name := strings.TrimSpace(record[colService]); name != "" || servicePrice != 0 {
		id := "legacy-svc-" + tx.ID
		order.Items = append(order.Items, domain.LineItem{
			CatalogID:  id,
			Name:       name,
			GrossSales: servicePrice,
		})
		catalog[id] = domain.CatalogEntry{VariationID: id, ItemName: name, Category: domain.CategoryService}
	}
	if name := strings.TrimSpace(record[colProduct]); name != "" || productPrice != 0 {
		id := "legacy-prod-" + tx.ID
		order.Items = append(order.Items, domain.LineItem{
			CatalogID:  id,
			Name:       name,
			GrossSales: productPrice,
			Tax:        tax,
		})
		catalog[id] = domain.CatalogEntry{VariationID: id, ItemName: name, Category: domain.CategoryProduct}
	}

	// the export carries no tip column; reconstruct it from the residual
	tx.Tip = commission.TipsDerived(tx, *order, servicePrice, productPrice, tax)

	return ingest.Bundle{Tx: tx, Order: order, Catalog: catalog}, true
}

func looksLikeHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(record[0]))
	return first == "id" || first == "transaction id"
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseMoney reads a decimal dollar amount into minor units; anything
// unparseable is 0 by the data-quality rule.
func parseMoney(s string) int64 {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(f * 100))
}
