package rowrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/domain"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

const upsertQuery = `
        INSERT INTO processed_rows (
            transaction_id, occurred_at, service_label, staff_name, has_fee,
            amount_paid, processing_fee, staff_fee_share,
            service_sales, service_rate, service_commission, tips,
            product_label, product_sales, product_rate, product_commission, product_tax,
            discounts, other_adjustments, total_commission, net_take,
            status, customer_name, provenance, updated_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, now())
        ON CONFLICT (transaction_id) DO UPDATE SET
            occurred_at = EXCLUDED.occurred_at,
            service_label = EXCLUDED.service_label,
            staff_name = EXCLUDED.staff_name,
            has_fee = EXCLUDED.has_fee,
            amount_paid = EXCLUDED.amount_paid,
            processing_fee = EXCLUDED.processing_fee,
            staff_fee_share = EXCLUDED.staff_fee_share,
            service_sales = EXCLUDED.service_sales,
            service_rate = EXCLUDED.service_rate,
            service_commission = EXCLUDED.service_commission,
            tips = EXCLUDED.tips,
            product_label = EXCLUDED.product_label,
            product_sales = EXCLUDED.product_sales,
            product_rate = EXCLUDED.product_rate,
            product_commission = EXCLUDED.product_commission,
            product_tax = EXCLUDED.product_tax,
            discounts = EXCLUDED.discounts,
            other_adjustments = EXCLUDED.other_adjustments,
            total_commission = EXCLUDED.total_commission,
            net_take = EXCLUDED.net_take,
            status = EXCLUDED.status,
            customer_name = EXCLUDED.customer_name,
            provenance = EXCLUDED.provenance,
            updated_at = now()
    `

// Upsert merges rows by transaction id: existing ids are updated in place,
// new ids are inserted. All rows of a run go in one transaction.
func (r *Repository) Upsert(ctx context.Context, rows []domain.ProcessedRow) error {
	if len(rows) == 0 {
		return nil
	}

	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		for _, row := range rows {
			_, err := r.db.Exec(ctx, upsertQuery,
				row.TransactionID, row.OccurredAt, row.ServiceLabel, row.StaffName, row.HasFee,
				row.AmountPaid, row.ProcessingFee, row.StaffFeeShare,
				row.ServiceSales, row.ServiceRate, row.ServiceCommission, row.Tips,
				row.ProductLabel, row.ProductSales, row.ProductRate, row.ProductCommission, row.ProductTax,
				row.Discounts, row.OtherAdjustments, row.TotalCommission, row.NetTake,
				row.Status, row.CustomerName, row.Provenance,
			)
			if err != nil {
				zap.L().Error("can't upsert processed row", zap.String("transactionID", row.TransactionID), zap.Error(err))
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) FindByTransactionID(ctx context.Context, transactionID string) (*domain.ProcessedRow, error) {
	query := `
        SELECT transaction_id, occurred_at, service_label, staff_name, has_fee,
               amount_paid, processing_fee, staff_fee_share,
               service_sales, service_rate, service_commission, tips,
               product_label, product_sales, product_rate, product_commission, product_tax,
               discounts, other_adjustments, total_commission, net_take,
               status, customer_name, provenance
        FROM processed_rows
        WHERE transaction_id = $1
    `
	row := r.db.QueryRow(ctx, query, transactionID)

	var out domain.ProcessedRow
	err := scanRow(row, &out)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find processed row", zap.Error(err))
		return nil, err
	}
	return &out, nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]domain.ProcessedRow, error) {
	query := `
        SELECT transaction_id, occurred_at, service_label, staff_name, has_fee,
               amount_paid, processing_fee, staff_fee_share,
               service_sales, service_rate, service_commission, tips,
               product_label, product_sales, product_rate, product_commission, product_tax,
               discounts, other_adjustments, total_commission, net_take,
               status, customer_name, provenance
        FROM processed_rows
        ORDER BY occurred_at DESC
        LIMIT $1 OFFSET $2
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		zap.L().Error("can't list processed rows", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []domain.ProcessedRow
	for rows.Next() {
		var row domain.ProcessedRow
		if err := scanRow(rows, &row); err != nil {
			zap.L().Error("can't scan processed row", zap.Error(err))
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func scanRow(row pgx.Row, out *domain.ProcessedRow) error {
	return row.Scan(
		&out.TransactionID, &out.OccurredAt, &out.ServiceLabel, &out.StaffName, &out.HasFee,
		&out.AmountPaid, &out.ProcessingFee, &out.StaffFeeShare,
		&out.ServiceSales, &out.ServiceRate, &out.ServiceCommission, &out.Tips,
		&out.ProductLabel, &out.ProductSales, &out.ProductRate, &out.ProductCommission, &out.ProductTax,
		&out.Discounts, &out.OtherAdjustments, &out.TotalCommission, &out.NetTake,
		&out.Status, &out.CustomerName, &out.Provenance,
	)
}
