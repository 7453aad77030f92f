package commission

import (
	"strings"

	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/domain"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/rates"
	"github.com/shopspring/decimal"
)

// TipStrategy derives the tip amount in minor units for one transaction.
type TipStrategy func(tx domain.Transaction, order domain.Order, serviceSales, productSales, productTax int64) int64

// TipsReported reads the tip the ledger recorded on the payment.
func TipsReported(tx domain.Transaction, _ domain.Order, _, _, _ int64) int64 {
	return tx.Tip
}

// TipsDerived reconstructs tips as the residual of the legacy formula
// (amount paid + discounts − service sales − product sales − tax). It is
// approximate and can go negative when the inputs disagree.
func TipsDerived(tx domain.Transaction, order domain.Order, serviceSales, productSales, productTax int64) int64 {
	return tx.AmountPaid + order.TotalDiscount - serviceSales - productSales - productTax
}

type Engine struct {
	feeShare decimal.Decimal
	tips     TipStrategy
}

// New builds an engine. feeShare is the fraction of the processing fee charged
// to the staff side, 0 unless configured. tips defaults to TipsReported.
func New(feeShare float64, tips TipStrategy) *Engine {
	if tips == nil {
		tips = TipsReported
	}
	return &Engine{
		feeShare: decimal.NewFromFloat(rates.Normalize(feeShare)),
		tips:     tips,
	}
}

type groupTotals struct {
	sales int64
	tax   int64
	names []string
	seen  map[string]struct{}
}

func (g *groupTotals) add(item domain.LineItem, entry domain.CatalogEntry) {
	net := item.GrossSales - item.Discount
	if net < 0 {
		net = 0
	}
	g.sales += net
	g.tax += item.Tax

	name := entry.ItemName
	if name == "" {
		name = item.Name
	}
	if name == "" {
		return
	}
	if _, ok := g.seen[name]; ok {
		return
	}
	g.seen[name] = struct{}{}
	g.names = append(g.names, name)
}

func (g *groupTotals) label() string {
	return strings.Join(g.names, ", ")
}

// ComputeRow builds the full commission breakdown for one transaction.
// Absent or invalid numeric inputs are zeros by construction, never an error.
func (e *Engine) ComputeRow(tx domain.Transaction, order domain.Order, catalog map[string]domain.CatalogEntry, staffName, customerName, provenance string, table *rates.Table) domain.ProcessedRow {
	services := &groupTotals{seen: map[string]struct{}{}}
	products := &groupTotals{seen: map[string]struct{}{}}

	for _, item := range order.Items {
		entry, ok := catalog[item.CatalogID]
		if ok && entry.Category == domain.CategoryService {
			services.add(item, entry)
		} else {
			// unseen catalog ids default to product
			products.add(item, entry)
		}
	}

	serviceLabel := services.label()
	productLabel := products.label()

	serviceRate := table.ServiceRate(serviceLabel, staffName)
	productRate := table.ProductRate(productLabel, staffName)

	serviceSales := domain.MinorToDecimal(services.sales)
	productSales := domain.MinorToDecimal(products.sales)

	serviceCommission := serviceSales.Mul(decimal.NewFromFloat(serviceRate)).Round(2)
	productCommission := productSales.Mul(decimal.NewFromFloat(productRate)).Round(2)

	tips := domain.MinorToDecimal(e.tips(tx, order, services.sales, products.sales, products.tax))
	staffFeeShare := domain.MinorToDecimal(tx.ProcessingFee).Mul(e.feeShare).Round(2)

	totalCommission := serviceCommission.Add(productCommission).Add(tips).Sub(staffFeeShare)

	amountPaid := domain.MinorToDecimal(tx.AmountPaid)
	processingFee := domain.MinorToDecimal(tx.ProcessingFee)
	refunded := domain.MinorToDecimal(tx.Refunded)
	serviceCharge := domain.MinorToDecimal(order.ServiceCharge)
	discounts := domain.MinorToDecimal(order.TotalDiscount)
	otherAdjustments := decimal.Zero // reserved

	netTake := amountPaid.
		Sub(processingFee).
		Sub(totalCommission).
		Sub(tips).
		Sub(refunded).
		Add(serviceCharge).
		Sub(discounts).
		Add(otherAdjustments).
		Round(2)

	occurredAt := tx.CreatedAt
	if occurredAt.IsZero() {
		occurredAt = tx.UpdatedAt
	}

	return domain.ProcessedRow{
		TransactionID:     tx.ID,
		OccurredAt:        occurredAt,
		ServiceLabel:      serviceLabel,
		StaffName:         staffName,
		HasFee:            tx.ProcessingFee != 0,
		AmountPaid:        amountPaid,
		ProcessingFee:     processingFee,
		StaffFeeShare:     staffFeeShare,
		ServiceSales:      serviceSales,
		ServiceRate:       serviceRate,
		ServiceCommission: serviceCommission,
		Tips:              tips.Round(2),
		ProductLabel:      productLabel,
		ProductSales:      productSales,
		ProductRate:       productRate,
		ProductCommission: productCommission,
		ProductTax:        domain.MinorToDecimal(products.tax),
		Discounts:         discounts,
		OtherAdjustments:  otherAdjustments,
		TotalCommission:   totalCommission.Round(2),
		NetTake:           netTake,
		Status:            tx.Status,
		CustomerName:      customerName,
		Provenance:        provenance,
	}
}
