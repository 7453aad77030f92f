package dto

import (
	"time"

	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/domain"
)

type RowDTO struct {
	TransactionID     string    `json:"transaction_id"`
	OccurredAt        time.Time `json:"occurred_at"`
	ServiceLabel      string    `json:"service_label,omitempty"`
	StaffName         string    `json:"staff_name,omitempty"`
	HasFee            bool      `json:"has_fee"`
	AmountPaid        string    `json:"amount_paid"`
	ProcessingFee     string    `json:"processing_fee"`
	StaffFeeShare     string    `json:"staff_fee_share"`
	ServiceSales      string    `json:"service_sales"`
	ServiceRate       float64   `json:"service_rate"`
	ServiceCommission string    `json:"service_commission"`
	Tips              string    `json:"tips"`
	ProductLabel      string    `json:"product_label,omitempty"`
	ProductSales      string    `json:"product_sales"`
	ProductRate       float64   `json:"product_rate"`
	ProductCommission string    `json:"product_commission"`
	ProductTax        string    `json:"product_tax"`
	Discounts         string    `json:"discounts"`
	OtherAdjustments  string    `json:"other_adjustments"`
	TotalCommission   string    `json:"total_commission"`
	NetTake           string    `json:"net_take"`
	Status            string    `json:"status"`
	CustomerName      string    `json:"customer_name,omitempty"`
	Provenance        string    `json:"provenance"`
}

func RowFromDomain(row domain.ProcessedRow) RowDTO {
	return RowDTO{
		TransactionID:     row.TransactionID,
		OccurredAt:        row.OccurredAt,
		ServiceLabel:      row.ServiceLabel,
		StaffName:         row.StaffName,
		HasFee:            row.HasFee,
		AmountPaid:        row.AmountPaid.StringFixed(2),
		ProcessingFee:     row.ProcessingFee.StringFixed(2),
		StaffFeeShare:     row.StaffFeeShare.StringFixed(2),
		ServiceSales:      row.ServiceSales.StringFixed(2),
		ServiceRate:       row.ServiceRate,
		ServiceCommission: row.ServiceCommission.StringFixed(2),
		Tips:              row.Tips.StringFixed(2),
		ProductLabel:      row.ProductLabel,
		ProductSales:      row.ProductSales.StringFixed(2),
		ProductRate:       row.ProductRate,
		ProductCommission: row.ProductCommission.StringFixed(2),
		ProductTax:        row.ProductTax.StringFixed(2),
		Discounts:         row.Discounts.StringFixed(2),
		OtherAdjustments:  row.OtherAdjustments.StringFixed(2),
		TotalCommission:   row.TotalCommission.StringFixed(2),
		NetTake:           row.NetTake.StringFixed(2),
		Status:            row.Status,
		CustomerName:      row.CustomerName,
		Provenance:        row.Provenance,
	}
}
