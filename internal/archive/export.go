package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"orderdesk/internal/model"
)

// ErrEmptyDataset is returned by ExportOrders when there are no orders to
// export; no file is written then.
var ErrEmptyDataset = errors.New("no orders to export")

// exportSheet is the worksheet the orders land on.
const exportSheet = "Orders"

// exportHeader mirrors the orders table, one column per schema field.
var exportHeader = []any{
	"id", "serial_no", "customer_name", "phone_number", "order_form_no",
	"order_date", "item_ordered", "image_path", "customer_delivery_date",
	"worker_delivery_date", "issued_to", "order_status", "financial_year",
}

// Ledger is the slice of the order ledger the exporter reads.
type Ledger interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
}

// ExportOrders serializes every order to a spreadsheet at path, one row per
// order in primary-key order.
func ExportOrders(ctx context.Context, ledger Ledger, path string) error {
	orders, err := ledger.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("export orders: %w", err)
	}
	if len(orders) == 0 {
		return ErrEmptyDataset
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("export orders: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("export orders: %w", err)
	}

	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export orders: %w", err)
		}
		row := []any{
			o.ID, o.SerialNo, o.CustomerName, o.Phone, o.FormNo,
			o.OrderDate, o.Item, o.ImagePath, o.CustomerDeliveryDate,
			o.WorkerDeliveryDate, o.IssuedTo, string(o.Status), o.FinancialYear,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("export orders: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export orders: save: %w", err)
	}
	return nil
}
