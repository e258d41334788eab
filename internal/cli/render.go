package cli

import (
	"fmt"
	"strings"

	"orderdesk/internal/model"
)

// orderPayload is the JSON shape of an order, one field per schema column.
type orderPayload struct {
	ID                   int64  `json:"id"`
	SerialNo             int64  `json:"serial_no"`
	CustomerName         string `json:"customer_name"`
	Phone                string `json:"phone_number"`
	FormNo               string `json:"order_form_no"`
	OrderDate            string `json:"order_date"`
	Item                 string `json:"item_ordered"`
	ImagePath            string `json:"image_path,omitempty"`
	CustomerDeliveryDate string `json:"customer_delivery_date"`
	WorkerDeliveryDate   string `json:"worker_delivery_date"`
	IssuedTo             string `json:"issued_to"`
	Status               string `json:"order_status"`
	StatusDisplay        string `json:"status_display"`
	FinancialYear        string `json:"financial_year"`
}

func toOrderPayload(o model.Order) orderPayload {
	return orderPayload{
		ID:                   o.ID,
		SerialNo:             o.SerialNo,
		CustomerName:         o.CustomerName,
		Phone:                o.Phone,
		FormNo:               o.FormNo,
		OrderDate:            o.OrderDate,
		Item:                 o.Item,
		ImagePath:            o.ImagePath,
		CustomerDeliveryDate: o.CustomerDeliveryDate,
		WorkerDeliveryDate:   o.WorkerDeliveryDate,
		IssuedTo:             o.IssuedTo,
		Status:               string(o.Status),
		StatusDisplay:        o.Status.Display(),
		FinancialYear:        o.FinancialYear,
	}
}

// renderOrder renders the full order detail for text output.
func renderOrder(o model.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order Form No:   %s\n", o.FormNo)
	fmt.Fprintf(&b, "Serial No:       %d\n", o.SerialNo)
	fmt.Fprintf(&b, "Customer:        %s\n", o.CustomerName)
	fmt.Fprintf(&b, "Phone:           %s\n", o.Phone)
	fmt.Fprintf(&b, "Order Date:      %s\n", o.OrderDate)
	fmt.Fprintf(&b, "Item:            %s\n", o.Item)
	if o.ImagePath != "" {
		fmt.Fprintf(&b, "Design Image:    %s\n", o.ImagePath)
	}
	fmt.Fprintf(&b, "Customer Date:   %s\n", o.CustomerDeliveryDate)
	fmt.Fprintf(&b, "Worker Date:     %s\n", o.WorkerDeliveryDate)
	fmt.Fprintf(&b, "Issued To:       %s\n", o.IssuedTo)
	fmt.Fprintf(&b, "Status:          %s\n", o.Status)
	fmt.Fprintf(&b, "Financial Year:  %s", o.FinancialYear)
	return b.String()
}

// renderStatusCheck renders the customer-facing status line plus the context
// the counter reads out, varying with the presentation status.
func renderStatusCheck(o model.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", o.Status.Display())
	fmt.Fprintf(&b, "Order: %s\n", o.FormNo)
	fmt.Fprintf(&b, "Customer: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "Item: %s\n", o.Item)

	switch o.Status.Display() {
	case "READY FOR PICKUP":
		fmt.Fprintf(&b, "Customer Delivery Date: %s", o.CustomerDeliveryDate)
	case "DELIVERED":
		fmt.Fprintf(&b, "Order has been delivered.")
	case "CANCELLED":
		fmt.Fprintf(&b, "This order has been cancelled.")
	default:
		fmt.Fprintf(&b, "Worker Date: %s\n", o.WorkerDeliveryDate)
		fmt.Fprintf(&b, "Customer Date: %s", o.CustomerDeliveryDate)
	}
	return b.String()
}

// renderOrderLine is the one-line listing format.
func renderOrderLine(o model.Order) string {
	return fmt.Sprintf("%4d  %4d  %-12s  %-20s  %-14s  %s",
		o.ID, o.SerialNo, o.FormNo, o.CustomerName, o.Status, o.FinancialYear)
}
