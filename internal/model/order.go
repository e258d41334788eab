package model

import "strings"

// Status is the lifecycle state of an order.
//
// The machine is deliberately flat: any status may move to any other status
// via the set-status operation. The only structural rule lives in the store,
// which requires the (form number, financial year) pair to resolve to exactly
// one order before mutating it.
type Status string

const (
	StatusIssued    Status = "Order Issued"
	StatusInProcess Status = "In Process"
	StatusReady     Status = "Ready"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

// Statuses lists every valid order status, in lifecycle order.
var Statuses = []Status{
	StatusIssued,
	StatusInProcess,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
}

// Valid reports whether s is one of the known statuses.
// Comparison is case-insensitive, matching how stored values are read back.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if strings.EqualFold(string(s), string(known)) {
			return true
		}
	}
	return false
}

// Display returns the customer-facing presentation string for a status.
// The mapping is case-insensitive on the stored value; anything that is not
// ready/delivered/cancelled reads as in process.
func (s Status) Display() string {
	switch strings.ToLower(string(s)) {
	case "ready":
		return "READY FOR PICKUP"
	case "delivered":
		return "DELIVERED"
	case "cancelled":
		return "CANCELLED"
	default:
		return "IN PROCESS"
	}
}

// Order is a single jewelry order.
//
// ID is assigned by the store on creation and never changes. FormNo is the
// human-assigned order-form number, unique across the whole store regardless
// of financial year. SerialNo is a display/ordering aid only and carries no
// uniqueness guarantee. FinancialYear is fixed at creation; updates are scoped
// by it so an edit can never silently cross a fiscal-year boundary.
//
// IssuedTo is a soft reference to a worker by name: the order keeps the name
// as plain text, so later worker changes never rewrite historical orders.
//
// Date fields are dd/mm/yyyy strings at this boundary (see ParseDate).
type Order struct {
	ID                   int64
	SerialNo             int64
	CustomerName         string
	Phone                string
	FormNo               string
	OrderDate            string
	Item                 string
	ImagePath            string
	CustomerDeliveryDate string
	WorkerDeliveryDate   string
	IssuedTo             string
	Status               Status
	FinancialYear        string
}

// OrderUpdate carries the mutable fields of an order for the full-field
// update operation. FormNo and FinancialYear are deliberately absent: both
// are immutable after creation.
type OrderUpdate struct {
	CustomerName         string
	Phone                string
	OrderDate            string
	Item                 string
	ImagePath            string
	CustomerDeliveryDate string
	WorkerDeliveryDate   string
	IssuedTo             string
	Status               Status
}
