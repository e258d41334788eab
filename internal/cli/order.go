package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"orderdesk/internal/fiscal"
	"orderdesk/internal/model"
)

// NewOrderCommand creates the order command group.
func NewOrderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Record and manage jewelry orders",
	}

	cmd.AddCommand(newOrderAddCommand(rootOpts))
	cmd.AddCommand(newOrderShowCommand(rootOpts))
	cmd.AddCommand(newOrderFindCommand(rootOpts))
	cmd.AddCommand(newOrderListCommand(rootOpts))
	cmd.AddCommand(newOrderSetStatusCommand(rootOpts))
	cmd.AddCommand(newOrderEditCommand(rootOpts))
	cmd.AddCommand(newOrderDeleteCommand(rootOpts))

	return cmd
}

// parseStatus resolves a user-supplied status to its canonical spelling.
func parseStatus(s string) (model.Status, error) {
	for _, known := range model.Statuses {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", &invalidFormatError{err: fmt.Errorf("unknown status %q: must be one of %v", s, model.Statuses)}
}

// checkDate validates a dd/mm/yyyy flag value.
func checkDate(flag, value string) error {
	if value == "" {
		return nil
	}
	if _, err := model.ParseDate(value); err != nil {
		return &invalidFormatError{err: fmt.Errorf("--%s: %w", flag, err)}
	}
	return nil
}

// loadDates replaces unparseable stored dates with today, logging the
// substitution. A bad date must never make a record unloadable.
func loadDates(o *model.Order) {
	now := time.Now()
	for _, d := range []*string{&o.OrderDate, &o.CustomerDeliveryDate, &o.WorkerDeliveryDate} {
		if *d == "" {
			continue
		}
		fixed, ok := model.DateOrNow(*d, now)
		if !ok {
			slog.Warn("replacing invalid stored date", "order", o.FormNo, "value", *d, "replacement", fixed)
			*d = fixed
		}
	}
}

type orderAddOptions struct {
	*RootOptions
	Customer     string
	Phone        string
	FormNo       string
	Item         string
	Worker       string
	OrderDate    string
	ImagePath    string
	CustomerDate string
	WorkerDate   string
	Year         string
}

func newOrderAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &orderAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new order",
		Long: `Record a new order. The order starts in status "Order Issued"; the serial
number is assigned by the store. The form number must be unique across all
financial years.

Example:
  orderdesk order add --form JF-101 --customer "ASHA MEHTA" --phone 9876543210 \
    --item "GOLD BANGLE" --worker RAMESH --customer-date 15/06/2024`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrderAdd(opts, cmd)
		},
	}

	today := model.FormatDate(time.Now())
	cmd.Flags().StringVar(&opts.Customer, "customer", "", "customer name (required)")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "phone number (required)")
	cmd.Flags().StringVar(&opts.FormNo, "form", "", "order form number (required, unique)")
	cmd.Flags().StringVar(&opts.Item, "item", "", "item ordered (required)")
	cmd.Flags().StringVar(&opts.Worker, "worker", "", "worker the order is issued to (required)")
	cmd.Flags().StringVar(&opts.OrderDate, "date", today, "order date (dd/mm/yyyy)")
	cmd.Flags().StringVar(&opts.ImagePath, "image", "", "reference image path")
	cmd.Flags().StringVar(&opts.CustomerDate, "customer-date", today, "customer delivery date (dd/mm/yyyy)")
	cmd.Flags().StringVar(&opts.WorkerDate, "worker-date", today, "worker delivery date (dd/mm/yyyy)")
	cmd.Flags().StringVar(&opts.Year, "year", "", "financial year (default: current)")

	return cmd
}

func runOrderAdd(opts *orderAddOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	for _, d := range []struct{ flag, value string }{
		{"date", opts.OrderDate},
		{"customer-date", opts.CustomerDate},
		{"worker-date", opts.WorkerDate},
	} {
		if err := checkDate(d.flag, d.value); err != nil {
			return failWith(f, err)
		}
	}

	if opts.Year == "" {
		opts.Year = fiscal.Default(time.Now())
	} else if err := fiscal.Validate(opts.Year); err != nil {
		return failWith(f, err)
	}

	st, _, err := opts.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.CreateOrder(cmd.Context(), model.Order{
		CustomerName:         opts.Customer,
		Phone:                opts.Phone,
		FormNo:               opts.FormNo,
		OrderDate:            opts.OrderDate,
		Item:                 opts.Item,
		ImagePath:            opts.ImagePath,
		CustomerDeliveryDate: opts.CustomerDate,
		WorkerDeliveryDate:   opts.WorkerDate,
		IssuedTo:             opts.Worker,
		FinancialYear:        opts.Year,
	})
	if err != nil {
		return failWith(f, err)
	}

	created, err := st.GetOrderByForm(cmd.Context(), opts.FormNo)
	if err != nil {
		return failWith(f, err)
	}

	if opts.Format == "json" {
		return f.Success(toOrderPayload(created))
	}
	return f.Success(fmt.Sprintf("Order %s saved (id %d, serial %d, %s).",
		created.FormNo, id, created.SerialNo, created.FinancialYear))
}

type orderShowOptions struct {
	*RootOptions
	Year string
}

func newOrderShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &orderShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <form-no>",
		Short: "Show an order by form number",
		Long: `Show the full record for an order. With --year the lookup is scoped to
that financial year; without it the form number alone resolves the order,
since form numbers are globally unique.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrderShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Year, "year", "", "scope lookup to a financial year")

	return cmd
}

func runOrderShow(opts *orderShowOptions, formNo string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	st, _, err := opts.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	var o model.Order
	if opts.Year != "" {
		o, err = st.GetOrder(cmd.Context(), formNo, opts.Year)
	} else {
		o, err = st.GetOrderByForm(cmd.Context(), formNo)
	}
	if err != nil {
		return failWith(f, err)
	}
	loadDates(&o)

	if opts.Format == "json" {
		return f.Success(toOrderPayload(o))
	}
	return f.Success(renderOrder(o))
}

func newOrderFindCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <form-no-or-phone>",
		Short: "Check order status by form number or phone",
		Long: `Look an order up by exact form number or phone number and print its
customer-facing status. Phone numbers are not unique; the earliest matching
order wins.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)

			st, _, err := rootOpts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			o, err := st.FindOrder(cmd.Context(), args[0])
			if err != nil {
				return failWith(f, err)
			}
			loadDates(&o)

			if rootOpts.Format == "json" {
				return f.Success(toOrderPayload(o))
			}
			return f.Success(renderStatusCheck(o))
		},
	}

	return cmd
}

func newOrderListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List all orders",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)

			st, _, err := rootOpts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			orders, err := st.ListOrders(cmd.Context())
			if err != nil {
				return failWith(f, err)
			}

			if rootOpts.Format == "json" {
				payload := make([]orderPayload, 0, len(orders))
				for _, o := range orders {
					payload = append(payload, toOrderPayload(o))
				}
				return f.Success(payload)
			}

			if len(orders) == 0 {
				return f.Success("No orders recorded.")
			}
			var b strings.Builder
			fmt.Fprintf(&b, "%4s  %4s  %-12s  %-20s  %-14s  %s\n", "ID", "SER", "FORM NO", "CUSTOMER", "STATUS", "YEAR")
			for i, o := range orders {
				b.WriteString(renderOrderLine(o))
				if i < len(orders)-1 {
					b.WriteByte('\n')
				}
			}
			return f.Success(b.String())
		},
	}

	return cmd
}

type orderSetStatusOptions struct {
	*RootOptions
	Year string
}

func newOrderSetStatusCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &orderSetStatusOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set-status <form-no> <status>",
		Short: "Move an order to a new status",
		Long: `Move an order to a new status. Any status may move to any other; the
(form number, financial year) pair must resolve to exactly one order.

Statuses: "Order Issued", "In Process", "Ready", "Delivered", "Cancelled".`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrderSetStatus(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Year, "year", "", "financial year (default: current)")

	return cmd
}

func runOrderSetStatus(opts *orderSetStatusOptions, formNo, rawStatus string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	status, err := parseStatus(rawStatus)
	if err != nil {
		return failWith(f, err)
	}
	if opts.Year == "" {
		opts.Year = fiscal.Default(time.Now())
	}

	st, _, err := opts.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.UpdateStatus(cmd.Context(), formNo, opts.Year, status); err != nil {
		return failWith(f, err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]string{
			"order_form_no":  formNo,
			"financial_year": opts.Year,
			"order_status":   string(status),
		})
	}
	return f.Success(fmt.Sprintf("Order %s (%s) moved to %q.", formNo, opts.Year, status))
}

type orderEditOptions struct {
	*RootOptions
	Year         string
	Customer     string
	Phone        string
	Item         string
	Worker       string
	Status       string
	OrderDate    string
	ImagePath    string
	CustomerDate string
	WorkerDate   string
}

func newOrderEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &orderEditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace the mutable fields of an order",
		Long: `Replace every mutable field of the order identified by id and financial
year. The form number and financial year themselves never change. All fields
except --image are required.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrderEdit(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Year, "year", "", "financial year the order belongs to (required)")
	cmd.Flags().StringVar(&opts.Customer, "customer", "", "customer name")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&opts.Item, "item", "", "item ordered")
	cmd.Flags().StringVar(&opts.Worker, "worker", "", "worker the order is issued to")
	cmd.Flags().StringVar(&opts.Status, "status", "", "order status")
	cmd.Flags().StringVar(&opts.OrderDate, "date", "", "order date (dd/mm/yyyy)")
	cmd.Flags().StringVar(&opts.ImagePath, "image", "", "reference image path")
	cmd.Flags().StringVar(&opts.CustomerDate, "customer-date", "", "customer delivery date (dd/mm/yyyy)")
	cmd.Flags().StringVar(&opts.WorkerDate, "worker-date", "", "worker delivery date (dd/mm/yyyy)")
	_ = cmd.MarkFlagRequired("year")

	return cmd
}

func runOrderEdit(opts *orderEditOptions, rawID string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return failWith(f, &invalidFormatError{err: fmt.Errorf("invalid order id %q", rawID)})
	}

	for _, d := range []struct{ flag, value string }{
		{"date", opts.OrderDate},
		{"customer-date", opts.CustomerDate},
		{"worker-date", opts.WorkerDate},
	} {
		if err := checkDate(d.flag, d.value); err != nil {
			return failWith(f, err)
		}
	}

	var status model.Status
	if opts.Status != "" {
		if status, err = parseStatus(opts.Status); err != nil {
			return failWith(f, err)
		}
	}

	st, _, err := opts.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	update := model.OrderUpdate{
		CustomerName:         opts.Customer,
		Phone:                opts.Phone,
		OrderDate:            opts.OrderDate,
		Item:                 opts.Item,
		ImagePath:            opts.ImagePath,
		CustomerDeliveryDate: opts.CustomerDate,
		WorkerDeliveryDate:   opts.WorkerDate,
		IssuedTo:             opts.Worker,
		Status:               status,
	}
	if err := st.UpdateOrder(cmd.Context(), id, opts.Year, update); err != nil {
		return failWith(f, err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]any{"id": id, "financial_year": opts.Year})
	}
	return f.Success(fmt.Sprintf("Order id %d (%s) updated.", id, opts.Year))
}

type orderDeleteOptions struct {
	*RootOptions
	Yes bool
}

func newOrderDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &orderDeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an order permanently",
		Long: `Delete an order by id. Ids are globally unique so no year scoping
applies. This cannot be undone.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrderDelete(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "skip the confirmation prompt")

	return cmd
}

func runOrderDelete(opts *orderDeleteOptions, rawID string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return failWith(f, &invalidFormatError{err: fmt.Errorf("invalid order id %q", rawID)})
	}

	if !confirm(cmd, opts.Yes, fmt.Sprintf("Delete order id %d permanently?", id)) {
		return NewExitError(ExitCommandError, "delete cancelled")
	}

	st, _, err := opts.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteOrder(cmd.Context(), id); err != nil {
		return failWith(f, err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]any{"id": id, "deleted": true})
	}
	return f.Success(fmt.Sprintf("Order id %d deleted.", id))
}
