package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"orderdesk/internal/model"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

type (
	nullStr = sql.NullString
	nullInt = sql.NullInt64
)

const orderColumns = `id, serial_no, customer_name, phone_number, order_form_no,
	order_date, item_ordered, image_path, customer_delivery_date,
	worker_delivery_date, issued_to, order_status, financial_year`

// CreateOrder inserts a new order and returns its id.
//
// Customer name, phone, form number, item and issued-to are required;
// an empty one returns MissingFieldError without touching the store. The
// form number's global uniqueness is enforced by the UNIQUE constraint
// rather than pre-checked, so two racing creations cannot both pass; the
// loser gets DuplicateError. Status is forced to Order Issued and the
// serial number is allocated inside the insert transaction. The financial
// year recorded here is immutable for the life of the order.
func (s *Store) CreateOrder(ctx context.Context, o model.Order) (int64, error) {
	o.CustomerName = canon(o.CustomerName)
	o.Phone = canon(o.Phone)
	o.FormNo = canon(o.FormNo)
	o.Item = canon(o.Item)
	o.IssuedTo = canon(o.IssuedTo)

	required := []struct {
		field string
		value string
	}{
		{"customer_name", o.CustomerName},
		{"phone_number", o.Phone},
		{"order_form_no", o.FormNo},
		{"item_ordered", o.Item},
		{"issued_to", o.IssuedTo},
	}
	for _, r := range required {
		if r.value == "" {
			return 0, &MissingFieldError{Field: r.field}
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("create order: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	serial, err := nextSerialTx(ctx, tx, "orders")
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders
		(serial_no, customer_name, phone_number, order_form_no, order_date,
		 item_ordered, image_path, customer_delivery_date, worker_delivery_date,
		 issued_to, order_status, financial_year)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		serial,
		o.CustomerName,
		o.Phone,
		o.FormNo,
		o.OrderDate,
		o.Item,
		o.ImagePath,
		o.CustomerDeliveryDate,
		o.WorkerDeliveryDate,
		o.IssuedTo,
		string(model.StatusIssued),
		o.FinancialYear,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, &DuplicateError{Entity: "order", Key: o.FormNo}
		}
		return 0, fmt.Errorf("create order: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create order: last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("create order: commit: %w", err)
	}

	return id, nil
}

// GetOrder retrieves the order with the given form number in the given
// financial year.
func (s *Store) GetOrder(ctx context.Context, formNo, fy string) (model.Order, error) {
	formNo = canon(formNo)
	row := s.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE order_form_no = ? AND financial_year = ?
	`, formNo, fy)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Order{}, &NotFoundError{Entity: "order", Key: formNo + " in " + fy}
	}
	return o, err
}

// GetOrderByForm retrieves an order by form number alone, across all
// financial years. Form numbers are globally unique, so at most one row
// can match.
func (s *Store) GetOrderByForm(ctx context.Context, formNo string) (model.Order, error) {
	formNo = canon(formNo)
	row := s.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE order_form_no = ?
	`, formNo)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Order{}, &NotFoundError{Entity: "order", Key: formNo}
	}
	return o, err
}

// FindOrder looks an order up by exact match on form number OR phone
// number. Phone numbers carry no uniqueness constraint, so several orders
// can match; the first by primary-key order wins. This is the status-check
// lookup a customer triggers with whichever number they have at hand.
func (s *Store) FindOrder(ctx context.Context, key string) (model.Order, error) {
	key = canon(key)
	row := s.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE order_form_no = ? OR phone_number = ?
		ORDER BY id
		LIMIT 1
	`, key, key)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Order{}, &NotFoundError{Entity: "order", Key: key}
	}
	return o, err
}

// UpdateStatus moves the order identified by (form number, financial year)
// to the given status. Any status may move to any other. Returns
// NotFoundError when the pair resolves to no order; nothing is mutated then.
func (s *Store) UpdateStatus(ctx context.Context, formNo, fy string, status model.Status) error {
	formNo = canon(formNo)
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET order_status = ?
		WHERE order_form_no = ? AND financial_year = ?
	`, string(status), formNo, fy)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status: rows affected: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Entity: "order", Key: formNo + " in " + fy}
	}
	return nil
}

// UpdateOrder replaces the mutable fields of the order identified by
// (id, financial year). The year is part of the match key so an edit can
// never cross a fiscal-year boundary; form number and financial year are
// never written. All fields except the image path are required non-empty.
func (s *Store) UpdateOrder(ctx context.Context, id int64, fy string, u model.OrderUpdate) error {
	u.CustomerName = canon(u.CustomerName)
	u.Phone = canon(u.Phone)
	u.Item = canon(u.Item)
	u.IssuedTo = canon(u.IssuedTo)

	required := []struct {
		field string
		value string
	}{
		{"customer_name", u.CustomerName},
		{"phone_number", u.Phone},
		{"order_date", u.OrderDate},
		{"item_ordered", u.Item},
		{"customer_delivery_date", u.CustomerDeliveryDate},
		{"worker_delivery_date", u.WorkerDeliveryDate},
		{"issued_to", u.IssuedTo},
		{"order_status", string(u.Status)},
	}
	for _, r := range required {
		if r.value == "" {
			return &MissingFieldError{Field: r.field}
		}
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE orders SET
			customer_name = ?, phone_number = ?, order_date = ?,
			item_ordered = ?, image_path = ?, customer_delivery_date = ?,
			worker_delivery_date = ?, issued_to = ?, order_status = ?
		WHERE id = ? AND financial_year = ?
	`,
		u.CustomerName,
		u.Phone,
		u.OrderDate,
		u.Item,
		u.ImagePath,
		u.CustomerDeliveryDate,
		u.WorkerDeliveryDate,
		u.IssuedTo,
		string(u.Status),
		id,
		fy,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order: rows affected: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Entity: "order", Key: fmt.Sprintf("id %d in %s", id, fy)}
	}
	return nil
}

// DeleteOrder removes an order by id. Ids are globally unique, so deletion
// is not year-scoped. Irreversible.
func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM orders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete order: rows affected: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Entity: "order", Key: fmt.Sprintf("id %d", id)}
	}
	return nil
}

// ListOrders returns every order in primary-key order.
func (s *Store) ListOrders(ctx context.Context) ([]model.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

func scanOrder(row rowScanner) (model.Order, error) {
	var (
		o      model.Order
		serial nullInt
		opt    [9]nullStr
	)
	err := row.Scan(
		&o.ID,
		&serial,
		&o.CustomerName,
		&opt[0], // phone_number
		&o.FormNo,
		&opt[1], // order_date
		&opt[2], // item_ordered
		&opt[3], // image_path
		&opt[4], // customer_delivery_date
		&opt[5], // worker_delivery_date
		&opt[6], // issued_to
		&opt[7], // order_status
		&opt[8], // financial_year
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Order{}, err
		}
		return model.Order{}, fmt.Errorf("scan order: %w", err)
	}

	o.SerialNo = serial.Int64
	o.Phone = opt[0].String
	o.OrderDate = opt[1].String
	o.Item = opt[2].String
	o.ImagePath = opt[3].String
	o.CustomerDeliveryDate = opt[4].String
	o.WorkerDeliveryDate = opt[5].String
	o.IssuedTo = opt[6].String
	o.Status = model.Status(opt[7].String)
	o.FinancialYear = opt[8].String
	return o, nil
}
