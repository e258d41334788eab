package store

import (
	"context"
	"fmt"

	"orderdesk/internal/model"
)

// OnWorkerCreated registers fn to run after every successful worker
// creation. The order desk uses it to refresh worker pickers; hooks run
// synchronously on the creating call, after commit.
func (s *Store) OnWorkerCreated(fn func(name string)) {
	s.workerHooks = append(s.workerHooks, fn)
}

// CreateWorker inserts a worker profile and returns its id.
//
// Name is required and unique; a clash returns DuplicateError. The serial
// number is allocated inside the insert transaction. Workers are append-only:
// there is no update or delete.
func (s *Store) CreateWorker(ctx context.Context, w model.Worker) (int64, error) {
	name := canon(w.Name)
	if name == "" {
		return 0, &MissingFieldError{Field: "name"}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("create worker: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	serial, err := nextSerialTx(ctx, tx, "workers")
	if err != nil {
		return 0, fmt.Errorf("create worker: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO workers
		(serial_no, name, alias, company_name, address, work_type, contact)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		serial,
		name,
		w.Alias,
		w.CompanyName,
		w.Address,
		w.WorkType,
		w.Contact,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, &DuplicateError{Entity: "worker", Key: name}
		}
		return 0, fmt.Errorf("create worker: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create worker: last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("create worker: commit: %w", err)
	}

	for _, hook := range s.workerHooks {
		hook(name)
	}

	return id, nil
}

// WorkerNames returns all worker names in insertion order, as consumed by
// the worker picker on the order intake screen.
func (s *Store) WorkerNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM workers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query worker names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan worker name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate worker names: %w", err)
	}

	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Workers returns all worker profiles in insertion order.
func (s *Store) Workers(ctx context.Context) ([]model.Worker, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, serial_no, name, alias, company_name, address, work_type, contact
		FROM workers
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query workers: %w", err)
	}
	defer rows.Close()

	var workers []model.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workers: %w", err)
	}

	if workers == nil {
		workers = []model.Worker{}
	}
	return workers, nil
}

func scanWorker(rows rowScanner) (model.Worker, error) {
	var (
		w      model.Worker
		serial nullInt
		opt    [5]nullStr
	)
	if err := rows.Scan(&w.ID, &serial, &w.Name, &opt[0], &opt[1], &opt[2], &opt[3], &opt[4]); err != nil {
		return model.Worker{}, fmt.Errorf("scan worker: %w", err)
	}
	w.SerialNo = serial.Int64
	w.Alias = opt[0].String
	w.CompanyName = opt[1].String
	w.Address = opt[2].String
	w.WorkType = opt[3].String
	w.Contact = opt[4].String
	return w, nil
}
