// Package store provides SQLite-backed persistence for the order desk.
//
// It owns the three tables of the system:
//   - orders: the order ledger, keyed by a globally unique order-form number
//     and partitioned by financial year
//   - workers: the append-only worker directory, keyed by unique name
//   - settings: process-wide key/value configuration
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON (the worker reference on orders is deliberately soft,
//     but the pragma is applied uniformly)
//
// Schema evolution is additive only: Open creates missing tables and adds
// missing columns, never rewrites existing data. Every operation is a single
// short-lived statement or transaction; no locks are held across calls.
//
// Serial numbers are allocated inside the same transaction as the insert they
// number, so two concurrent creations cannot observe the same "next" value.
// The standalone preview in serial.go keeps the advisory read-only variant
// for the presentation layer.
package store
