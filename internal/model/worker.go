package model

// Worker is a craftsman profile. Name is the unique key; orders reference it
// by plain text (see Order.IssuedTo). Workers are append-only: the core
// exposes no update or delete for them.
type Worker struct {
	ID          int64
	SerialNo    int64
	Name        string
	Alias       string
	CompanyName string
	Address     string
	WorkType    string
	Contact     string
}
