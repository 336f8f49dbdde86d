package models

// Todo is a task item owned by exactly one user. Timestamp is an opaque
// client-supplied string, stored and returned verbatim.
type Todo struct {
	ID        int64
	Title     string
	Completed bool
	Timestamp string
	OwnerID   int64
}
