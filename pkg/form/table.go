package form

import (
	"slices"
	"sync"
)

// Table is the append-only, ordered list of accepted records. It is safe for
// concurrent use.
type Table struct {
	mu      sync.RWMutex
	records []Record
}

func NewTable() *Table {
	return &Table{}
}

// Len returns the number of records.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}

// Records returns a copy of the records in insertion order.
func (t *Table) Records() []Record {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.records)
}

// Append builds a record with the next sequence number and stores it.
// The sequence number is Len()+1 at the time of insertion; build runs under
// the table lock so concurrent submits never share a number. Nothing is stored
// when build fails.
func (t *Table) Append(build func(seq int) (Record, error)) (Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, err := build(len(t.records) + 1)
	if err != nil {
		return Record{}, err
	}
	t.records = append(t.records, rec)
	return rec, nil
}
