// Package nameid interns strings into dense integer ids so the rest of the
// runtime can compare identifiers, method names, and tokens by integer
// equality instead of string comparison.
package nameid

import "sync"

// ID is an interned name. Ids are stable for the lifetime of the process
// and are never reused.
type ID int64

const invalid = "[INVALID NAMEID]"

// Table is a bidirectional string<->ID interner. The zero value is not
// usable; construct one with New.
type Table struct {
	mu      sync.RWMutex
	byStr   map[string]ID
	byID    []string
	nextIdx int64
}

// New returns an empty, ready to use Table.
func New() *Table {
	return &Table{
		byStr: make(map[string]ID, 256),
	}
}

// Intern returns the ID for str, allocating a new one if str has not been
// seen before.
func (t *Table) Intern(str string) ID {
	t.mu.RLock()
	if id, ok := t.byStr[str]; ok {
		t.mu.RUnlock()
		return id
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.byStr[str]; ok {
		return id
	}
	id := ID(t.nextIdx)
	t.nextIdx++
	t.byStr[str] = id
	t.byID = append(t.byID, str)
	return id
}

// Lookup returns the string interned under id, and whether it exists.
func (t *Table) Lookup(id ID) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id < 0 || int64(id) >= int64(len(t.byID)) {
		return invalid, false
	}
	return t.byID[id], true
}

// String returns the interned string, or a sentinel if id is unknown.
// Convenient for error messages and debug output.
func (t *Table) String(id ID) string {
	s, ok := t.Lookup(id)
	if !ok {
		return invalid
	}
	return s
}

// Contains reports whether id has been allocated by this table.
func (t *Table) Contains(id ID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return id >= 0 && int64(id) < int64(len(t.byID))
}

// Len returns the number of interned names.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byID)
}
