package calculation

import "sort"

// VariableTable maps variable names to values. The zero value is not usable;
// create tables with NewVariableTable. It is not safe to use a VariableTable
// concurrently.
type VariableTable struct {
	names map[string]float64
}

// NewVariableTable creates an empty variable table.
func NewVariableTable() *VariableTable {
	return &VariableTable{names: make(map[string]float64)}
}

// Set sets the value of a variable. Returns t for chaining.
func (t *VariableTable) Set(name string, value float64) *VariableTable {
	t.names[name] = value
	return t
}

// Get returns the value of a variable, or zero if it has not been set. A nil
// table has no variables set.
func (t *VariableTable) Get(name string) float64 {
	if t == nil {
		return 0
	}
	return t.names[name]
}

// Lookup returns the value of a variable and whether it has been set.
func (t *VariableTable) Lookup(name string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	v, ok := t.names[name]
	return v, ok
}

// Reset removes all variables.
func (t *VariableTable) Reset() {
	clear(t.names)
}

// Len returns the number of variables that have been set.
func (t *VariableTable) Len() int {
	return len(t.names)
}

// Names returns the names of all set variables in sorted order.
func (t *VariableTable) Names() []string {
	r := make([]string, 0, len(t.names))
	for k := range t.names {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}
