package variables

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scriptlang.variables'.
func tracer() tracing.Trace {
	return tracing.Select("scriptlang.variables")
}

// NullValue is the text rendered for a variable without a value.
const NullValue = "[null]"

// Lookup is read access to variables. Both the expression evaluator and
// the print statement only ever read variables.
type Lookup interface {
	Get(name string) (int64, bool)
}

// Store maps variable names to integer values. A key enters the store
// only by a successful assignment.
//
// Store is not safe for concurrent use. Statements execute one after
// another, and only the executing statement touches the store.
type Store struct {
	values map[string]int64
}

var _ Lookup = &Store{}

// NewStore creates an empty variable store.
func NewStore() *Store {
	return &Store{values: make(map[string]int64)}
}

// Get returns the value of a variable and true, or 0 and false if the
// variable has never been assigned.
func (s *Store) Get(name string) (int64, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Set assigns a value to a variable, overwriting a previous value.
func (s *Store) Set(name string, v int64) {
	if old, ok := s.values[name]; ok {
		tracer().P("var", name).Debugf("overwriting value %d", old)
	}
	s.values[name] = v
	tracer().P("var", name).Debugf("= %d", v)
}

// Len returns the number of variables with a value.
func (s *Store) Len() int {
	return len(s.values)
}

// Reset discards all variables.
func (s *Store) Reset() {
	tracer().Debugf("resetting store with %d variables", len(s.values))
	s.values = make(map[string]int64)
}

// Names returns the names of all assigned variables, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Each calls f for every variable, in order of the variable names.
func (s *Store) Each(f func(name string, v int64)) {
	for _, name := range s.Names() {
		f(name, s.values[name])
	}
}

// Snapshot returns a copy of the current variable bindings.
func (s *Store) Snapshot() map[string]int64 {
	m := make(map[string]int64, len(s.values))
	for k, v := range s.values {
		m[k] = v
	}
	return m
}

// Show writes one line `name = value` per variable to b, sorted by name.
// If b is nil, a new buffer is allocated.
func (s *Store) Show(b *bytes.Buffer) *bytes.Buffer {
	if b == nil {
		b = &bytes.Buffer{}
	}
	s.Each(func(name string, v int64) {
		fmt.Fprintf(b, "%s = %d\n", name, v)
	})
	return b
}

// ValueString renders the result of a variable lookup: the decimal value,
// or NullValue for a variable without a value.
func ValueString(v int64, ok bool) string {
	if !ok {
		return NullValue
	}
	return strconv.FormatInt(v, 10)
}
