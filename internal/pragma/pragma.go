// Package pragma records `#pragma name` and `#pragma name(value)`
// directives from kernel sources. The recorder keeps every occurrence in
// source order; duplicate names are allowed and the first occurrence wins
// on lookup.
package pragma

import "slate/internal/source"

// Pragma is one recorded directive. Value is empty for the bare form.
type Pragma struct {
	Name  string
	Value string
	Span  source.Span
}

// Recorder accumulates pragmas for one compilation unit.
type Recorder struct {
	pragmas []Pragma
	index   map[string]int
}

func NewRecorder() *Recorder {
	return &Recorder{index: make(map[string]int)}
}

// Record appends a pragma. The index keeps the first occurrence of a name.
func (r *Recorder) Record(p Pragma) {
	if _, ok := r.index[p.Name]; !ok {
		r.index[p.Name] = len(r.pragmas)
	}
	r.pragmas = append(r.pragmas, p)
}

// All returns the recorded pragmas in source order.
func (r *Recorder) All() []Pragma {
	return r.pragmas
}

// Lookup returns the value of the first pragma with the given name.
func (r *Recorder) Lookup(name string) (string, bool) {
	i, ok := r.index[name]
	if !ok {
		return "", false
	}
	return r.pragmas[i].Value, true
}

// Len returns the number of recorded pragmas.
func (r *Recorder) Len() int {
	return len(r.pragmas)
}
