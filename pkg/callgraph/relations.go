package callgraph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
)

// Relations is the extractor's output: an insertion-ordered mapping from a
// caller identifier to the ordered list of identifiers it calls.
//
// Iteration order is observable in the serialized graph, so Relations keeps
// callers in the order they were first added and each callee list in the
// order given. A caller may map to zero callees.
type Relations struct {
	callers []string
	callees map[string][]string
}

// NewRelations creates an empty Relations.
func NewRelations() *Relations {
	return &Relations{callees: make(map[string][]string)}
}

// Add appends callees to caller's list. A caller seen for the first time is
// placed after all existing callers; a known caller keeps its position.
func (r *Relations) Add(caller string, callees ...string) {
	if r.callees == nil {
		r.callees = make(map[string][]string)
	}
	existing, ok := r.callees[caller]
	if !ok {
		r.callers = append(r.callers, caller)
		existing = []string{}
	}
	r.callees[caller] = append(existing, callees...)
}

// Callers returns a copy of the caller keys in insertion order.
func (r *Relations) Callers() []string { return slices.Clone(r.callers) }

// Callees returns the callees of caller. The returned slice should not be
// modified.
func (r *Relations) Callees(caller string) []string { return r.callees[caller] }

// Len returns the number of callers.
func (r *Relations) Len() int { return len(r.callers) }

// Pairs returns the total number of (caller, callee) pairs, duplicates
// included.
func (r *Relations) Pairs() int {
	n := 0
	for _, c := range r.callees {
		n += len(c)
	}
	return n
}

// All iterates over (caller, callees) entries in insertion order.
func (r *Relations) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for _, caller := range r.callers {
			if !yield(caller, r.callees[caller]) {
				return
			}
		}
	}
}

// MarshalJSON encodes r as a JSON object with keys in insertion order.
func (r *Relations) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, caller := range r.callers {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(caller)
		if err != nil {
			return nil, err
		}
		callees := r.callees[caller]
		if callees == nil {
			callees = []string{}
		}
		val, err := json.Marshal(callees)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of caller -> [callee...] keeping the
// document's key order. Repeated keys are merged into the first occurrence.
func (r *Relations) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode relations: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode relations: expected object, got %v", tok)
	}

	out := NewRelations()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode relations: %w", err)
		}
		caller, ok := tok.(string)
		if !ok {
			return fmt.Errorf("decode relations: expected caller key, got %v", tok)
		}
		var callees []string
		if err := dec.Decode(&callees); err != nil {
			return fmt.Errorf("decode callees of %q: %w", caller, err)
		}
		out.Add(caller, callees...)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode relations: %w", err)
	}

	*r = *out
	return nil
}
