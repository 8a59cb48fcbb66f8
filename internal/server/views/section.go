package views

import (
	"encoding/json"
	"iter"
)

// Section is one record kind of an aggregated history. Records are kept as
// loaded and rendered only while iterating. A failed section has Err set
// and no records.
type Section[R, V any] struct {
	Err     error
	records []R
	render  func(R) V
}

func NewSection[R, V any](records []R, render func(R) V) Section[R, V] {
	return Section[R, V]{records: records, render: render}
}

func FailedSection[R, V any](err error) Section[R, V] {
	return Section[R, V]{Err: err}
}

func (s Section[R, V]) Failed() bool { return s.Err != nil }

func (s Section[R, V]) Len() int { return len(s.records) }

// Items yields the rendered records in stored order.
func (s Section[R, V]) Items() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, r := range s.records {
			if !yield(s.render(r)) {
				return
			}
		}
	}
}

// Collect renders every record. The result is never nil.
func (s Section[R, V]) Collect() []V {
	out := make([]V, 0, len(s.records))
	for v := range s.Items() {
		out = append(out, v)
	}
	return out
}

type sectionJSON[V any] struct {
	Items []V    `json:"items"`
	Error string `json:"error,omitempty"`
}

// MarshalJSON writes {"items": [...]} or, for a failed section,
// {"items": [], "error": "..."}.
func (s Section[R, V]) MarshalJSON() ([]byte, error) {
	out := sectionJSON[V]{Items: s.Collect()}
	if s.Err != nil {
		out.Error = s.Err.Error()
	}
	return json.Marshal(out)
}
