package builder

// Params is the ordered, append-only parameter list of one query-build session.
// Every deferred builder appends exactly the values its placeholders consume, in the
// order the placeholders appear in the returned fragment.
//
// Params is not safe for concurrent use. Build each query on a single goroutine and
// give separate queries separate Params.
type Params struct {
	values []any
}

// NewParams creates a parameter list seeded with initial values.
func NewParams(initial ...any) *Params {
	p := &Params{values: make([]any, 0, len(initial))}
	p.values = append(p.values, initial...)
	return p
}

// Add appends values in order. A nil list accepts an empty Add, so fragments that
// render without tokens can be built with nil params; appending values to nil panics.
func (p *Params) Add(values ...any) {
	if p == nil {
		if len(values) > 0 {
			panic("builder: Add called on nil *Params")
		}
		return
	}
	p.values = append(p.values, values...)
}

// Len returns the number of accumulated values.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.values)
}

// Values returns a copy of the accumulated values.
func (p *Params) Values() []any {
	if p == nil {
		return nil
	}
	out := make([]any, len(p.values))
	copy(out, p.values)
	return out
}

// Reset drops all accumulated values so the list can start a new session.
func (p *Params) Reset() {
	if p == nil {
		return
	}
	p.values = p.values[:0]
}
