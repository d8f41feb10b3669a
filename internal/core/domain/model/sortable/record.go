package sortable

// Record is anything the engine can read attributes from. Implementations
// return ok=false for attributes the record type does not carry and may return
// (nil, true) for a carried but unset attribute.
type Record interface {
	Attribute(name string) (any, bool)
}

// Attributes is a Record backed by a plain map. Storage adapters return rows as
// Attributes.
type Attributes map[string]any

// Attribute implements Record.
func (a Attributes) Attribute(name string) (any, bool) {
	v, ok := a[name]
	return v, ok
}

// Clone returns a shallow copy; values are scalars.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Entry is one stored record as seen by the engine.
type Entry struct {
	Key      any
	Position int
	Record   Record
}

// Filter selects stored records. Empty Keys and empty Restrictions select everything.
type Filter struct {
	Keys         []any
	Restrictions Restrictions
	// ForUpdate asks the adapter to lock selected rows until the transaction ends.
	ForUpdate bool
}
