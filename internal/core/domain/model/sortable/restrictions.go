package sortable

import (
	"sort"
	"strings"
)

// Restrictions maps each configured restriction attribute to the distinct
// values observed on a working set of records. Attributes keep their
// configured order; values keep first-seen order.
//
// The zero value restricts nothing. Use NewRestrictions (or Config.NewRestrictions)
// to get a set that can accumulate values via Pull.
type Restrictions struct {
	attrs  []string
	values map[string][]any
	seen   map[string]map[string]struct{}
}

// NewRestrictions returns an empty set that will collect values for attrs.
func NewRestrictions(attrs ...string) Restrictions {
	r := Restrictions{
		attrs:  append([]string(nil), attrs...),
		values: make(map[string][]any, len(attrs)),
		seen:   make(map[string]map[string]struct{}, len(attrs)),
	}
	for _, attr := range attrs {
		r.seen[attr] = make(map[string]struct{})
	}
	return r
}

// Pull adds the record's restriction attribute values. Attributes the record
// does not carry, or carries as nil, are skipped.
func (r *Restrictions) Pull(rec Record) *Restrictions {
	if rec == nil {
		return r
	}
	for _, attr := range r.attrs {
		v, ok := rec.Attribute(attr)
		if !ok || v == nil {
			continue
		}
		r.Add(attr, v)
	}
	return r
}

// Add records value for attr. Unknown attributes are appended to the set.
func (r *Restrictions) Add(attr string, value any) {
	if r.values == nil {
		r.values = make(map[string][]any)
		r.seen = make(map[string]map[string]struct{})
	}
	seen, known := r.seen[attr]
	if !known {
		r.attrs = append(r.attrs, attr)
		seen = make(map[string]struct{})
		r.seen[attr] = seen
	}
	k := CanonicalKey(value)
	if _, dup := seen[k]; dup {
		return
	}
	seen[k] = struct{}{}
	r.values[attr] = append(r.values[attr], value)
}

// Attributes returns the attributes that have at least one value.
func (r Restrictions) Attributes() []string {
	out := make([]string, 0, len(r.attrs))
	for _, attr := range r.attrs {
		if len(r.values[attr]) > 0 {
			out = append(out, attr)
		}
	}
	return out
}

// Values returns the collected values for attr.
func (r Restrictions) Values(attr string) []any {
	return append([]any(nil), r.values[attr]...)
}

// IsEmpty reports whether the set restricts nothing (whole-table scope).
func (r Restrictions) IsEmpty() bool {
	return len(r.Attributes()) == 0
}

// Matches reports whether rec falls inside the scope: for every restricted
// attribute, the record's value is one of the collected values.
func (r Restrictions) Matches(rec Record) bool {
	for _, attr := range r.Attributes() {
		v, ok := rec.Attribute(attr)
		if !ok || v == nil {
			return false
		}
		if _, in := r.seen[attr][CanonicalKey(v)]; !in {
			return false
		}
	}
	return true
}

// Canonical renders the set deterministically, e.g. "category_id=[1,2]".
// Empty sets render as "*".
func (r Restrictions) Canonical() string {
	if r.IsEmpty() {
		return "*"
	}
	attrs := r.Attributes()
	parts := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		vals := make([]string, 0, len(r.values[attr]))
		for _, v := range r.values[attr] {
			vals = append(vals, CanonicalKey(v))
		}
		sort.Strings(vals)
		parts = append(parts, attr+"=["+strings.Join(vals, ",")+"]")
	}
	return strings.Join(parts, ";")
}

func (r Restrictions) String() string {
	return r.Canonical()
}

// PartitionKey identifies the ordering domain a record belongs to: the tuple
// of its values for attrs. Two records share an ordering domain iff their
// partition keys are equal.
func PartitionKey(rec Record, attrs []string) string {
	if len(attrs) == 0 {
		return "*"
	}
	var b strings.Builder
	for i, attr := range attrs {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(attr)
		b.WriteByte('=')
		if v, ok := rec.Attribute(attr); ok && v != nil {
			b.WriteString(CanonicalKey(v))
		} else {
			b.WriteString("<nil>")
		}
	}
	return b.String()
}
