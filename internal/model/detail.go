package model

// ValueSeparator joins multiple values recorded under the same detail
// label, in row order.
const ValueSeparator = "; "

// SchemeDetail is the key/value record folded from a scheme's detail
// page table. Keys keep their first-seen order; a key recorded more
// than once accumulates its values joined with ValueSeparator.
//
// The detail page schema varies by scheme, so absence of a key is a
// normal, non-error case. Consumers must check the second return value
// of Get rather than assume a label is present.
type SchemeDetail struct {
	keys   []string
	values map[string]string
}

// NewSchemeDetail creates an empty SchemeDetail.
func NewSchemeDetail() *SchemeDetail {
	return &SchemeDetail{
		keys:   make([]string, 0),
		values: make(map[string]string),
	}
}

// Append records a value for the given key. The first value for a key
// establishes its position; later non-empty values are joined onto the
// existing entry with ValueSeparator. Empty follow-up values are
// dropped so continuation rows without content do not produce dangling
// separators.
func (d *SchemeDetail) Append(key, value string) {
	existing, ok := d.values[key]
	if !ok {
		d.keys = append(d.keys, key)
		d.values[key] = value
		return
	}
	if value == "" {
		return
	}
	if existing == "" {
		d.values[key] = value
		return
	}
	d.values[key] = existing + ValueSeparator + value
}

// Get returns the value for key and whether the key is present.
func (d *SchemeDetail) Get(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	v, ok := d.values[key]
	return v, ok
}

// Keys returns the keys in first-seen order.
func (d *SchemeDetail) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

// Len returns the number of distinct keys.
func (d *SchemeDetail) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}
