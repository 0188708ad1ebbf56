package store

// String returns a pointer to s, for building patches.
func String(s string) *string {
	return &s
}

// field binds a serialized key to one string field of a criteria record.
type field[T any] struct {
	key string
	ref func(*T) *string
}

// fields is the ordered field list of a criteria record.
type fields[T any] []field[T]

// all returns every field, empty ones included.
func (fs fields[T]) all(v T) map[string]string {
	out := make(map[string]string, len(fs))
	for _, f := range fs {
		out[f.key] = *f.ref(&v)
	}
	return out
}

// nonEmpty returns only the fields holding a value.
func (fs fields[T]) nonEmpty(v T) map[string]string {
	out := make(map[string]string, len(fs))
	for _, f := range fs {
		if val := *f.ref(&v); val != "" {
			out[f.key] = val
		}
	}
	return out
}

// merge overwrites the fields present in patch. Nil entries and unknown
// keys are ignored.
func (fs fields[T]) merge(v T, patch map[string]*string) T {
	for _, f := range fs {
		if val, ok := patch[f.key]; ok && val != nil {
			*f.ref(&v) = *val
		}
	}
	return v
}

// ordered returns the non-empty values in field order.
func (fs fields[T]) ordered(v T) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		if val := *f.ref(&v); val != "" {
			out = append(out, val)
		}
	}
	return out
}
