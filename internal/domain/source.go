package domain

// SourceInfo records how an entity was read from its stored document.
// It is adapter metadata, not part of the entity's value: two entities that
// differ only in SourceInfo are equal.
type SourceInfo struct {
	// Fields maps a canonical field name to the key the document used for it.
	Fields map[string]string
	// Synthesized holds values that were generated because the document had none.
	Synthesized map[string]any
	// Clamped holds fields whose stored value was corrected on read.
	Clamped map[string]Clamp
	// Coerced holds fields whose stored value had to be converted to another type.
	Coerced map[string]Clamp
	// Extra holds document fields no mapping consumed. They are written back verbatim.
	Extra map[string]any
	// Nested holds unmapped keys of nested objects, keyed by their path.
	Nested map[string]map[string]any
}

// Clamp is one corrected field: the raw stored value and the value the entity got.
type Clamp struct {
	Raw     any
	Applied any
}

// NewSourceInfo returns an empty SourceInfo with all maps allocated.
func NewSourceInfo() *SourceInfo {
	return &SourceInfo{
		Fields:      map[string]string{},
		Synthesized: map[string]any{},
		Clamped:     map[string]Clamp{},
		Coerced:     map[string]Clamp{},
		Extra:       map[string]any{},
		Nested:      map[string]map[string]any{},
	}
}

// FieldName returns the key the document used for canonical, or canonical itself.
func (s *SourceInfo) FieldName(canonical string) string {
	if s != nil {
		if name, ok := s.Fields[canonical]; ok {
			return name
		}
	}
	return canonical
}

// HasField reports whether the document carried the canonical field under any name.
func (s *SourceInfo) HasField(canonical string) bool {
	if s == nil {
		return false
	}
	_, ok := s.Fields[canonical]
	return ok
}

// Clone returns a deep copy.
func (s *SourceInfo) Clone() *SourceInfo {
	if s == nil {
		return nil
	}
	out := NewSourceInfo()
	for k, v := range s.Fields {
		out.Fields[k] = v
	}
	for k, v := range s.Synthesized {
		out.Synthesized[k] = CloneValue(v)
	}
	for k, v := range s.Clamped {
		out.Clamped[k] = Clamp{Raw: CloneValue(v.Raw), Applied: CloneValue(v.Applied)}
	}
	for k, v := range s.Coerced {
		out.Coerced[k] = Clamp{Raw: CloneValue(v.Raw), Applied: CloneValue(v.Applied)}
	}
	for k, v := range s.Extra {
		out.Extra[k] = CloneValue(v)
	}
	for k, v := range s.Nested {
		out.Nested[k] = CloneMap(v)
	}
	return out
}

// CloneValue deep-copies the map and slice shapes found in documents.
// Other values are returned as is.
func CloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = CloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// CloneMap deep-copies a document-shaped map. A nil map stays nil.
func CloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = CloneValue(v)
	}
	return out
}
