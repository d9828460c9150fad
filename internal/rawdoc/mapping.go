package rawdoc

// Mapping is a decoded structured document with nil-safe navigation.
// A lookup through a missing or mis-typed step returns a zero value
// instead of panicking, mirroring how preparation utilities omit whole
// sections when they hold no data.
type Mapping map[string]any

// Get walks nested objects along path and returns the raw value at the
// end, or nil when any step is absent or not an object.
func (m Mapping) Get(path ...string) any {
	cur := m
	for i, key := range path {
		v, ok := cur[key]
		if !ok {
			return nil
		}
		if i == len(path)-1 {
			return v
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		cur = next
	}
	return nil
}

// Sub returns the nested object at path. Missing or mis-typed paths
// yield an empty Mapping so calls chain safely.
func (m Mapping) Sub(path ...string) Mapping {
	if len(path) == 0 {
		return m
	}
	obj, ok := m.Get(path...).(map[string]any)
	if !ok {
		return Mapping{}
	}
	return Mapping(obj)
}

// Items returns the array of objects at path. Non-object members are
// skipped; a missing or mis-typed path yields nil.
func (m Mapping) Items(path ...string) []Mapping {
	arr, ok := m.Get(path...).([]any)
	if !ok {
		return nil
	}
	out := make([]Mapping, 0, len(arr))
	for _, el := range arr {
		if obj, ok := el.(map[string]any); ok {
			out = append(out, Mapping(obj))
		}
	}
	return out
}
