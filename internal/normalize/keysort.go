package normalize

import (
	"wfsort/internal/document"
)

// SortKeys rewrites every object node in the tree so its keys appear in
// ascending byte-wise order, recursing through arrays element-wise. Array
// element order is preserved; scalars pass through unchanged. The tree is
// assumed acyclic (a plain deserialized document) and is mutated in place.
func SortKeys(value interface{}) interface{} {
	switch v := value.(type) {
	case *document.Object:
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			v.Set(key, SortKeys(child))
		}
		v.SortKeys()
		return v
	case []interface{}:
		for i := range v {
			v[i] = SortKeys(v[i])
		}
		return v
	default:
		return value
	}
}
