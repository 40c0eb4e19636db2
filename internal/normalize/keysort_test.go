package normalize

import (
	"fmt"
	"sort"
	"testing"

	"wfsort/internal/document"
)

// assertKeysSorted walks the tree and fails on any object whose keys are out
// of ascending order, at any depth.
func assertKeysSorted(t *testing.T, value interface{}, path string) {
	t.Helper()
	switch v := value.(type) {
	case *document.Object:
		keys := v.Keys()
		if !sort.StringsAreSorted(keys) {
			t.Errorf("keys at %s are not sorted: %v", path, keys)
		}
		for _, key := range keys {
			child, _ := v.Get(key)
			assertKeysSorted(t, child, path+"."+key)
		}
	case []interface{}:
		for i, child := range v {
			assertKeysSorted(t, child, fmt.Sprintf("%s[%d]", path, i))
		}
	}
}

func TestSortKeysRecursive(t *testing.T) {
	doc := parseDoc(t, `{
		"zebra": 1,
		"apple": {"y":1,"x":{"b":2,"a":3}},
		"list": [{"d":1,"c":[{"f":1,"e":2}]}, "scalar", 7]
	}`)

	SortKeys(doc)
	assertKeysSorted(t, doc, "$")

	obj := doc.(*document.Object)
	want := []string{"apple", "list", "zebra"}
	for i, key := range obj.Keys() {
		if key != want[i] {
			t.Errorf("top-level key %d = %q, want %q", i, key, want[i])
		}
	}
}

func TestSortKeysPreservesArrayOrder(t *testing.T) {
	doc := parseDoc(t, `["c","a","b",{"z":1,"a":2}]`)
	SortKeys(doc)

	arr := doc.([]interface{})
	if arr[0] != "c" || arr[1] != "a" || arr[2] != "b" {
		t.Errorf("array element order changed: %v", arr[:3])
	}
	assertKeysSorted(t, arr[3], "$[3]")
}

func TestSortKeysScalarsPassThrough(t *testing.T) {
	for _, src := range []string{`"s"`, `12.5`, `true`, `null`} {
		doc := parseDoc(t, src)
		if got := SortKeys(doc); encodeDoc(t, got) != encodeDoc(t, parseDoc(t, src)) {
			t.Errorf("SortKeys(%s) modified a scalar", src)
		}
	}
}

func TestNormalizeKeySortInvariant(t *testing.T) {
	// The invariant holds over the whole normalized document, including
	// entity objects nested inside collections.
	src := `[
		{"zz":1,"id":"g","items":[{"name":"n","meta":{"q":1,"p":{"z":0,"y":1}}}],
		 "dependencies":[{"workflowItem":"w","name":"n","dependencyType":"t"}]}
	]`
	doc := New(Options{}).Normalize(parseDoc(t, src))
	assertKeysSorted(t, doc, "$")
}
