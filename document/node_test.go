package document

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestObject_GetLastDuplicateWins(t *testing.T) {
	n := NewObject([]string{"a", "b", "a"}, []*Node{NewString("x"), NewBool(true), NewString("y")})
	v, ok := n.Get("a")
	if !ok || v.Text() != "y" {
		t.Fatalf("expected last duplicate, got %v %v", v, ok)
	}
	if _, ok := n.Get("missing"); ok {
		t.Fatalf("expected missing key")
	}
	if got := n.Materialize().(map[string]any)["a"]; got != "y" {
		t.Fatalf("materialize dup: %v", got)
	}
}

func TestObject_IndexedLookup(t *testing.T) {
	var keys []string
	var vals []*Node
	for i := 0; i < 20; i++ {
		keys = append(keys, "k"+strconv.Itoa(i))
		vals = append(vals, NewNumber(strconv.Itoa(i), nil))
	}
	n := NewObject(keys, vals)
	v, ok := n.Get("k17")
	if !ok {
		t.Fatalf("k17 not found")
	}
	if v.Value() != json.Number("17") {
		t.Fatalf("unexpected value %v", v.Value())
	}
}

func TestMembersAndElements_Order(t *testing.T) {
	n := NewObject([]string{"z", "a"}, []*Node{Null(), NewArray(NewString("p"), NewString("q"))})
	var seen []string
	for k := range n.Members() {
		seen = append(seen, k)
	}
	if diff := cmp.Diff([]string{"z", "a"}, seen); diff != "" {
		t.Fatalf("members order (-want +got):\n%s", diff)
	}
	arr, _ := n.Get("a")
	var idx []int
	for i, e := range arr.Elements() {
		idx = append(idx, i)
		if !e.IsScalar() {
			t.Fatalf("expected scalar element")
		}
	}
	if diff := cmp.Diff([]int{0, 1}, idx); diff != "" {
		t.Fatalf("elements (-want +got):\n%s", diff)
	}
}

func TestMaterialize_Nested(t *testing.T) {
	n, err := FromValue(map[string]any{
		"s":   "v",
		"arr": []any{json.Number("1"), nil, true},
		"obj": map[string]any{"x": 1.5},
	})
	if err != nil {
		t.Fatalf("from value: %v", err)
	}
	want := map[string]any{
		"s":   "v",
		"arr": []any{json.Number("1"), nil, true},
		"obj": map[string]any{"x": 1.5},
	}
	if diff := cmp.Diff(want, n.Materialize()); diff != "" {
		t.Fatalf("materialize (-want +got):\n%s", diff)
	}
}

func TestMaterialize_EmptyArrayIsNotNil(t *testing.T) {
	got := NewArray().Materialize()
	arr, ok := got.([]any)
	if !ok || arr == nil {
		t.Fatalf("expected non-nil empty slice, got %#v", got)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindNull: "null", KindBool: "boolean", KindNumber: "number",
		KindString: "string", KindObject: "object", KindArray: "array",
	}
	for k, want := range cases {
		if k.String() != want {
			t.Fatalf("kind %d: want %s got %s", k, want, k.String())
		}
	}
}

func TestFromValue_Unsupported(t *testing.T) {
	if _, err := FromValue(struct{}{}); err == nil {
		t.Fatalf("expected error for struct value")
	}
}
