package jpt

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/halimath/jwp/internal/ordered"
)

func mustParseObject(t *testing.T, data string) *ordered.Object {
	t.Helper()
	v, err := ordered.Parse([]byte(data))
	if err != nil {
		t.Fatalf("parsing fixture: %s", err)
	}
	obj, ok := v.(*ordered.Object)
	if !ok {
		t.Fatalf("fixture did not parse to an object: %T", v)
	}
	return obj
}

func pathsOf(entries []flatEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.path
	}
	return out
}

func TestFlattenTree_FlatObject(t *testing.T) {
	obj := mustParseObject(t, `{"name":"Alice","age":30}`)

	entries := flattenTree(obj)

	if diff := deep.Equal(pathsOf(entries), []string{"name", "age"}); diff != nil {
		t.Errorf("unexpected paths: %v", diff)
	}
}

func TestFlattenTree_ArrayRecursesByIndex(t *testing.T) {
	obj := mustParseObject(t, `{"roles":["admin","editor"]}`)

	entries := flattenTree(obj)

	if diff := deep.Equal(pathsOf(entries), []string{"roles.0", "roles.1"}); diff != nil {
		t.Errorf("unexpected paths: %v", diff)
	}
}

func TestFlattenTree_NestedArrayRecurses(t *testing.T) {
	obj := mustParseObject(t, `{"matrix":[[1,2],[3,4]]}`)

	entries := flattenTree(obj)

	want := []string{"matrix.0.0", "matrix.0.1", "matrix.1.0", "matrix.1.1"}
	if diff := deep.Equal(pathsOf(entries), want); diff != nil {
		t.Errorf("unexpected paths: %v", diff)
	}
}

func TestFlattenTree_NestedObjectIsAtomic(t *testing.T) {
	obj := mustParseObject(t, `{"address":{"city":"Berlin","zip":"10115"},"name":"Alice"}`)

	entries := flattenTree(obj)

	if diff := deep.Equal(pathsOf(entries), []string{"address", "name"}); diff != nil {
		t.Errorf("unexpected paths: %v", diff)
	}

	if _, ok := entries[0].value.(*ordered.Object); !ok {
		t.Errorf("address leaf should be an *ordered.Object, got %T", entries[0].value)
	}
}

func TestFlattenTree_EmptyObject(t *testing.T) {
	obj := mustParseObject(t, `{}`)

	entries := flattenTree(obj)
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestUnflattenTree_FlatPaths(t *testing.T) {
	entries := []flatEntry{
		{path: "name", value: "Alice"},
	}

	got := unflattenTree(entries)

	v, ok := got.Get("name")
	if !ok || v != "Alice" {
		t.Errorf("expected name=Alice, got %v, %v", v, ok)
	}
}

func TestUnflattenTree_ArrayIndexPathsBecomeObjectKeys(t *testing.T) {
	entries := []flatEntry{
		{path: "roles.0", value: "admin"},
	}

	got := unflattenTree(entries)

	v, ok := got.Get("roles")
	if !ok {
		t.Fatalf("expected roles key to be present")
	}

	sub, ok := v.(*ordered.Object)
	if !ok {
		t.Fatalf("expected roles to be an *ordered.Object, got %T", v)
	}

	zero, ok := sub.Get("0")
	if !ok || zero != "admin" {
		t.Errorf("expected roles.0=admin, got %v, %v", zero, ok)
	}
}

func TestUnflattenTree_SparseDisclosureOmitsUndisclosedPaths(t *testing.T) {
	entries := []flatEntry{
		{path: "name", value: "Alice"},
	}

	got := unflattenTree(entries)

	if _, ok := got.Get("age"); ok {
		t.Errorf("expected age to be absent from a sparse reconstruction")
	}
	if got.Len() != 1 {
		t.Errorf("expected exactly one key, got %d", got.Len())
	}
}
