package jpt

import (
	"fmt"
	"strings"

	"github.com/halimath/jwp/internal/ordered"
)

// flatEntry is one (path, leaf value) pair produced by flattening a claims
// tree, or consumed when rebuilding one.
type flatEntry struct {
	path  string
	value any
}

// flattenTree walks obj's top-level keys in insertion order, producing a
// depth-first ordered list of (path, value) pairs. A value is a leaf unless
// it is a JSON array, in which case flattening recurses by numeric index
// (nested arrays recurse further); a JSON object is always an atomic leaf,
// never decomposed into per-field paths.
func flattenTree(obj *ordered.Object) []flatEntry {
	var out []flatEntry
	for _, key := range obj.Keys() {
		v, _ := obj.Get(key)
		out = append(out, flattenValue(key, v)...)
	}
	return out
}

func flattenValue(path string, v any) []flatEntry {
	arr, ok := v.([]any)
	if !ok {
		return []flatEntry{{path: path, value: v}}
	}

	var out []flatEntry
	for i, elem := range arr {
		out = append(out, flattenValue(fmt.Sprintf("%s.%d", path, i), elem)...)
	}
	return out
}

// unflattenTree rebuilds a sparse *ordered.Object from entries. Every path
// segment, including array-index segments produced by flattenTree, becomes
// a string object key: a presentation revealing "items.0" but not "items.1"
// yields {"items": {"0": ...}}, a valid partial subtree rather than a
// reconstructed array, since the disclosed set may skip indices.
func unflattenTree(entries []flatEntry) *ordered.Object {
	root := ordered.NewObject()
	for _, e := range entries {
		setPath(root, strings.Split(e.path, "."), e.value)
	}
	return root
}

func setPath(obj *ordered.Object, segments []string, value any) {
	if len(segments) == 1 {
		obj.Set(segments[0], value)
		return
	}

	key := segments[0]
	child, _ := obj.Get(key)
	childObj, ok := child.(*ordered.Object)
	if !ok {
		childObj = ordered.NewObject()
	}

	setPath(childObj, segments[1:], value)
	obj.Set(key, childObj)
}
