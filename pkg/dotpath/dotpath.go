// Package dotpath walks nested map documents by dot-separated field paths.
package dotpath

import "strings"

// Resolve walks fields along the dot-separated path and returns the value at
// its end. A missing segment, or a non-map value while segments remain,
// resolves to (nil, false) rather than an error.
func Resolve(fields map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	segments := strings.Split(path, ".")

	var current any = fields

	for _, segment := range segments {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// Set writes value at the dot-separated path, creating intermediate nested
// maps as needed. An intermediate segment holding a non-map value is
// replaced by a map; sibling fields are left untouched.
func Set(fields map[string]any, path string, value any) {
	if path == "" || fields == nil {
		return
	}

	segments := strings.Split(path, ".")
	node := fields

	for _, segment := range segments[:len(segments)-1] {
		child, ok := node[segment].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[segment] = child
		}

		node = child
	}

	node[segments[len(segments)-1]] = value
}
