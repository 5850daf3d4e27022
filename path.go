package swalk

import "reflect"

// Get walks path through a nested value and returns the node it lands on.
// The second result is false when the path does not resolve; a missing path
// is an expected outcome, not an error.
//
// Walking rules, per segment:
//   - a Document descends into the named field if present;
//   - an Array is only addressable by a trailing literal "0" segment, which
//     returns the whole array, not its first element;
//   - anything else fails the walk.
func Get(value any, path Path) (any, bool) {
	cur := value
	for i, seg := range path {
		switch node := cur.(type) {
		case Document:
			v, ok := node.Get(seg)
			if !ok {
				return nil, false
			}
			cur = v
		case Array:
			if seg == "0" && i == len(path)-1 {
				return node, true
			}
			return nil, false
		default:
			return nil, false
		}
	}
	return cur, true
}

// Set replaces the node at path and returns the resulting value; callers
// must treat the return value as the source of truth since documents may
// reallocate. Documents are mutated in place where possible.
//
// Rules, in precedence order:
//  1. A two-segment path whose second segment is "0" into a Document, with an
//     Array replacement, replaces the first segment's field with the array
//     wholesale (creating the field when absent).
//  2. A one-segment path "0" on an Array with an Array replacement replaces
//     the whole node. A one-segment path on a Document overwrites the field
//     only when the replacement's kind matches the existing value's kind;
//     a mismatched overwrite is silently ignored to keep the tree's shape.
//  3. Otherwise, when the first segment names an existing Document field, the
//     walk recurses into it with the remaining path.
//  4. A path that does not resolve leaves the value unchanged.
func Set(value any, path Path, newValue any) any {
	if len(path) == 0 {
		return value
	}

	if len(path) == 2 && path[1] == "0" {
		if doc, ok := value.(Document); ok {
			if arr, ok := newValue.(Array); ok {
				return doc.Set(path[0], arr)
			}
		}
	}

	if len(path) == 1 {
		if _, ok := value.(Array); ok && path[0] == "0" {
			if repl, ok := newValue.(Array); ok {
				return repl
			}
			return value
		}
		if doc, ok := value.(Document); ok {
			i := doc.Index(path[0])
			if i >= 0 && sameKind(doc[i].Value, newValue) {
				doc[i].Value = newValue
			}
			return doc
		}
		return value
	}

	if doc, ok := value.(Document); ok {
		if i := doc.Index(path[0]); i >= 0 {
			doc[i].Value = Set(doc[i].Value, path[1:], newValue)
			return doc
		}
	}
	return value
}

// valueKind is the tagged discriminant Set compares instead of raw runtime
// type identity: mapping, sequence, or one scalar kind.
type valueKind int

const (
	kindNull valueKind = iota
	kindDocument
	kindArray
	kindString
	kindBool
	kindNumber
	kindOther
)

func kindOf(v any) valueKind {
	switch v.(type) {
	case nil:
		return kindNull
	case Document:
		return kindDocument
	case Array:
		return kindArray
	case string:
		return kindString
	case bool:
		return kindBool
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return kindNumber
	}
	return kindOther
}

func sameKind(existing, replacement any) bool {
	a, b := kindOf(existing), kindOf(replacement)
	if a != b {
		return false
	}
	if a == kindOther {
		// Values outside the core model (time.Time from a decoder, say)
		// match on dynamic type identity.
		return reflect.TypeOf(existing) == reflect.TypeOf(replacement)
	}
	return true
}
