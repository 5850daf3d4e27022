package swalk

import (
	"strconv"
	"strings"
)

// DefaultSeparator joins path segments in flattened keys unless a caller
// picks another one via FlattenSep or NestSep.
const DefaultSeparator = "."

// Flatten converts a nested value into its flattened form using the default
// separator. See FlattenSep.
func Flatten(value any) Document {
	return FlattenSep(value, DefaultSeparator)
}

// FlattenSep converts a nested value into a single-level Document whose keys
// are the paths to each scalar leaf, joined with sep. Keys appear in
// pre-order (depth first, field and element order preserved), so the result
// is deterministic for a given input.
//
// Empty documents and arrays contribute no entries: that information is lost
// and Nest cannot reconstruct them. Callers relying on empty containers must
// carry them out of band.
func FlattenSep(value any, sep string) Document {
	out := Document{}
	flattenInto(&out, "", value, sep)
	return out
}

func flattenInto(out *Document, prefix string, value any, sep string) {
	switch node := value.(type) {
	case Document:
		for _, e := range node {
			flattenInto(out, joinKey(prefix, e.Key, sep), e.Value, sep)
		}
	case Array:
		for i, elem := range node {
			flattenInto(out, joinKey(prefix, strconv.Itoa(i), sep), elem, sep)
		}
	default:
		*out = append(*out, Entry{Key: prefix, Value: value})
	}
}

func joinKey(prefix, segment, sep string) string {
	if prefix == "" {
		return segment
	}
	return prefix + sep + segment
}

// Nest rebuilds a nested value from a flattened Document using the default
// separator. See NestSep.
func Nest(flat Document) any {
	return NestSep(flat, DefaultSeparator)
}

// NestSep is the inverse of FlattenSep for values without empty containers.
// Each key is split on sep into a path, expanded into a single-branch
// document holding the leaf value, and deep-merged into the accumulator in
// input order. When both sides of a merge hold a document under the same key
// the merge recurses; otherwise the incoming value overwrites, so exact key
// collisions are last-write-wins.
//
// Documents whose keys form the exact index run "0".."n-1" in order are
// lifted back into arrays afterwards, restoring sequences that FlattenSep
// encoded positionally. A genuine mapping with such keys is
// indistinguishable from a flattened sequence and lifts too.
func NestSep(flat Document, sep string) any {
	acc := Document{}
	for _, e := range flat {
		acc = merge(acc, branch(strings.Split(e.Key, sep), e.Value))
	}
	return liftArrays(acc)
}

// branch builds the single-branch document for one flattened entry.
func branch(path []string, value any) Document {
	node := value
	for i := len(path) - 1; i >= 1; i-- {
		node = Document{{Key: path[i], Value: node}}
	}
	return Document{{Key: path[0], Value: node}}
}

// merge deep-merges src into dst. Documents merge recursively; any other
// pairing overwrites with the incoming value.
func merge(dst, src Document) Document {
	for _, e := range src {
		i := dst.Index(e.Key)
		if i < 0 {
			dst = append(dst, e)
			continue
		}
		existing, isDoc := dst[i].Value.(Document)
		incoming, srcIsDoc := e.Value.(Document)
		if isDoc && srcIsDoc {
			dst[i].Value = merge(existing, incoming)
		} else {
			dst[i].Value = e.Value
		}
	}
	return dst
}

// liftArrays recursively converts documents keyed by a full in-order index
// run back into arrays.
func liftArrays(value any) any {
	doc, ok := value.(Document)
	if !ok {
		return value
	}
	lifted := make(Document, len(doc))
	indexed := len(doc) > 0
	for i, e := range doc {
		lifted[i] = Entry{Key: e.Key, Value: liftArrays(e.Value)}
		if indexed && e.Key != strconv.Itoa(i) {
			indexed = false
		}
	}
	if !indexed {
		return lifted
	}
	arr := make(Array, len(lifted))
	for i, e := range lifted {
		arr[i] = e.Value
	}
	return arr
}
