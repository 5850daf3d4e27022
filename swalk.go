// Package swalk is a toolkit for nested structures: it parses compact
// struct/array type signatures (struct<a:string,b:array<int>>) into a
// structure tree, converts between nested values and their flattened
// dotted-path form, and reads or writes values at arbitrary paths.
//
// Mapping nodes are ordered: field order is insertion order and survives
// parse, flatten and nest round-trips.
package swalk

// Document represents a mapping node, defined as an ordered collection of
// key-value pairs. Each entry in the document is represented by an Entry.
type Document []Entry

// Array represents a sequence node, defined as a slice of values of any type.
type Array []any

// Entry represents a single entry in a document. It consists of a string key
// and an associated value of any type.
type Entry struct {
	Key   string
	Value any
}

// Path is an ordered sequence of segments locating one node inside a nested
// value. Segments are field names; the literal "0" addresses a sequence's
// element slot (see Get and Set for the exact rules).
type Path []string

// Index returns the position of key in the document, or -1 if absent.
func (d Document) Index(key string) int {
	for i, e := range d {
		if e.Key == key {
			return i
		}
	}
	return -1
}

// Get returns the value stored under key and whether the key is present.
func (d Document) Get(key string) (any, bool) {
	if i := d.Index(key); i >= 0 {
		return d[i].Value, true
	}
	return nil, false
}

// Set overwrites the value under key in place, or appends a new entry when
// the key is absent. The returned document must be used as the source of
// truth since an append may reallocate.
func (d Document) Set(key string, value any) Document {
	if i := d.Index(key); i >= 0 {
		d[i].Value = value
		return d
	}
	return append(d, Entry{Key: key, Value: value})
}

// Keys returns the document's keys in entry order.
func (d Document) Keys() []string {
	keys := make([]string, len(d))
	for i, e := range d {
		keys[i] = e.Key
	}
	return keys
}
