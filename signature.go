package swalk

import (
	"fmt"
	"strings"
)

// Kind discriminates the three node kinds of a structure tree.
type Kind int

const (
	// KindScalar is a leaf holding a scalar type name.
	KindScalar Kind = iota
	// KindStruct is a record node with ordered named fields.
	KindStruct
	// KindArray is a sequence node with a single element template.
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindStruct:
		return "struct"
	case KindArray:
		return "array"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// TypeNode is one node of a parsed structure tree. Exactly one of the
// kind-specific fields is meaningful: Name for KindScalar, Fields for
// KindStruct, Elem for KindArray.
type TypeNode struct {
	Kind   Kind
	Name   string    // scalar type name
	Fields []Field   // struct fields, in declaration order
	Elem   *TypeNode // array element template
}

// Field is a single named field of a struct node.
type Field struct {
	Name string
	Type *TypeNode
}

// Field returns the typed field named name, or nil if the node is not a
// struct or has no such field.
func (n *TypeNode) Field(name string) *TypeNode {
	if n == nil || n.Kind != KindStruct {
		return nil
	}
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Type
		}
	}
	return nil
}

// Leaves counts the scalar leaves of the tree. For every well-formed
// signature this equals the number of scalar type tokens in the input.
func (n *TypeNode) Leaves() int {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case KindScalar:
		return 1
	case KindStruct:
		total := 0
		for _, f := range n.Fields {
			total += f.Type.Leaves()
		}
		return total
	case KindArray:
		return n.Elem.Leaves()
	}
	return 0
}

// String prints the canonical signature for the tree: no whitespace,
// struct<name:TYPE,...> and array<TYPE> spelling. Parsing the result yields
// an equal tree.
func (n *TypeNode) String() string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case KindScalar:
		return n.Name
	case KindStruct:
		var b strings.Builder
		b.WriteString("struct<")
		for i, f := range n.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(f.Name)
			b.WriteByte(':')
			b.WriteString(f.Type.String())
		}
		b.WriteByte('>')
		return b.String()
	case KindArray:
		return "array<" + n.Elem.String() + ">"
	}
	return ""
}

// ParseError reports a signature that does not match the grammar. Offset is
// the rune position (in the whitespace-stripped input) at which parsing could
// not continue; Remainder returns the unconsumed text from there.
type ParseError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	rem := e.Remainder()
	if rem == "" {
		return fmt.Sprintf("swalk: parse signature: %s at end of input", e.Msg)
	}
	return fmt.Sprintf("swalk: parse signature: %s at offset %d (unconsumed %q)", e.Msg, e.Offset, rem)
}

// Remainder returns the unconsumed portion of the stripped input.
func (e *ParseError) Remainder() string {
	rs := []rune(e.Input)
	if e.Offset < 0 || e.Offset >= len(rs) {
		return ""
	}
	return string(rs[e.Offset:])
}

// frame is one open container on the parse stack.
type frame struct {
	node    *TypeNode
	pending string // field name awaiting its value (struct frames only)
}

// ParseSignature parses a compact type signature such as
//
//	struct<a:string,b:array<int>>
//
// into a structure tree. The grammar is
//
//	value := SCALAR | 'struct<' NAME ':' value (',' NAME ':' value)* '>' | 'array<' value '>'
//
// Whitespace is stripped before parsing. An empty input yields an empty
// struct root; a bare token yields a scalar root. Malformed input returns a
// *ParseError identifying the unconsumed remainder.
//
// The scan is a single left-to-right pass over the runes with an explicit
// stack of open containers mirroring the bracket nesting, so arbitrarily deep
// signatures cannot exhaust the call stack.
func ParseSignature(signature string) (*TypeNode, error) {
	input := stripSpace(signature)
	runes := []rune(input)

	var (
		root   *TypeNode
		stack  []frame
		token  string
		tokAt  int // offset of the current token's first rune
		failed *ParseError
	)
	fail := func(at int, format string, args ...any) {
		failed = &ParseError{Input: input, Offset: at, Msg: fmt.Sprintf(format, args...)}
	}

	// attach places a finished node into the innermost open container, or
	// makes it the root when no container is open.
	attach := func(n *TypeNode, at int) bool {
		if len(stack) == 0 {
			if root != nil {
				fail(at, "unexpected second top-level value")
				return false
			}
			root = n
			return true
		}
		f := &stack[len(stack)-1]
		switch f.node.Kind {
		case KindStruct:
			if f.pending == "" {
				fail(at, "missing field name before value")
				return false
			}
			f.node.Fields = append(f.node.Fields, Field{Name: f.pending, Type: n})
			f.pending = ""
		case KindArray:
			if f.node.Elem != nil {
				fail(at, "array takes a single element type")
				return false
			}
			f.node.Elem = n
		}
		return true
	}

	for i := 0; i < len(runes) && failed == nil; i++ {
		switch c := runes[i]; c {
		case '<':
			var n *TypeNode
			switch token {
			case "struct":
				n = &TypeNode{Kind: KindStruct, Fields: []Field{}}
			case "array":
				n = &TypeNode{Kind: KindArray}
			case "":
				fail(i, "missing container keyword before '<'")
				continue
			default:
				fail(tokAt, "unknown container %q", token)
				continue
			}
			if !attach(n, tokAt) {
				continue
			}
			stack = append(stack, frame{node: n})
			token = ""
		case ':':
			if len(stack) == 0 || stack[len(stack)-1].node.Kind != KindStruct {
				fail(i, "':' outside struct")
				continue
			}
			f := &stack[len(stack)-1]
			if token == "" {
				fail(i, "missing field name before ':'")
				continue
			}
			if f.pending != "" {
				fail(i, "unexpected ':' after field %q", f.pending)
				continue
			}
			f.pending = token
			token = ""
		case ',':
			if len(stack) == 0 {
				fail(i, "',' outside container")
				continue
			}
			if token != "" {
				if !attach(&TypeNode{Kind: KindScalar, Name: token}, tokAt) {
					continue
				}
				token = ""
			}
		case '>':
			if token != "" {
				if !attach(&TypeNode{Kind: KindScalar, Name: token}, tokAt) {
					continue
				}
				token = ""
			}
			if len(stack) == 0 {
				fail(i, "unbalanced '>'")
				continue
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if f.node.Kind == KindStruct && f.pending != "" {
				fail(i, "missing value for field %q", f.pending)
				continue
			}
			if f.node.Kind == KindArray && f.node.Elem == nil {
				fail(i, "array missing element type")
				continue
			}
		default:
			if token == "" {
				tokAt = i
			}
			token += string(c)
		}
	}
	if failed != nil {
		return nil, failed
	}
	if len(stack) != 0 {
		return nil, &ParseError{Input: input, Offset: len(runes), Msg: fmt.Sprintf("unbalanced '<': %d container(s) left open", len(stack))}
	}
	if token != "" {
		if root != nil {
			return nil, &ParseError{Input: input, Offset: tokAt, Msg: "trailing text after value"}
		}
		root = &TypeNode{Kind: KindScalar, Name: token}
	}
	if root == nil {
		// Empty input defaults to an empty record.
		root = &TypeNode{Kind: KindStruct, Fields: []Field{}}
	}
	return root, nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
