package swalk

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate walks value against the structure tree and reports the first
// mismatch. Documents must carry exactly the struct's fields (order is not
// checked; the tree fixes order, the value's entries may have been merged),
// arrays must hold elements conforming to the element template, and scalar
// leaves must pass the registry check for their type name.
//
// Errors name the offending path so a mismatch deep in a tree is findable.
func Validate(tree *TypeNode, value any, reg *TypeRegistry) error {
	if tree == nil {
		return fmt.Errorf("swalk: validate: nil structure tree")
	}
	if reg == nil {
		return fmt.Errorf("swalk: validate: nil type registry")
	}
	return validateAt(nil, tree, value, reg)
}

func validateAt(path Path, tree *TypeNode, value any, reg *TypeRegistry) error {
	switch tree.Kind {
	case KindScalar:
		if err := reg.Check(tree.Name, value); err != nil {
			return fmt.Errorf("at %s: %w", pathString(path), err)
		}
		return nil

	case KindStruct:
		doc, ok := value.(Document)
		if !ok {
			return fmt.Errorf("at %s: want struct, got %T", pathString(path), value)
		}
		for _, f := range tree.Fields {
			v, ok := doc.Get(f.Name)
			if !ok {
				return fmt.Errorf("at %s: missing field %q", pathString(path), f.Name)
			}
			if err := validateAt(append(path, f.Name), f.Type, v, reg); err != nil {
				return err
			}
		}
		for _, e := range doc {
			if tree.Field(e.Key) == nil {
				return fmt.Errorf("at %s: unexpected field %q", pathString(path), e.Key)
			}
		}
		return nil

	case KindArray:
		arr, ok := value.(Array)
		if !ok {
			return fmt.Errorf("at %s: want array, got %T", pathString(path), value)
		}
		for i, elem := range arr {
			if err := validateAt(append(path, strconv.Itoa(i)), tree.Elem, elem, reg); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("at %s: unknown node kind %v", pathString(path), tree.Kind)
}

func pathString(path Path) string {
	if len(path) == 0 {
		return "<root>"
	}
	return strings.Join(path, DefaultSeparator)
}
