package swalk

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Unmarshalers returns the set of swalk unmarshalers allowing JSON decoding
// into:
//   - any/interface{} -> objects as Document, arrays as Array
//   - *Document       -> direct ordered object decoding
//   - *Array          -> direct array decoding
//
// Decoding through these keeps object field order, which map[string]any
// would destroy:
//
//	var doc swalk.Document
//	err := json.Unmarshal(data, &doc, json.WithUnmarshalers(swalk.Unmarshalers()))
func Unmarshalers() *json.Unmarshalers {
	return json.JoinUnmarshalers(
		unmarshalValue(),
		unmarshalDocument(),
		unmarshalArray(),
	)
}

// unmarshalValue wraps JSON objects as Document and JSON arrays as Array when
// decoding into interface{}. Primitive values (string, number, bool, null)
// are left to the default decoding by returning json.SkipFunc.
//
// Empty objects ({}) produce an empty Document; empty arrays ([]) produce an
// empty Array.
func unmarshalValue() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *any) error {
		switch dec.PeekKind() {
		case '{':
			doc, err := decodeObject(dec)
			if err != nil {
				return err
			}
			*v = doc
			return nil
		case '[':
			arr, err := decodeArray(dec)
			if err != nil {
				return err
			}
			*v = arr
			return nil
		default:
			return json.SkipFunc
		}
	})
}

// unmarshalDocument decodes a JSON object into a *Document when the target
// type is *Document (ordered key preservation).
func unmarshalDocument() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *Document) error {
		if dec.PeekKind() != '{' {
			return json.SkipFunc
		}
		doc, err := decodeObject(dec)
		if err != nil {
			return err
		}
		*v = doc
		return nil
	})
}

// unmarshalArray decodes a JSON array into an *Array when the target type is
// *Array.
func unmarshalArray() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *Array) error {
		if dec.PeekKind() != '[' {
			return json.SkipFunc
		}
		arr, err := decodeArray(dec)
		if err != nil {
			return err
		}
		*v = arr
		return nil
	})
}

// decodeObject decodes a JSON object into a Document, keeping field order.
func decodeObject(dec *jsontext.Decoder) (Document, error) {
	if _, err := dec.ReadToken(); err != nil { // '{'
		return nil, fmt.Errorf("read object open: %w", err)
	}
	doc := Document{}
	for dec.PeekKind() != '}' {
		var k string
		if err := json.UnmarshalDecode(dec, &k); err != nil {
			return nil, fmt.Errorf("read object key: %w", err)
		}
		var v any
		if err := json.UnmarshalDecode(dec, &v); err != nil {
			return nil, fmt.Errorf("read object value for key %q: %w", k, err)
		}
		doc = append(doc, Entry{Key: k, Value: v})
	}
	if _, err := dec.ReadToken(); err != nil { // '}'
		return nil, fmt.Errorf("read object close: %w", err)
	}
	return doc, nil
}

// decodeArray decodes a JSON array into an Array.
func decodeArray(dec *jsontext.Decoder) (Array, error) {
	if _, err := dec.ReadToken(); err != nil { // '['
		return nil, fmt.Errorf("read array open: %w", err)
	}
	arr := Array{}
	for dec.PeekKind() != ']' {
		var elem any
		if err := json.UnmarshalDecode(dec, &elem); err != nil {
			return nil, fmt.Errorf("read array element: %w", err)
		}
		arr = append(arr, elem)
	}
	if _, err := dec.ReadToken(); err != nil { // ']'
		return nil, fmt.Errorf("read array close: %w", err)
	}
	return arr, nil
}
