package swalk

import (
	"fmt"
	"math"
	"time"
)

// Builtin scalar type registrations covering the names that commonly appear
// in signature leaves. Values are checked as they come out of the JSON and
// YAML decoders, so every integer name also accepts an integral float64.
var (
	StringType  = NewType[string]("string")
	BooleanType = NewTypeFunc("boolean", checkBool)

	TinyintType  = NewTypeFunc("tinyint", checkInteger(math.MinInt8, math.MaxInt8))
	SmallintType = NewTypeFunc("smallint", checkInteger(math.MinInt16, math.MaxInt16))
	IntType      = NewTypeFunc("int", checkInteger(math.MinInt32, math.MaxInt32))
	BigintType   = NewTypeFunc("bigint", checkInteger(math.MinInt64, math.MaxInt64))

	FloatType  = NewTypeFunc("float", checkNumber)
	DoubleType = NewTypeFunc("double", checkNumber)

	TimestampType = NewTypeFunc("timestamp", checkTime(time.RFC3339, "2006-01-02 15:04:05"))
	DateType      = NewTypeFunc("date", checkTime("2006-01-02"))

	BinaryType = NewTypeFunc("binary", checkBinary)
)

// Builtins bundles every builtin scalar type registration:
//
//	r, _ := swalk.NewTypeRegistry(swalk.Builtins())
func Builtins() Registration {
	return Group(
		StringType, BooleanType,
		TinyintType, SmallintType, IntType, BigintType,
		FloatType, DoubleType,
		TimestampType, DateType,
		BinaryType,
	)
}

func checkBool(v any) error {
	if _, ok := v.(bool); !ok {
		return fmt.Errorf("want bool, got %T", v)
	}
	return nil
}

func checkNumber(v any) error {
	if _, ok := asFloat(v); !ok {
		return fmt.Errorf("want number, got %T", v)
	}
	return nil
}

func checkInteger(min, max int64) CheckFunc {
	return func(v any) error {
		f, ok := asFloat(v)
		if !ok {
			return fmt.Errorf("want integer, got %T", v)
		}
		if f != math.Trunc(f) {
			return fmt.Errorf("want integer, got %v", v)
		}
		if f < float64(min) || f > float64(max) {
			return fmt.Errorf("%v out of range [%d, %d]", v, min, max)
		}
		return nil
	}
}

func checkTime(layouts ...string) CheckFunc {
	return func(v any) error {
		switch t := v.(type) {
		case time.Time:
			return nil
		case string:
			for _, layout := range layouts {
				if _, err := time.Parse(layout, t); err == nil {
					return nil
				}
			}
			return fmt.Errorf("%q does not match any of %v", t, layouts)
		default:
			return fmt.Errorf("want time string, got %T", v)
		}
	}
}

func checkBinary(v any) error {
	switch v.(type) {
	case string, []byte:
		return nil
	}
	return fmt.Errorf("want string or bytes, got %T", v)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
