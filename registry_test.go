package swalk

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeRegistry(t *testing.T) {
	t.Run("registered type checks values", func(t *testing.T) {
		r, err := NewTypeRegistry(NewType[string]("name"))
		require.NoError(t, err)
		require.NoError(t, r.Check("name", "ok"))
		require.Error(t, r.Check("name", 42))
	})

	t.Run("unknown type name is an error", func(t *testing.T) {
		r, err := NewTypeRegistry()
		require.NoError(t, err)
		err = r.Check("uuid", "whatever")
		require.Error(t, err)
		require.Contains(t, err.Error(), `"uuid" not registered`)
	})

	t.Run("duplicate registration is an error", func(t *testing.T) {
		_, err := NewTypeRegistry(StringType, StringType)
		require.Error(t, err)
		require.Contains(t, err.Error(), "already registered")
	})

	t.Run("nil check func is rejected", func(t *testing.T) {
		r := &TypeRegistry{entries: map[string]CheckFunc{}}
		require.Error(t, r.Register("broken", nil))
	})

	t.Run("group applies all registrations", func(t *testing.T) {
		r, err := NewTypeRegistry(Group(
			NewType[string]("s"),
			NewType[bool]("b"),
		))
		require.NoError(t, err)
		require.NoError(t, r.Check("s", "x"))
		require.NoError(t, r.Check("b", true))
	})

	t.Run("apply stops at the first error", func(t *testing.T) {
		r, err := NewTypeRegistry(NewType[string]("s"))
		require.NoError(t, err)
		err = Apply(r, NewType[bool]("b"), NewType[int]("s"), NewType[float64]("f"))
		require.Error(t, err)
		require.NoError(t, r.Check("b", true))
		require.Error(t, r.Check("f", 1.0)) // never applied
	})

	t.Run("custom check func", func(t *testing.T) {
		positive := NewTypeFunc("positive", func(v any) error {
			if n, ok := v.(int); ok && n > 0 {
				return nil
			}
			return fmt.Errorf("want positive int, got %v", v)
		})
		r, err := NewTypeRegistry(positive)
		require.NoError(t, err)
		require.NoError(t, r.Check("positive", 3))
		require.Error(t, r.Check("positive", -3))
	})
}

func TestBuiltins(t *testing.T) {
	r, err := NewTypeRegistry(Builtins())
	require.NoError(t, err)

	t.Run("string", func(t *testing.T) {
		require.NoError(t, r.Check("string", "x"))
		require.Error(t, r.Check("string", 1))
	})

	t.Run("boolean", func(t *testing.T) {
		require.NoError(t, r.Check("boolean", false))
		require.Error(t, r.Check("boolean", "false"))
	})

	t.Run("integers accept integral numbers of any width", func(t *testing.T) {
		require.NoError(t, r.Check("int", 3))
		require.NoError(t, r.Check("int", float64(3))) // json numbers decode as float64
		require.NoError(t, r.Check("bigint", int64(1)<<40))
		require.Error(t, r.Check("int", 3.5))
		require.Error(t, r.Check("int", "3"))
	})

	t.Run("integers enforce their ranges", func(t *testing.T) {
		require.NoError(t, r.Check("tinyint", 127))
		require.Error(t, r.Check("tinyint", 200))
		require.Error(t, r.Check("smallint", 1<<20))
		require.Error(t, r.Check("int", int64(1)<<40))
	})

	t.Run("float and double accept any number", func(t *testing.T) {
		require.NoError(t, r.Check("float", 1.5))
		require.NoError(t, r.Check("double", 2))
		require.Error(t, r.Check("double", true))
	})

	t.Run("timestamp accepts rfc3339 and plain layouts", func(t *testing.T) {
		require.NoError(t, r.Check("timestamp", "2023-10-01T12:00:00Z"))
		require.NoError(t, r.Check("timestamp", "2023-10-01 12:00:00"))
		require.Error(t, r.Check("timestamp", "not-a-time"))
		require.Error(t, r.Check("timestamp", 12))
	})

	t.Run("date", func(t *testing.T) {
		require.NoError(t, r.Check("date", "2023-10-01"))
		require.Error(t, r.Check("date", "2023-10-01T12:00:00Z"))
	})

	t.Run("binary accepts strings and bytes", func(t *testing.T) {
		require.NoError(t, r.Check("binary", "aGk="))
		require.NoError(t, r.Check("binary", []byte{1, 2}))
		require.Error(t, r.Check("binary", 9))
	})
}
