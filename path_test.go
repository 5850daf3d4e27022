package swalk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	t.Run("walks nested document fields", func(t *testing.T) {
		v := Document{{Key: "a", Value: Document{{Key: "b", Value: 5}}}}
		got, ok := Get(v, Path{"a", "b"})
		require.True(t, ok)
		require.Equal(t, 5, got)
	})

	t.Run("missing key is not found", func(t *testing.T) {
		v := Document{{Key: "a", Value: 1}}
		_, ok := Get(v, Path{"x"})
		require.False(t, ok)
	})

	t.Run("missing intermediate key is not found", func(t *testing.T) {
		v := Document{{Key: "a", Value: Document{{Key: "b", Value: 5}}}}
		_, ok := Get(v, Path{"a", "x", "y"})
		require.False(t, ok)
	})

	t.Run("trailing zero on an array returns the whole array", func(t *testing.T) {
		v := Document{{Key: "a", Value: Array{1, 2, 3}}}
		got, ok := Get(v, Path{"a", "0"})
		require.True(t, ok)
		require.Equal(t, Array{1, 2, 3}, got)
	})

	t.Run("non-trailing zero on an array is not found", func(t *testing.T) {
		v := Document{{Key: "a", Value: Array{Document{{Key: "b", Value: 1}}}}}
		_, ok := Get(v, Path{"a", "0", "b"})
		require.False(t, ok)
	})

	t.Run("array index other than zero is not found", func(t *testing.T) {
		v := Document{{Key: "a", Value: Array{1, 2, 3}}}
		_, ok := Get(v, Path{"a", "1"})
		require.False(t, ok)
	})

	t.Run("descending into a scalar is not found", func(t *testing.T) {
		v := Document{{Key: "a", Value: 1}}
		_, ok := Get(v, Path{"a", "b"})
		require.False(t, ok)
	})

	t.Run("empty path returns the value itself", func(t *testing.T) {
		v := Document{{Key: "a", Value: 1}}
		got, ok := Get(v, nil)
		require.True(t, ok)
		require.Equal(t, v, got)
	})
}

func TestSet(t *testing.T) {
	t.Run("matching kind overwrites", func(t *testing.T) {
		v := Document{{Key: "a", Value: 1}}
		got := Set(v, Path{"a"}, 2)
		require.Equal(t, Document{{Key: "a", Value: 2}}, got)
	})

	t.Run("number kinds are interchangeable", func(t *testing.T) {
		v := Document{{Key: "a", Value: 1}}
		got := Set(v, Path{"a"}, 2.5)
		require.Equal(t, Document{{Key: "a", Value: 2.5}}, got)
	})

	t.Run("kind mismatch is silently ignored", func(t *testing.T) {
		v := Document{{Key: "a", Value: 1}}
		got := Set(v, Path{"a"}, "text")
		require.Equal(t, Document{{Key: "a", Value: 1}}, got)
	})

	t.Run("bool does not overwrite number", func(t *testing.T) {
		v := Document{{Key: "a", Value: 1}}
		got := Set(v, Path{"a"}, true)
		require.Equal(t, Document{{Key: "a", Value: 1}}, got)
	})

	t.Run("values outside the core model match on dynamic type", func(t *testing.T) {
		t0 := time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)
		t1 := t0.Add(time.Hour)
		v := Document{{Key: "at", Value: t0}}
		got := Set(v, Path{"at"}, t1)
		require.Equal(t, Document{{Key: "at", Value: t1}}, got)

		got = Set(got, Path{"at"}, "2023-10-01")
		require.Equal(t, Document{{Key: "at", Value: t1}}, got)
	})

	t.Run("trailing zero replaces a child array wholesale", func(t *testing.T) {
		v := Document{{Key: "a", Value: Array{1, 2}}}
		got := Set(v, Path{"a", "0"}, Array{9, 9, 9})
		require.Equal(t, Document{{Key: "a", Value: Array{9, 9, 9}}}, got)
	})

	t.Run("trailing zero creates the field when absent", func(t *testing.T) {
		v := Document{{Key: "b", Value: 1}}
		got := Set(v, Path{"a", "0"}, Array{1})
		require.Equal(t, Document{
			{Key: "b", Value: 1},
			{Key: "a", Value: Array{1}},
		}, got)
	})

	t.Run("trailing zero with non-array value falls through to no-op", func(t *testing.T) {
		v := Document{{Key: "a", Value: Array{1, 2}}}
		got := Set(v, Path{"a", "0"}, "text")
		require.Equal(t, Document{{Key: "a", Value: Array{1, 2}}}, got)
	})

	t.Run("zero on an array root replaces the whole node", func(t *testing.T) {
		got := Set(Array{1}, Path{"0"}, Array{2, 3})
		require.Equal(t, Array{2, 3}, got)
	})

	t.Run("zero on an array root with non-array value is a no-op", func(t *testing.T) {
		got := Set(Array{1}, Path{"0"}, 7)
		require.Equal(t, Array{1}, got)
	})

	t.Run("recurses through nested documents", func(t *testing.T) {
		v := Document{{Key: "a", Value: Document{{Key: "b", Value: 1}}}}
		got := Set(v, Path{"a", "b"}, 7)
		require.Equal(t, Document{{Key: "a", Value: Document{{Key: "b", Value: 7}}}}, got)
	})

	t.Run("unresolved path leaves the value unchanged", func(t *testing.T) {
		v := Document{{Key: "a", Value: 1}}
		got := Set(v, Path{"x", "y"}, 2)
		require.Equal(t, Document{{Key: "a", Value: 1}}, got)
	})

	t.Run("empty path leaves the value unchanged", func(t *testing.T) {
		v := Document{{Key: "a", Value: 1}}
		got := Set(v, nil, 2)
		require.Equal(t, v, got)
	})

	t.Run("field order is preserved on overwrite", func(t *testing.T) {
		v := Document{
			{Key: "z", Value: 1},
			{Key: "a", Value: 2},
		}
		got := Set(v, Path{"z"}, 9).(Document)
		require.Equal(t, []string{"z", "a"}, got.Keys())
	})
}
