package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSetSortsAndDeduplicates(t *testing.T) {
	s := NewSet(
		String("b", "2"),
		String("a", "1"),
		String("b", "3"), // last wins
	)

	require.Equal(t, 2, s.Len())

	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", v.AsString())

	v, ok = s.Get("b")
	require.True(t, ok)
	assert.Equal(t, "3", v.AsString())
}

func TestSetGetMissing(t *testing.T) {
	s := NewSet(String("a", "1"))
	_, ok := s.Get("missing")
	assert.False(t, ok)
	assert.False(t, s.Has("missing"))
}

func TestMergeOverrides(t *testing.T) {
	base := NewSet(String("a", "1"), String("b", "2"))
	merged := base.Merge(String("b", "override"), Int("c", 3))

	require.Equal(t, 3, merged.Len())

	v, _ := merged.Get("b")
	assert.Equal(t, "override", v.AsString())

	// The original set is untouched.
	v, _ = base.Get("b")
	assert.Equal(t, "2", v.AsString())
}

func TestMergeEmpty(t *testing.T) {
	s := NewSet(String("a", "1"))
	assert.Equal(t, s, s.Merge())

	empty := Set{}
	merged := empty.Merge(String("a", "1"))
	assert.Equal(t, 1, merged.Len())
}

func TestRangeStopsEarly(t *testing.T) {
	s := NewSet(String("a", "1"), String("b", "2"), String("c", "3"))

	var visited []string
	s.Range(func(a Attr) bool {
		visited = append(visited, a.Key)
		return len(visited) < 2
	})

	assert.Equal(t, []string{"a", "b"}, visited)
}
