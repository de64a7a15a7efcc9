package intern

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCache_LookupInsert(t *testing.T) {
	c := NewCache()

	_, ok := c.Lookup("hello")
	require.False(t, ok)

	c.Insert("hello", 42)
	pos, ok := c.Lookup("hello")
	require.True(t, ok)
	require.Equal(t, 42, pos)
	require.Equal(t, 1, c.Len())
}

func TestCache_MostRecentWins(t *testing.T) {
	c := NewCache()

	c.Insert("hello", 10)
	c.Insert("hello", 5000)

	pos, ok := c.Lookup("hello")
	require.True(t, ok)
	require.Equal(t, 5000, pos)
	require.Equal(t, 1, c.Len())
}

func TestCache_Reset(t *testing.T) {
	c := NewCache()
	c.Insert("a", 1)
	c.Insert("b", 2)
	require.Equal(t, 2, c.Len())

	c.Reset()
	require.Equal(t, 0, c.Len())

	_, ok := c.Lookup("a")
	require.False(t, ok)

	c.Insert("a", 3)
	pos, _ := c.Lookup("a")
	require.Equal(t, 3, pos)
}
