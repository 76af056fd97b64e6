package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetMembership(t *testing.T) {
	s := New("carol", "alice")
	s.Add("bob")
	s.Delete("carol")

	assert.True(t, s.Has("alice"))
	assert.False(t, s.Has("carol"))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"alice", "bob"}, s.Sorted())
}

func TestSetEmpty(t *testing.T) {
	var s Set[string]
	assert.False(t, s.Has("x"))
	assert.Empty(t, s.Sorted())
}
