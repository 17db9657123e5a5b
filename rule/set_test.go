package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(rules []Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Name()
	}
	return out
}

func TestSet_SortedByPriority(t *testing.T) {
	s := NewSet()

	// Registration order deliberately scrambled.
	s.Add(New("c", 10, nil, nil))
	s.Add(New("a", 1, nil, nil))
	s.Add(New("d", 3, nil, nil))
	s.Add(New("b", 5, nil, nil))

	assert.Equal(t, []string{"a", "d", "b", "c"}, names(s.Rules()))
}

func TestSet_TieBreakByName(t *testing.T) {
	s := NewSet()

	s.Add(New("zeta", 1, nil, nil))
	s.Add(New("alpha", 1, nil, nil))
	s.Add(New("mid", 1, nil, nil))

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names(s.Rules()))
}

func TestSet_AddReplacesSameName(t *testing.T) {
	s := NewSet()

	s.Add(New("discount", 5, nil, nil))
	s.Add(New("discount", 1, nil, nil))

	require.Equal(t, 1, s.Len())
	r, ok := s.Get("discount")
	require.True(t, ok)
	assert.Equal(t, 1, r.Priority(), "replacement re-sorts under the new priority")
}

func TestSet_NameIdentityIsNFCNormalized(t *testing.T) {
	s := NewSet()

	// "é" composed (U+00E9) vs decomposed (e + U+0301): one identity.
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"

	s.Add(New(composed, 1, nil, nil))
	s.Add(New(decomposed, 2, nil, nil))

	assert.Equal(t, 1, s.Len())

	_, ok := s.Get(decomposed)
	assert.True(t, ok)
	assert.True(t, s.Remove(composed))
	assert.Equal(t, 0, s.Len())
}

func TestSet_Remove(t *testing.T) {
	s := NewSet()
	s.Add(New("a", 1, nil, nil))
	s.Add(New("b", 2, nil, nil))

	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"), "second remove finds nothing")
	assert.Equal(t, []string{"b"}, names(s.Rules()))
}

func TestSet_Get(t *testing.T) {
	s := NewSet()
	s.Add(New("a", 1, nil, nil))

	r, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", r.Name())

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestSet_RulesReturnsSnapshot(t *testing.T) {
	s := NewSet()
	s.Add(New("a", 1, nil, nil))
	s.Add(New("b", 2, nil, nil))

	snapshot := s.Rules()
	snapshot[0] = New("x", 99, nil, nil)

	assert.Equal(t, []string{"a", "b"}, names(s.Rules()), "mutating the snapshot leaves the set intact")
}
