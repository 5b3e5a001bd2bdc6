package names

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher(t *testing.T) {
	m := New([]string{"id", "idle", "name", "Name2", "", "ünï"})

	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"id", 0, true},
		{"idle", 1, true},
		{"name", 2, true},
		{"Name2", 3, true},
		{"", 4, true},
		{"ünï", 5, true},
		{"ID", 0, true},
		{"NAME", 2, true},
		{"name2", 3, true},
		{"i", 0, false},
		{"idl", 0, false},
		{"idles", 0, false},
		{"zzz", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := m.Match(tt.in)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMatcherPrefersExact(t *testing.T) {
	m := New([]string{"Key", "key"})

	i, ok := m.Match("Key")
	require.True(t, ok)
	assert.Equal(t, 0, i)

	i, ok = m.Match("key")
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = m.Match("KEY")
	assert.False(t, ok, "case-folded match is ambiguous")
}

func TestMatcherEmpty(t *testing.T) {
	m := New(nil)
	_, ok := m.Match("x")
	assert.False(t, ok)
	_, ok = m.Match("")
	assert.False(t, ok)
}

func BenchmarkMatch(b *testing.B) {
	names := make([]string, 32)
	for i := range names {
		names[i] = fmt.Sprintf("member_%02d", i)
	}
	m := New(names)

	b.ReportAllocs()
	for b.Loop() {
		if _, ok := m.Match("member_17"); !ok {
			b.Fatal("no match")
		}
	}
}
