package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMatching(t *testing.T) {
	tests := []struct {
		name         string
		repo, owner  string
		project, org string
		want         bool
	}{
		{"project and org match", "proj-alice", "org1", "proj", "org1", true},
		{"org mismatch", "proj-alice", "org1", "proj", "org2", false},
		{"no org ignores owner", "proj-alice", "anyone", "proj", "", true},
		{"project substring anywhere", "2024-proj-alice", "org1", "proj", "", true},
		{"project absent", "lab-alice", "org1", "proj", "org1", false},
		{"case sensitive project", "Proj-alice", "org1", "proj", "", false},
		{"case sensitive org", "proj-alice", "Org1", "proj", "org1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMatching(tt.repo, tt.owner, tt.project, tt.org))
		})
	}
}

func TestMatchStudent_Suffix(t *testing.T) {
	got, err := MatchStudent("2024-proj-alice", []string{"bob", "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
}

func TestMatchStudent_SuffixNotSubstring(t *testing.T) {
	_, err := MatchStudent("alice-2024", []string{"alice"})
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestMatchStudent_LongestSuffixWinsRegardlessOfOrder(t *testing.T) {
	for _, students := range [][]string{{"ann", "joann"}, {"joann", "ann"}} {
		got, err := MatchStudent("lab1-joann", students)
		require.NoError(t, err)
		assert.Equal(t, "joann", got)
	}
}

func TestMatchStudent_EmptyNamesNeverMatch(t *testing.T) {
	_, err := MatchStudent("lab1-joann", []string{""})
	require.ErrorIs(t, err, ErrNoMatch)

	_, err = MatchStudent("lab1-joann", nil)
	require.ErrorIs(t, err, ErrNoMatch)
}
