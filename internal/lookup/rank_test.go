package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidatesWithLines(lines ...string) []Candidate {
	out := make([]Candidate, len(lines))
	for i, l := range lines {
		out[i] = Candidate{ID: l, Lines: []string{l, "Malvern"}, Town: "Great Malvern", Postcode: "ZZ1 1ZZ"}
	}
	return out
}

func firstLines(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.FirstLine()
	}
	return out
}

func TestRankNumericAware(t *testing.T) {
	in := candidatesWithLines(
		"3c Malvern Court",
		"Flat 2a stuff 4 Malvern Court",
		"3b Malvern Court",
		"1 Malvern Court",
	)
	got := Rank(in)
	assert.Equal(t, []string{
		"1 Malvern Court",
		"Flat 2a stuff 4 Malvern Court",
		"3b Malvern Court",
		"3c Malvern Court",
	}, firstLines(got))
}

func TestRankIsStableAndPure(t *testing.T) {
	in := candidatesWithLines("10 High Street", "2 High Street", "Rose Cottage")
	once := Rank(in)
	twice := Rank(once)
	assert.Equal(t, firstLines(once), firstLines(twice))

	// The input order must be untouched.
	assert.Equal(t, []string{"10 High Street", "2 High Street", "Rose Cottage"}, firstLines(in))
}

func TestRankOrdering(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "digit runs beat character order",
			in:   []string{"10 Malvern Court", "3b Malvern Court", "1 Malvern Court"},
			want: []string{"1 Malvern Court", "3b Malvern Court", "10 Malvern Court"},
		},
		{
			name: "lexicographic tiebreak on equal runs",
			in:   []string{"3c Malvern Court", "3b Malvern Court"},
			want: []string{"3b Malvern Court", "3c Malvern Court"},
		},
		{
			name: "no digits sorts before digit lines",
			in:   []string{"1 The Green", "Rose Cottage"},
			want: []string{"Rose Cottage", "1 The Green"},
		},
		{
			name: "shorter run sequence first on shared prefix",
			in:   []string{"2 Block 4", "2 Block"},
			want: []string{"2 Block", "2 Block 4"},
		},
		{
			name: "leading zeros compare numerically",
			in:   []string{"010 High Street", "2 High Street"},
			want: []string{"2 High Street", "010 High Street"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(candidatesWithLines(tt.in...))
			require.Equal(t, tt.want, firstLines(got))
		})
	}
}

func TestRankEmptyAndMissingLines(t *testing.T) {
	assert.Empty(t, Rank(nil))

	got := Rank([]Candidate{{ID: "a"}, {ID: "b", Lines: []string{"1 Street"}}})
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}
