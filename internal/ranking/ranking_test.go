package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-screener/internal/screening"
)

// candidate builds a scored candidate whose final score equals skill*0.7 + exp*0.3.
func candidate(source, name string, skill, exp int) *screening.Candidate {
	return &screening.Candidate{
		SourceName:             source,
		Name:                   name,
		SkillMatchPercent:      skill,
		ExperienceMatchPercent: exp,
		ParseStatus:            screening.ParseOk,
	}
}

func sources(cs []*screening.Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.SourceName)
	}
	return out
}

func TestRankOrdersByScore(t *testing.T) {
	input := []*screening.Candidate{
		candidate("low", "Low", 0, 0),
		candidate("high", "High", 100, 100),
		candidate("mid", "Mid", 67, 100),
	}

	ranked := Rank(input)

	assert.Equal(t, []string{"high", "mid", "low"}, sources(ranked))
	assert.Equal(t, []string{"low", "high", "mid"}, sources(input), "input must not be reordered")
}

func TestRankTieBreaks(t *testing.T) {
	failed := screening.NewFailedCandidate("failed.png")
	input := []*screening.Candidate{
		failed,
		candidate("noname-1", "", 0, 0),
		candidate("bob", "bob", 100, 0),
		candidate("alice-2", "Alice", 100, 0),
		candidate("zed", "Zed", 0, 0),
		candidate("alice-1", "alice", 100, 0),
		candidate("noname-2", "", 0, 0),
	}

	ranked := Rank(input)

	assert.Equal(t, []string{
		"alice-2", "alice-1", "bob",
		"zed", "noname-1", "noname-2",
		"failed.png",
	}, sources(ranked))
}

func TestRankIsPermutationAndIdempotent(t *testing.T) {
	input := make([]*screening.Candidate, 0, 30)
	names := []string{"Ann", "bob", "", "Cleo", "ann"}
	for i := range 30 {
		input = append(input, candidate(string(rune('a'+i)), names[i%len(names)], (i*37)%101, (i*53)%101))
	}
	input = append(input, screening.NewFailedCandidate("failed"))

	ranked := Rank(input)
	require.Len(t, ranked, len(input))
	assert.ElementsMatch(t, input, ranked)

	for i := 1; i < len(ranked); i++ {
		require.GreaterOrEqual(t, ranked[i-1].FinalScore(), ranked[i].FinalScore())
	}

	assert.Equal(t, ranked, Rank(ranked))
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}
