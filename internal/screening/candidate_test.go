package screening

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightedScoreMatchesFormula(t *testing.T) {
	for skill := 0; skill <= 100; skill++ {
		for exp := 0; exp <= 100; exp++ {
			// Compare against the same formula on tenths to stay clear of float rounding.
			want := int(math.Floor(float64(skill*7+exp*3)/10 + 0.5))
			got := WeightedScore(skill, exp)
			require.Equalf(t, want, got, "WeightedScore(%d, %d)", skill, exp)
			require.Truef(t, got >= 0 && got <= 100, "WeightedScore(%d, %d) = %d is out of range", skill, exp, got)
		}
	}
}

func TestWeightedScoreRoundsHalfUp(t *testing.T) {
	// 75*0.7 = 52.5
	assert.Equal(t, 53, WeightedScore(75, 0))
	// 67*0.7 + 100*0.3 = 76.9
	assert.Equal(t, 77, WeightedScore(67, 100))
	assert.Equal(t, 0, WeightedScore(-20, -1))
	assert.Equal(t, 100, WeightedScore(150, 120))
}

func TestRecommendationFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score int
		want  Recommendation
	}{
		{score: 100, want: StrongHire},
		{score: 85, want: StrongHire},
		{score: 84, want: Interview},
		{score: 60, want: Interview},
		{score: 59, want: Reject},
		{score: 0, want: Reject},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RecommendationFor(tt.score), "score %d", tt.score)
	}
}

func TestRecommendationIsMonotonic(t *testing.T) {
	rank := map[Recommendation]int{Reject: 0, Interview: 1, StrongHire: 2}

	prev := rank[RecommendationFor(0)]
	for score := 1; score <= 100; score++ {
		cur := rank[RecommendationFor(score)]
		require.GreaterOrEqualf(t, cur, prev, "tier dropped at score %d", score)
		prev = cur
	}
}

func TestCandidateDerivesScoreFromPercentages(t *testing.T) {
	c := &Candidate{SkillMatchPercent: 100, ExperienceMatchPercent: 100}
	assert.Equal(t, 100, c.FinalScore())
	assert.Equal(t, StrongHire, c.Recommendation())

	c.SkillMatchPercent = 0
	assert.Equal(t, 30, c.FinalScore())
	assert.Equal(t, Reject, c.Recommendation())
}

func TestFailedCandidate(t *testing.T) {
	c := NewFailedCandidate("resume.png")

	assert.Equal(t, "resume.png", c.SourceName)
	assert.Equal(t, ParseFailed, c.ParseStatus)
	assert.Empty(t, c.Name)
	assert.Empty(t, c.Email)
	assert.Empty(t, c.Phone.Digits)
	assert.Equal(t, 0, c.FinalScore())
	assert.Equal(t, Reject, c.Recommendation())
	assert.Equal(t, "(resume.png)", c.DisplayName())

	c.Name = "Jane Doe"
	assert.Equal(t, "Jane Doe", c.DisplayName())
}

func TestSetSkills(t *testing.T) {
	c := &Candidate{}
	c.SetSkills([]string{"SQL", " python ", "sql", "", "Machine  Learning"})

	assert.Equal(t, []string{"machine learning", "python", "sql"}, c.Skills)
}
