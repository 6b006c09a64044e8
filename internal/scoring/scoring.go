// Package scoring computes skill and experience match percentages and the weighted final score.
package scoring

import (
	"math"
	"slices"

	"github.com/spigell/resume-screener/internal/screening"
)

// MatchPercent returns the share of required skills the candidate has, as a whole percentage.
// An empty requirement is fully matched.
func MatchPercent(candidateSkills, requiredSkills []string) int {
	required := normalizedSet(requiredSkills)
	if len(required) == 0 {
		return 100
	}

	have := normalizedSet(candidateSkills)
	matched := 0
	for skill := range required {
		if _, ok := have[skill]; ok {
			matched++
		}
	}

	return screening.ClampPercent(ratioPercent(matched, len(required)))
}

// Missing returns the sorted required skills the candidate does not have.
func Missing(candidateSkills, requiredSkills []string) []string {
	have := normalizedSet(candidateSkills)
	missing := make([]string, 0)
	for skill := range normalizedSet(requiredSkills) {
		if _, ok := have[skill]; !ok {
			missing = append(missing, skill)
		}
	}
	slices.Sort(missing)
	return missing
}

// ExperiencePercent gives full credit for meeting the minimum and no bonus for exceeding it.
func ExperiencePercent(years, minYears float64) int {
	if minYears <= 0 {
		return 100
	}
	if years <= 0 || math.IsNaN(years) {
		return 0
	}
	return screening.ClampPercent(roundHalfUp(math.Min(100, 100*years/minYears)))
}

// Calculator scores candidates against a single job requirement.
type Calculator struct {
	job *screening.JobRequirement
}

func NewCalculator(job *screening.JobRequirement) *Calculator {
	return &Calculator{job: job}
}

// Score sets the candidate's match percentages and returns the derived score and tier.
// Failed candidates always end with zero percentages.
func (c *Calculator) Score(candidate *screening.Candidate) (int, screening.Recommendation) {
	required := c.job.RequiredSkills()

	if candidate.ParseStatus == screening.ParseFailed {
		candidate.SkillMatchPercent = 0
		candidate.ExperienceMatchPercent = 0
		candidate.MissingSkills = required
		return candidate.FinalScore(), candidate.Recommendation()
	}

	candidate.SkillMatchPercent = MatchPercent(candidate.Skills, required)
	candidate.ExperienceMatchPercent = ExperiencePercent(candidate.YearsExperience, c.job.MinYearsExperience())
	candidate.MissingSkills = Missing(candidate.Skills, required)

	return candidate.FinalScore(), candidate.Recommendation()
}

// Score is a convenience wrapper around Calculator.Score.
func Score(candidate *screening.Candidate, job *screening.JobRequirement) (int, screening.Recommendation) {
	return NewCalculator(job).Score(candidate)
}

// ratioPercent computes round-half-up(100*part/total) in integers.
func ratioPercent(part, total int) int {
	return (200*part + total) / (2 * total)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5 + 1e-9))
}

func normalizedSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		skill := screening.NormalizeSkill(s)
		if skill == "" {
			continue
		}
		set[skill] = struct{}{}
	}
	return set
}
