package screening

import (
	"slices"
	"strings"
)

// ParseStatus reflects how confidently a resume was turned into a candidate.
type ParseStatus string

const (
	ParseOk       ParseStatus = "Ok"
	ParseDegraded ParseStatus = "Degraded"
	ParseFailed   ParseStatus = "Failed"
)

// Recommendation is the hiring tier derived from the final score.
type Recommendation string

const (
	StrongHire Recommendation = "Strong Hire"
	Interview  Recommendation = "Interview"
	Reject     Recommendation = "Reject"
)

const (
	strongHireThreshold = 85
	interviewThreshold  = 60

	skillWeight      = 7
	experienceWeight = 3
)

// Phone keeps the number as written plus its digits-only form.
type Phone struct {
	Display string
	Digits  string
}

func (p Phone) String() string { return p.Display }

// Candidate is a single processed resume.
type Candidate struct {
	SourceName      string
	Name            string
	Email           string
	Phone           Phone
	Skills          []string
	YearsExperience float64

	SkillMatchPercent      int
	ExperienceMatchPercent int

	ParseStatus   ParseStatus
	MissingFields []string
	MissingSkills []string
}

// NewFailedCandidate builds the record kept for a resume that produced no usable text.
func NewFailedCandidate(source string) *Candidate {
	return &Candidate{
		SourceName:  source,
		Skills:      []string{},
		ParseStatus: ParseFailed,
	}
}

// FinalScore is always derived from the two match percentages.
func (c *Candidate) FinalScore() int {
	return WeightedScore(c.SkillMatchPercent, c.ExperienceMatchPercent)
}

func (c *Candidate) Recommendation() Recommendation {
	return RecommendationFor(c.FinalScore())
}

// DisplayName falls back to the source file in parentheses when no name was extracted.
func (c *Candidate) DisplayName() string {
	if strings.TrimSpace(c.Name) != "" {
		return c.Name
	}
	return "(" + c.SourceName + ")"
}

// SetSkills normalizes, deduplicates and sorts the skill set.
func (c *Candidate) SetSkills(skills []string) {
	seen := make(map[string]struct{}, len(skills))
	normalized := make([]string, 0, len(skills))
	for _, s := range skills {
		skill := NormalizeSkill(s)
		if skill == "" {
			continue
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		normalized = append(normalized, skill)
	}
	slices.Sort(normalized)
	c.Skills = normalized
}

// WeightedScore returns round-half-up(skill*0.7 + experience*0.3) on clamped whole percentages.
func WeightedScore(skillPercent, experiencePercent int) int {
	skill := ClampPercent(skillPercent)
	exp := ClampPercent(experiencePercent)
	return (skill*skillWeight + exp*experienceWeight + 5) / 10
}

// RecommendationFor maps a final score onto its tier, first match wins.
func RecommendationFor(score int) Recommendation {
	switch {
	case score >= strongHireThreshold:
		return StrongHire
	case score >= interviewThreshold:
		return Interview
	default:
		return Reject
	}
}

func ClampPercent(v int) int {
	return max(0, min(100, v))
}
