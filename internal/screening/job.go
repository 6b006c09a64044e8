package screening

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxSkillLength = 64

// JobSpec is the raw, user-supplied shape of a job requirement.
type JobSpec struct {
	Title              string   `mapstructure:"title" json:"title" validate:"max=200"`
	MinYearsExperience float64  `mapstructure:"min-years-experience" json:"min_years_experience" validate:"gte=0"`
	RequiredSkills     []string `mapstructure:"required-skills" json:"required_skills" validate:"dive,max=64"`
}

// JobRequirement is the validated, immutable requirement every candidate is scored against.
type JobRequirement struct {
	title    string
	minYears float64
	skills   []string
}

// NewJobRequirement validates the JobSpec and normalizes its skills.
func NewJobRequirement(spec JobSpec) (*JobRequirement, error) {
	if math.IsNaN(spec.MinYearsExperience) || math.IsInf(spec.MinYearsExperience, 0) {
		return nil, fmt.Errorf("%w: minimum years of experience must be a finite number", ErrInvalidJobRequirement)
	}

	if err := validator.New().Struct(spec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJobRequirement, err)
	}

	set := make(map[string]struct{}, len(spec.RequiredSkills))
	skills := make([]string, 0, len(spec.RequiredSkills))
	for idx, raw := range spec.RequiredSkills {
		if strings.ContainsAny(raw, ",\n\r") {
			return nil, fmt.Errorf("%w: required skill #%d %q contains a separator", ErrInvalidJobRequirement, idx+1, raw)
		}

		skill := NormalizeSkill(raw)
		if skill == "" {
			return nil, fmt.Errorf("%w: required skill #%d is empty", ErrInvalidJobRequirement, idx+1)
		}
		if len(skill) > maxSkillLength {
			return nil, fmt.Errorf("%w: required skill %q is longer than %d characters", ErrInvalidJobRequirement, skill, maxSkillLength)
		}

		if _, ok := set[skill]; ok {
			continue
		}
		set[skill] = struct{}{}
		skills = append(skills, skill)
	}
	slices.Sort(skills)

	return &JobRequirement{
		title:    strings.TrimSpace(spec.Title),
		minYears: spec.MinYearsExperience,
		skills:   skills,
	}, nil
}

func (j *JobRequirement) Title() string { return j.title }

func (j *JobRequirement) MinYearsExperience() float64 { return j.minYears }

// RequiredSkills returns a sorted copy of the normalized skill set.
func (j *JobRequirement) RequiredSkills() []string {
	return slices.Clone(j.skills)
}

// NormalizeSkill lowercases the value and collapses whitespace.
func NormalizeSkill(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ParseSkillList splits a comma separated list, dropping empty entries.
func ParseSkillList(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		skills = append(skills, strings.TrimSpace(part))
	}
	return skills
}
