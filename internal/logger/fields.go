package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/screening"
)

const (
	// FieldSource is the structured log field key for the resume file name.
	FieldSource = "source"
	// FieldCandidate is the structured log field key for the extracted candidate name.
	FieldCandidate = "candidate"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CandidateFields describes a scored candidate. Empty identity values are left out.
func CandidateFields(c *screening.Candidate) []zap.Field {
	if c == nil {
		return nil
	}

	fields := StringFields(
		StringField{Key: FieldSource, Value: c.SourceName},
		StringField{Key: FieldCandidate, Value: c.Name},
	)

	return append(fields,
		zap.String("parse_status", string(c.ParseStatus)),
		zap.Strings("skills", c.Skills),
		zap.Float64("years_experience", c.YearsExperience),
		zap.Int("skill_match", c.SkillMatchPercent),
		zap.Int("experience_match", c.ExperienceMatchPercent),
		zap.Int("final_score", c.FinalScore()),
		zap.String("recommendation", string(c.Recommendation())),
	)
}

// JobFields describes the job requirement a batch is screened against.
func JobFields(job *screening.JobRequirement) []zap.Field {
	if job == nil {
		return nil
	}

	fields := StringFields(StringField{Key: "job_title", Value: job.Title()})
	return append(fields,
		zap.Float64("min_years_experience", job.MinYearsExperience()),
		zap.Strings("required_skills", job.RequiredSkills()),
	)
}
