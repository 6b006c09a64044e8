// Package extraction turns plain resume text into candidate fields using independent,
// individually replaceable strategies.
package extraction

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/screening"
)

const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldSkills     = "skills"
	FieldExperience = "years_experience"
)

// Field extracts a single candidate field from the resume text.
type Field interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	// Extract fills its part of out and reports whether the value was found.
	Extract(in *Input, out *Fields) bool
}

// Input is the resume text prepared once and shared by every field.
type Input struct {
	Raw string
	// Normalized is lowercased with whitespace runs collapsed to a single space.
	Normalized string
	Lines      []string
	Vocabulary []string
}

// Fields holds everything the extractor could find.
type Fields struct {
	Name            string
	Email           string
	Phone           screening.Phone
	Skills          []string
	YearsExperience float64
}

// Result is the outcome of running all enabled fields over one text.
type Result struct {
	Fields  Fields
	Missing []string
}

// Degraded reports whether at least one field was not found.
func (r Result) Degraded() bool { return len(r.Missing) > 0 }

// Status represents runtime information about a field.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
}

type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func (t *toggle) DisabledReason() string { return t.reason }

// Extractor runs the configured fields in order.
type Extractor struct {
	fields []Field
	logger *zap.Logger
}

// New creates an extractor. A nil logger is replaced with a no-op one.
func New(fields []Field, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{fields: fields, logger: logger}
}

// Extract never fails: fields that cannot be found keep their zero value and are reported as missing.
func (e *Extractor) Extract(text string, vocabulary []string) Result {
	in := NewInput(text, vocabulary)

	var result Result
	for _, field := range e.fields {
		if !field.IsEnabled() {
			continue
		}

		if !field.Extract(in, &result.Fields) {
			result.Missing = append(result.Missing, field.Name())
			e.logger.Debug("field not found", zap.String("field", field.Name()))
		}
	}

	if result.Fields.Skills == nil {
		result.Fields.Skills = []string{}
	}

	return result
}

// Fields returns the configured field list.
func (e *Extractor) Fields() []Field { return e.fields }

// NewInput prepares the shared text views used by all fields.
func NewInput(text string, vocabulary []string) *Input {
	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	return &Input{
		Raw:        text,
		Normalized: screening.NormalizeSkill(text),
		Lines:      lines,
		Vocabulary: vocabulary,
	}
}

// Options tune the default field set.
type Options struct {
	NameHeuristic     NameHeuristic
	YearRangeFallback bool
}

// Default returns the standard field strategies in extraction order.
func Default(opts Options) []Field {
	return []Field{
		NewName(opts.NameHeuristic),
		NewEmail(),
		NewPhone(),
		NewSkills(),
		NewExperience(opts.YearRangeFallback),
	}
}

// DisableByName marks a field with the provided name as disabled while keeping it in the list.
func DisableByName(fields []Field, name, reason string) {
	for _, field := range fields {
		if field.Name() == name {
			field.Disable(reason)
		}
	}
}

// Describe returns status entries for the provided fields.
func Describe(fields []Field) []Status {
	statuses := make([]Status, 0, len(fields))
	for _, field := range fields {
		status := Status{Name: field.Name(), Enabled: field.IsEnabled()}
		if reporter, ok := field.(interface{ DisabledReason() string }); ok {
			status.Reason = reporter.DisabledReason()
		}
		statuses = append(statuses, status)
	}
	return statuses
}
