// Package jobs builds the job requirement for a run from configuration.
package jobs

import (
	_ "embed"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/xeipuuv/gojsonschema"

	"github.com/spigell/resume-screener/internal/screening"
)

//go:embed job.schema.json
var schema string

const (
	section = "job"

	keyTitle    = "title"
	keyMinYears = "min-years-experience"
	keySkills   = "required-skills"
)

var keys = []string{keyTitle, keyMinYears, keySkills}

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// BindEnv maps every job key onto an environment variable, e.g. job.min-years-experience onto
// <PREFIX>_JOB_MIN_YEARS_EXPERIENCE.
func BindEnv(v *viper.Viper, prefix string) error {
	for _, key := range keys {
		full := section + "." + key
		name := strings.ToUpper(envKeyReplacer.Replace(full))
		if prefix != "" {
			name = strings.ToUpper(prefix) + "_" + name
		}
		if err := v.BindEnv(full, name); err != nil {
			return fmt.Errorf("binding %s: %w", full, err)
		}
	}
	return nil
}

// Section returns the raw job section. Values set through the environment win over the
// config file; unknown keys from the file are kept so the schema can reject them.
func Section(v *viper.Viper) map[string]any {
	raw := map[string]any{}
	for key, value := range v.GetStringMap(section) {
		raw[key] = value
	}

	for _, key := range keys {
		full := section + "." + key
		if !v.IsSet(full) {
			continue
		}
		raw[key] = v.Get(full)
	}

	// Environment values are strings; the schema expects a number here.
	if value, ok := raw[keyMinYears].(string); ok {
		if years, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			raw[keyMinYears] = years
		}
	}

	return raw
}

// Overrides carry values set explicitly on the command line. Nil fields are left untouched.
type Overrides struct {
	Title              *string
	MinYearsExperience *float64
	RequiredSkills     *string
}

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every schema violation of a job section.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("job section does not match schema:")
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "\n  %d. %s: %s", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// Load validates the raw job section, applies overrides and returns the immutable requirement.
// Every failure wraps screening.ErrInvalidJobRequirement.
func Load(raw map[string]any, overrides Overrides) (*screening.JobRequirement, error) {
	if raw == nil {
		raw = map[string]any{}
	}

	if err := ValidateSchema(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", screening.ErrInvalidJobRequirement, err)
	}

	spec, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", screening.ErrInvalidJobRequirement, err)
	}

	if overrides.Title != nil {
		spec.Title = *overrides.Title
	}
	if overrides.MinYearsExperience != nil {
		spec.MinYearsExperience = *overrides.MinYearsExperience
	}
	if overrides.RequiredSkills != nil {
		spec.RequiredSkills = screening.ParseSkillList(*overrides.RequiredSkills)
	}

	return screening.NewJobRequirement(spec)
}

// ValidateSchema checks the raw job section against the embedded JSON schema.
func ValidateSchema(raw map[string]any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewGoLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("validating job section: %w", err)
	}

	if result.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return verr
}

// Decode maps the raw job section onto a JobSpec. Skills may be given as a list or as a
// comma separated string.
func Decode(raw map[string]any) (screening.JobSpec, error) {
	var spec screening.JobSpec

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       skillListHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &spec,
	})
	if err != nil {
		return spec, err
	}

	if err := decoder.Decode(raw); err != nil {
		return spec, fmt.Errorf("decoding job section: %w", err)
	}

	return spec, nil
}

func skillListHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
		return data, nil
	}
	return screening.ParseSkillList(data.(string)), nil
}
