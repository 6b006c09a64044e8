package extraction

import (
	"regexp"
	"strconv"
)

var (
	yearsPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\b(?:\s+of)?(?:\s+experience)?`)
	yearPattern  = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

type experienceField struct {
	toggle
	yearRangeFallback bool
}

// NewExperience creates the years-of-experience field. With yearRangeFallback set, resumes
// without an explicit "N years" phrase are measured by the span of the calendar years they mention.
func NewExperience(yearRangeFallback bool) Field {
	return &experienceField{yearRangeFallback: yearRangeFallback}
}

func (f *experienceField) Name() string { return FieldExperience }

func (f *experienceField) Extract(in *Input, out *Fields) bool {
	if years, ok := FindYearsOfExperience(in.Normalized); ok {
		out.YearsExperience = years
		return true
	}

	if f.yearRangeFallback {
		if years, ok := YearRangeSpan(in.Normalized); ok {
			out.YearsExperience = years
			return true
		}
	}

	out.YearsExperience = 0
	return false
}

// FindYearsOfExperience returns the largest "N years" figure in lowercase text.
func FindYearsOfExperience(normalized string) (float64, bool) {
	best, found := 0.0, false
	for _, match := range yearsPattern.FindAllStringSubmatch(normalized, -1) {
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		if !found || value > best {
			best, found = value, true
		}
	}
	return best, found
}

// YearRangeSpan returns the distance between the earliest and latest calendar year mentioned.
func YearRangeSpan(text string) (float64, bool) {
	lowest, highest := 0, 0
	distinct := map[int]struct{}{}
	for _, match := range yearPattern.FindAllString(text, -1) {
		year, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		if len(distinct) == 0 || year < lowest {
			lowest = year
		}
		if len(distinct) == 0 || year > highest {
			highest = year
		}
		distinct[year] = struct{}{}
	}

	if len(distinct) < 2 {
		return 0, false
	}
	return float64(highest - lowest), true
}
