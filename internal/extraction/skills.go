package extraction

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/resume-screener/internal/screening"
)

type skillsField struct {
	toggle
}

// NewSkills creates the field that scans the text for the job's skill vocabulary.
// Skills outside the vocabulary are never discovered.
func NewSkills() Field {
	return &skillsField{}
}

func (f *skillsField) Name() string { return FieldSkills }

// Extract always succeeds: an empty intersection with the vocabulary is a valid result.
func (f *skillsField) Extract(in *Input, out *Fields) bool {
	out.Skills = FindSkills(in.Normalized, in.Vocabulary)
	return true
}

// FindSkills returns the normalized vocabulary entries present in normalized text.
func FindSkills(normalized string, vocabulary []string) []string {
	found := make([]string, 0, len(vocabulary))
	seen := make(map[string]struct{}, len(vocabulary))
	for _, entry := range vocabulary {
		skill := screening.NormalizeSkill(entry)
		if skill == "" {
			continue
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		if containsPhrase(normalized, skill) {
			seen[skill] = struct{}{}
			found = append(found, skill)
		}
	}
	return found
}

// containsPhrase looks for phrase with no letter or digit directly around it.
func containsPhrase(text, phrase string) bool {
	offset := 0
	for {
		idx := strings.Index(text[offset:], phrase)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(phrase)

		if !wordRune(lastRune(text[:start])) && !wordRune(firstRune(text[end:])) {
			return true
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
}

func lastRune(s string) rune {
	if s == "" {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func firstRune(s string) rune {
	if s == "" {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func wordRune(r rune) bool {
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
