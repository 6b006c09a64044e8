package extraction

import (
	"strings"
	"unicode"
)

const maxNameWords = 4

// NameHeuristic decides whether a single trimmed line can be a person's name.
type NameHeuristic func(line string) bool

type nameField struct {
	toggle
	heuristic NameHeuristic
}

// NewName creates the name field. A nil heuristic falls back to LooksLikeName.
func NewName(heuristic NameHeuristic) Field {
	if heuristic == nil {
		heuristic = LooksLikeName
	}
	return &nameField{heuristic: heuristic}
}

func (f *nameField) Name() string { return FieldName }

func (f *nameField) Extract(in *Input, out *Fields) bool {
	for _, line := range in.Lines {
		if FindEmail(line) != "" {
			continue
		}
		if _, ok := FindPhone(line); ok {
			continue
		}
		if f.heuristic(line) {
			out.Name = line
			return true
		}
	}
	return false
}

// LooksLikeName accepts up to four words made of letters and the punctuation found in names.
func LooksLikeName(line string) bool {
	words := strings.Fields(line)
	if len(words) == 0 || len(words) > maxNameWords {
		return false
	}

	hasLetter := false
	for _, r := range line {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsSpace(r), r == '.', r == '\'', r == '-':
		default:
			return false
		}
	}
	return hasLetter
}
