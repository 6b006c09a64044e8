package extraction

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/spigell/resume-screener/internal/screening"
)

// An optional leading country digit, then 3-3-4 digits with optional single separators.
var phonePattern = regexp.MustCompile(`(?:\+?\d[\s.\-]?)?(?:\(\d{3}\)|\d{3})[\s.\-]?\d{3}[\s.\-]?\d{4}`)

type phoneField struct {
	toggle
}

// NewPhone creates the field that picks the first 10 or 11 digit phone number.
func NewPhone() Field {
	return &phoneField{}
}

func (f *phoneField) Name() string { return FieldPhone }

func (f *phoneField) Extract(in *Input, out *Fields) bool {
	phone, ok := FindPhone(in.Raw)
	out.Phone = phone
	return ok
}

// FindPhone returns the first phone number that is not part of a longer digit run. A rejected
// candidate is retried one byte further on, so a stray digit in front of a number never hides it.
func FindPhone(text string) (screening.Phone, bool) {
	for offset := 0; offset < len(text); {
		loc := phonePattern.FindStringIndex(text[offset:])
		if loc == nil {
			break
		}

		start, end := offset+loc[0], offset+loc[1]
		offset = start + 1

		if start > 0 && isDigit(text[start-1]) {
			continue
		}
		if end < len(text) && isDigit(text[end]) {
			continue
		}

		display := strings.TrimSpace(text[start:end])
		digits := digitsOnly(display)
		if len(digits) != 10 && len(digits) != 11 {
			continue
		}

		return screening.Phone{Display: display, Digits: digits}, true
	}

	return screening.Phone{}, false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
