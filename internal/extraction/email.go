package extraction

import "regexp"

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

type emailField struct {
	toggle
}

// NewEmail creates the field that picks the first email-looking token.
func NewEmail() Field {
	return &emailField{}
}

func (f *emailField) Name() string { return FieldEmail }

func (f *emailField) Extract(in *Input, out *Fields) bool {
	out.Email = FindEmail(in.Raw)
	return out.Email != ""
}

// FindEmail returns the first email address in the text or an empty string.
func FindEmail(text string) string {
	return emailPattern.FindString(text)
}
