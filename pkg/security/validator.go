package security

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// markupPatterns match input that would be dangerous if a page ever rendered it unescaped
var markupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(<script|</script|javascript:|vbscript:|onload=|onerror=)`),
	regexp.MustCompile(`[<>]`),
}

// IsPersonName reports whether s is a plausible first or last name:
// letters, spaces, hyphens, apostrophes and dots, with no markup.
func IsPersonName(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || containsMarkup(s) {
		return false
	}

	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '\'' && r != '.' {
			return false
		}
	}
	return true
}

// IsPhone reports whether s looks like a phone number:
// digits with an optional leading plus, spaces, hyphens and parentheses.
func IsPhone(s string) bool {
	s = strings.TrimSpace(s)
	digits := 0
	for i, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 5
}

func containsMarkup(s string) bool {
	for _, pattern := range markupPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// RegisterValidations adds the "personname" and "phone" tags to v.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return IsPersonName(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
}
