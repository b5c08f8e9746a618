package partner

import (
	"strings"
	"unicode"

	"souq-be/internal/utils"
)

// normalizePhone drops spaces so "050 123 4567" and "0501234567" compare
// equal.
func normalizePhone(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// duplicateOf returns the first existing partner sharing the email, phone or
// name of p, matched case-insensitively. Empty values never match.
func duplicateOf(p Partner, existing []Partner) (Partner, string, bool) {
	phone := normalizePhone(p.Phone)
	for _, e := range existing {
		switch {
		case utils.EqualFold(e.Email, p.Email):
			return e, "email", true
		case phone != "" && normalizePhone(e.Phone) == phone:
			return e, "phone", true
		case utils.EqualFold(e.Name, p.Name):
			return e, "name", true
		}
	}
	return Partner{}, "", false
}
