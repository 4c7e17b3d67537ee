package waitlist

import (
	"regexp"
	"strings"
)

// emailPattern is deliberately strict: one local part without consecutive
// dots, a domain of dot-separated labels, and a purely alphabetic TLD of at
// least two characters. Permissive patterns that accept "a@b" let junk into
// the list.
var emailPattern = regexp.MustCompile(
	`^[a-zA-Z0-9_%+-]+(\.[a-zA-Z0-9_%+-]+)*@[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?)*\.[a-zA-Z]{2,}$`,
)

const maxEmailLength = 254

// ValidEmail reports whether the address passes strict validation.
// Leading and trailing whitespace is not tolerated.
//
// Parameters:
//   - email: the address to validate
//
// Returns:
//   - bool: true if the address is acceptable for the waitlist
func ValidEmail(email string) bool {
	if email == "" || len(email) > maxEmailLength {
		return false
	}
	if email != strings.TrimSpace(email) {
		return false
	}
	return emailPattern.MatchString(email)
}
