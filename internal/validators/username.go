package validators

import (
	"strings"
	"unicode"
)

const (
	UsernameMinLen = 3
	UsernameMaxLen = 20
	PasswordMinLen = 6
)

// NormalizeUsername trims and lower-cases a login name.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// IsUsernameValid accepts 3 to 20 letters, digits, dots, dashes and
// underscores. username must already be normalized.
func IsUsernameValid(username string) bool {
	if len(username) < UsernameMinLen || len(username) > UsernameMaxLen {
		return false
	}
	for _, r := range username {
		if r > unicode.MaxASCII {
			return false
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '_' {
			continue
		}
		return false
	}
	return true
}

func IsPasswordValid(password string) bool {
	return len(password) >= PasswordMinLen
}
