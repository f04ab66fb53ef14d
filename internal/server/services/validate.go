package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/eventhub/internal/common"
)

var usernameCharset = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// ValidateUsername applies the username rules in order; the first failing
// rule determines the message.
func ValidateUsername(username string) error {
	if n := utf8.RuneCountInString(username); n < 7 || n > 20 {
		return common.Validation("Username must be between 7 and 20 characters")
	}
	if strings.Contains(username, " ") {
		return common.Validation("Username cannot contain spaces")
	}
	if username != strings.ToLower(username) {
		return common.Validation("Username must be lowercase")
	}
	if !usernameCharset.MatchString(username) {
		return common.Validation("Username can only contain letters and numbers")
	}
	return nil
}

// ValidatePassword checks the password before it is hashed. bcrypt ignores
// everything after 72 bytes, so longer input is refused.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < 6 {
		return common.Validation("Password must be at least 6 characters")
	}
	if len(password) > 72 {
		return common.Validation("Password must be at most 72 bytes")
	}
	return nil
}

// ValidateEmail is a shape check only.
func ValidateEmail(email string) error {
	at := strings.IndexByte(email, '@')
	if email == "" || at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return common.Validation("A valid email is required")
	}
	return nil
}
