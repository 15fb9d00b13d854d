// Package validation contains input validators shared by services and handlers.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"nostagram/internal/models"
)

const (
	MinPasswordLength = 12
	MaxPasswordLength = 128
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MaxEmailLength    = 254
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*[a-zA-Z0-9]$`)

var reservedUsernames = map[string]struct{}{
	"admin":    {},
	"api":      {},
	"auth":     {},
	"feed":     {},
	"posts":    {},
	"comments": {},
	"presets":  {},
	"push":     {},
	"media":    {},
	"users":    {},
	"ws":       {},
	"metrics":  {},
	"login":    {},
	"signup":   {},
}

// ValidateUsername validates username format, length, and reserved names.
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return fmt.Errorf("username must be %d-%d characters", MinUsernameLength, MaxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may only contain letters, numbers, dots, dashes, and underscores, and must start and end with a letter or number")
	}
	if _, exists := reservedUsernames[strings.ToLower(username)]; exists {
		return fmt.Errorf("username is reserved")
	}
	return nil
}

// ValidateEmail checks RFC 5322 syntax plus practical length and shape limits.
func ValidateEmail(email string) error {
	if len(email) > MaxEmailLength {
		return fmt.Errorf("email must be at most %d characters", MaxEmailLength)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email address")
	}
	if strings.HasSuffix(email, ".") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword enforces length and character-class requirements.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if n > MaxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return fmt.Errorf("password must contain upper and lower case letters, a digit, and a special character")
	}
	return nil
}

// ValidatePostContent checks post text. Empty content is allowed only when the
// post carries at least one image.
func ValidatePostContent(content string, imageCount int) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" && imageCount == 0 {
		return fmt.Errorf("post must have text or at least one image")
	}
	if utf8.RuneCountInString(trimmed) > models.MaxPostContentLen {
		return fmt.Errorf("post content must be at most %d characters", models.MaxPostContentLen)
	}
	return nil
}

// ValidateCommentInput checks that a comment carries text, an audio preset,
// or both, and that text fits the length limit.
func ValidateCommentInput(content string, audioPresetID *uint) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" && audioPresetID == nil {
		return fmt.Errorf("comment must have text or an audio preset")
	}
	if utf8.RuneCountInString(trimmed) > models.MaxPostContentLen {
		return fmt.Errorf("comment content must be at most %d characters", models.MaxPostContentLen)
	}
	return nil
}
