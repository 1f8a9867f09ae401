package validators

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrUsernameEmpty   = errors.New("no username provided")
	ErrUsernameTooLong = errors.New("username can't be longer than 50 characters")
	ErrUsernameInvalid = errors.New("username can't contain whitespace")
)

// UsernameValidator keeps usernames inside the column limit and bans
// whitespace so they stay usable as a token subject
func UsernameValidator(u string) error {
	if u == "" {
		return ErrUsernameEmpty
	}

	if utf8.RuneCountInString(u) > 50 {
		return ErrUsernameTooLong
	}

	if strings.ContainsAny(u, " \t\n") {
		return ErrUsernameInvalid
	}

	return nil
}
