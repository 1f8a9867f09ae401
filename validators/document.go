package validators

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	TitleMaxLength   = 255
	ContentMinLength = 10
)

var (
	ErrTitleEmpty      = errors.New("no title provided")
	ErrTitleTooLong    = errors.New("title can't be longer than 255 characters")
	ErrContentTooShort = errors.New("content must be at least 10 characters long")
)

func TitleValidator(t string) error {
	if strings.TrimSpace(t) == "" {
		return ErrTitleEmpty
	}

	if utf8.RuneCountInString(t) > TitleMaxLength {
		return ErrTitleTooLong
	}

	return nil
}

func ContentValidator(c string) error {
	if utf8.RuneCountInString(c) < ContentMinLength {
		return ErrContentTooShort
	}

	return nil
}
