package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const MinSearchQueryLen = 2

var (
	emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	otpRe   = regexp.MustCompile(`^[0-9]{6}$`)
)

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func ValidEmail(s string) bool {
	return len(s) <= 254 && emailRe.MatchString(s)
}

func ValidOTP(s string) bool {
	return otpRe.MatchString(s)
}

// NormalizeSearch обрезает пробелы и проверяет минимальную длину запроса.
func NormalizeSearch(q string) (string, error) {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < MinSearchQueryLen {
		return "", ErrQueryTooShort
	}
	return q, nil
}
